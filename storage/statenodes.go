package storage

import (
	"github.com/ethereum/go-ethereum/common"
)

// StateNodes persists state trie nodes that were re-downloaded from peers
// during missing-node repair. Nodes are keyed by the keccak256 hash of their
// serialised bytes, together with the number of the block whose execution
// required them.
type StateNodes interface {
	// SaveNode stores the node under its hash and records the requesting
	// block number. Saving the same node twice is a no-op.
	SaveNode(hash common.Hash, node []byte, blockNumber uint64) error

	// ByHash retrieves the node with the given hash.
	// Returns ErrNotFound if the node is not stored.
	ByHash(hash common.Hash) ([]byte, error)

	// BlockNumber retrieves the number of the block that required the node
	// with the given hash.
	// Returns ErrNotFound if the node is not stored.
	BlockNumber(hash common.Hash) (uint64, error)
}
