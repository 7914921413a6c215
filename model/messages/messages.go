package messages

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// OnTip signals that the fetcher believes the node has caught up to the
// network tip.
type OnTip struct{}

// NotOnTop signals that the fetcher has learned of peer blocks we do not
// have yet.
type NotOnTop struct{}

// PickedBlocks delivers the next batch of fetched blocks, ordered oldest
// first.
type PickedBlocks struct {
	Blocks []*types.Block
}

// MinedBlock carries a block produced by the local miner.
type MinedBlock struct {
	Block *types.Block
}

// ImportNewBlock carries a single block broadcast by a peer outside of
// ordinary sync.
type ImportNewBlock struct {
	Block  *types.Block
	PeerID string
}

// FetchedStateNode delivers the raw bytes of requested state trie nodes,
// keyed by their keccak256 hash. The importer only ever requests one node at
// a time and uses the first value.
type FetchedStateNode struct {
	Nodes map[common.Hash][]byte
}

// FirstNode returns the bytes of an arbitrary node from the response.
// Returns false when the response is empty.
func (f *FetchedStateNode) FirstNode() ([]byte, bool) {
	for _, node := range f.Nodes {
		return node, true
	}
	return nil, false
}

// NewBlock pairs a freshly adopted block with its total difficulty for
// broadcast to peers.
type NewBlock struct {
	Block           *types.Block
	TotalDifficulty *big.Int
}
