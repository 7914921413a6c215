package module

import (
	"github.com/ethereum/go-ethereum/common"
)

// BlockFetcher is the importer's handle on the block fetcher: the component
// that tracks peer-announced blocks, downloads headers, bodies and state
// nodes, and feeds the importer through its inbox.
//
// All methods are fire-and-forget message sends; the fetcher replies through
// the importer's inbox (PickedBlocks, FetchedStateNode, OnTip, NotOnTop).
type BlockFetcher interface {
	// Start begins fetching from the given block number.
	Start(fromBlockNumber uint64)

	// PickBlocks asks for the next count ready blocks.
	PickBlocks(count uint)

	// FetchStateNode asks peers for the state trie node with the given hash.
	FetchStateNode(hash common.Hash)

	// InvalidateBlocksFrom discards all fetched blocks from the given number
	// upwards so they are re-requested. When withBlacklist is set, the peer
	// that served the offending blocks is penalised.
	InvalidateBlocksFrom(number uint64, reason string, withBlacklist bool)

	// BlockImportFailed reports that a peer-broadcast block at the given
	// number failed to import.
	BlockImportFailed(number uint64, reason string)
}
