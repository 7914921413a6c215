// Package ledger defines the contract between the block importer and the
// ledger: the component that executes blocks against the EVM and the
// underlying state trie, and that owns the canonical-chain pointer.
package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/core/types"
)

// Ledger executes candidate blocks and classifies candidate branches against
// the current canonical chain.
//
// ImportBlock is a blocking call; the importer runs it on a dedicated import
// goroutine and rendezvouses with the result through its own inbox, so the
// ledger implementation is free to dispatch onto a worker pool internally.
type Ledger interface {
	// ImportBlock drives one block through execution and returns how the
	// canonical chain was affected.
	//
	// Expected error returns during normal operations:
	//   - *MissingNodeError when a state trie node required for execution is
	//     absent from the local store. The caller may repair and retry.
	//
	// All other errors are symptoms of state corruption and should be treated
	// as irrecoverable.
	ImportBlock(ctx context.Context, block *types.Block) (BlockImportResult, error)

	// ResolveBranch classifies the branch formed by the given headers
	// (ordered oldest first) relative to the current canonical chain.
	ResolveBranch(headers []*types.Header) BranchResolutionResult

	// BestBlockNumber returns the number of the current best canonical block.
	BestBlockNumber() uint64
}
