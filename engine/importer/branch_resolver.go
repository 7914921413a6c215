package importer

import (
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"

	"github.com/lemastero/mantis/ledger"
	"github.com/lemastero/mantis/module"
)

// branchResolver decides whether a candidate block sequence is worth
// importing, and applies the side-effects of that decision on the ommer
// pool, the pending-transaction pool and the fetcher.
type branchResolver struct {
	log         zerolog.Logger
	ledger      ledger.Ledger
	ommers      module.OmmerPool
	txPool      module.TransactionPool
	fetcher     module.BlockFetcher
	requestSize uint64
}

func newBranchResolver(
	log zerolog.Logger,
	ldg ledger.Ledger,
	ommers module.OmmerPool,
	txPool module.TransactionPool,
	fetcher module.BlockFetcher,
	requestSize uint64,
) *branchResolver {
	return &branchResolver{
		log:         log.With().Str("component", "branch_resolver").Logger(),
		ledger:      ldg,
		ommers:      ommers,
		txPool:      txPool,
		fetcher:     fetcher,
		requestSize: requestSize,
	}
}

// resolve classifies the candidate sequence (ordered oldest first) against
// the canonical chain and returns the blocks that should be imported. An
// empty return means the candidates were rejected; the fetcher has already
// been told how to recover.
//
// Pool side-effects are dispatched before returning, so transactions of a
// displaced branch are back in the pending pool even if the subsequent batch
// import fails.
func (r *branchResolver) resolve(blocks []*types.Block) []*types.Block {
	if len(blocks) == 0 {
		return nil
	}

	headers := make([]*types.Header, 0, len(blocks))
	for _, block := range blocks {
		headers = append(headers, block.Header())
	}

	first := blocks[0]
	switch result := r.ledger.ResolveBranch(headers).(type) {

	case ledger.NewBetterBranch:
		// return the transactions of the displaced branch to the pending
		// pool before the import runs, and offer the losing tip as an ommer
		// candidate
		for _, displaced := range result.OldBranch {
			if err := r.txPool.AddTransactions(displaced.Transactions()); err != nil {
				r.log.Warn().Err(err).
					Uint64("block_number", displaced.NumberU64()).
					Msg("could not return displaced transactions to pending pool")
			}
		}
		if len(result.OldBranch) > 0 {
			if err := r.ommers.AddOmmers(result.OldBranch[0].Header()); err != nil {
				r.log.Warn().Err(err).Msg("could not offer displaced tip as ommer candidate")
			}
		}
		return blocks

	case ledger.NoChainSwitch:
		// the candidates do not improve on the canonical chain; their first
		// header may still be useful as an ommer. The peer served us valid
		// blocks, so no blacklisting.
		if err := r.ommers.AddOmmers(first.Header()); err != nil {
			r.log.Warn().Err(err).Msg("could not offer candidate header as ommer")
		}
		r.fetcher.InvalidateBlocksFrom(first.NumberU64(), "no progress on chain", false)
		return nil

	case ledger.UnknownBranch:
		// rewind far enough below the branch to re-fetch it with history
		from := uint64(0)
		if first.NumberU64() > r.requestSize {
			from = first.NumberU64() - r.requestSize
		}
		r.log.Debug().
			Uint64("first_block_number", first.NumberU64()).
			Uint64("invalidate_from", from).
			Msg("unknown branch, re-fetching with history")
		r.fetcher.InvalidateBlocksFrom(from, "unknown branch", true)
		return nil

	case ledger.InvalidBranch:
		r.log.Debug().
			Uint64("first_block_number", first.NumberU64()).
			Msg("invalid branch")
		r.fetcher.InvalidateBlocksFrom(first.NumberU64(), "invalid branch", true)
		return nil

	default:
		r.log.Error().
			Str("classification", classificationName(result)).
			Msg("unexpected branch classification, discarding candidates")
		return nil
	}
}

func classificationName(result ledger.BranchResolutionResult) string {
	switch result.(type) {
	case ledger.NewBetterBranch:
		return "new_better_branch"
	case ledger.NoChainSwitch:
		return "no_chain_switch"
	case ledger.UnknownBranch:
		return "unknown_branch"
	case ledger.InvalidBranch:
		return "invalid_branch"
	default:
		return "unknown"
	}
}
