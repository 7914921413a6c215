package importer

import (
	"fmt"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/lemastero/mantis/ledger"
	"github.com/lemastero/mantis/module"
	"github.com/lemastero/mantis/module/irrecoverable"
)

// runSingleBlockImport drives one mined or peer-broadcast block through the
// ledger and applies the outcome's side-effects. The two entry points share
// this implementation and differ only in log wording and in whether the
// fetcher is told about failures: the fetcher never produced a mined block,
// so it must not penalise peers for one.
//
// Runs on the import goroutine; must not touch ImporterState.
func (e *Engine) runSingleBlockImport(
	ctx irrecoverable.SignalerContext,
	block *types.Block,
	informFetcherOnFail bool,
	msgs importMessages,
) nextBehavior {
	log := e.log.With().
		Uint64("block_number", block.NumberU64()).
		Str("block_hash", block.Hash().Hex()).
		Logger()
	log.Debug().Msg(msgs.preImport)

	result, err := e.ledger.ImportBlock(ctx, block)
	if err != nil {
		if missing, ok := ledger.AsMissingNodeError(err); ok && e.config.RedownloadMissingStateNodes {
			// unlike the batch path, no repair is started here: header-driven
			// sync re-requests the node. The context label on the metric
			// keeps the asymmetry observable.
			e.metrics.MissingStateNode(module.MissingNodeContextSingle)
			log.Warn().Str("node_hash", missing.Hash.Hex()).Msg(msgs.missingStateNode)
			return runningBehavior()
		}
		ctx.Throw(fmt.Errorf("could not import block %d: %w", block.NumberU64(), err))
	}

	switch res := result.(type) {
	case ledger.BlockImportedToTop:
		e.broadcastBlocks(res.Chain, res.TotalDifficulties)
		e.synchronizePools(res.Chain, nil)
		e.metrics.BlocksImported(len(res.Chain))
		e.metrics.BestBlockNumber(e.ledger.BestBlockNumber())
		log.Info().Int("chain_length", len(res.Chain)).Msg(msgs.importedToTop)

	case ledger.BlockEnqueued:
		if err := e.ommers.AddOmmers(block.Header()); err != nil {
			log.Warn().Err(err).Msg("could not offer enqueued block header as ommer")
		}
		log.Debug().Msg(msgs.enqueued)

	case ledger.DuplicateBlock:
		log.Debug().Msg(msgs.duplicate)

	case ledger.UnknownParent:
		log.Debug().Msg(msgs.unknownParent)

	case ledger.ChainReorganised:
		e.synchronizePools(res.NewBranch, res.OldBranch)
		e.broadcastBlocks(res.NewBranch, res.TotalDifficulties)
		e.metrics.ChainReorganised(len(res.OldBranch))
		e.metrics.BlocksImported(len(res.NewBranch))
		e.metrics.BestBlockNumber(e.ledger.BestBlockNumber())
		log.Info().
			Int("old_branch_length", len(res.OldBranch)).
			Int("new_branch_length", len(res.NewBranch)).
			Msg(msgs.reorganised)

	case ledger.BlockImportFailed:
		e.metrics.BlockImportFailed()
		if informFetcherOnFail {
			e.fetcher.BlockImportFailed(block.NumberU64(), res.Reason)
		}
		log.Warn().Str("reason", res.Reason).Msg(msgs.failed)

	default:
		ctx.Throw(fmt.Errorf("unexpected import result of type %T for block %d", result, block.NumberU64()))
	}

	return runningBehavior()
}
