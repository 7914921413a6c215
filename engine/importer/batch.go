package importer

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/lemastero/mantis/ledger"
	"github.com/lemastero/mantis/module"
	"github.com/lemastero/mantis/module/irrecoverable"
)

// errUnknownParent is the batch fault for a block whose parent is neither
// canonical nor queued. The batch stops there; the fetcher re-fetches from
// the offending block.
var errUnknownParent = errors.New("unknown parent")

// batchOutcome accumulates the effects of one batch import: the blocks
// adopted onto the canonical chain (in adoption order, with the reversed new
// branch spliced in at a reorg boundary), their total difficulties paired
// positionally, and the blocks displaced by reorganisations.
type batchOutcome struct {
	imported          []*types.Block
	totalDifficulties []*big.Int
	removed           []*types.Block
}

func (o *batchOutcome) appendAdopted(chain []*types.Block, tds []*big.Int) {
	o.imported = append(o.imported, chain...)
	o.totalDifficulties = append(o.totalDifficulties, tds...)
}

func (o *batchOutcome) appendReorganised(reorg ledger.ChainReorganised) {
	for i := len(reorg.NewBranch) - 1; i >= 0; i-- {
		o.imported = append(o.imported, reorg.NewBranch[i])
		if i < len(reorg.TotalDifficulties) {
			o.totalDifficulties = append(o.totalDifficulties, reorg.TotalDifficulties[i])
		}
	}
	o.removed = append(o.removed, reorg.OldBranch...)
}

// importBatch drives the given blocks through the ledger strictly in order,
// accumulating outcomes until the batch is exhausted or a per-block fault
// stops it. The returned fault is nil on a complete batch, a
// *ledger.MissingNodeError when repair should follow, or the per-block
// failure otherwise.
//
// Irrecoverable conditions (unexpected ledger errors, or a missing state
// node while re-download is disabled) are thrown on the signaler context.
func (e *Engine) importBatch(ctx irrecoverable.SignalerContext, blocks []*types.Block) (batchOutcome, error) {
	var out batchOutcome

	for _, block := range blocks {
		result, err := e.ledger.ImportBlock(ctx, block)
		if err != nil {
			if missing, ok := ledger.AsMissingNodeError(err); ok {
				if !e.config.RedownloadMissingStateNodes {
					ctx.Throw(fmt.Errorf("could not import block %d with state node re-download disabled: %w",
						block.NumberU64(), err))
				}
				e.metrics.MissingStateNode(module.MissingNodeContextBatch)
				return out, missing
			}
			ctx.Throw(fmt.Errorf("could not import block %d: %w", block.NumberU64(), err))
		}

		switch res := result.(type) {
		case ledger.BlockImportedToTop:
			out.appendAdopted(res.Chain, res.TotalDifficulties)

		case ledger.ChainReorganised:
			out.appendReorganised(res)
			e.metrics.ChainReorganised(len(res.OldBranch))

		case ledger.BlockEnqueued, ledger.DuplicateBlock:
			// nothing adopted, keep walking the batch

		case ledger.UnknownParent:
			return out, errUnknownParent

		case ledger.BlockImportFailed:
			e.metrics.BlockImportFailed()
			return out, errors.New(res.Reason)

		default:
			ctx.Throw(fmt.Errorf("unexpected import result of type %T for block %d", result, block.NumberU64()))
		}
	}

	return out, nil
}

// runBatchImport resolves the candidate branch, then imports the surviving
// blocks. It returns the behavior the engine's worker should assume next.
//
// Runs on the import goroutine; must not touch ImporterState.
func (e *Engine) runBatchImport(ctx irrecoverable.SignalerContext, blocks []*types.Block) nextBehavior {
	toImport := e.resolver.resolve(blocks)
	if len(toImport) == 0 {
		// branch resolution already instructed the fetcher how to recover
		e.fetcher.PickBlocks(defaultBatchSize)
		return runningBehavior()
	}
	return e.importResolvedBatch(ctx, toImport)
}

// importResolvedBatch imports an already-resolved batch and applies all
// boundary side-effects: pool synchronization, broadcast, fetcher feedback.
// The missing-node repair path re-enters here directly, skipping branch
// resolution for the retained tail.
//
// Runs on the import goroutine; must not touch ImporterState.
func (e *Engine) importResolvedBatch(ctx irrecoverable.SignalerContext, toImport []*types.Block) nextBehavior {
	start := time.Now()

	out, fault := e.importBatch(ctx, toImport)

	if len(out.imported) > 0 {
		first := out.imported[0].NumberU64()
		last := out.imported[len(out.imported)-1].NumberU64()
		e.log.Info().
			Uint64("first_block_number", first).
			Uint64("last_block_number", last).
			Int("count", len(out.imported)).
			Msg("imported blocks")

		e.synchronizePools(out.imported, out.removed)
		e.broadcastBlocks(out.imported, out.totalDifficulties)

		e.metrics.BlocksImported(len(out.imported))
		e.metrics.BestBlockNumber(e.ledger.BestBlockNumber())
	}

	if fault == nil {
		e.metrics.BatchImportDuration(time.Since(start))
		e.fetcher.PickBlocks(defaultBatchSize)
		return runningBehavior()
	}

	if missing, ok := ledger.AsMissingNodeError(fault); ok {
		retry := dropImported(toImport, len(out.imported))
		if len(retry) == 0 {
			// a reorganisation adopted more blocks than the batch supplied,
			// leaving no identifiable faulting block; let ordinary sync
			// re-deliver from the tip
			e.fetcher.PickBlocks(defaultBatchSize)
			return runningBehavior()
		}
		e.log.Warn().
			Str("node_hash", missing.Hash.Hex()).
			Int("blocks_to_retry", len(retry)).
			Msg("missing state node during batch import, re-downloading")
		e.fetcher.FetchStateNode(missing.Hash)
		return resolvingBehavior(retry)
	}

	// per-block validation fault: discard the fetched tail so it is
	// re-requested, then ask for the next batch. The invalidation must reach
	// the fetcher before the pick request.
	failed := firstNotImported(toImport, len(out.imported))
	e.log.Warn().Err(fault).
		Uint64("block_number", failed.NumberU64()).
		Msg("batch import stopped at invalid block")
	e.fetcher.InvalidateBlocksFrom(failed.NumberU64(), fault.Error(), true)
	e.fetcher.PickBlocks(defaultBatchSize)
	e.metrics.BatchImportDuration(time.Since(start))
	return runningBehavior()
}

// dropImported returns the tail of blocks that was not imported. A chain
// reorganisation can adopt more blocks than were taken from the input, in
// which case nothing is left to retry.
func dropImported(blocks []*types.Block, imported int) []*types.Block {
	if imported >= len(blocks) {
		return nil
	}
	return blocks[imported:]
}

func firstNotImported(blocks []*types.Block, imported int) *types.Block {
	if imported >= len(blocks) {
		return blocks[len(blocks)-1]
	}
	return blocks[imported]
}
