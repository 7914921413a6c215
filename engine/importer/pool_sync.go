package importer

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/hashicorp/go-multierror"

	"github.com/lemastero/mantis/model/messages"
)

// synchronizePools applies the side-effects of an import outcome to the
// ommer and pending-transaction pools.
//
// Only the tip of a displaced branch is offered as an ommer candidate:
// deeper displaced blocks can no longer be referenced by the next canonical
// block. All displaced transactions go back to the pending pool; everything
// carried by the adopted blocks leaves both pools, in adoption order.
func (e *Engine) synchronizePools(added []*types.Block, removed []*types.Block) {
	var errs *multierror.Error

	if len(removed) > 0 {
		errs = multierror.Append(errs, e.ommers.AddOmmers(removed[0].Header()))
	}
	for _, block := range removed {
		errs = multierror.Append(errs, e.txPool.AddTransactions(block.Transactions()))
	}

	for _, block := range added {
		headers := append([]*types.Header{block.Header()}, block.Uncles()...)
		errs = multierror.Append(errs, e.ommers.RemoveOmmers(headers...))
		errs = multierror.Append(errs, e.txPool.RemoveTransactions(block.Transactions()))
	}

	if err := errs.ErrorOrNil(); err != nil {
		e.log.Warn().Err(err).
			Int("added", len(added)).
			Int("removed", len(removed)).
			Msg("pool synchronization incomplete")
	}
}

// broadcastBlocks announces adopted blocks, positionally paired with their
// total difficulties, to the network.
func (e *Engine) broadcastBlocks(blocks []*types.Block, totalDifficulties []*big.Int) {
	if len(blocks) == 0 {
		return
	}
	announcements := make([]*messages.NewBlock, 0, len(blocks))
	for i, block := range blocks {
		var td *big.Int
		if i < len(totalDifficulties) {
			td = totalDifficulties[i]
		}
		announcements = append(announcements, &messages.NewBlock{
			Block:           block,
			TotalDifficulty: td,
		})
	}
	if err := e.broadcaster.BroadcastBlocks(announcements); err != nil {
		e.log.Warn().Err(err).Int("blocks", len(announcements)).Msg("block broadcast failed")
	}
}
