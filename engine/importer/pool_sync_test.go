package importer

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lemastero/mantis/model/messages"
	"github.com/lemastero/mantis/utils/unittest"
)

// Displaced blocks return their transactions to the pending pool, but only
// the displaced tip becomes an ommer candidate.
func TestSynchronizePoolsDisplacedBranch(t *testing.T) {
	e, m := newEngineWithMocks(t)

	removed := unittest.ChainFixture(3, 10)
	m.ommers.On("AddOmmers", headerWithHash(removed[0].Header())).Return(nil).Once()
	for _, block := range removed {
		m.txPool.On("AddTransactions", sameTransactions(block.Transactions())).Return(nil).Once()
	}

	e.synchronizePools(nil, removed)
}

// Adopted blocks evict their own header, their declared uncles and their
// transactions from the pools.
func TestSynchronizePoolsAdoptedBlocks(t *testing.T) {
	e, m := newEngineWithMocks(t)

	uncle := unittest.HeaderFixture(8)
	block := unittest.BlockWithUnclesFixture(9, []*types.Header{uncle})

	m.ommers.On("RemoveOmmers", headerWithHash(block.Header()), headerWithHash(uncle)).Return(nil).Once()
	m.txPool.On("RemoveTransactions", sameTransactions(block.Transactions())).Return(nil).Once()

	e.synchronizePools([]*types.Block{block}, nil)
}

// Pool errors are logged, never propagated: the importer is the terminal
// sink.
func TestSynchronizePoolsToleratesPoolErrors(t *testing.T) {
	e, m := newEngineWithMocks(t)

	block := unittest.BlockFixture()
	m.ommers.On("RemoveOmmers", mock.Anything).Return(assert.AnError).Once()
	m.txPool.On("RemoveTransactions", mock.Anything).Return(assert.AnError).Once()

	e.synchronizePools([]*types.Block{block}, nil)
}

func TestBroadcastBlocksPairsTotalDifficulties(t *testing.T) {
	e, m := newEngineWithMocks(t)

	blocks := unittest.ChainFixture(2, 1)
	tds := []*big.Int{big.NewInt(100), big.NewInt(200)}

	m.broadcaster.On("BroadcastBlocks", mock.MatchedBy(func(announced []*messages.NewBlock) bool {
		if len(announced) != 2 {
			return false
		}
		for i := range announced {
			if announced[i].Block != blocks[i] || announced[i].TotalDifficulty.Cmp(tds[i]) != 0 {
				return false
			}
		}
		return true
	})).Return(nil).Once()

	e.broadcastBlocks(blocks, tds)
}

func TestBroadcastBlocksEmpty(t *testing.T) {
	e, m := newEngineWithMocks(t)

	e.broadcastBlocks(nil, nil)
	m.broadcaster.AssertNotCalled(t, "BroadcastBlocks", mock.Anything)
}
