package importer

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lemastero/mantis/ledger"
	ledgermock "github.com/lemastero/mantis/ledger/mock"
	"github.com/lemastero/mantis/module/irrecoverable"
	"github.com/lemastero/mantis/module/metrics"
	modulemock "github.com/lemastero/mantis/module/mock"
	storagemock "github.com/lemastero/mantis/storage/mock"
	"github.com/lemastero/mantis/utils/unittest"
)

type engineMocks struct {
	ledger      *ledgermock.Ledger
	fetcher     *modulemock.BlockFetcher
	ommers      *modulemock.OmmerPool
	txPool      *modulemock.TransactionPool
	broadcaster *modulemock.BlockBroadcaster
	stateNodes  *storagemock.StateNodes
}

func newEngineWithMocks(t *testing.T, opts ...Opt) (*Engine, *engineMocks) {
	m := &engineMocks{
		ledger:      ledgermock.NewLedger(t),
		fetcher:     modulemock.NewBlockFetcher(t),
		ommers:      modulemock.NewOmmerPool(t),
		txPool:      modulemock.NewTransactionPool(t),
		broadcaster: modulemock.NewBlockBroadcaster(t),
		stateNodes:  storagemock.NewStateNodes(t),
	}
	e, err := New(
		unittest.Logger(),
		metrics.NewNoopCollector(),
		m.ledger,
		m.fetcher,
		m.ommers,
		m.txPool,
		m.broadcaster,
		m.stateNodes,
		opts...,
	)
	require.NoError(t, err)
	return e, m
}

func importedToTop(block *types.Block) ledger.BlockImportResult {
	return ledger.BlockImportedToTop{
		Chain:             []*types.Block{block},
		TotalDifficulties: []*big.Int{big.NewInt(1000)},
	}
}

// A fully successful batch accumulates every block in order.
func TestImportBatchAllImported(t *testing.T) {
	e, m := newEngineWithMocks(t)
	ctx := irrecoverable.NewMockSignalerContext(t, context.Background())

	blocks := unittest.ChainFixture(3, 1)
	for _, block := range blocks {
		m.ledger.On("ImportBlock", mock.Anything, block).Return(importedToTop(block), nil).Once()
	}

	out, fault := e.importBatch(ctx, blocks)
	require.NoError(t, fault)
	assert.Equal(t, blocks, out.imported)
	assert.Len(t, out.totalDifficulties, 3)
	assert.Empty(t, out.removed)
}

// Duplicates and enqueued blocks are walked over without being accumulated.
func TestImportBatchSkipsDuplicatesAndEnqueued(t *testing.T) {
	e, m := newEngineWithMocks(t)
	ctx := irrecoverable.NewMockSignalerContext(t, context.Background())

	blocks := unittest.ChainFixture(3, 1)
	m.ledger.On("ImportBlock", mock.Anything, blocks[0]).Return(ledger.DuplicateBlock{}, nil).Once()
	m.ledger.On("ImportBlock", mock.Anything, blocks[1]).Return(ledger.BlockEnqueued{}, nil).Once()
	m.ledger.On("ImportBlock", mock.Anything, blocks[2]).Return(importedToTop(blocks[2]), nil).Once()

	out, fault := e.importBatch(ctx, blocks)
	require.NoError(t, fault)
	assert.Equal(t, []*types.Block{blocks[2]}, out.imported)
}

// A reorganisation mid-batch splices the reversed new branch into the
// accumulator and records the displaced blocks.
func TestImportBatchReorganisation(t *testing.T) {
	e, m := newEngineWithMocks(t)
	ctx := irrecoverable.NewMockSignalerContext(t, context.Background())

	blocks := unittest.ChainFixture(3, 5)
	displaced := unittest.BlockWithNumberFixture(6)
	newBranch := unittest.ChainFixture(2, 6)

	m.ledger.On("ImportBlock", mock.Anything, blocks[0]).Return(importedToTop(blocks[0]), nil).Once()
	m.ledger.On("ImportBlock", mock.Anything, blocks[1]).Return(ledger.ChainReorganised{
		OldBranch:         []*types.Block{displaced},
		NewBranch:         newBranch,
		TotalDifficulties: []*big.Int{big.NewInt(10), big.NewInt(20)},
	}, nil).Once()
	m.ledger.On("ImportBlock", mock.Anything, blocks[2]).Return(importedToTop(blocks[2]), nil).Once()

	out, fault := e.importBatch(ctx, blocks)
	require.NoError(t, fault)

	expected := []*types.Block{blocks[0], newBranch[1], newBranch[0], blocks[2]}
	assert.Equal(t, expected, out.imported)
	assert.Equal(t, []*types.Block{displaced}, out.removed)
}

// An unknown parent stops the batch, keeping what was imported so far.
func TestImportBatchUnknownParent(t *testing.T) {
	e, m := newEngineWithMocks(t)
	ctx := irrecoverable.NewMockSignalerContext(t, context.Background())

	blocks := unittest.ChainFixture(3, 1)
	m.ledger.On("ImportBlock", mock.Anything, blocks[0]).Return(importedToTop(blocks[0]), nil).Once()
	m.ledger.On("ImportBlock", mock.Anything, blocks[1]).Return(ledger.UnknownParent{}, nil).Once()

	out, fault := e.importBatch(ctx, blocks)
	require.ErrorIs(t, fault, errUnknownParent)
	assert.Equal(t, []*types.Block{blocks[0]}, out.imported)
	m.ledger.AssertNotCalled(t, "ImportBlock", mock.Anything, blocks[2])
}

// A validation failure stops the batch with the ledger's reason.
func TestImportBatchValidationFailure(t *testing.T) {
	e, m := newEngineWithMocks(t)
	ctx := irrecoverable.NewMockSignalerContext(t, context.Background())

	blocks := unittest.ChainFixture(3, 1)
	m.ledger.On("ImportBlock", mock.Anything, blocks[0]).Return(importedToTop(blocks[0]), nil).Once()
	m.ledger.On("ImportBlock", mock.Anything, blocks[1]).Return(ledger.BlockImportFailed{Reason: "bad gas"}, nil).Once()

	out, fault := e.importBatch(ctx, blocks)
	require.Error(t, fault)
	assert.Contains(t, fault.Error(), "bad gas")
	assert.Equal(t, []*types.Block{blocks[0]}, out.imported)
}

// A missing trie node is a recoverable fault while re-download is enabled.
func TestImportBatchMissingNode(t *testing.T) {
	e, m := newEngineWithMocks(t)
	ctx := irrecoverable.NewMockSignalerContext(t, context.Background())

	blocks := unittest.ChainFixture(3, 1)
	nodeHash := unittest.HashFixture()
	m.ledger.On("ImportBlock", mock.Anything, blocks[0]).Return(importedToTop(blocks[0]), nil).Once()
	m.ledger.On("ImportBlock", mock.Anything, blocks[1]).Return(nil, ledger.NewMissingNodeError(nodeHash)).Once()

	out, fault := e.importBatch(ctx, blocks)
	missing, ok := ledger.AsMissingNodeError(fault)
	require.True(t, ok)
	assert.Equal(t, nodeHash, missing.Hash)
	assert.Equal(t, []*types.Block{blocks[0]}, out.imported)
}

// With re-download disabled, a missing trie node is irrecoverable.
func TestImportBatchMissingNodeFatalWhenRedownloadDisabled(t *testing.T) {
	e, m := newEngineWithMocks(t, WithRedownloadMissingStateNodes(false))

	blocks := unittest.ChainFixture(1, 1)
	m.ledger.On("ImportBlock", mock.Anything, blocks[0]).
		Return(nil, ledger.NewMissingNodeError(unittest.HashFixture())).Once()

	ctx, errChan := irrecoverable.WithSignaler(context.Background())
	go func() {
		_, _ = e.importBatch(ctx, blocks)
	}()

	select {
	case err := <-errChan:
		assert.True(t, ledger.IsMissingNodeError(err))
	case <-time.After(time.Second):
		t.Fatal("expected an irrecoverable error")
	}
}

// Any other ledger error is irrecoverable regardless of configuration.
func TestImportBatchUnexpectedErrorFatal(t *testing.T) {
	e, m := newEngineWithMocks(t)

	blocks := unittest.ChainFixture(1, 1)
	m.ledger.On("ImportBlock", mock.Anything, blocks[0]).
		Return(nil, assert.AnError).Once()

	ctx, errChan := irrecoverable.WithSignaler(context.Background())
	go func() {
		_, _ = e.importBatch(ctx, blocks)
	}()

	select {
	case err := <-errChan:
		require.ErrorIs(t, err, assert.AnError)
	case <-time.After(time.Second):
		t.Fatal("expected an irrecoverable error")
	}
}

func TestDropImported(t *testing.T) {
	blocks := unittest.ChainFixture(3, 1)
	assert.Equal(t, blocks[1:], dropImported(blocks, 1))
	assert.Empty(t, dropImported(blocks, 3))
	// a reorg can adopt more blocks than the batch supplied
	assert.Empty(t, dropImported(blocks, 5))
}
