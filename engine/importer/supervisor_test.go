package importer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lemastero/mantis/engine/importer"
	"github.com/lemastero/mantis/ledger"
	ledgermock "github.com/lemastero/mantis/ledger/mock"
	"github.com/lemastero/mantis/model/messages"
	"github.com/lemastero/mantis/module/metrics"
	modulemock "github.com/lemastero/mantis/module/mock"
	storagemock "github.com/lemastero/mantis/storage/mock"
	"github.com/lemastero/mantis/utils/unittest"
)

// TestSupervisorRestartsOnIrrecoverableError checks the restart policy: a
// catastrophic error thrown from an import tears the engine down, and the
// supervisor builds and starts a fresh instance, which re-executes the Start
// semantics (fetcher restarted from the best block, fresh importer state).
func TestSupervisorRestartsOnIrrecoverableError(t *testing.T) {
	ldg := ledgermock.NewLedger(t)
	fetcher := modulemock.NewBlockFetcher(t)
	ommers := modulemock.NewOmmerPool(t)
	txPool := modulemock.NewTransactionPool(t)
	broadcaster := modulemock.NewBlockBroadcaster(t)
	stateNodes := storagemock.NewStateNodes(t)

	ldg.On("BestBlockNumber").Return(uint64(0)).Maybe()

	starts := make(chan struct{}, 4)
	fetcher.On("Start", uint64(0)).Run(func(_ mock.Arguments) {
		starts <- struct{}{}
	}).Return()

	// the batch import hits a catastrophic ledger failure
	blocks := unittest.ChainFixture(1, 1)
	ldg.On("ResolveBranch", mock.Anything).Return(ledger.NewBetterBranch{}).Once()
	ldg.On("ImportBlock", mock.Anything, blocks[0]).Return(nil, assert.AnError).Once()

	engines := make(chan *importer.Engine, 4)
	factory := func() (*importer.Engine, error) {
		eng, err := importer.New(
			unittest.Logger(),
			metrics.NewNoopCollector(),
			ldg, fetcher, ommers, txPool, broadcaster, stateNodes,
			importer.WithSyncRetryInterval(time.Hour),
		)
		if err == nil {
			engines <- eng
		}
		return eng, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	runResult := make(chan error, 1)
	go func() {
		runResult <- importer.Run(ctx, unittest.Logger(), factory)
	}()

	// the first instance comes up and points the fetcher at the best block
	eng := waitForEngine(t, engines)
	waitForSignal(t, starts, "first instance did not start the fetcher")

	require.NoError(t, eng.Process("peer-1", &messages.PickedBlocks{Blocks: blocks}))

	// the thrown error replaces the instance: a second engine is built and
	// re-executes Start
	waitForEngine(t, engines)
	waitForSignal(t, starts, "supervisor did not restart the engine")

	cancel()
	select {
	case err := <-runResult:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("supervisor did not stop on context cancellation")
	}
}

// TestSupervisorFactoryFailure checks that a factory error aborts
// supervision instead of restarting.
func TestSupervisorFactoryFailure(t *testing.T) {
	factory := func() (*importer.Engine, error) {
		return nil, assert.AnError
	}

	err := importer.Run(context.Background(), unittest.Logger(), factory)
	require.ErrorIs(t, err, assert.AnError)
}

func waitForEngine(t *testing.T, engines <-chan *importer.Engine) *importer.Engine {
	select {
	case eng := <-engines:
		return eng
	case <-time.After(time.Second):
		t.Fatal("engine was not built in time")
		return nil
	}
}

func waitForSignal(t *testing.T, signal <-chan struct{}, message string) {
	select {
	case <-signal:
	case <-time.After(time.Second):
		t.Fatal(message)
	}
}
