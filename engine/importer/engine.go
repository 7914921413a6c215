// Package importer implements the block import engine: the subsystem that
// consumes candidate blocks from the fetcher, the local miner and peer
// broadcasts, drives them through the ledger, and keeps the ommer pool, the
// pending-transaction pool and the block broadcast coherent with the
// outcomes.
//
// The engine is a single-threaded event loop: one inbox, one message at a
// time, with at most one import in flight. Ledger calls run on a dedicated
// import goroutine and rendezvous with the loop through the importDone
// channel, so the importer state has a single writer.
package importer

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"

	"github.com/lemastero/mantis/engine"
	"github.com/lemastero/mantis/ledger"
	"github.com/lemastero/mantis/model/messages"
	"github.com/lemastero/mantis/module"
	"github.com/lemastero/mantis/module/component"
	"github.com/lemastero/mantis/module/irrecoverable"
	"github.com/lemastero/mantis/module/util"
	"github.com/lemastero/mantis/storage"
)

// defaultTipEventQueueCapacity maximum capacity of the on-tip signal queue
const defaultTipEventQueueCapacity = 100

// defaultBatchQueueCapacity maximum capacity of the fetched-batches queue
const defaultBatchQueueCapacity = 10

// defaultMinedBlockQueueCapacity maximum capacity of the mined-blocks queue
const defaultMinedBlockQueueCapacity = 10

// defaultPeerBlockQueueCapacity maximum capacity of the peer-broadcast blocks queue
const defaultPeerBlockQueueCapacity = 100

// defaultStateNodeQueueCapacity maximum capacity of the state-node responses queue
const defaultStateNodeQueueCapacity = 10

// nextBehavior tells the worker loop which behavior to assume once an import
// goroutine completes.
type nextBehavior struct {
	resolvingMissingNode bool
	blocksToRetry        []*types.Block
}

func runningBehavior() nextBehavior {
	return nextBehavior{}
}

func resolvingBehavior(blocksToRetry []*types.Block) nextBehavior {
	return nextBehavior{resolvingMissingNode: true, blocksToRetry: blocksToRetry}
}

// Engine is the block import engine.
type Engine struct {
	*component.ComponentManager
	log         zerolog.Logger
	config      Config
	metrics     module.ImporterMetrics
	ledger      ledger.Ledger
	fetcher     module.BlockFetcher
	ommers      module.OmmerPool
	txPool      module.TransactionPool
	broadcaster module.BlockBroadcaster
	stateNodes  storage.StateNodes
	resolver    *branchResolver

	pendingTipEvents   engine.MessageStore
	pendingBatches     engine.MessageStore
	pendingMinedBlocks engine.MessageStore
	pendingPeerBlocks  engine.MessageStore
	pendingStateNodes  engine.MessageStore
	messageHandler     *engine.MessageHandler

	importDone chan nextBehavior // rendezvous with the import goroutine
}

var _ component.Component = (*Engine)(nil)

// New creates the block import engine.
// No errors are expected during normal operations.
func New(
	log zerolog.Logger,
	metrics module.ImporterMetrics,
	ldg ledger.Ledger,
	fetcher module.BlockFetcher,
	ommers module.OmmerPool,
	txPool module.TransactionPool,
	broadcaster module.BlockBroadcaster,
	stateNodes storage.StateNodes,
	opts ...Opt,
) (*Engine, error) {

	config := DefaultConfig()
	for _, apply := range opts {
		apply(&config)
	}

	e := &Engine{
		log:         log.With().Str("engine", "block_importer").Logger(),
		config:      config,
		metrics:     metrics,
		ledger:      ldg,
		fetcher:     fetcher,
		ommers:      ommers,
		txPool:      txPool,
		broadcaster: broadcaster,
		stateNodes:  stateNodes,
		importDone:  make(chan nextBehavior, 1),
	}
	e.resolver = newBranchResolver(e.log, ldg, ommers, txPool, fetcher, config.BranchResolutionRequestSize)

	err := e.setupMessageHandler()
	if err != nil {
		return nil, fmt.Errorf("could not setup message handler: %w", err)
	}

	e.ComponentManager = component.NewComponentManagerBuilder().
		AddWorker(e.loop).
		Build()

	return e, nil
}

// setupMessageHandler initializes the inbound queues and the MessageHandler
// routing producer events to them.
func (e *Engine) setupMessageHandler() error {
	tipEvents, err := engine.NewFifoMessageStore(defaultTipEventQueueCapacity)
	if err != nil {
		return fmt.Errorf("failed to create queue for tip events: %w", err)
	}
	batches, err := engine.NewFifoMessageStore(defaultBatchQueueCapacity)
	if err != nil {
		return fmt.Errorf("failed to create queue for fetched batches: %w", err)
	}
	minedBlocks, err := engine.NewFifoMessageStore(defaultMinedBlockQueueCapacity)
	if err != nil {
		return fmt.Errorf("failed to create queue for mined blocks: %w", err)
	}
	peerBlocks, err := engine.NewFifoMessageStore(defaultPeerBlockQueueCapacity)
	if err != nil {
		return fmt.Errorf("failed to create queue for peer blocks: %w", err)
	}
	stateNodes, err := engine.NewFifoMessageStore(defaultStateNodeQueueCapacity)
	if err != nil {
		return fmt.Errorf("failed to create queue for state node responses: %w", err)
	}

	e.pendingTipEvents = tipEvents
	e.pendingBatches = batches
	e.pendingMinedBlocks = minedBlocks
	e.pendingPeerBlocks = peerBlocks
	e.pendingStateNodes = stateNodes

	e.messageHandler = engine.NewMessageHandler(
		e.log,
		engine.Pattern{
			Match: func(msg *engine.Message) bool {
				switch msg.Payload.(type) {
				case *messages.OnTip, *messages.NotOnTop:
					return true
				}
				return false
			},
			Store: e.pendingTipEvents,
		},
		engine.Pattern{
			Match: func(msg *engine.Message) bool {
				_, ok := msg.Payload.(*messages.PickedBlocks)
				return ok
			},
			Store: e.pendingBatches,
		},
		engine.Pattern{
			Match: func(msg *engine.Message) bool {
				_, ok := msg.Payload.(*messages.MinedBlock)
				return ok
			},
			Store: e.pendingMinedBlocks,
		},
		engine.Pattern{
			Match: func(msg *engine.Message) bool {
				_, ok := msg.Payload.(*messages.ImportNewBlock)
				return ok
			},
			Store: e.pendingPeerBlocks,
		},
		engine.Pattern{
			Match: func(msg *engine.Message) bool {
				_, ok := msg.Payload.(*messages.FetchedStateNode)
				return ok
			},
			Store: e.pendingStateNodes,
		},
	)

	return nil
}

// Process submits the given event from the producer with the given origin
// for processing in a non-blocking manner.
// Error returns:
//   - IncompatibleInputTypeError if the event has an unexpected type.
func (e *Engine) Process(originID string, event interface{}) error {
	return e.messageHandler.Process(originID, event)
}

// ProcessLocal submits an event originating on the local node.
func (e *Engine) ProcessLocal(event interface{}) error {
	return e.messageHandler.Process("", event)
}

// OnMinedBlock submits a block produced by the local miner.
func (e *Engine) OnMinedBlock(block *types.Block) error {
	return e.ProcessLocal(&messages.MinedBlock{Block: block})
}

// loop is the engine's only worker routine: it owns the importer state and
// serialises all event processing.
func (e *Engine) loop(ctx irrecoverable.SignalerContext, ready component.ReadyFunc) {
	// on (re)start, point the fetcher at the current best block; the previous
	// in-flight import, if any, is lost and will be redelivered
	e.fetcher.Start(e.ledger.BestBlockNumber())
	ready()

	state := initialState()
	resolving := false
	var blocksToRetry []*types.Block

	retry := time.NewTimer(e.config.SyncRetryInterval)
	defer retry.Stop()

	notifier := e.messageHandler.GetNotifier()
	doneSignal := ctx.Done()
	for {
		select {
		case <-doneSignal:
			return

		case behavior := <-e.importDone:
			if behavior.resolvingMissingNode {
				// the import is only suspended: importing stays set while we
				// wait for the node, so nothing else can start an import
				resolving = true
				blocksToRetry = behavior.blocksToRetry
			} else {
				state = state.endImport()
				resolving = false
				blocksToRetry = nil
			}
			// the fetcher's reply to a repair request may already be queued;
			// drain the queues so it is not stranded without a wake-up
			state, resolving, blocksToRetry = e.processAvailableMessages(ctx, state, resolving, blocksToRetry)

		case <-notifier:
			state, resolving, blocksToRetry = e.processAvailableMessages(ctx, state, resolving, blocksToRetry)

		case <-retry.C:
			// self-prompt: nothing has happened for a while, ask for more work
			if !state.importing {
				e.fetcher.PickBlocks(defaultBatchSize)
			}
		}

		// any processed event resets the self-prompt period
		resetTimer(retry, e.config.SyncRetryInterval)
	}
}

// processAvailableMessages drains the inbound queues, processing events in
// priority order, and returns the updated loop state.
func (e *Engine) processAvailableMessages(
	ctx irrecoverable.SignalerContext,
	state ImporterState,
	resolving bool,
	blocksToRetry []*types.Block,
) (ImporterState, bool, []*types.Block) {
	for {
		if util.CheckClosed(ctx.Done()) {
			return state, resolving, blocksToRetry
		}

		msg, ok := e.pendingTipEvents.Get()
		if ok {
			switch msg.Payload.(type) {
			case *messages.OnTip:
				state = state.withOnTip(true)
			case *messages.NotOnTop:
				state = state.withOnTip(false)
			}
			continue
		}

		if resolving {
			msg, ok = e.pendingStateNodes.Get()
			if ok {
				state, resolving, blocksToRetry = e.onFetchedStateNode(
					ctx, msg.Payload.(*messages.FetchedStateNode), state, resolving, blocksToRetry)
				continue
			}
		} else if !state.importing {
			// not repairing and nothing in flight: any queued node response
			// is unsolicited
			msg, ok = e.pendingStateNodes.Get()
			if ok {
				e.log.Debug().Msg("unsolicited state node response, discarding")
				continue
			}
		}
		// while an import is in flight the queue is left untouched: the
		// import may yet announce a repair that consumes the reply

		msg, ok = e.pendingBatches.Get()
		if ok {
			state = e.onPickedBlocks(ctx, msg.Payload.(*messages.PickedBlocks), state)
			continue
		}

		msg, ok = e.pendingMinedBlocks.Get()
		if ok {
			state = e.onMinedBlock(ctx, msg.Payload.(*messages.MinedBlock).Block, state)
			continue
		}

		msg, ok = e.pendingPeerBlocks.Get()
		if ok {
			state = e.onPeerBlock(ctx, msg.Payload.(*messages.ImportNewBlock), state)
			continue
		}

		// all queues empty, back to the main select
		return state, resolving, blocksToRetry
	}
}

// onPickedBlocks begins a batch import for blocks delivered by the fetcher.
func (e *Engine) onPickedBlocks(ctx irrecoverable.SignalerContext, picked *messages.PickedBlocks, state ImporterState) ImporterState {
	blocks := picked.Blocks
	if len(blocks) == 0 {
		return state
	}
	if state.importing {
		// at most one import in flight; the fetcher redelivers on the next
		// pick request
		e.log.Debug().
			Int("count", len(blocks)).
			Msg("batch delivered while import in flight, discarding")
		return state
	}

	e.log.Debug().
		Uint64("first_block_number", blocks[0].NumberU64()).
		Uint64("last_block_number", blocks[len(blocks)-1].NumberU64()).
		Int("count", len(blocks)).
		Msg("importing fetched batch")

	e.launchImport(ctx, func() nextBehavior {
		return e.runBatchImport(ctx, blocks)
	})
	return state.beginImport()
}

// onMinedBlock imports a locally mined block when we are at the chain tip
// and idle; otherwise the block's header is offered to the ommer pool and
// the block is dropped.
func (e *Engine) onMinedBlock(ctx irrecoverable.SignalerContext, block *types.Block, state ImporterState) ImporterState {
	if !state.canImportSingleBlock() {
		e.log.Debug().
			Uint64("block_number", block.NumberU64()).
			Bool("on_tip", state.onTip).
			Bool("importing", state.importing).
			Msg("mined block cannot be imported now, offering header as ommer")
		if err := e.ommers.AddOmmers(block.Header()); err != nil {
			e.log.Warn().Err(err).Msg("could not offer mined block header as ommer")
		}
		return state
	}

	e.launchImport(ctx, func() nextBehavior {
		return e.runSingleBlockImport(ctx, block, false, minedBlockMessages)
	})
	return state.beginImport()
}

// onPeerBlock imports a peer-broadcast block when we are at the chain tip
// and idle; otherwise the block is dropped, since ordinary sync will
// redeliver it.
func (e *Engine) onPeerBlock(ctx irrecoverable.SignalerContext, event *messages.ImportNewBlock, state ImporterState) ImporterState {
	if !state.canImportSingleBlock() {
		e.log.Debug().
			Uint64("block_number", event.Block.NumberU64()).
			Str("peer_id", event.PeerID).
			Msg("dropping peer block, not at tip or import in flight")
		return state
	}

	e.launchImport(ctx, func() nextBehavior {
		return e.runSingleBlockImport(ctx, event.Block, true, peerBlockMessages)
	})
	return state.beginImport()
}

// onFetchedStateNode completes missing-node repair: the node is persisted
// under its keccak256 hash, keyed by the block whose execution faulted, and
// the un-imported tail of the batch is re-imported.
func (e *Engine) onFetchedStateNode(
	ctx irrecoverable.SignalerContext,
	event *messages.FetchedStateNode,
	state ImporterState,
	resolving bool,
	blocksToRetry []*types.Block,
) (ImporterState, bool, []*types.Block) {
	node, ok := event.FirstNode()
	if !ok {
		// keep waiting; the fetcher retries unanswered node requests
		e.log.Warn().Msg("empty state node response, still waiting for node")
		return state, resolving, blocksToRetry
	}

	hash := crypto.Keccak256Hash(node)
	blockNumber := blocksToRetry[0].NumberU64()
	err := e.stateNodes.SaveNode(hash, node, blockNumber)
	if err != nil {
		ctx.Throw(fmt.Errorf("could not save fetched state node %x: %w", hash, err))
	}
	e.log.Info().
		Str("node_hash", hash.Hex()).
		Uint64("block_number", blockNumber).
		Msg("missing state node saved, retrying import")

	// importing is still set from the faulted batch, so no new begin here;
	// branch resolution already happened for these blocks
	retry := blocksToRetry
	e.launchImport(ctx, func() nextBehavior {
		return e.importResolvedBatch(ctx, retry)
	})
	return state, false, nil
}

// launchImport runs the given import on a fresh goroutine and posts the
// resulting behavior back to the worker loop. The import functions throw on
// irrecoverable errors, which terminates the goroutine without a post; the
// component is torn down and restarted by its supervisor in that case.
func (e *Engine) launchImport(ctx irrecoverable.SignalerContext, run func() nextBehavior) {
	go func() {
		behavior := run()
		select {
		case e.importDone <- behavior:
		case <-ctx.Done():
		}
	}()
}

// resetTimer restarts the self-prompt timer, regardless of whether it has
// already fired or was drained.
func resetTimer(timer *time.Timer, period time.Duration) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(period)
}
