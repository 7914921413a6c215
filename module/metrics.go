package module

import (
	"time"
)

const (
	// MissingNodeContextBatch marks a missing state node observed during a
	// batch import.
	MissingNodeContextBatch = "batch"
	// MissingNodeContextSingle marks a missing state node observed during a
	// single-block import. The single-block path does not repair the node
	// itself, so a sustained divergence between the two contexts points at
	// header sync not re-requesting.
	MissingNodeContextSingle = "single"
)

// ImporterMetrics collects metrics about the block importer.
type ImporterMetrics interface {
	// BlocksImported records count blocks adopted onto the canonical chain.
	BlocksImported(count int)

	// BestBlockNumber records the number of the current best block.
	BestBlockNumber(number uint64)

	// ChainReorganised records a reorganisation displacing depth blocks.
	ChainReorganised(depth int)

	// BlockImportFailed records a block that failed validation or execution.
	BlockImportFailed()

	// MissingStateNode records a missing trie node fault in the given
	// context (MissingNodeContextBatch or MissingNodeContextSingle).
	MissingStateNode(context string)

	// BatchImportDuration records the wall-clock duration of one batch
	// import.
	BatchImportDuration(duration time.Duration)
}
