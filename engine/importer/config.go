package importer

import (
	"time"
)

// defaultBatchSize is the number of blocks requested from the fetcher per
// batch.
const defaultBatchSize uint = 50

// Config holds the tunable parameters of the block importer.
type Config struct {
	// SyncRetryInterval is the self-prompt period: when no event arrives for
	// this long, the importer asks the fetcher for the next batch.
	SyncRetryInterval time.Duration

	// BranchResolutionRequestSize is how far below an unknown branch's first
	// block the fetcher is rewound, so the branch can be re-fetched with
	// enough history to classify it.
	BranchResolutionRequestSize uint64

	// RedownloadMissingStateNodes enables the missing-node repair path. When
	// disabled, a missing trie node during import is irrecoverable.
	RedownloadMissingStateNodes bool
}

func DefaultConfig() Config {
	return Config{
		SyncRetryInterval:           5 * time.Second,
		BranchResolutionRequestSize: 12,
		RedownloadMissingStateNodes: true,
	}
}

// Opt is a functional option for the importer Config.
type Opt func(*Config)

func WithSyncRetryInterval(interval time.Duration) Opt {
	return func(c *Config) {
		c.SyncRetryInterval = interval
	}
}

func WithBranchResolutionRequestSize(size uint64) Opt {
	return func(c *Config) {
		c.BranchResolutionRequestSize = size
	}
}

func WithRedownloadMissingStateNodes(enabled bool) Opt {
	return func(c *Config) {
		c.RedownloadMissingStateNodes = enabled
	}
}
