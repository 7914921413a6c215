package metrics

import (
	"time"
)

// NoopCollector implements all metrics interfaces with no-ops. Used in tests
// and in node configurations that run without metrics.
type NoopCollector struct{}

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

func (nc *NoopCollector) BlocksImported(count int)                   {}
func (nc *NoopCollector) BestBlockNumber(number uint64)              {}
func (nc *NoopCollector) ChainReorganised(depth int)                 {}
func (nc *NoopCollector) BlockImportFailed()                         {}
func (nc *NoopCollector) MissingStateNode(context string)            {}
func (nc *NoopCollector) BatchImportDuration(duration time.Duration) {}
