package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespaceChain    = "mantis"
	subsystemImporter = "block_importer"
)

// ImporterCollector collects prometheus metrics for the block importer.
type ImporterCollector struct {
	importedBlocks      prometheus.Counter
	bestBlockNumber     prometheus.Gauge
	reorganisations     prometheus.Counter
	reorganisationDepth prometheus.Histogram
	importFailures      prometheus.Counter
	missingStateNodes   *prometheus.CounterVec
	batchImportDuration prometheus.Summary
}

func NewImporterCollector() *ImporterCollector {

	ic := &ImporterCollector{

		importedBlocks: promauto.NewCounter(prometheus.CounterOpts{
			Name:      "imported_blocks_total",
			Namespace: namespaceChain,
			Subsystem: subsystemImporter,
			Help:      "the number of blocks adopted onto the canonical chain",
		}),

		bestBlockNumber: promauto.NewGauge(prometheus.GaugeOpts{
			Name:      "best_block_number",
			Namespace: namespaceChain,
			Subsystem: subsystemImporter,
			Help:      "the number of the current best canonical block",
		}),

		reorganisations: promauto.NewCounter(prometheus.CounterOpts{
			Name:      "chain_reorganisations_total",
			Namespace: namespaceChain,
			Subsystem: subsystemImporter,
			Help:      "the number of chain reorganisations performed",
		}),

		reorganisationDepth: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:      "chain_reorganisation_depth",
			Namespace: namespaceChain,
			Subsystem: subsystemImporter,
			Help:      "the number of canonical blocks displaced per reorganisation",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
		}),

		importFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name:      "import_failures_total",
			Namespace: namespaceChain,
			Subsystem: subsystemImporter,
			Help:      "the number of blocks that failed validation or execution",
		}),

		missingStateNodes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:      "missing_state_nodes_total",
			Namespace: namespaceChain,
			Subsystem: subsystemImporter,
			Help:      "the number of missing trie node faults, by import context",
		}, []string{LabelContext}),

		batchImportDuration: promauto.NewSummary(prometheus.SummaryOpts{
			Name:      "batch_import_duration_seconds",
			Namespace: namespaceChain,
			Subsystem: subsystemImporter,
			Help:      "the wall-clock duration of batch imports",
			Objectives: map[float64]float64{
				0.5: 0.05, 0.9: 0.01, 0.99: 0.001,
			},
		}),
	}

	return ic
}

func (ic *ImporterCollector) BlocksImported(count int) {
	ic.importedBlocks.Add(float64(count))
}

func (ic *ImporterCollector) BestBlockNumber(number uint64) {
	ic.bestBlockNumber.Set(float64(number))
}

func (ic *ImporterCollector) ChainReorganised(depth int) {
	ic.reorganisations.Inc()
	ic.reorganisationDepth.Observe(float64(depth))
}

func (ic *ImporterCollector) BlockImportFailed() {
	ic.importFailures.Inc()
}

func (ic *ImporterCollector) MissingStateNode(context string) {
	ic.missingStateNodes.With(prometheus.Labels{LabelContext: context}).Inc()
}

func (ic *ImporterCollector) BatchImportDuration(duration time.Duration) {
	ic.batchImportDuration.Observe(duration.Seconds())
}
