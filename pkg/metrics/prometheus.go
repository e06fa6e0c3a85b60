// Package metrics provides Prometheus metrics for the warchest state store.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the state store and the
// pipeline components built on it.
type Manager struct {
	namespace string
	subsystem string
	enabled   bool
	registry  *prometheus.Registry

	// Document store metrics
	documentLoads   *prometheus.CounterVec
	documentSaves   *prometheus.CounterVec
	documentCorrupt *prometheus.CounterVec
	lockWait        prometheus.Histogram
	lockTimeouts    prometheus.Counter

	// Pipeline metrics
	opportunitiesAdded prometheus.Counter
	opportunityMoves   *prometheus.CounterVec
	pipelineCount      *prometheus.GaugeVec
	pipelineValue      prometheus.Gauge

	// Feed metrics
	feedEntries prometheus.Counter
	feedTrimmed prometheus.Counter

	// Ledger metrics
	incomeRecorded *prometheus.CounterVec
	balance        prometheus.Gauge
}

// Global metrics manager instance backed by a private registry, so the
// default Go collectors never leak into the textfile export.
var globalManager *Manager //nolint:gochecknoglobals // intentional singleton

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional registry singleton

func init() { //nolint:gochecknoinits // intentional global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "warchest",
		subsystem: "state",
		enabled:   true,
		registry:  prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.documentLoads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "document_loads_total",
		Help:      "Total number of document loads, by document key",
	}, []string{"document"})

	m.documentSaves = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "document_saves_total",
		Help:      "Total number of document saves, by document key",
	}, []string{"document"})

	m.documentCorrupt = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "document_corrupt_total",
		Help:      "Times a document failed to parse and was degraded to the empty default",
	}, []string{"document"})

	m.lockWait = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lock_wait_seconds",
		Help:      "Histogram of time spent waiting for document locks",
		Buckets:   prometheus.DefBuckets,
	})

	m.lockTimeouts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lock_timeouts_total",
		Help:      "Total number of lock acquisitions that timed out",
	})

	m.opportunitiesAdded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "pipeline",
		Name:      "opportunities_added_total",
		Help:      "Total number of opportunities added to the detected stage",
	})

	m.opportunityMoves = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "pipeline",
		Name:      "opportunity_moves_total",
		Help:      "Total number of stage transfers, by destination stage",
	}, []string{"stage"})

	m.pipelineCount = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "pipeline",
		Name:      "opportunities",
		Help:      "Opportunities currently held in each retained stage",
	}, []string{"stage"})

	m.pipelineValue = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "pipeline",
		Name:      "potential_value",
		Help:      "Sum of potential value across all retained stages",
	})

	m.feedEntries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "feed",
		Name:      "entries_total",
		Help:      "Total number of activity feed entries written",
	})

	m.feedTrimmed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "feed",
		Name:      "entries_trimmed_total",
		Help:      "Total number of feed entries evicted by the size cap",
	})

	m.incomeRecorded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ledger",
		Name:      "income_total",
		Help:      "Cumulative income recorded, by category",
	}, []string{"category"})

	m.balance = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "ledger",
		Name:      "balance",
		Help:      "Last observed balance",
	})
}

// Package-level helpers operating on the global manager.

// RecordDocumentLoad counts a document load.
func RecordDocumentLoad(document string) {
	if globalManager.enabled {
		globalManager.documentLoads.WithLabelValues(document).Inc()
	}
}

// RecordDocumentSave counts a document save.
func RecordDocumentSave(document string) {
	if globalManager.enabled {
		globalManager.documentSaves.WithLabelValues(document).Inc()
	}
}

// RecordCorruptDocument counts a parse failure degraded to the empty default.
func RecordCorruptDocument(document string) {
	if globalManager.enabled {
		globalManager.documentCorrupt.WithLabelValues(document).Inc()
	}
}

// RecordLockWait observes the time spent acquiring a document lock.
func RecordLockWait(seconds float64) {
	if globalManager.enabled {
		globalManager.lockWait.Observe(seconds)
	}
}

// RecordLockTimeout counts a lock acquisition that gave up.
func RecordLockTimeout() {
	if globalManager.enabled {
		globalManager.lockTimeouts.Inc()
	}
}

// RecordOpportunityAdded counts a new opportunity.
func RecordOpportunityAdded() {
	if globalManager.enabled {
		globalManager.opportunitiesAdded.Inc()
	}
}

// RecordOpportunityMove counts a stage transfer to the given stage.
func RecordOpportunityMove(stage string) {
	if globalManager.enabled {
		globalManager.opportunityMoves.WithLabelValues(stage).Inc()
	}
}

// UpdatePipelineCount sets the current size of a stage list.
func UpdatePipelineCount(stage string, count int) {
	if globalManager.enabled {
		globalManager.pipelineCount.WithLabelValues(stage).Set(float64(count))
	}
}

// UpdatePipelineValue sets the total potential value gauge.
func UpdatePipelineValue(value float64) {
	if globalManager.enabled {
		globalManager.pipelineValue.Set(value)
	}
}

// RecordFeedEntry counts a feed append.
func RecordFeedEntry() {
	if globalManager.enabled {
		globalManager.feedEntries.Inc()
	}
}

// RecordFeedTrimmed counts entries evicted by the cap.
func RecordFeedTrimmed(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.feedTrimmed.Add(float64(n))
	}
}

// RecordIncome counts income recorded for a category.
func RecordIncome(category string, amount float64) {
	if globalManager.enabled {
		globalManager.incomeRecorded.WithLabelValues(category).Add(amount)
	}
}

// UpdateBalance sets the balance gauge.
func UpdateBalance(balance float64) {
	if globalManager.enabled {
		globalManager.balance.Set(balance)
	}
}

// Registry exposes the global registry, mainly for the textfile export
// and for tests that want to gather.
func Registry() *prometheus.Registry {
	return customRegistry
}
