package pushpull

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors created by NewMetrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "pushpull").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for flush duration in seconds.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures NewMetrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the flush duration buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "pushpull",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics counts graph activity. Several systems may share one Metrics.
// A nil *Metrics records nothing.
type Metrics struct {
	signalWrites  prometheus.Counter
	recomputes    prometheus.Counter
	effectRuns    prometheus.Counter
	effectSkips   prometheus.Counter
	flushes       prometheus.Counter
	flushSize     prometheus.Histogram
	flushDuration prometheus.Histogram
	faults        *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors. Registering twice on the
// same registry panics, as with any promauto collector.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		signalWrites: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "signal_writes_total",
			Help:        "Signal writes that changed the stored value.",
			ConstLabels: cfg.ConstLabels,
		}),
		recomputes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "computed_recomputes_total",
			Help:        "Computed getter invocations.",
			ConstLabels: cfg.ConstLabels,
		}),
		effectRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Effect body invocations.",
			ConstLabels: cfg.ConstLabels,
		}),
		effectSkips: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "effect_skips_total",
			Help:        "Queued effects that did not run because no dependency changed.",
			ConstLabels: cfg.ConstLabels,
		}),
		flushes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "flushes_total",
			Help:        "Flush passes that found pending effects.",
			ConstLabels: cfg.ConstLabels,
		}),
		flushSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "flush_effects",
			Help:        "Pending effects per flush pass.",
			Buckets:     prometheus.ExponentialBuckets(1, 4, 8),
			ConstLabels: cfg.ConstLabels,
		}),
		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "flush_duration_seconds",
			Help:        "Wall time of a flush pass.",
			Buckets:     cfg.Buckets,
			ConstLabels: cfg.ConstLabels,
		}),
		faults: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "faults_total",
			Help:        "Recovered panics by kind.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"kind"}),
	}
}

func (m *Metrics) signalWritten() {
	if m == nil {
		return
	}
	m.signalWrites.Inc()
}

func (m *Metrics) recomputed() {
	if m == nil {
		return
	}
	m.recomputes.Inc()
}

func (m *Metrics) effectRan() {
	if m == nil {
		return
	}
	m.effectRuns.Inc()
}

func (m *Metrics) effectSkipped() {
	if m == nil {
		return
	}
	m.effectSkips.Inc()
}

func (m *Metrics) flushed(n int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.flushes.Inc()
	m.flushSize.Observe(float64(n))
	m.flushDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) faulted(kind FaultKind) {
	if m == nil {
		return
	}
	m.faults.WithLabelValues(kind.String()).Inc()
}
