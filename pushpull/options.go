package pushpull

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/delaneyj/pushpull"

type config struct {
	logger    *slog.Logger
	onFault   FaultHandler
	scheduler Scheduler
	metrics   *Metrics
	tracer    trace.Tracer
}

func defaultConfig() config {
	return config{
		logger: slog.Default(),
	}
}

// Option configures a ReactiveSystem.
type Option func(*config)

// WithLogger sets the logger recovered faults are written to.
// If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// WithFaultHandler registers a callback that receives every fault the system
// recovers from. The handler runs synchronously inside the failing run.
func WithFaultHandler(fn FaultHandler) Option {
	return func(c *config) {
		c.onFault = fn
	}
}

// WithScheduler replaces the built-in microtask queue used for flushes
// requested outside a batch.
func WithScheduler(s Scheduler) Option {
	return func(c *config) {
		c.scheduler = s
	}
}

// WithMetrics reports graph activity to m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithTracer records one span per flush pass on t.
func WithTracer(t trace.Tracer) Option {
	return func(c *config) {
		c.tracer = t
	}
}

// WithTracing records flush spans on the globally registered tracer provider.
func WithTracing() Option {
	return func(c *config) {
		c.tracer = otel.Tracer(tracerName)
	}
}
