package pushpull

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// ReactiveSystem owns one dependency graph: the currently tracking
// subscriber, the batch depth and the set of effects waiting for a flush.
// A system is not safe for concurrent use; create one per goroutine (see
// Default) or drive it through a Loop.
type ReactiveSystem struct {
	ids uint64

	activeSub   subscriber
	pauseStack  []subscriber
	activeOwner *effectNode
	activeScope *Scope

	batchDepth     int
	pending        *orderedSet // of *effectNode, in first-notified order
	flushScheduled bool

	scheduler  Scheduler
	microtasks *MicrotaskQueue // nil when a custom scheduler is configured

	logger    *slog.Logger
	onFault   FaultHandler
	metrics   *Metrics
	tracer    trace.Tracer
	flushSpan trace.Span
}

// NewReactiveSystem creates an empty graph. Without WithScheduler, flushes
// requested outside a batch are queued on a built-in microtask queue that
// runs on Tick or FlushEffects.
func NewReactiveSystem(opts ...Option) *ReactiveSystem {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	rs := &ReactiveSystem{
		pending:   newOrderedSet(),
		scheduler: cfg.scheduler,
		logger:    cfg.logger,
		onFault:   cfg.onFault,
		metrics:   cfg.metrics,
		tracer:    cfg.tracer,
	}
	if rs.scheduler == nil {
		rs.microtasks = NewMicrotaskQueue()
		rs.scheduler = rs.microtasks
	}
	return rs
}

// track records a read of dep by the active subscriber, if any.
func (rs *ReactiveSystem) track(dep dependency) {
	if rs.activeSub != nil {
		link(dep, rs.activeSub)
	}
}

// Tick drains the built-in microtask queue and returns how many tasks ran.
// It returns 0 when the system was created with a custom scheduler.
func (rs *ReactiveSystem) Tick() int {
	if rs.microtasks == nil {
		return 0
	}
	return rs.microtasks.Drain()
}

// Pending returns the number of effects waiting for the next flush.
func (rs *ReactiveSystem) Pending() int {
	return rs.pending.Size()
}
