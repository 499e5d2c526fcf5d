package pushpull

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// StartBatch defers effect execution until the matching EndBatch.
func (rs *ReactiveSystem) StartBatch() {
	rs.batchDepth++
}

// EndBatch closes a batch. Closing the outermost batch flushes pending
// effects before returning.
func (rs *ReactiveSystem) EndBatch() {
	if rs.batchDepth == 0 {
		panic("pushpull: EndBatch called without StartBatch")
	}
	rs.batchDepth--
	if rs.batchDepth == 0 {
		rs.flush()
	}
}

// Batch runs fn with effect execution deferred. However many writes fn makes,
// each affected effect runs at most once, synchronously, when the outermost
// batch returns.
func (rs *ReactiveSystem) Batch(fn func()) {
	rs.StartBatch()
	defer rs.EndBatch()
	fn()
}

// FlushEffects runs the pending flush now instead of waiting for the
// scheduler. With the built-in microtask queue it also runs the flushes
// requested by effects during that pass, so the graph is settled on return.
func (rs *ReactiveSystem) FlushEffects() {
	rs.flush()
	if rs.microtasks != nil {
		rs.microtasks.Drain()
	}
}

func (rs *ReactiveSystem) enqueue(e *effectNode) {
	rs.pending.Add(e)
	if rs.batchDepth == 0 {
		rs.scheduleFlush()
	}
}

func (rs *ReactiveSystem) scheduleFlush() {
	if rs.flushScheduled {
		return
	}
	rs.flushScheduled = true
	rs.scheduler.Schedule(rs.flush)
}

// flush runs the effects pending when it starts, in the order they were
// first queued. Effects queued while it runs wait for a later flush.
func (rs *ReactiveSystem) flush() {
	rs.flushScheduled = false
	if rs.pending.Empty() {
		return
	}
	queued := rs.pending.Values()
	rs.pending.Clear()

	start := time.Now()
	end := rs.startFlushSpan(len(queued))
	defer end()

	for _, v := range queued {
		e := v.(*effectNode)
		if e.disposed {
			continue
		}
		if !e.shouldRun() {
			if e.state == stateCheck {
				e.state = stateClean
			}
			rs.metrics.effectSkipped()
			continue
		}
		rs.runEffect(e)
	}
	rs.metrics.flushed(len(queued), time.Since(start))
}

func (rs *ReactiveSystem) startFlushSpan(n int) func() {
	if rs.tracer == nil {
		return func() {}
	}
	_, span := rs.tracer.Start(context.Background(), "pushpull.flush",
		trace.WithAttributes(attribute.Int("pushpull.effects", n)),
	)
	prev := rs.flushSpan
	rs.flushSpan = span
	return func() {
		rs.flushSpan = prev
		span.End()
	}
}
