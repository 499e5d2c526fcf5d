package pushpull_test

import (
	"context"
	"testing"

	"github.com/delaneyj/pushpull/pushpull"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type recordedSpan struct {
	noop.Span
	name   string
	attrs  []attribute.KeyValue
	errs   []error
	status codes.Code
	ended  bool
}

func (s *recordedSpan) RecordError(err error, _ ...trace.EventOption) { s.errs = append(s.errs, err) }
func (s *recordedSpan) SetStatus(code codes.Code, _ string) { s.status = code }
func (s *recordedSpan) End(...trace.SpanEndOption) { s.ended = true }

type recordingTracer struct {
	noop.Tracer
	spans []*recordedSpan
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordedSpan{name: name, attrs: cfg.Attributes()}
	r.spans = append(r.spans, s)
	return trace.ContextWithSpan(ctx, s), s
}

func TestFlushSpans(t *testing.T) {
	tracer := &recordingTracer{}
	rs := pushpull.NewReactiveSystem(
		pushpull.WithTracer(tracer),
		pushpull.WithFaultHandler(func(*pushpull.Fault) {}),
	)
	a := pushpull.Signal(rs, 0)
	pushpull.Effect(rs, func() pushpull.Cleanup {
		if a.Value() == 2 {
			panic("two")
		}
		return nil
	})
	pushpull.Effect(rs, func() pushpull.Cleanup {
		a.Value()
		return nil
	})

	a.SetValue(1)
	rs.FlushEffects()
	a.SetValue(2)
	rs.FlushEffects()

	if assert.Len(t, tracer.spans, 2) {
		first, second := tracer.spans[0], tracer.spans[1]
		assert.Equal(t, "pushpull.flush", first.name)
		assert.Contains(t, first.attrs, attribute.Int("pushpull.effects", 2))
		assert.True(t, first.ended)
		assert.Empty(t, first.errs)

		assert.Len(t, second.errs, 1)
		assert.Equal(t, codes.Error, second.status)
	}
}
