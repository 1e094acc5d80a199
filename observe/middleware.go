package observe

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"
)

// StageFunc is one call of an instrumented stage. It receives the context
// carrying the stage span.
type StageFunc func(ctx context.Context) (any, error)

// Annotator inspects a stage result before its span closes and reports
// whether the result described a failure.
type Annotator func(span Span, result any) bool

// Middleware runs stage calls inside spans and records metrics and logs
// for them.
//
// Contract:
//   - Concurrency: Run is safe for concurrent use.
//   - Context: the span is propagated to fn through ctx.
//   - Errors: results, errors and panics from fn are passed through unchanged;
//     the span is always closed first.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware. Nil components are replaced by no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = NopTracer()
	}
	if metrics == nil {
		metrics = NopMetrics()
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{tracer: tracer, metrics: metrics, logger: logger}
}

// Run starts a span for meta, calls fn, lets annotate inspect the result and
// closes the span.
func (m *Middleware) Run(ctx context.Context, meta SpanMeta, fn StageFunc, annotate Annotator) (result any, err error) {
	if meta.Name == "" {
		return nil, ErrMissingSpanName
	}

	ctx, span := m.tracer.StartSpan(ctx, meta)
	start := time.Now()
	failed := false

	defer func() {
		if r := recover(); r != nil {
			span.MarkError(fmt.Sprint(r), fmt.Sprintf("%T", r), string(debug.Stack()))
			m.finish(ctx, span, meta, start, true)
			panic(r)
		}
		m.finish(ctx, span, meta, start, failed || err != nil)
	}()

	result, err = fn(ctx)
	if err != nil {
		RecordError(span, err)
		return result, err
	}
	if annotate != nil {
		failed = annotate(span, result)
	}
	return result, nil
}

func (m *Middleware) finish(ctx context.Context, span Span, meta SpanMeta, start time.Time, failed bool) {
	span.End()
	duration := time.Since(start)
	m.metrics.RecordStage(ctx, meta, duration, failed)

	// The resource can carry query text with inline literals, so only the
	// span name is logged.
	m.logger.Debug(ctx, "graphql stage completed",
		Field{Key: "span", Value: meta.Name},
		Field{Key: "duration_ms", Value: float64(duration) / float64(time.Millisecond)},
		Field{Key: "failed", Value: failed},
	)
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
