package observe

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Span attribute keys.
const (
	ResourceKey            = "resource.name"
	ServiceKey             = "span.service"
	SpanTypeKey            = "span.type"
	MeasuredKey            = "span.measured"
	AnalyticsSampleRateKey = "analytics.sample_rate"
	ErrorKey               = "error"
	ErrorMsgKey            = "error.message"
	ErrorTypeKey           = "error.type"
	ErrorStackKey          = "error.stack"
)

// SpanMeta describes a span to start.
type SpanMeta struct {
	Name     string         // operation name, e.g. graphql.execute
	Resource string         // what the operation acted on; defaults to Name
	Service  string         // optional service override
	Type     string         // span type, e.g. graphql
	Kind     trace.SpanKind // defaults to internal
	Tags     map[string]any // extra attributes set at start
}

// ResourceName returns the resource, falling back to the span name.
func (m SpanMeta) ResourceName() string {
	if m.Resource != "" {
		return m.Resource
	}
	return m.Name
}

// Span is one timed operation.
//
// Contract:
// - Concurrency: a span is used by the goroutine that started it.
// - Errors: methods are best-effort and must not panic; End may be called once.
type Span interface {
	// SetTag sets an attribute on the span.
	SetTag(key string, value any)

	// MarkError flags the span as failed with the given message, type and stack.
	MarkError(message, errType, stack string)

	// End closes the span.
	End()
}

// Tracer starts spans.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: the returned context carries the new span so nested spans
//   become its children.
type Tracer interface {
	StartSpan(ctx context.Context, meta SpanMeta) (context.Context, Span)
}

// RecordError marks span with err's message and dynamic type.
func RecordError(span Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.MarkError(err.Error(), fmt.Sprintf("%T", err), "")
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer wraps an OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	if t == nil {
		return NopTracer()
	}
	return &tracerImpl{tracer: t}
}

// StartSpan starts a span carrying meta as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta SpanMeta) (context.Context, Span) {
	attrs := []attribute.KeyValue{
		attribute.String(ResourceKey, meta.ResourceName()),
	}
	if meta.Service != "" {
		attrs = append(attrs, attribute.String(ServiceKey, meta.Service))
	}
	if meta.Type != "" {
		attrs = append(attrs, attribute.String(SpanTypeKey, meta.Type))
	}
	for k, v := range meta.Tags {
		attrs = append(attrs, toAttribute(k, v))
	}

	kind := meta.Kind
	if kind == trace.SpanKindUnspecified {
		kind = trace.SpanKindInternal
	}

	ctx, span := t.tracer.Start(ctx, meta.Name,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(kind),
	)
	return ctx, &otelSpan{span: span}
}

type otelSpan struct {
	span    trace.Span
	errored bool
}

func (s *otelSpan) SetTag(key string, value any) {
	s.span.SetAttributes(toAttribute(key, value))
}

func (s *otelSpan) MarkError(message, errType, stack string) {
	s.errored = true
	s.span.SetStatus(codes.Error, message)
	s.span.SetAttributes(
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorMsgKey, message),
		attribute.String(ErrorTypeKey, errType),
		attribute.String(ErrorStackKey, stack),
	)
	s.span.AddEvent("exception", trace.WithAttributes(
		semconv.ExceptionTypeKey.String(errType),
		semconv.ExceptionMessageKey.String(message),
	))
}

func (s *otelSpan) End() {
	if !s.errored {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}

type noopTracer struct {
	noop trace.Tracer
}

// NopTracer returns a tracer whose spans record nothing.
func NopTracer() Tracer {
	return &noopTracer{noop: tracenoop.NewTracerProvider().Tracer("noop")}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta SpanMeta) (context.Context, Span) {
	ctx, span := t.noop.Start(ctx, meta.Name)
	return ctx, noopSpan{span: span}
}

type noopSpan struct {
	span trace.Span
}

func (noopSpan) SetTag(string, any)               {}
func (noopSpan) MarkError(string, string, string) {}
func (s noopSpan) End()                           { s.span.End() }
