package gqltrace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jonwraymond/graphqltrace/graphql"
	"github.com/jonwraymond/graphqltrace/graphql/graphqltest"
	"github.com/jonwraymond/graphqltrace/observe"
)

type harness struct {
	lib   *graphqltest.Library
	integ *Integration
	spans *tracetest.SpanRecorder
}

// newHarness builds an unpatched integration over a fake library declaring v.
func newHarness(t *testing.T, v string, cfg Config, opts ...Option) *harness {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	lib := graphqltest.New(v)

	opts = append([]Option{WithTracer(observe.NewTracer(tp.Tracer("gqltrace-test")))}, opts...)
	integ, err := New(lib.Library, cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = integ.Unpatch() })

	return &harness{lib: lib, integ: integ, spans: recorder}
}

func (h *harness) patch(t *testing.T) *harness {
	t.Helper()
	require.NoError(t, h.integ.Patch())
	return h
}

// span returns the single ended span called name.
func (h *harness) span(t *testing.T, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	var found []sdktrace.ReadOnlySpan
	for _, s := range h.spans.Ended() {
		if s.Name() == name {
			found = append(found, s)
		}
	}
	require.Len(t, found, 1, "spans named %s", name)
	return found[0]
}

func (h *harness) names() []string {
	var out []string
	for _, s := range h.spans.Ended() {
		out = append(out, s.Name())
	}
	return out
}

func attrs(s sdktrace.ReadOnlySpan) map[string]attribute.Value {
	m := make(map[string]attribute.Value)
	for _, a := range s.Attributes() {
		m[string(a.Key)] = a.Value
	}
	return m
}

func resolver(v any) graphql.Resolver {
	return func(ctx context.Context, root any, info *graphql.ResolveInfo, args map[string]any) (any, error) {
		return v, nil
	}
}

func userSchema() *graphqltest.Schema {
	return &graphqltest.Schema{Resolvers: map[string]graphql.Resolver{
		"user": resolver(map[string]any{"name": "ada"}),
		"name": func(ctx context.Context, root any, info *graphql.ResolveInfo, args map[string]any) (any, error) {
			return root.(map[string]any)["name"], nil
		},
		"fail": func(ctx context.Context, root any, info *graphql.ResolveInfo, args map[string]any) (any, error) {
			return nil, errors.New("resolver failed")
		},
	}}
}
