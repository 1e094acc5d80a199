package gqltrace

import (
	"context"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/graphqltrace/callargs"
	"github.com/jonwraymond/graphqltrace/graphql"
)

func passThrough(ctx context.Context, next graphql.Resolver, root any, info *graphql.ResolveInfo, args map[string]any) (any, error) {
	return next(ctx, root, info, args)
}

func tracing(ctx context.Context, next graphql.Resolver, root any, info *graphql.ResolveInfo, args map[string]any) (any, error) {
	return next(ctx, root, info, args)
}

func pointers(mws []graphql.Middleware) []uintptr {
	out := make([]uintptr, len(mws))
	for i, mw := range mws {
		out[i] = reflect.ValueOf(mw).Pointer()
	}
	return out
}

func TestInjectMiddleware(t *testing.T) {
	existing := []graphql.Middleware{passThrough}
	positional := make([]any, 10)
	positional[9] = existing

	tests := []struct {
		name       string
		args       []any
		kwargs     map[string]any
		slot       int
		wantForm   callargs.Form
		wantPtrs   []uintptr
		wantArgLen int
	}{
		{
			name:       "absent becomes keyword",
			args:       []any{"schema", "doc"},
			slot:       9,
			wantForm:   callargs.Keyword,
			wantPtrs:   pointers([]graphql.Middleware{tracing}),
			wantArgLen: 2,
		},
		{
			name:       "nil keyword",
			args:       []any{"schema"},
			kwargs:     map[string]any{graphql.MiddlewareArg: nil},
			slot:       8,
			wantForm:   callargs.Keyword,
			wantPtrs:   pointers([]graphql.Middleware{tracing}),
			wantArgLen: 1,
		},
		{
			name:       "positional list",
			args:       positional,
			slot:       9,
			wantForm:   callargs.Positional,
			wantPtrs:   pointers([]graphql.Middleware{passThrough, tracing}),
			wantArgLen: 10,
		},
		{
			name:       "keyword manager unwrapped",
			kwargs:     map[string]any{graphql.MiddlewareArg: graphql.NewMiddlewareManager(passThrough, passThrough)},
			slot:       8,
			wantForm:   callargs.Keyword,
			wantPtrs:   pointers([]graphql.Middleware{passThrough, passThrough, tracing}),
			wantArgLen: 0,
		},
		{
			name:       "nil manager",
			kwargs:     map[string]any{graphql.MiddlewareArg: (*graphql.MiddlewareManager)(nil)},
			slot:       8,
			wantForm:   callargs.Keyword,
			wantPtrs:   pointers([]graphql.Middleware{tracing}),
			wantArgLen: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args, kwargs, err := InjectMiddleware(tc.args, tc.kwargs, tc.slot, tracing)
			require.NoError(t, err)
			require.Len(t, args, tc.wantArgLen)

			loc := callargs.Locate(args, kwargs, callargs.Slot{Index: tc.slot, Name: graphql.MiddlewareArg})
			require.Equal(t, tc.wantForm, loc.Form)

			v, err := callargs.Get(args, kwargs, tc.slot, graphql.MiddlewareArg)
			require.NoError(t, err)
			list, ok := v.([]graphql.Middleware)
			require.True(t, ok, "got %T", v)
			if diff := cmp.Diff(tc.wantPtrs, pointers(list)); diff != "" {
				t.Errorf("middleware list mismatch (-want +got):\n%s", diff)
			}
		})
	}

	require.Len(t, existing, 1, "input list must not be extended")
	require.Len(t, positional[9], 1)
}

func TestInjectMiddleware_DoesNotMutateKeywords(t *testing.T) {
	kwargs := map[string]any{"document": "doc"}

	_, out, err := InjectMiddleware(nil, kwargs, 8, tracing)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Len(t, kwargs, 1)
}

func TestInjectMiddleware_Unsupported(t *testing.T) {
	args := []any{"schema"}
	kwargs := map[string]any{graphql.MiddlewareArg: 42}

	gotArgs, gotKwargs, err := InjectMiddleware(args, kwargs, 8, tracing)
	require.ErrorIs(t, err, ErrUnsupportedMiddleware)
	require.Equal(t, args, gotArgs)
	require.Equal(t, kwargs, gotKwargs)
}

// TestInjectMiddleware_Ordering verifies the injected middleware runs last.
func TestInjectMiddleware_Ordering(t *testing.T) {
	var calls []string
	mark := func(label string) graphql.Middleware {
		return func(ctx context.Context, next graphql.Resolver, root any, info *graphql.ResolveInfo, args map[string]any) (any, error) {
			calls = append(calls, label)
			return next(ctx, root, info, args)
		}
	}

	_, kwargs, err := InjectMiddleware(nil, map[string]any{
		graphql.MiddlewareArg: []graphql.Middleware{mark("a"), mark("b")},
	}, 8, mark("trace"))
	require.NoError(t, err)

	chained := graphql.Chain(resolver("v"), kwargs[graphql.MiddlewareArg].([]graphql.Middleware)...)
	got, err := chained(context.Background(), nil, &graphql.ResolveInfo{FieldName: "f"}, nil)
	require.NoError(t, err)
	require.Equal(t, "v", got)
	require.Equal(t, []string{"a", "b", "trace"}, calls)
}
