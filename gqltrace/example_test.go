package gqltrace_test

import (
	"context"
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jonwraymond/graphqltrace/gqltrace"
	"github.com/jonwraymond/graphqltrace/graphql"
	"github.com/jonwraymond/graphqltrace/graphql/graphqltest"
	"github.com/jonwraymond/graphqltrace/observe"
)

func Example() {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	lib := graphqltest.New("3.2.0")
	cfg := gqltrace.DefaultConfig()
	cfg.ResolversEnabled = true

	integ, err := gqltrace.New(lib.Library, cfg, gqltrace.WithTracer(observe.NewTracer(tp.Tracer("example"))))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if err := integ.Patch(); err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer func() {
		_ = integ.Unpatch()
	}()

	schema := &graphqltest.Schema{Resolvers: map[string]graphql.Resolver{
		"hello": func(context.Context, any, *graphql.ResolveInfo, map[string]any) (any, error) {
			return "world", nil
		},
	}}
	res, _ := lib.Graphql(context.Background(), schema, "{\n  hello\n}", nil)
	fmt.Println(res.(*graphql.ExecutionResult).Data["hello"])

	for _, s := range recorder.Ended() {
		fmt.Println(s.Name())
	}
	// Output:
	// world
	// graphql.parse
	// graphql.validate
	// graphql.resolve
	// graphql.execute
	// graphql.query
}

func ExampleResolvePartition() {
	for _, v := range []string{"2.3.1", "3.1.0", "3.2.0rc1"} {
		p := gqltrace.ResolvePartition(v)
		fmt.Printf("%s: %s, middleware at %d\n", v, p.Era, p.MiddlewareSlot)
	}
	// Output:
	// 2.3.1: legacy, middleware at 8
	// 3.1.0: current, middleware at 8
	// 3.2.0rc1: current, middleware at 9
}

func ExampleInjectMiddleware() {
	var calls []string
	mark := func(label string) graphql.Middleware {
		return func(ctx context.Context, next graphql.Resolver, root any, info *graphql.ResolveInfo, args map[string]any) (any, error) {
			calls = append(calls, label)
			return next(ctx, root, info, args)
		}
	}

	args := []any{"schema", "document"}
	kwargs := map[string]any{graphql.MiddlewareArg: graphql.NewMiddlewareManager(mark("auth"))}

	_, kwargs, err := gqltrace.InjectMiddleware(args, kwargs, 9, mark("trace"))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	mws := kwargs[graphql.MiddlewareArg].([]graphql.Middleware)
	resolve := graphql.Chain(func(context.Context, any, *graphql.ResolveInfo, map[string]any) (any, error) {
		calls = append(calls, "resolver")
		return nil, nil
	}, mws...)
	_, _ = resolve(context.Background(), nil, &graphql.ResolveInfo{FieldName: "user"}, nil)

	fmt.Println(calls)
	// Output:
	// [auth trace resolver]
}
