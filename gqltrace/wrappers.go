package gqltrace

import (
	"context"
	"fmt"

	"github.com/jonwraymond/graphqltrace/callargs"
	"github.com/jonwraymond/graphqltrace/graphql"
	"github.com/jonwraymond/graphqltrace/observe"
	"github.com/jonwraymond/graphqltrace/patch"
)

func call(original patch.Func, args []any, kwargs map[string]any) observe.StageFunc {
	return func(ctx context.Context) (any, error) {
		return original(ctx, args, kwargs)
	}
}

// traceQuery wraps the single-call entry point. Its span is the root of a
// request and is tagged as measured.
func (i *Integration) traceQuery(ctx context.Context, original patch.Func, args []any, kwargs map[string]any) (any, error) {
	if !i.pin.Enabled() {
		return original(ctx, args, kwargs)
	}

	source, err := callargs.Get(args, kwargs, 1, graphql.SourceArg)
	if err != nil {
		return nil, fmt.Errorf("gqltrace: query source: %w", err)
	}

	meta := i.pin.stage(QuerySpan, sourceString(source))
	meta.Tags = map[string]any{observe.MeasuredKey: true}
	if rate, ok := i.cfg.SampleRate(); ok {
		meta.Tags[observe.AnalyticsSampleRateKey] = rate
	}
	return i.pin.mw.Run(ctx, meta, call(original, args, kwargs), annotateResult)
}

// traceParse wraps parse. Parse may run outside a query, so its span carries
// the service itself.
func (i *Integration) traceParse(ctx context.Context, original patch.Func, args []any, kwargs map[string]any) (any, error) {
	if !i.pin.Enabled() {
		return original(ctx, args, kwargs)
	}
	return i.pin.mw.Run(ctx, i.pin.stage(ParseSpan, ""), call(original, args, kwargs), nil)
}

func (i *Integration) traceValidate(ctx context.Context, original patch.Func, args []any, kwargs map[string]any) (any, error) {
	if !i.pin.Enabled() {
		return original(ctx, args, kwargs)
	}
	return i.pin.mw.Run(ctx, i.pin.stage(ValidateSpan, ""), call(original, args, kwargs), annotateValidation)
}

// traceExecute wraps execute and, when resolver tracing is on, hands it the
// resolver middleware.
func (i *Integration) traceExecute(ctx context.Context, original patch.Func, args []any, kwargs map[string]any) (any, error) {
	if !i.pin.Enabled() {
		return original(ctx, args, kwargs)
	}

	if i.cfg.ResolversEnabled {
		injectedArgs, injectedKwargs, err := InjectMiddleware(args, kwargs, i.partition.MiddlewareSlot, i.traceResolve)
		if err != nil {
			i.logger.Warn(ctx, "resolver tracing skipped", observe.Field{Key: "error", Value: err.Error()})
		} else {
			args, kwargs = injectedArgs, injectedKwargs
		}
	}

	document, err := callargs.Get(args, kwargs, 1, i.partition.DocumentArg())
	if err != nil {
		return nil, fmt.Errorf("gqltrace: execute document: %w", err)
	}

	meta := i.pin.stage(ExecuteSpan, sourceString(document))
	return i.pin.mw.Run(ctx, meta, call(original, args, kwargs), annotateResult)
}

// traceResolve is the field middleware. Its span inherits the service of the
// enclosing execute span.
func (i *Integration) traceResolve(ctx context.Context, next graphql.Resolver, root any, info *graphql.ResolveInfo, args map[string]any) (any, error) {
	if !i.pin.Enabled() {
		return next(ctx, root, info, args)
	}

	var field string
	if info != nil {
		field = info.FieldName
	}
	meta := observe.SpanMeta{Name: ResolveSpan, Resource: field, Type: SpanType}
	return i.pin.mw.Run(ctx, meta, func(ctx context.Context) (any, error) {
		return next(ctx, root, info, args)
	}, nil)
}
