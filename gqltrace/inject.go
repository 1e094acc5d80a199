package gqltrace

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jonwraymond/graphqltrace/callargs"
	"github.com/jonwraymond/graphqltrace/graphql"
)

// InjectMiddleware returns a copy of execute's arguments with mw appended to
// the middleware list found at slot. A manager is unwrapped to its list and
// an absent or nil argument counts as an empty list. The list is written back
// in the form it was supplied, positional if it was positional and keyword
// otherwise.
//
// Middlewares run in declaration order from the outside in, so the appended
// mw wraps the resolver and nothing else.
func InjectMiddleware(args []any, kwargs map[string]any, slot int, mw graphql.Middleware) ([]any, map[string]any, error) {
	var existing []graphql.Middleware

	v, err := callargs.Get(args, kwargs, slot, graphql.MiddlewareArg)
	switch {
	case errors.Is(err, callargs.ErrArgumentNotFound):
	case err != nil:
		return args, kwargs, err
	default:
		switch list := v.(type) {
		case nil:
		case []graphql.Middleware:
			existing = list
		case *graphql.MiddlewareManager:
			if list != nil {
				existing = list.Middlewares
			}
		case graphql.MiddlewareManager:
			existing = list.Middlewares
		default:
			return args, kwargs, fmt.Errorf("%w: %T", ErrUnsupportedMiddleware, v)
		}
	}

	merged := append(slices.Clone(existing), mw)
	outArgs, outKwargs := callargs.Set(args, kwargs, slot, graphql.MiddlewareArg, merged)
	return outArgs, outKwargs, nil
}
