package graphql

import (
	"context"
	"strings"
)

// ErrorTypeName is the error category reported for structured query errors.
const ErrorTypeName = "graphql.Error"

// Source is raw query text with an optional name.
type Source struct {
	Body string
	Name string
}

// Location is the span of a parsed node within its source.
type Location struct {
	Start  int
	End    int
	Source *Source
}

// Document is a parsed query.
type Document struct {
	Loc         *Location
	Definitions []any
}

// SourceBody returns the text the document was parsed from, or "" when the
// document carries no location.
func (d *Document) SourceBody() string {
	if d == nil || d.Loc == nil || d.Loc.Source == nil {
		return ""
	}
	return d.Loc.Source.Body
}

// Error is a structured query error. These are returned as data inside
// results and validation lists, not raised.
type Error struct {
	Message string
	Path    []any
}

func (e *Error) Error() string {
	return e.Message
}

// NewError creates a structured query error.
func NewError(message string, path ...any) *Error {
	return &Error{Message: message, Path: path}
}

// ExecutionResult is the synchronous outcome of an execution.
type ExecutionResult struct {
	Data   map[string]any
	Errors []*Error
}

// Deferred is an execution outcome that completes later. Its errors are not
// visible at the time the executing call returns.
type Deferred struct {
	Wait func(ctx context.Context) (*ExecutionResult, error)
}

// ResolveInfo describes the field being resolved.
type ResolveInfo struct {
	FieldName  string
	ParentType string
	Path       []string
}

// PathString returns the dotted response path of the field.
func (i *ResolveInfo) PathString() string {
	if i == nil {
		return ""
	}
	return strings.Join(i.Path, ".")
}

// Resolver produces the value of one field.
type Resolver func(ctx context.Context, root any, info *ResolveInfo, args map[string]any) (any, error)

// Middleware wraps a field resolution. It must call next to continue the chain.
type Middleware func(ctx context.Context, next Resolver, root any, info *ResolveInfo, args map[string]any) (any, error)

// MiddlewareManager is a normalized middleware list.
//
// Middlewares run in declaration order from the outside in: the first
// entry is outermost and the last entry runs closest to the resolver.
type MiddlewareManager struct {
	Middlewares []Middleware
}

// NewMiddlewareManager creates a manager over mws.
func NewMiddlewareManager(mws ...Middleware) *MiddlewareManager {
	return &MiddlewareManager{Middlewares: mws}
}

// Chain returns resolver wrapped by every middleware.
func (m *MiddlewareManager) Chain(resolver Resolver) Resolver {
	if m == nil {
		return resolver
	}
	return Chain(resolver, m.Middlewares...)
}

// Chain wraps resolver so that mws[0] runs outermost and the last middleware
// runs innermost.
func Chain(resolver Resolver, mws ...Middleware) Resolver {
	next := resolver
	for i := len(mws) - 1; i >= 0; i-- {
		mw, inner := mws[i], next
		if mw == nil {
			continue
		}
		next = func(ctx context.Context, root any, info *ResolveInfo, args map[string]any) (any, error) {
			return mw(ctx, inner, root, info, args)
		}
	}
	return next
}
