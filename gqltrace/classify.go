package gqltrace

import (
	"strings"

	"github.com/jonwraymond/graphqltrace/graphql"
	"github.com/jonwraymond/graphqltrace/observe"
)

// SetSpanErrors marks span with the structured query errors in errs and
// reports whether there were any. Nil entries are ignored. Messages are
// joined by newlines; the error type is graphql.ErrorTypeName and the stack
// is empty.
func SetSpanErrors(span observe.Span, errs []*graphql.Error) bool {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if e == nil {
			continue
		}
		msgs = append(msgs, e.Message)
	}
	if len(msgs) == 0 {
		return false
	}
	span.MarkError(strings.Join(msgs, "\n"), graphql.ErrorTypeName, "")
	return true
}

// annotateResult records the errors of a synchronous execution result.
// Anything else, a *graphql.Deferred included, is left alone.
func annotateResult(span observe.Span, result any) bool {
	res, ok := result.(*graphql.ExecutionResult)
	if !ok || res == nil {
		return false
	}
	return SetSpanErrors(span, res.Errors)
}

func annotateValidation(span observe.Span, result any) bool {
	errs, _ := result.([]*graphql.Error)
	return SetSpanErrors(span, errs)
}

// sourceString returns the query text behind v with every whitespace run
// collapsed to one space.
func sourceString(v any) string {
	var body string
	switch src := v.(type) {
	case string:
		body = src
	case graphql.Source:
		body = src.Body
	case *graphql.Source:
		if src != nil {
			body = src.Body
		}
	case graphql.Document:
		body = src.SourceBody()
	case *graphql.Document:
		body = src.SourceBody()
	}
	return strings.Join(strings.Fields(body), " ")
}
