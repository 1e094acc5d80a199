// Package gqltrace traces the lifecycle of a GraphQL execution library.
//
// An Integration replaces the library's published parse, validate, execute
// and single-call query entry points with wrappers that run each call inside
// a span. When resolver tracing is enabled, execute is also handed an extra
// field middleware that opens one span per resolved field, nested under the
// execute span.
//
// The call-sites and the position of execute's middleware argument depend on
// the library version, which is resolved once when the Integration is built:
//
//	< 3.0   legacy names, middleware at position 8
//	>= 3.0  current names, middleware at position 8
//	>= 3.2  current names, middleware at position 9
//
// Patch and Unpatch mutate process-wide function tables. Call them during
// setup and teardown, not while requests are in flight.
//
// Structured query errors returned by validate and execute are recorded on
// the span and returned unchanged. Deferred execution results are returned
// without annotation: their errors are not known when execute returns.
package gqltrace
