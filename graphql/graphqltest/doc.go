// Package graphqltest provides a small in-memory GraphQL library for tests.
//
// It publishes parse, validate, execute and the single-call query entry
// point through a graphql.Library function table using the names and
// argument positions of the requested version, and dispatches every nested
// call back through that table the way the real library does. Its query
// language is deliberately tiny: selection sets of bare field names, with
// parenthesised arguments skipped.
package graphqltest
