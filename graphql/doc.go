// Package graphql describes the GraphQL execution library that gqltrace
// instruments: the value shapes its call-sites accept and return, the names
// under which it publishes those call-sites, and the Library handle that
// carries its function tables and version.
//
// Nothing here parses, validates or executes queries.
package graphql
