package graphql

import (
	"github.com/jonwraymond/graphqltrace/patch"
)

// Call-sites published by the library before 3.0.
const (
	LegacyQueryModule    = "graphql.graphql"
	LegacyQueryFunc      = "execute_graphql"
	LegacyValidateModule = "graphql.validation.validation"
	LegacyExecuteModule  = "graphql.execution.executor"
	LegacyDocumentArg    = "document_ast"
)

// Call-sites published by the library from 3.0 on.
const (
	QueryModule    = "graphql.graphql"
	QueryFunc      = "graphql_impl"
	ValidateModule = "graphql.validation.validate"
	ExecuteModule  = "graphql.execution.execute"
	DocumentArg    = "document"
)

// Call-sites shared by every version.
const (
	ParseModule   = "graphql.language.parser"
	ParseFunc     = "parse"
	ValidateFunc  = "validate"
	ExecuteFunc   = "execute"
	SourceArg     = "source"
	MiddlewareArg = "middleware"
)

// Library is a handle on one loaded copy of the execution library.
type Library struct {
	version  string
	modules  *patch.Namespace
	state    patch.State
	registry *patch.Registry
}

// NewLibrary wraps the function tables of a library reporting version.
func NewLibrary(version string, modules *patch.Namespace) *Library {
	if modules == nil {
		modules = patch.NewNamespace()
	}
	return &Library{version: version, modules: modules, registry: patch.NewRegistry()}
}

// Version returns the version string the library declares.
func (l *Library) Version() string {
	return l.version
}

// Modules returns the live function tables.
func (l *Library) Modules() *patch.Namespace {
	return l.modules
}

// PatchState returns the library's patch flag.
func (l *Library) PatchState() *patch.State {
	return &l.state
}

// PatchRegistry returns the registry holding the library's installed wrappers.
func (l *Library) PatchRegistry() *patch.Registry {
	return l.registry
}
