package graphqltest

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jonwraymond/graphqltrace/callargs"
	"github.com/jonwraymond/graphqltrace/graphql"
	"github.com/jonwraymond/graphqltrace/patch"
	"github.com/jonwraymond/graphqltrace/version"
)

// Schema maps field names to resolvers. A nil resolver resolves to nil.
type Schema struct {
	Resolvers map[string]graphql.Resolver

	// Deferred makes execute return a *graphql.Deferred instead of a result.
	Deferred bool
}

type layout struct {
	legacy         bool
	queryFunc      string
	validateModule string
	executeModule  string
	documentArg    string
	middlewareSlot int
}

func layoutFor(v string) layout {
	parsed, err := version.Parse(v)
	if err != nil {
		parsed = version.New(2, 0, 0)
	}
	if parsed.Less(version.New(3, 0, 0)) {
		return layout{
			legacy:         true,
			queryFunc:      graphql.LegacyQueryFunc,
			validateModule: graphql.LegacyValidateModule,
			executeModule:  graphql.LegacyExecuteModule,
			documentArg:    graphql.LegacyDocumentArg,
			middlewareSlot: 8,
		}
	}
	l := layout{
		queryFunc:      graphql.QueryFunc,
		validateModule: graphql.ValidateModule,
		executeModule:  graphql.ExecuteModule,
		documentArg:    graphql.DocumentArg,
		middlewareSlot: 8,
	}
	if parsed.AtLeast(version.New(3, 2, 0)) {
		l.middlewareSlot = 9
	}
	return l
}

// Library is a fake execution library.
type Library struct {
	*graphql.Library
	layout layout
}

// New builds a library that declares version v.
func New(v string) *Library {
	lib := &Library{layout: layoutFor(v)}

	query := patch.NewModule(graphql.QueryModule)
	query.Define(lib.layout.queryFunc, lib.query)
	parser := patch.NewModule(graphql.ParseModule)
	parser.Define(graphql.ParseFunc, Parse)
	validation := patch.NewModule(lib.layout.validateModule)
	validation.Define(graphql.ValidateFunc, Validate)
	execution := patch.NewModule(lib.layout.executeModule)
	execution.Define(graphql.ExecuteFunc, lib.execute)

	lib.Library = graphql.NewLibrary(v, patch.NewNamespace(query, parser, validation, execution))
	return lib
}

// MiddlewareSlot returns the positional index of execute's middleware argument.
func (l *Library) MiddlewareSlot() int {
	return l.layout.middlewareSlot
}

// QueryFunc returns the name of the single-call entry point.
func (l *Library) QueryFunc() string {
	return l.layout.queryFunc
}

// DocumentArg returns the keyword name of execute's document argument.
func (l *Library) DocumentArg() string {
	return l.layout.documentArg
}

// Graphql runs source against schema through the published entry point.
func (l *Library) Graphql(ctx context.Context, schema *Schema, source any, kwargs map[string]any) (any, error) {
	return l.Modules().Call(ctx, graphql.QueryModule, l.layout.queryFunc, []any{schema, source}, kwargs)
}

// Parse calls the published parse function.
func (l *Library) Parse(ctx context.Context, source any) (*graphql.Document, error) {
	res, err := l.Modules().Call(ctx, graphql.ParseModule, graphql.ParseFunc, []any{source}, nil)
	if err != nil {
		return nil, err
	}
	return res.(*graphql.Document), nil
}

// Validate calls the published validate function.
func (l *Library) Validate(ctx context.Context, schema *Schema, doc *graphql.Document) ([]*graphql.Error, error) {
	res, err := l.Modules().Call(ctx, l.layout.validateModule, graphql.ValidateFunc, []any{schema, doc}, nil)
	if err != nil {
		return nil, err
	}
	errs, _ := res.([]*graphql.Error)
	return errs, nil
}

// Execute calls the published execute function with the given arguments.
func (l *Library) Execute(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
	return l.Modules().Call(ctx, l.layout.executeModule, graphql.ExecuteFunc, args, kwargs)
}

func (l *Library) query(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
	schema, err := schemaArg(args, kwargs)
	if err != nil {
		return nil, err
	}
	source, err := callargs.Get(args, kwargs, 1, graphql.SourceArg)
	if err != nil {
		return nil, err
	}

	doc, err := l.Parse(ctx, source)
	if err != nil {
		var gqlErr *graphql.Error
		if errors.As(err, &gqlErr) {
			return &graphql.ExecutionResult{Errors: []*graphql.Error{gqlErr}}, nil
		}
		return nil, err
	}

	errs, err := l.Validate(ctx, schema, doc)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return &graphql.ExecutionResult{Errors: errs}, nil
	}

	execArgs := []any{schema, doc}
	execKwargs := map[string]any{}
	if root, err := callargs.Get(args, kwargs, 2, "root_value"); err == nil {
		execKwargs["root_value"] = root
	}
	if mw, err := callargs.Get(args, kwargs, 8, graphql.MiddlewareArg); err == nil && mw != nil {
		execKwargs[graphql.MiddlewareArg] = mw
	}
	return l.Execute(ctx, execArgs, execKwargs)
}

func (l *Library) execute(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
	schema, err := schemaArg(args, kwargs)
	if err != nil {
		return nil, err
	}
	docArg, err := callargs.Get(args, kwargs, 1, l.layout.documentArg)
	if err != nil {
		return nil, err
	}
	doc, ok := docArg.(*graphql.Document)
	if !ok {
		return nil, fmt.Errorf("graphqltest: execute expects *graphql.Document, got %T", docArg)
	}

	var root any
	if v, err := callargs.Get(args, kwargs, 2, "root_value"); err == nil {
		root = v
	}

	manager, err := middlewareArg(args, kwargs, l.layout.middlewareSlot)
	if err != nil {
		return nil, err
	}

	result := &graphql.ExecutionResult{Data: map[string]any{}}
	values := map[string]any{}
	for _, def := range doc.Definitions {
		f, ok := def.(Field)
		if !ok {
			continue
		}
		parent := root
		if len(f.Path) > 1 {
			parent = values[strings.Join(f.Path[:len(f.Path)-1], ".")]
		}

		resolver := schema.Resolvers[f.Name]
		if resolver == nil {
			resolver = nilResolver
		}
		info := &graphql.ResolveInfo{FieldName: f.Name, ParentType: "Query", Path: slices.Clone(f.Path)}
		v, err := manager.Chain(resolver)(ctx, parent, info, nil)
		key := strings.Join(f.Path, ".")
		if err != nil {
			path := make([]any, len(f.Path))
			for i, p := range f.Path {
				path[i] = p
			}
			result.Errors = append(result.Errors, graphql.NewError(err.Error(), path...))
			result.Data[key] = nil
			continue
		}
		values[key] = v
		result.Data[key] = v
	}

	if schema.Deferred {
		return &graphql.Deferred{Wait: func(context.Context) (*graphql.ExecutionResult, error) {
			return result, nil
		}}, nil
	}
	return result, nil
}

// Parse turns source text into a Document. Syntax errors are returned as
// *graphql.Error.
func Parse(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
	arg, err := callargs.Get(args, kwargs, 0, graphql.SourceArg)
	if err != nil {
		return nil, err
	}

	var src *graphql.Source
	switch s := arg.(type) {
	case string:
		src = &graphql.Source{Body: s, Name: "GraphQL request"}
	case *graphql.Source:
		src = s
	case graphql.Source:
		src = &s
	default:
		return nil, fmt.Errorf("graphqltest: must provide source, got %T", arg)
	}

	fields, err := scanFields(src.Body)
	if err != nil {
		return nil, err
	}
	defs := make([]any, len(fields))
	for i, f := range fields {
		defs[i] = f
	}
	return &graphql.Document{
		Loc:         &graphql.Location{Start: 0, End: len(src.Body), Source: src},
		Definitions: defs,
	}, nil
}

// Validate reports every selected field the schema does not define.
func Validate(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
	schema, err := schemaArg(args, kwargs)
	if err != nil {
		return nil, err
	}
	docArg, err := callargs.Get(args, kwargs, 1, "document_ast")
	if err != nil {
		return nil, err
	}
	doc, ok := docArg.(*graphql.Document)
	if !ok {
		return nil, fmt.Errorf("graphqltest: validate expects *graphql.Document, got %T", docArg)
	}

	var errs []*graphql.Error
	for _, def := range doc.Definitions {
		f, ok := def.(Field)
		if !ok {
			continue
		}
		if _, known := schema.Resolvers[f.Name]; !known {
			errs = append(errs, graphql.NewError(fmt.Sprintf("Cannot query field '%s' on type 'Query'.", f.Name)))
		}
	}
	return errs, nil
}

func nilResolver(ctx context.Context, root any, info *graphql.ResolveInfo, args map[string]any) (any, error) {
	return nil, nil
}

func schemaArg(args []any, kwargs map[string]any) (*Schema, error) {
	v, err := callargs.Get(args, kwargs, 0, "schema")
	if err != nil {
		return nil, err
	}
	schema, ok := v.(*Schema)
	if !ok || schema == nil {
		return nil, fmt.Errorf("graphqltest: expected *Schema, got %T", v)
	}
	return schema, nil
}

func middlewareArg(args []any, kwargs map[string]any, slot int) (*graphql.MiddlewareManager, error) {
	v, err := callargs.Get(args, kwargs, slot, graphql.MiddlewareArg)
	if err != nil || v == nil {
		return nil, nil
	}
	switch mw := v.(type) {
	case *graphql.MiddlewareManager:
		return mw, nil
	case []graphql.Middleware:
		return graphql.NewMiddlewareManager(mw...), nil
	default:
		return nil, fmt.Errorf("graphqltest: middleware must be a list or manager, got %T", v)
	}
}
