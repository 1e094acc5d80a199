package graphql

import (
	"context"
	"reflect"
	"testing"
)

func recording(name string, calls *[]string) Middleware {
	return func(ctx context.Context, next Resolver, root any, info *ResolveInfo, args map[string]any) (any, error) {
		*calls = append(*calls, name+":enter")
		v, err := next(ctx, root, info, args)
		*calls = append(*calls, name+":exit")
		return v, err
	}
}

// TestChain_Order verifies the first middleware is outermost and the last
// runs closest to the resolver.
func TestChain_Order(t *testing.T) {
	var calls []string
	resolver := func(ctx context.Context, root any, info *ResolveInfo, args map[string]any) (any, error) {
		calls = append(calls, "resolver")
		return "value", nil
	}

	chained := Chain(resolver, recording("a", &calls), nil, recording("b", &calls))
	v, err := chained(context.Background(), nil, &ResolveInfo{FieldName: "f"}, nil)
	if err != nil {
		t.Fatalf("chained() error = %v", err)
	}
	if v != "value" {
		t.Errorf("chained() = %v, want value", v)
	}

	want := []string{"a:enter", "b:enter", "resolver", "b:exit", "a:exit"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestMiddlewareManager_NilChain(t *testing.T) {
	var m *MiddlewareManager
	resolver := func(ctx context.Context, root any, info *ResolveInfo, args map[string]any) (any, error) {
		return root, nil
	}
	v, _ := m.Chain(resolver)(context.Background(), 7, nil, nil)
	if v != 7 {
		t.Errorf("Chain() on nil manager = %v, want 7", v)
	}
}

func TestDocument_SourceBody(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
		want string
	}{
		{name: "nil document", doc: nil, want: ""},
		{name: "no location", doc: &Document{}, want: ""},
		{name: "no source", doc: &Document{Loc: &Location{}}, want: ""},
		{name: "with source", doc: &Document{Loc: &Location{Source: &Source{Body: "{ a }"}}}, want: "{ a }"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.doc.SourceBody(); got != tc.want {
				t.Errorf("SourceBody() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestError(t *testing.T) {
	err := NewError("Unknown field", "user", 0)
	if err.Error() != "Unknown field" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !reflect.DeepEqual(err.Path, []any{"user", 0}) {
		t.Errorf("Path = %v", err.Path)
	}
}

func TestResolveInfo_PathString(t *testing.T) {
	var nilInfo *ResolveInfo
	if nilInfo.PathString() != "" {
		t.Error("nil info should have empty path")
	}
	info := &ResolveInfo{Path: []string{"user", "name"}}
	if got := info.PathString(); got != "user.name" {
		t.Errorf("PathString() = %q", got)
	}
}

func TestLibrary(t *testing.T) {
	lib := NewLibrary("3.2.0", nil)
	if lib.Version() != "3.2.0" {
		t.Errorf("Version() = %q", lib.Version())
	}
	if lib.Modules() == nil {
		t.Fatal("Modules() should never be nil")
	}
	if lib.PatchState() != lib.PatchState() {
		t.Error("PatchState() should return the same state each time")
	}
	if lib.PatchState().Patched() {
		t.Error("new library should be unpatched")
	}
	if lib.PatchRegistry() == nil || len(lib.PatchRegistry().Installed()) != 0 {
		t.Error("new library should have an empty registry")
	}
}
