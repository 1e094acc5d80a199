package patch

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Func is the uniform calling convention of an interceptable call-site:
// leading positional arguments plus keyword arguments.
type Func func(ctx context.Context, args []any, kwargs map[string]any) (any, error)

// Module is a named, mutable function table.
type Module struct {
	name  string
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{name: name, funcs: make(map[string]Func)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return m.name
}

// Define sets the function published under name.
func (m *Module) Define(name string, fn Func) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.funcs[name] = fn
}

// Lookup returns the function currently published under name.
func (m *Module) Lookup(name string) (Func, bool) {
	m.mu.RLock()
	fn, ok := m.funcs[name]
	m.mu.RUnlock()
	return fn, ok && fn != nil
}

// Call dispatches to the function currently published under name.
func (m *Module) Call(ctx context.Context, name string, args []any, kwargs map[string]any) (any, error) {
	fn, ok := m.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrFunctionNotFound, m.name, name)
	}
	return fn(ctx, args, kwargs)
}

// Functions returns the published function names, sorted.
func (m *Module) Functions() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.funcs))
	for name := range m.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Namespace is a set of modules addressed by dotted identifier.
type Namespace struct {
	mu      sync.RWMutex
	modules map[string]*Module
}

// NewNamespace creates a namespace holding modules.
func NewNamespace(modules ...*Module) *Namespace {
	ns := &Namespace{modules: make(map[string]*Module)}
	for _, m := range modules {
		ns.Add(m)
	}
	return ns
}

// Add registers m, replacing any module with the same name.
func (n *Namespace) Add(m *Module) {
	if m == nil || strings.TrimSpace(m.name) == "" {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.modules[m.name] = m
}

// Module returns the module registered under name.
func (n *Namespace) Module(name string) (*Module, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	m, ok := n.modules[name]
	return m, ok
}

// Lookup resolves a (module, function) pair.
func (n *Namespace) Lookup(module, function string) (Func, error) {
	m, ok := n.Module(module)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, module)
	}
	fn, ok := m.Lookup(function)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrFunctionNotFound, module, function)
	}
	return fn, nil
}

// Call dispatches to module.function.
func (n *Namespace) Call(ctx context.Context, module, function string, args []any, kwargs map[string]any) (any, error) {
	fn, err := n.Lookup(module, function)
	if err != nil {
		return nil, err
	}
	return fn(ctx, args, kwargs)
}

// Modules returns the registered module names, sorted.
func (n *Namespace) Modules() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	names := make([]string, 0, len(n.modules))
	for name := range n.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
