package patch

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Wrapper intercepts one call-site. It receives the original function and
// the call's arguments and must return what the original would return.
type Wrapper func(ctx context.Context, original Func, args []any, kwargs map[string]any) (any, error)

// CallSite describes one interception point.
type CallSite struct {
	Module   string
	Function string
	Wrapper  Wrapper
}

// Key returns the dotted module.function identifier.
func (c CallSite) Key() string {
	return c.Module + "." + c.Function
}

func (c CallSite) validate() error {
	if strings.TrimSpace(c.Module) == "" || strings.TrimSpace(c.Function) == "" || c.Wrapper == nil {
		return fmt.Errorf("%w: %q", ErrInvalidCallSite, c.Key())
	}
	return nil
}

type installed struct {
	site     CallSite
	module   *Module
	original Func
}

// Registry tracks the wrappers installed into namespaces.
type Registry struct {
	mu    sync.Mutex
	sites map[string]installed
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sites: make(map[string]installed)}
}

// Install wraps each call-site in ns. Sites already installed are skipped.
// If any site cannot be resolved, the sites installed by this call are
// restored and the error is returned.
func (r *Registry) Install(ns *Namespace, sites ...CallSite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var done []string
	for _, site := range sites {
		if err := site.validate(); err != nil {
			r.rollback(done)
			return err
		}
		key := site.Key()
		if _, ok := r.sites[key]; ok {
			continue
		}

		m, ok := ns.Module(site.Module)
		if !ok {
			r.rollback(done)
			return fmt.Errorf("install %s: %w: %s", key, ErrModuleNotFound, site.Module)
		}
		original, ok := m.Lookup(site.Function)
		if !ok {
			r.rollback(done)
			return fmt.Errorf("install %s: %w", key, ErrFunctionNotFound)
		}

		m.Define(site.Function, bind(site.Wrapper, original))
		r.sites[key] = installed{site: site, module: m, original: original}
		done = append(done, key)
	}
	return nil
}

// Remove restores the originals captured when sites were installed. Sites
// that are not installed are ignored.
func (r *Registry) Remove(sites ...CallSite) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, site := range sites {
		r.restore(site.Key())
	}
}

// RemoveAll restores every installed site.
func (r *Registry) RemoveAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.sites {
		r.restore(key)
	}
}

// IsInstalled reports whether module.function is currently wrapped.
func (r *Registry) IsInstalled(module, function string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sites[module+"."+function]
	return ok
}

// Installed returns the installed call-sites ordered by key.
func (r *Registry) Installed() []CallSite {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]CallSite, 0, len(r.sites))
	for _, in := range r.sites {
		out = append(out, in.site)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Original returns the function captured when module.function was installed.
func (r *Registry) Original(module, function string) (Func, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	in, ok := r.sites[module+"."+function]
	return in.original, ok
}

func (r *Registry) rollback(keys []string) {
	for i := len(keys) - 1; i >= 0; i-- {
		r.restore(keys[i])
	}
}

func (r *Registry) restore(key string) {
	in, ok := r.sites[key]
	if !ok {
		return
	}
	in.module.Define(in.site.Function, in.original)
	delete(r.sites, key)
}

func bind(w Wrapper, original Func) Func {
	return func(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
		return w(ctx, original, args, kwargs)
	}
}
