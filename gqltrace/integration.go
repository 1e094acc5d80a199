package gqltrace

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonwraymond/graphqltrace/graphql"
	"github.com/jonwraymond/graphqltrace/observe"
	"github.com/jonwraymond/graphqltrace/patch"
)

// Integration traces one library.
//
// Contract:
//   - Concurrency: wrappers are safe for concurrent requests. Patch and
//     Unpatch serialize with each other but must not race with requests.
//   - Errors: traced calls return exactly what the original returned.
type Integration struct {
	lib       *graphql.Library
	cfg       Config
	partition Partition
	pin       *Pin
	logger    observe.Logger
	state     *patch.State
	registry  *patch.Registry
	sites     []patch.CallSite

	mu sync.Mutex
}

type settings struct {
	tracer    observe.Tracer
	tracerSet bool
	metrics   observe.Metrics
	logger    observe.Logger
	observer  observe.Observer
	service   string
	enabled   bool
}

// Option configures an Integration.
type Option func(*settings)

// WithTracer sets the tracer spans are started on.
func WithTracer(t observe.Tracer) Option {
	return func(s *settings) {
		s.tracer = t
		s.tracerSet = true
	}
}

// WithMetrics sets where stage metrics are recorded.
func WithMetrics(m observe.Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}

// WithLogger sets the integration's logger.
func WithLogger(l observe.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// WithObserver takes tracer, metrics and logger from obs. Explicit
// WithTracer, WithMetrics and WithLogger options win.
func WithObserver(obs observe.Observer) Option {
	return func(s *settings) {
		s.observer = obs
	}
}

// WithService pins the service name, overriding Config.
func WithService(name string) Option {
	return func(s *settings) {
		s.service = name
	}
}

// WithEnabled sets whether tracing starts enabled. The default is true.
func WithEnabled(enabled bool) Option {
	return func(s *settings) {
		s.enabled = enabled
	}
}

// New builds an integration for lib. The library version is resolved here
// and never again.
func New(lib *graphql.Library, cfg Config, opts ...Option) (*Integration, error) {
	if lib == nil {
		return nil, ErrNilLibrary
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := settings{enabled: true}
	for _, opt := range opts {
		opt(&s)
	}
	if s.tracerSet && s.tracer == nil {
		return nil, ErrNilTracer
	}

	if s.observer != nil {
		if s.tracer == nil {
			s.tracer = observe.NewTracer(s.observer.Tracer())
		}
		if s.metrics == nil {
			m, err := observe.NewMetrics(s.observer.Meter())
			if err != nil {
				return nil, fmt.Errorf("gqltrace: create metrics: %w", err)
			}
			s.metrics = m
		}
		if s.logger == nil {
			s.logger = s.observer.Logger()
		}
	}
	if s.logger == nil {
		s.logger = observe.NopLogger()
	}
	logger := s.logger.With(
		observe.Field{Key: "component", Value: "gqltrace"},
		observe.Field{Key: "graphql.version", Value: lib.Version()},
	)

	partition, ok := resolvePartition(lib.Version())
	if !ok {
		logger.Warn(context.Background(), "unparsable graphql version, assuming minimum supported",
			observe.Field{Key: "assumed", Value: partition.Version.String()},
		)
	}

	service := s.service
	if service == "" {
		service = cfg.ServiceName()
	}

	i := &Integration{
		lib:       lib,
		cfg:       cfg,
		partition: partition,
		pin:       newPin(observe.NewMiddleware(s.tracer, s.metrics, logger), service, s.enabled),
		logger:    logger,
		state:     lib.PatchState(),
		registry:  lib.PatchRegistry(),
	}
	i.sites = i.callSites()
	return i, nil
}

func (i *Integration) callSites() []patch.CallSite {
	p := i.partition
	return []patch.CallSite{
		{Module: graphql.QueryModule, Function: p.QueryFunc(), Wrapper: i.traceQuery},
		{Module: graphql.ParseModule, Function: graphql.ParseFunc, Wrapper: i.traceParse},
		{Module: p.ValidateModule(), Function: graphql.ValidateFunc, Wrapper: i.traceValidate},
		{Module: p.ExecuteModule(), Function: graphql.ExecuteFunc, Wrapper: i.traceExecute},
	}
}

// Patch installs the wrappers. It does nothing if the library is already
// patched.
func (i *Integration) Patch() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state.Patched() {
		return nil
	}
	if err := i.registry.Install(i.lib.Modules(), i.sites...); err != nil {
		return fmt.Errorf("gqltrace: patch %s library: %w", i.partition.Era, err)
	}
	i.state.MarkPatched()

	i.logger.Info(context.Background(), "graphql patched",
		observe.Field{Key: "era", Value: i.partition.Era.String()},
		observe.Field{Key: "call_sites", Value: len(i.sites)},
		observe.Field{Key: "resolvers_enabled", Value: i.cfg.ResolversEnabled},
	)
	return nil
}

// Unpatch restores the original functions. It does nothing if the library is
// not patched or predates MinimumVersion.
func (i *Integration) Unpatch() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.state.Patched() || i.partition.Version.Less(MinimumVersion) {
		return nil
	}
	i.registry.Remove(i.sites...)
	i.state.MarkUnpatched()

	i.logger.Info(context.Background(), "graphql unpatched")
	return nil
}

// Patched reports whether the library is patched.
func (i *Integration) Patched() bool {
	return i.state.Patched()
}

// Partition returns the resolved version partition.
func (i *Integration) Partition() Partition {
	return i.partition
}

// Pin returns the tracing context shared by the wrappers.
func (i *Integration) Pin() *Pin {
	return i.pin
}

// CallSites returns the call-sites this integration wraps, whether or not
// they are installed.
func (i *Integration) CallSites() []patch.CallSite {
	out := make([]patch.CallSite, len(i.sites))
	copy(out, i.sites)
	return out
}
