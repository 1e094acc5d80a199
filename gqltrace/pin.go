package gqltrace

import (
	"sync/atomic"

	"github.com/jonwraymond/graphqltrace/observe"
)

// Span names and type.
const (
	QuerySpan    = "graphql.query"
	ParseSpan    = "graphql.parse"
	ValidateSpan = "graphql.validate"
	ExecuteSpan  = "graphql.execute"
	ResolveSpan  = "graphql.resolve"
	SpanType     = "graphql"
)

// Pin is the tracing context shared by every wrapper of one integration.
//
// It is built once and only its enabled flag changes afterwards, so wrappers
// read it without locking.
type Pin struct {
	mw      *observe.Middleware
	service string
	enabled atomic.Bool
}

func newPin(mw *observe.Middleware, service string, enabled bool) *Pin {
	p := &Pin{mw: mw, service: service}
	p.enabled.Store(enabled)
	return p
}

// Enabled reports whether wrappers should trace. A nil pin is disabled.
func (p *Pin) Enabled() bool {
	return p != nil && p.enabled.Load()
}

// SetEnabled turns tracing on or off for subsequent calls.
func (p *Pin) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// Service returns the service name put on lifecycle spans.
func (p *Pin) Service() string {
	return p.service
}

// stage describes a lifecycle span owned by the integration's service.
func (p *Pin) stage(name, resource string) observe.SpanMeta {
	return observe.SpanMeta{
		Name:     name,
		Resource: resource,
		Service:  p.service,
		Type:     SpanType,
	}
}
