package gqltrace

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvResolversEnabled    = "GQLTRACE_RESOLVERS_ENABLED"
	EnvService             = "GQLTRACE_SERVICE"
	EnvAnalyticsEnabled    = "GQLTRACE_ANALYTICS_ENABLED"
	EnvAnalyticsSampleRate = "GQLTRACE_ANALYTICS_SAMPLE_RATE"
)

// DefaultServiceName is the service reported when nothing else is configured.
const DefaultServiceName = "graphql"

// Config controls what the integration traces.
type Config struct {
	// ResolversEnabled adds one span per resolved field.
	ResolversEnabled bool `yaml:"resolvers_enabled"`

	// Service overrides the service name on lifecycle spans.
	Service string `yaml:"service"`

	// DefaultService is used when Service is empty.
	DefaultService string `yaml:"default_service"`

	// AnalyticsEnabled tags query spans with AnalyticsSampleRate.
	AnalyticsEnabled    bool    `yaml:"analytics_enabled"`
	AnalyticsSampleRate float64 `yaml:"analytics_sample_rate"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		DefaultService:      DefaultServiceName,
		AnalyticsSampleRate: 1.0,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by the process environment.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from the variables lookup reports as set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvResolversEnabled); ok {
		c.ResolversEnabled = asBool(v)
	}
	if v, ok := lookup(EnvService); ok && v != "" {
		c.Service = v
	}
	if v, ok := lookup(EnvAnalyticsEnabled); ok {
		c.AnalyticsEnabled = asBool(v)
	}
	if v, ok := lookup(EnvAnalyticsSampleRate); ok && v != "" {
		rate, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidSampleRate, EnvAnalyticsSampleRate, v)
		}
		c.AnalyticsSampleRate = rate
	}
	return nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.AnalyticsSampleRate < 0 || c.AnalyticsSampleRate > 1 {
		return fmt.Errorf("%w, got: %f", ErrInvalidSampleRate, c.AnalyticsSampleRate)
	}
	return nil
}

// SampleRate returns the analytics sample rate and whether analytics is on.
func (c Config) SampleRate() (float64, bool) {
	if !c.AnalyticsEnabled {
		return 0, false
	}
	return c.AnalyticsSampleRate, true
}

// ServiceName returns Service, then DefaultService, then DefaultServiceName.
func (c Config) ServiceName() string {
	switch {
	case c.Service != "":
		return c.Service
	case c.DefaultService != "":
		return c.DefaultService
	default:
		return DefaultServiceName
	}
}

func asBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1"
}
