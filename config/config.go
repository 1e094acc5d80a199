package config

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/graphqltrace/gqltrace"
	"github.com/jonwraymond/graphqltrace/graphql"
	"github.com/jonwraymond/graphqltrace/observe"
)

// Config is the complete file configuration.
type Config struct {
	Observe observe.Config  `yaml:"observe"`
	GraphQL gqltrace.Config `yaml:"graphql"`
}

// Default returns the configuration used for keys a file leaves out.
func Default() Config {
	return Config{
		Observe: observe.Config{
			ServiceName: gqltrace.DefaultServiceName,
			Tracing: observe.TracingConfig{
				Enabled:   true,
				Exporter:  "none",
				SamplePct: observe.MaxSamplePct,
			},
			Metrics: observe.MetricsConfig{Exporter: "none"},
			Logging: observe.LoggingConfig{Enabled: true, Level: "info"},
		},
		GraphQL: gqltrace.DefaultConfig(),
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w (file %q)", err, path)
	}
	return cfg, nil
}

// Parse decodes and validates configuration data.
func Parse(data []byte) (Config, error) {
	return parse(data, os.LookupEnv)
}

func parse(data []byte, lookup func(string) (string, bool)) (Config, error) {
	expanded, err := expandEnv(data, lookup)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if cfg.GraphQL.DefaultService == "" {
		cfg.GraphQL.DefaultService = gqltrace.DefaultServiceName
	}

	if err := cfg.GraphQL.ApplyEnv(lookup); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// expandEnv substitutes $NAME and ${NAME} from lookup before the file is
// decoded. Every unset name is reported at once, sorted. $$ is a literal $,
// and a $ not followed by a name is left as written.
func expandEnv(data []byte, lookup func(string) (string, bool)) ([]byte, error) {
	missing := make(map[string]struct{})
	out := os.Expand(string(data), func(key string) string {
		switch {
		case key == "$":
			return "$"
		case !isEnvName(key):
			return "$" + key
		}
		v, ok := lookup(key)
		if !ok {
			missing[key] = struct{}{}
		}
		return v
	})
	if len(missing) > 0 {
		names := slices.Sorted(maps.Keys(missing))
		return nil, fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(names, ", "))
	}
	return []byte(out), nil
}

func isEnvName(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return s != ""
}

// Validate checks both sections and reports every failure.
func (c Config) Validate() error {
	if err := errors.Join(c.Observe.Validate(), c.GraphQL.Validate()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Setup builds an observer and a patched integration for lib. The caller
// owns both: Unpatch the integration, then shut the observer down.
func (c Config) Setup(ctx context.Context, lib *graphql.Library) (*gqltrace.Integration, observe.Observer, error) {
	obs, err := observe.NewObserver(ctx, c.Observe)
	if err != nil {
		return nil, nil, err
	}

	integ, err := gqltrace.New(lib, c.GraphQL, gqltrace.WithObserver(obs))
	if err == nil {
		err = integ.Patch()
	}
	if err != nil {
		return nil, nil, errors.Join(err, obs.Shutdown(ctx))
	}
	return integ, obs, nil
}
