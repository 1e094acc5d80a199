package gqltrace

import (
	"github.com/jonwraymond/graphqltrace/graphql"
	"github.com/jonwraymond/graphqltrace/version"
)

// Era selects which set of call-sites a library version publishes.
type Era int

const (
	// Legacy is every version before 3.0.
	Legacy Era = iota
	// Current is 3.0 and later.
	Current
)

func (e Era) String() string {
	if e == Legacy {
		return "legacy"
	}
	return "current"
}

var (
	// MinimumVersion is the oldest version Unpatch acts on. Unparsable
	// versions resolve to it.
	MinimumVersion = version.New(2, 0, 0)

	currentEra      = version.New(3, 0, 0)
	middlewareShift = version.New(3, 2, 0)
)

// Partition is the version-dependent shape of the library's API.
type Partition struct {
	Era            Era
	MiddlewareSlot int
	Version        version.Version
}

// ResolvePartition maps a declared library version to its partition.
// Versions that cannot be parsed are treated as MinimumVersion.
func ResolvePartition(v string) Partition {
	p, _ := resolvePartition(v)
	return p
}

// resolvePartition also reports whether v parsed.
func resolvePartition(v string) (Partition, bool) {
	parsed, err := version.Parse(v)
	ok := err == nil
	if !ok {
		parsed = MinimumVersion
	}

	p := Partition{Era: Current, MiddlewareSlot: 8, Version: parsed}
	switch {
	case parsed.Less(currentEra):
		p.Era = Legacy
	case parsed.AtLeast(middlewareShift):
		p.MiddlewareSlot = 9
	}
	return p, ok
}

// DocumentArg returns the keyword name of execute's document argument.
func (p Partition) DocumentArg() string {
	if p.Era == Legacy {
		return graphql.LegacyDocumentArg
	}
	return graphql.DocumentArg
}

// QueryFunc returns the name of the single-call query entry point.
func (p Partition) QueryFunc() string {
	if p.Era == Legacy {
		return graphql.LegacyQueryFunc
	}
	return graphql.QueryFunc
}

// ValidateModule returns the module publishing validate.
func (p Partition) ValidateModule() string {
	if p.Era == Legacy {
		return graphql.LegacyValidateModule
	}
	return graphql.ValidateModule
}

// ExecuteModule returns the module publishing execute.
func (p Partition) ExecuteModule() string {
	if p.Era == Legacy {
		return graphql.LegacyExecuteModule
	}
	return graphql.ExecuteModule
}
