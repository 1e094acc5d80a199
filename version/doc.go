// Package version parses library version strings into comparable values.
//
// Parsing is tolerant: release candidates written without a separator
// ("3.2.0rc1"), short forms ("3.1", "v3") and build metadata are accepted.
package version
