package gqltrace

import "errors"

var (
	// ErrNilLibrary indicates New was given no library.
	ErrNilLibrary = errors.New("gqltrace: library is nil")

	// ErrNilTracer indicates a nil tracer was passed to WithTracer.
	ErrNilTracer = errors.New("gqltrace: tracer is nil")

	// ErrInvalidSampleRate indicates an analytics sample rate outside [0.0, 1.0].
	ErrInvalidSampleRate = errors.New("gqltrace: analytics sample rate must be between 0.0 and 1.0")

	// ErrUnsupportedMiddleware indicates execute's middleware argument is
	// neither a list nor a manager.
	ErrUnsupportedMiddleware = errors.New("gqltrace: unsupported middleware argument")
)
