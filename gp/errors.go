package gp

import "errors"

// Sentinel errors.
var (
	// ErrBackendNotAvailable is returned when no registered backend matches.
	ErrBackendNotAvailable = errors.New("gp: backend not available")

	// ErrBadTrace is returned when a trace stream is malformed.
	ErrBadTrace = errors.New("gp: malformed trace")
)
