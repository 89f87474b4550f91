package engine

import "errors"

var (
	// ErrScoreUnavailable wraps a failure while reading the current relevance
	// score. It is fatal: the run aborts instead of returning a partial result.
	ErrScoreUnavailable = errors.New("could not get score")

	// ErrNotNumeric is returned when a coerced run is requested but the raw
	// result is not a numeric value.
	ErrNotNumeric = errors.New("script result is not numeric")

	// ErrContentNil is returned when a compiled handle is missing.
	ErrContentNil = errors.New("executable content is nil")

	// ErrBytecodeMismatch is returned when a compiled handle's bytecode cannot
	// be asserted into the type the target machine requires.
	ErrBytecodeMismatch = errors.New("bytecode type does not match machine")

	// ErrEngineNotFound is returned by the registry when no engine is
	// registered for the requested name or extension.
	ErrEngineNotFound = errors.New("no script engine registered")
)
