package patterncache

import "errors"

var (
	// ErrMalformed indicates a text line that is not "number,pattern".
	ErrMalformed = errors.New("patterncache: malformed entry")

	// ErrClosed indicates use of a Store after Close.
	ErrClosed = errors.New("patterncache: store is closed")

	// ErrStale indicates a stored pattern that does not draw its number.
	ErrStale = errors.New("patterncache: stale pattern")

	// ErrUnknownBackend indicates a backend name outside Backends.
	ErrUnknownBackend = errors.New("patterncache: unknown backend")
)
