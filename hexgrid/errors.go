package hexgrid

import "errors"

var (
	// ErrUnknownAngle indicates a signature character outside {w,q,e,a,d}.
	ErrUnknownAngle = errors.New("hexgrid: unknown angle character")
	// ErrOutOfRange indicates a coordinate that cannot be packed into an EdgeKey.
	ErrOutOfRange = errors.New("hexgrid: coordinate out of packable range")
	// ErrDuplicateEdge indicates that a stroke retraces an earlier stroke.
	ErrDuplicateEdge = errors.New("hexgrid: stroke retraces an existing edge")
)
