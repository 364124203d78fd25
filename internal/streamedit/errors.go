package streamedit

import "errors"

var (
	// ErrIO wraps a read or write failure of the source or destination.
	ErrIO = errors.New("stream edit i/o failure")
	// ErrCancelled is returned when the context ends between chunks.
	ErrCancelled = errors.New("stream edit cancelled")
	// ErrInvalidFrameSize reports a frame size outside [1, MaxFrameSize].
	ErrInvalidFrameSize = errors.New("invalid frame size")
)
