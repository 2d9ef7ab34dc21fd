package specimen

import "errors"

var (
	// ErrInvalidMode indicates an unrecognized update mode value.
	ErrInvalidMode = errors.New("invalid update mode")

	// ErrNoCallSite indicates the assertion could not resolve its caller's
	// source location.
	ErrNoCallSite = errors.New("could not determine assertion call site")
)
