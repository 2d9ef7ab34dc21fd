package patch

import "errors"

var (
	// ErrNoPlaceholder means no recognized assertion call covers the line.
	ErrNoPlaceholder = errors.New("no snapshot placeholder at line")

	// ErrAmbiguousPlaceholder means more than one recognized assertion call
	// covers the line.
	ErrAmbiguousPlaceholder = errors.New("ambiguous snapshot placeholder")

	// ErrNotLiteral means the recorded argument is not a plain string
	// literal, so there is no span to rewrite.
	ErrNotLiteral = errors.New("recorded snapshot is not a string literal")

	// ErrOverlappingEdits means two edits claim overlapping byte spans of
	// one file.
	ErrOverlappingEdits = errors.New("overlapping edits")
)
