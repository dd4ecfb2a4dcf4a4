package domain

import "errors"

var (
	// ErrMissingSourceFile is returned when a file of the report does not exist in the working copy.
	ErrMissingSourceFile = errors.New("source file not found")

	// ErrLineOutOfRange is returned when a coverage line lies beyond the blame output of its file.
	ErrLineOutOfRange = errors.New("line outside blame output")

	// ErrAggregateMismatch is returned when a parent's metrics differ from the sum of its children.
	ErrAggregateMismatch = errors.New("aggregate metrics mismatch")
)
