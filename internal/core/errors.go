package core

import "errors"

var (
	// ErrMissingKey means a write payload arrived without its natural key
	// or a required reference. This is a caller bug, not a data condition:
	// nothing is written.
	ErrMissingKey = errors.New("payload is missing a required key")

	// ErrNotFound means a lookup by natural key matched no row.
	ErrNotFound = errors.New("record not found")
)
