package models

import "errors"

var (
	// ErrNotFound is returned when a lookup by id or natural key misses.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied is returned when an ownership or role check fails.
	ErrAccessDenied = errors.New("access denied")

	// ErrValidation is returned when submitted or constructed data is invalid.
	ErrValidation = errors.New("validation failed")
)
