package repository

import "errors"

// Sentinel kinds for chart store errors.
var (
	ErrNotFound     = errors.New("chart not found")
	ErrInvalidLimit = errors.New("invalid chart list limit")
	ErrMissingID    = errors.New("chart has no analysis id")
)
