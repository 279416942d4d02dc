package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrTooManyInputs = errors.New("too many plot inputs")
)
