package analysis

import "errors"

// Sentinel kinds for analysis decoding.
var (
	ErrMissingID      = errors.New("missing analysis id")
	ErrInvalidID      = errors.New("invalid analysis id")
	ErrUnknownSection = errors.New("unknown section type")
	ErrDecode         = errors.New("decode analysis failed")
)
