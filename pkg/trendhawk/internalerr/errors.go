package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNoSnapshot       = errors.New("no snapshot available")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrSourceFailed     = errors.New("source fetch failed")
)
