package common

import "time"

const (
	// MaxRequestBody limits JSON request bodies.
	MaxRequestBody = 1 << 20
	// DefaultPageLimit is used when ?limit is missing or invalid.
	DefaultPageLimit = 20
	// MaxPageLimit caps ?limit.
	MaxPageLimit = 100
	// RequestTimeout bounds every handler's store calls.
	RequestTimeout = 5 * time.Second
)
