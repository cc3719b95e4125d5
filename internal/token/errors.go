package token

import "errors"

// Sentinel errors returned by the token service. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrNotAuthorized is returned when the permission algorithm denies an
	// access attempt. The error never reveals which rule denied.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrTokenGeneration is returned when the platform randomness source
	// cannot produce a fresh token.
	ErrTokenGeneration = errors.New("token generation failed")
)
