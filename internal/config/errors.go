package config

import "errors"

// Validation errors returned by [Options.validate] when the merged options
// are incomplete or inconsistent. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrInvalidRoot indicates a missing settings root directory.
	ErrInvalidRoot = errors.New("invalid root directory")

	// ErrInvalidDebounce indicates a non-positive reload debounce interval.
	ErrInvalidDebounce = errors.New("invalid debounce interval")

	// ErrInvalidKeyStore indicates an unknown key store kind or a sqlite
	// kind without a data source name.
	ErrInvalidKeyStore = errors.New("invalid key store configuration")

	// ErrInvalidAlgorithm indicates an unsupported envelope algorithm name.
	ErrInvalidAlgorithm = errors.New("invalid envelope algorithm")
)
