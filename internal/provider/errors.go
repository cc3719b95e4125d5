package provider

import "errors"

var (
	// ErrConfigNotRegistered is returned when an operation names a
	// configuration type this provider does not own.
	ErrConfigNotRegistered = errors.New("configuration type not registered")
	// ErrAlreadyRegistered is returned when a configuration type is
	// registered a second time.
	ErrAlreadyRegistered = errors.New("configuration type already registered")
	// ErrSettingNotFound is returned when a key is not part of the
	// registered schema.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSecureValueRequired is returned when a secure field is written
	// with a plain value, or a secure operation targets a plain type.
	// Secure fields travel only as [models.SecureValue].
	ErrSecureValueRequired = errors.New("secure field requires a secure value")
	// ErrMalformedContent is returned when a direct file-content
	// overwrite is not valid JSON. Nothing is written in that case.
	ErrMalformedContent = errors.New("malformed file contents")
)
