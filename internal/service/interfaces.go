package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-config-keeper/models"
)

// Accessor is the typed front over one registered configuration type,
// carrying the caller's token set into every call. Values move through
// the owning provider, so access checks, coercion and the collapse rule
// all apply exactly as they do on the service surface.
type Accessor interface {
	// TypeName reports which configuration type this accessor serves.
	TypeName() string

	// Get returns the effective value of key.
	Get(key string) (any, error)

	// Typed getters coerce the effective value to the requested Go type.
	// Requesting a secure field through one of them fails with
	// [provider.ErrSecureValueRequired].
	GetString(key string) (string, error)
	GetInt(key string) (int, error)
	GetInt64(key string) (int64, error)
	GetFloat(key string) (float64, error)
	GetBool(key string) (bool, error)
	GetDuration(key string) (time.Duration, error)
	GetStringSlice(key string) ([]string, error)

	// GetSecure returns the sealed value of an encrypted field.
	GetSecure(key string) (models.SecureValue, error)

	// Set stores value for key.
	Set(key string, value any) error

	// Save persists the type's settings in the background; SaveContext
	// blocks until the write finished.
	Save()
	SaveContext(ctx context.Context) error

	// Load populates out (a struct pointer) with every readable field.
	Load(out any) error

	// SaveInstance applies instance's fields and persists, in the
	// background; SaveInstanceContext blocks until done.
	SaveInstance(instance any)
	SaveInstanceContext(ctx context.Context, instance any) error
}

// SecureAccessor extends [Accessor] with plaintext convenience methods
// for encrypted fields. The service hands one out for every type
// registered with the secure provider.
type SecureAccessor interface {
	Accessor

	// GetSecureString reveals the plaintext of an encrypted field. An
	// unset field reveals as the empty string.
	GetSecureString(key string) (string, error)

	// SetSecureString seals plaintext for this type and stores it.
	SetSecureString(key, plaintext string) error
}
