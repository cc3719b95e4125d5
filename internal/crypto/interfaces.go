package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/key_service_mock.go -package=mock

import "context"

// KeyService owns the key hierarchy: one lazily created master key plus
// one data key per (typeName, instanceID) pair, each wrapped under the
// master key at rest. Callers never see key bytes; they receive an
// [EncryptionContext] bound to one data key.
type KeyService interface {
	// Context returns the encryption context for the given configuration
	// type and instance, creating and persisting its data key on first
	// use. An empty instanceID selects the default instance. Contexts
	// are cached, so repeated calls return the same value.
	Context(ctx context.Context, typeName, instanceID string) (*EncryptionContext, error)

	// ProvisionMaster makes sure the master key exists at rest in the
	// form the current options call for, rewrapping a raw-stored key
	// when a passphrase is configured. It reports whether a new key was
	// minted.
	ProvisionMaster(ctx context.Context) (created bool, err error)

	// Close zeroes the master key and every cached data key. Contexts
	// handed out earlier fail with [ErrContextClosed] afterwards. The
	// underlying key store is not closed; it belongs to the caller.
	Close() error
}
