package keystore

//go:generate mockgen -source=interfaces.go -destination=../mock/key_store_mock.go -package=mock

import "context"

// KeyStore persists opaque key material blobs under caller-chosen
// identifiers. Implementations never interpret the blobs: wrapping,
// unwrapping and zeroing are the encryption service's concern.
//
// Identifiers are restricted to file-name-safe characters; the subsystem
// only ever passes hex digests and the literal master key name.
type KeyStore interface {
	// Load returns the blob stored under id, or [ErrKeyNotFound].
	Load(ctx context.Context, id string) ([]byte, error)

	// Store writes blob under id, replacing any previous value.
	Store(ctx context.Context, id string, blob []byte) error

	// Exists reports whether a blob is stored under id.
	Exists(ctx context.Context, id string) (bool, error)

	// Delete removes the blob stored under id. Deleting an absent id is
	// not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources. The store must not be used after.
	Close() error
}
