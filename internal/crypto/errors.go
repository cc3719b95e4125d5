package crypto

import "errors"

var (
	// ErrUnknownAlgorithm is returned when an algorithm name is not
	// one of the supported envelope ciphers.
	ErrUnknownAlgorithm = errors.New("unknown encryption algorithm")
	// ErrUnknownEnvelope is returned when a blob does not start with a
	// recognized envelope marker byte.
	ErrUnknownEnvelope = errors.New("unknown envelope format")
	// ErrEnvelopeTooShort is returned when a blob is shorter than the
	// fixed envelope header.
	ErrEnvelopeTooShort = errors.New("envelope too short")
	// ErrInvalidKeySize is returned when a key is not exactly KeySize
	// bytes long.
	ErrInvalidKeySize = errors.New("invalid key size")
	// ErrDecryptFailed is returned when authenticated decryption
	// rejects a blob. The cause is deliberately not distinguished.
	ErrDecryptFailed = errors.New("decryption failed")
	// ErrPassphraseRequired is returned when the stored master key is
	// passphrase-wrapped but no passphrase was configured.
	ErrPassphraseRequired = errors.New("passphrase required to unwrap master key")
	// ErrContextClosed is returned when an encryption context is used
	// after the key service released its key material.
	ErrContextClosed = errors.New("encryption context closed")
)
