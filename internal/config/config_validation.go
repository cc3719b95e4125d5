package config

import "path/filepath"

// normalize resolves the defaults that depend on other fields and cannot be
// expressed statically: the file key store directory lives under Root unless
// it was set explicitly.
func (o *Options) normalize() {
	if o.KeyStoreKind == KeyStoreFile && o.KeyStorePath == "" {
		o.KeyStorePath = filepath.Join(o.Root, "keys")
	}
}

// validate checks that the final merged [Options] satisfy all subsystem
// invariants before any provider or key service is constructed.
//
// Returns nil if the options are valid, or one of the sentinel errors from
// errors.go otherwise.
func (o *Options) validate() error {
	if o.Root == "" {
		return ErrInvalidRoot
	}

	if o.Debounce <= 0 {
		return ErrInvalidDebounce
	}

	switch o.KeyStoreKind {
	case KeyStoreFile:
		if o.KeyStorePath == "" {
			return ErrInvalidKeyStore
		}
	case KeyStoreSQLite:
		if o.KeyStoreDSN == "" {
			return ErrInvalidKeyStore
		}
	default:
		return ErrInvalidKeyStore
	}

	switch o.Algorithm {
	case AlgorithmAESGCM, AlgorithmChaCha20:
	default:
		return ErrInvalidAlgorithm
	}

	return nil
}
