// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/argon2"

	"github.com/MKhiriev/go-config-keeper/internal/keystore"
	"github.com/MKhiriev/go-config-keeper/internal/logger"
)

const (
	// MasterKeyID is the key-store identifier of the master key blob.
	// Data key identifiers are hex digests, so the name cannot collide.
	MasterKeyID = "master"

	// defaultInstance substitutes for an empty instance identifier.
	defaultInstance = "default"

	saltSize = 16
)

// keyService is the private implementation of [KeyService].
type keyService struct {
	store      keystore.KeyStore
	alg        Algorithm
	passphrase []byte
	logger     *logger.Logger

	// Argon2id tuning parameters for the passphrase KEK. Stored in the
	// struct so they can be adjusted per deployment target.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32

	mu       sync.Mutex
	master   []byte
	contexts map[string]*EncryptionContext
}

// NewKeyService constructs a [KeyService] on top of the given key store.
// algorithm names the cipher used for new envelopes. A non-empty
// passphrase wraps the master key at rest under an Argon2id-derived KEK
// with the parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewKeyService(store keystore.KeyStore, algorithm, passphrase string, log *logger.Logger) (KeyService, error) {
	if store == nil {
		return nil, errors.New("key store is nil")
	}
	alg, err := ParseAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &keyService{
		store:        store,
		alg:          alg,
		passphrase:   []byte(passphrase),
		logger:       log,
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
		contexts:     make(map[string]*EncryptionContext),
	}, nil
}

// ContextKeyID derives the key-store identifier of the data key for a
// (typeName, instanceID) pair. The digest keeps arbitrary type names out
// of file names and never collides across pairs.
func ContextKeyID(typeName, instanceID string) string {
	if instanceID == "" {
		instanceID = defaultInstance
	}
	sum := sha256.Sum256([]byte(typeName + "_" + instanceID))
	return hex.EncodeToString(sum[:])
}

// Context implements [KeyService].
func (k *keyService) Context(ctx context.Context, typeName, instanceID string) (*EncryptionContext, error) {
	log := k.logger.GetChildLogger()
	id := ContextKeyID(typeName, instanceID)

	k.mu.Lock()
	defer k.mu.Unlock()
	if k.contexts == nil {
		return nil, ErrContextClosed
	}

	// 1. Reuse a cached context if one exists.
	if c, ok := k.contexts[id]; ok {
		return c, nil
	}

	// 2. Make sure the master key is available.
	master, err := k.masterKeyLocked(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Load the wrapped data key, or mint one on first use.
	var key []byte
	blob, err := k.store.Load(ctx, id)
	switch {
	case err == nil:
		if key, err = Open(master, blob); err != nil {
			return nil, fmt.Errorf("unwrap data key %s: %w", id, err)
		}
	case errors.Is(err, keystore.ErrKeyNotFound):
		if key, err = k.createDataKeyLocked(ctx, id, master); err != nil {
			return nil, err
		}
		log.Info().
			Str("func", "keyService.Context").
			Str("key_id", id).
			Msg("created data key")
	default:
		return nil, fmt.Errorf("load data key %s: %w", id, err)
	}

	c := &EncryptionContext{id: id, alg: k.alg, key: key}
	k.contexts[id] = c
	return c, nil
}

// ProvisionMaster implements [KeyService].
func (k *keyService) ProvisionMaster(ctx context.Context) (bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.contexts == nil {
		return false, ErrContextClosed
	}

	blob, err := k.store.Load(ctx, MasterKeyID)
	switch {
	case errors.Is(err, keystore.ErrKeyNotFound):
		master, err := k.createMaster(ctx)
		if err != nil {
			return false, err
		}
		k.master = master
		k.logger.Info().
			Str("func", "keyService.ProvisionMaster").
			Msg("created master key")
		return true, nil
	case err != nil:
		return false, fmt.Errorf("load master key: %w", err)
	}

	master, err := k.unwrapMaster(blob)
	if err != nil {
		return false, err
	}
	k.master = master

	// A key stored raw while a passphrase is configured gets rewrapped.
	if len(k.passphrase) > 0 && len(blob) == KeySize {
		wrapped, err := k.wrapMaster(master)
		if err != nil {
			return false, err
		}
		if err := k.store.Store(ctx, MasterKeyID, wrapped); err != nil {
			return false, fmt.Errorf("store master key: %w", err)
		}
		k.logger.Info().
			Str("func", "keyService.ProvisionMaster").
			Msg("rewrapped master key under passphrase")
	}
	return false, nil
}

// createDataKeyLocked mints a fresh data key and persists it wrapped
// under the master key. Callers hold k.mu.
func (k *keyService) createDataKeyLocked(ctx context.Context, id string, master []byte) ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate data key: %w", err)
	}
	wrapped, err := Seal(k.alg, master, key)
	if err != nil {
		return nil, fmt.Errorf("wrap data key: %w", err)
	}
	if err := k.store.Store(ctx, id, wrapped); err != nil {
		ZeroBytes(key)
		return nil, fmt.Errorf("store data key %s: %w", id, err)
	}
	return key, nil
}

// masterKeyLocked returns the master key, loading or creating it on
// first use. Callers hold k.mu; the nil check doubles as the fast path
// once the key is cached.
func (k *keyService) masterKeyLocked(ctx context.Context) ([]byte, error) {
	if k.master != nil {
		return k.master, nil
	}

	blob, err := k.store.Load(ctx, MasterKeyID)
	switch {
	case err == nil:
		master, err := k.unwrapMaster(blob)
		if err != nil {
			return nil, err
		}
		k.master = master
	case errors.Is(err, keystore.ErrKeyNotFound):
		master, err := k.createMaster(ctx)
		if err != nil {
			return nil, err
		}
		k.master = master
		k.logger.Info().
			Str("func", "keyService.masterKeyLocked").
			Msg("created master key")
	default:
		return nil, fmt.Errorf("load master key: %w", err)
	}
	return k.master, nil
}

// createMaster mints the master key and persists it, wrapped under the
// passphrase KEK when one is configured and raw otherwise.
func (k *keyService) createMaster(ctx context.Context) ([]byte, error) {
	master := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, master); err != nil {
		return nil, fmt.Errorf("generate master key: %w", err)
	}

	blob := master
	if len(k.passphrase) > 0 {
		wrapped, err := k.wrapMaster(master)
		if err != nil {
			ZeroBytes(master)
			return nil, err
		}
		blob = wrapped
	}
	if err := k.store.Store(ctx, MasterKeyID, blob); err != nil {
		ZeroBytes(master)
		return nil, fmt.Errorf("store master key: %w", err)
	}
	return master, nil
}

// wrapMaster seals the master key under the passphrase KEK. Layout:
// salt(16) || envelope.
func (k *keyService) wrapMaster(master []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	kek := argon2.IDKey(k.passphrase, salt, k.argonTime, k.argonMemory, k.argonThreads, k.argonKeyLen)
	defer ZeroBytes(kek)

	env, err := Seal(k.alg, kek, master)
	if err != nil {
		return nil, fmt.Errorf("wrap master key: %w", err)
	}
	return append(salt, env...), nil
}

// unwrapMaster recovers the master key from its stored blob. A raw
// 32-byte blob is the unwrapped form; anything longer carries a salt
// and a passphrase-wrapped envelope.
func (k *keyService) unwrapMaster(blob []byte) ([]byte, error) {
	if len(blob) == KeySize {
		if len(k.passphrase) > 0 {
			// A passphrase was configured after the key was created
			// raw. Keep working; rewrapping is keygen's job.
			k.logger.Warn().
				Str("func", "keyService.unwrapMaster").
				Msg("master key stored raw despite configured passphrase")
		}
		master := make([]byte, KeySize)
		copy(master, blob)
		return master, nil
	}
	if len(k.passphrase) == 0 {
		return nil, ErrPassphraseRequired
	}
	if len(blob) < saltSize+headerSize {
		return nil, fmt.Errorf("%w: master key blob", ErrEnvelopeTooShort)
	}

	salt, env := blob[:saltSize], blob[saltSize:]
	kek := argon2.IDKey(k.passphrase, salt, k.argonTime, k.argonMemory, k.argonThreads, k.argonKeyLen)
	defer ZeroBytes(kek)

	master, err := Open(kek, env)
	if err != nil {
		return nil, fmt.Errorf("unwrap master key: %w", err)
	}
	return master, nil
}

// Close implements [KeyService].
func (k *keyService) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, c := range k.contexts {
		c.close()
	}
	k.contexts = nil
	ZeroBytes(k.master)
	k.master = nil
	ZeroBytes(k.passphrase)
	return nil
}
