package crypto

import "sync"

// EncryptionContext binds the envelope codec to the data key of one
// (typeName, instanceID) pair. It satisfies [models.Encrypter] and
// [models.Decrypter], so secure values can be constructed from it
// directly.
type EncryptionContext struct {
	id  string
	alg Algorithm

	mu  sync.RWMutex
	key []byte
}

// ID returns the hex key-store identifier of the underlying data key.
func (c *EncryptionContext) ID() string {
	return c.id
}

// Encrypt seals plaintext under the context's data key.
func (c *EncryptionContext) Encrypt(plaintext []byte) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.key == nil {
		return nil, ErrContextClosed
	}
	return Seal(c.alg, c.key, plaintext)
}

// Decrypt opens a blob sealed under the context's data key. The cipher
// is taken from the envelope marker, so blobs written under a previous
// algorithm setting remain readable.
func (c *EncryptionContext) Decrypt(blob []byte) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.key == nil {
		return nil, ErrContextClosed
	}
	return Open(c.key, blob)
}

func (c *EncryptionContext) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	ZeroBytes(c.key)
	c.key = nil
}
