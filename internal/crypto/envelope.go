package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// Algorithm selects the AEAD cipher used to seal an envelope. The value
// doubles as the envelope marker byte, so a blob is self-describing and
// can be opened regardless of the algorithm currently configured.
type Algorithm byte

const (
	// AlgorithmAESGCM seals envelopes with AES-256-GCM.
	AlgorithmAESGCM Algorithm = 0x11
	// AlgorithmChaCha20 seals envelopes with ChaCha20-Poly1305.
	AlgorithmChaCha20 Algorithm = 0x21
)

const (
	// KeySize is the size of every symmetric key in the hierarchy.
	KeySize = 32
	// NonceSize is the envelope nonce size. Both supported ciphers use
	// 12-byte nonces.
	NonceSize = 12
	// TagSize is the authentication tag size. Both supported ciphers
	// use 16-byte tags.
	TagSize = 16

	headerSize = 1 + NonceSize + TagSize
)

// ParseAlgorithm maps a configured algorithm name to its marker.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "aes-gcm":
		return AlgorithmAESGCM, nil
	case "chacha20poly1305":
		return AlgorithmChaCha20, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

func (a Algorithm) String() string {
	switch a {
	case AlgorithmAESGCM:
		return "aes-gcm"
	case AlgorithmChaCha20:
		return "chacha20poly1305"
	default:
		return fmt.Sprintf("algorithm(0x%02x)", byte(a))
	}
}

func aeadFor(alg Algorithm, key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeySize, len(key), KeySize)
	}
	switch alg {
	case AlgorithmAESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("create cipher: %w", err)
		}
		return cipher.NewGCM(block)
	case AlgorithmChaCha20:
		return chacha20poly1305.New(key)
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownEnvelope, byte(alg))
	}
}

// Seal encrypts plaintext under key and packs the result into an
// envelope: marker(1) || nonce(12) || tag(16) || ciphertext.
func Seal(alg Algorithm, key, plaintext []byte) ([]byte, error) {
	aead, err := aeadFor(alg, key)
	if err != nil {
		return nil, err
	}

	// 1. Generate a fresh random nonce.
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	// 2. Encrypt. The AEAD appends the tag after the ciphertext.
	sealed := aead.Seal(nil, nonce, plaintext, nil)
	ct, tag := sealed[:len(sealed)-TagSize], sealed[len(sealed)-TagSize:]

	// 3. Pack with the tag ahead of the ciphertext.
	blob := make([]byte, 0, headerSize+len(ct))
	blob = append(blob, byte(alg))
	blob = append(blob, nonce...)
	blob = append(blob, tag...)
	blob = append(blob, ct...)
	return blob, nil
}

// Open unpacks an envelope produced by Seal and decrypts it. The cipher
// is chosen by the marker byte, not by configuration.
func Open(key, blob []byte) ([]byte, error) {
	if len(blob) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrEnvelopeTooShort, len(blob))
	}
	alg := Algorithm(blob[0])
	if alg != AlgorithmAESGCM && alg != AlgorithmChaCha20 {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownEnvelope, blob[0])
	}
	aead, err := aeadFor(alg, key)
	if err != nil {
		return nil, err
	}

	nonce := blob[1 : 1+NonceSize]
	tag := blob[1+NonceSize : headerSize]
	ct := blob[headerSize:]

	// Reassemble ciphertext || tag, the layout the AEAD expects.
	sealed := make([]byte, 0, len(ct)+TagSize)
	sealed = append(sealed, ct...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plaintext, nil
}
