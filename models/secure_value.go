package models

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// Errors returned by [SecureValue] operations. Match with [errors.Is].
var (
	// ErrNilEncrypter is returned when a SecureValue is created without a cipher.
	ErrNilEncrypter = errors.New("nil encrypter")
	// ErrNilDecrypter is returned when a SecureValue is revealed without a cipher.
	ErrNilDecrypter = errors.New("nil decrypter")
)

// Encrypter seals a plaintext into an opaque envelope blob.
// Implemented by the encryption service's per-type context.
type Encrypter interface {
	Encrypt(plaintext []byte) ([]byte, error)
}

// Decrypter opens an envelope blob produced by the matching [Encrypter].
type Decrypter interface {
	Decrypt(blob []byte) ([]byte, error)
}

// SecureValue wraps the ciphertext of a single encrypted configuration
// field. The plaintext is never stored; it is recovered on demand through a
// [Decrypter] bound to the owning configuration type.
//
// JSON: a SecureValue marshals to {"EncryptedBase64": "..."} and unmarshals
// from either that object form or a bare base64 string, so hand-edited
// settings files remain loadable.
type SecureValue struct {
	encrypted []byte
}

type secureValueJSON struct {
	EncryptedBase64 string `json:"EncryptedBase64"`
}

// NewSecureValue seals plaintext with enc and returns the wrapping value.
func NewSecureValue(enc Encrypter, plaintext []byte) (SecureValue, error) {
	if enc == nil {
		return SecureValue{}, ErrNilEncrypter
	}

	blob, err := enc.Encrypt(plaintext)
	if err != nil {
		return SecureValue{}, fmt.Errorf("sealing secure value: %w", err)
	}

	return SecureValue{encrypted: blob}, nil
}

// SecureValueFromEncrypted wraps an already encrypted envelope blob, for
// example one read from a settings file.
func SecureValueFromEncrypted(blob []byte) SecureValue {
	return SecureValue{encrypted: bytes.Clone(blob)}
}

// IsZero reports whether the value carries no ciphertext.
func (v SecureValue) IsZero() bool {
	return len(v.encrypted) == 0
}

// Encrypted returns a copy of the envelope blob.
func (v SecureValue) Encrypted() []byte {
	return bytes.Clone(v.encrypted)
}

// Reveal decrypts the wrapped ciphertext with dec and returns the plaintext.
// Decryption failures are always returned, never defaulted.
func (v SecureValue) Reveal(dec Decrypter) ([]byte, error) {
	if dec == nil {
		return nil, ErrNilDecrypter
	}

	plaintext, err := dec.Decrypt(v.encrypted)
	if err != nil {
		return nil, fmt.Errorf("revealing secure value: %w", err)
	}

	return plaintext, nil
}

// RevealString is [SecureValue.Reveal] returning the plaintext as a string.
func (v SecureValue) RevealString(dec Decrypter) (string, error) {
	plaintext, err := v.Reveal(dec)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// String renders a redacted placeholder so encrypted material cannot leak
// through format verbs or log fields.
func (v SecureValue) String() string {
	if v.IsZero() {
		return "secure(empty)"
	}

	return fmt.Sprintf("secure(%d bytes)", len(v.encrypted))
}

// MarshalJSON writes the canonical object form {"EncryptedBase64": "..."}.
func (v SecureValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(secureValueJSON{
		EncryptedBase64: base64.StdEncoding.EncodeToString(v.encrypted),
	})
}

// UnmarshalJSON accepts the canonical object form, a bare base64 string, or
// null (which resets the value).
func (v *SecureValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = SecureValue{}
		return nil
	}

	var encoded string

	if trimmed[0] == '{' {
		var obj secureValueJSON
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return fmt.Errorf("decoding secure value object: %w", err)
		}
		encoded = obj.EncryptedBase64
	} else {
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return fmt.Errorf("decoding secure value string: %w", err)
		}
	}

	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decoding secure value base64: %w", err)
	}

	v.encrypted = blob

	return nil
}
