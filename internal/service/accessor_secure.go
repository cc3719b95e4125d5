package service

import (
	"github.com/MKhiriev/go-config-keeper/models"
)

// secureAccessor is the [SecureAccessor] implementation the service builds
// for types registered with the secure provider.
type secureAccessor struct {
	accessor
}

func newSecureAccessor(s *Service, typeName string, tokens models.TokenSet) Accessor {
	return &secureAccessor{accessor: accessor{service: s, typeName: typeName, tokens: tokens}}
}

// GetSecureString implements [SecureAccessor].
func (a *secureAccessor) GetSecureString(key string) (string, error) {
	sv, err := a.GetSecure(key)
	if err != nil {
		return "", err
	}
	if sv.IsZero() {
		// Nothing was ever stored; there is no ciphertext to open.
		return "", nil
	}
	plain, err := a.service.RevealValue(a.typeName, sv, a.tokens)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// SetSecureString implements [SecureAccessor].
func (a *secureAccessor) SetSecureString(key, plaintext string) error {
	sv, err := a.service.SealValue(a.typeName, []byte(plaintext), a.tokens)
	if err != nil {
		return err
	}
	return a.Set(key, sv)
}
