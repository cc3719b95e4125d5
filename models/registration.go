package models

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned by [RegistrationParams.Validate] when the
// parameter combination does not match the declared kind. Match with
// [errors.Is].
var ErrInvalidParams = errors.New("invalid registration parameters")

// ParamsKind selects the provider a configuration type is registered with.
// The set is closed: each kind maps to exactly one provider flavor.
type ParamsKind uint8

const (
	// KindFile registers with the plain single-layer file provider.
	KindFile ParamsKind = iota + 1
	// KindUserFile registers with the user-overridable two-layer provider.
	KindUserFile
	// KindSecureFile registers with the encrypting two-layer provider.
	KindSecureFile
)

// String returns the lower-case name of the kind.
func (k ParamsKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindUserFile:
		return "user_file"
	case KindSecureFile:
		return "secure_file"
	default:
		return fmt.Sprintf("params_kind(%d)", uint8(k))
	}
}

// AccessorKind names the accessor capability a provider serves. The service
// uses it to pick the accessor factory for a registered type.
type AccessorKind string

const (
	// AccessorStandard serves plain typed reads and writes.
	AccessorStandard AccessorKind = "standard"
	// AccessorSecure additionally seals and reveals encrypted fields.
	AccessorSecure AccessorKind = "secure"
)

// RegistrationParams carries everything a provider needs to register one
// configuration type. The struct is a tagged variant: Kind states which
// provider flavor the parameters target and which optional fields apply.
type RegistrationParams struct {
	// Kind selects the provider flavor.
	Kind ParamsKind

	// Tokens is the capability set attached to the registration. Pass the
	// output of ResolveTokenSet (or the token service's CreateTokenSet) so
	// the defaulting rules are already applied.
	Tokens TokenSet

	// DefaultPath optionally overrides the default-layer file location.
	// Only absolute paths are honored; anything else falls back to the
	// conventional location under the configured root.
	DefaultPath string

	// UserPath optionally overrides the user-layer file location. Only
	// meaningful for KindUserFile and KindSecureFile.
	UserPath string

	// InstanceID distinguishes encryption contexts of multiple instances
	// of the same secure type. Only meaningful for KindSecureFile; empty
	// means the shared default instance.
	InstanceID string
}

// NewFileParams builds parameters for the plain file provider.
func NewFileParams(tokens TokenSet) RegistrationParams {
	return RegistrationParams{Kind: KindFile, Tokens: tokens}
}

// NewUserFileParams builds parameters for the user-overridable provider.
func NewUserFileParams(tokens TokenSet) RegistrationParams {
	return RegistrationParams{Kind: KindUserFile, Tokens: tokens}
}

// NewSecureFileParams builds parameters for the secure provider. instanceID
// may be empty for the default instance.
func NewSecureFileParams(tokens TokenSet, instanceID string) RegistrationParams {
	return RegistrationParams{Kind: KindSecureFile, Tokens: tokens, InstanceID: instanceID}
}

// Validate checks that the optional fields are consistent with the kind.
// All violations wrap [ErrInvalidParams].
func (p RegistrationParams) Validate() error {
	switch p.Kind {
	case KindFile:
		if p.UserPath != "" {
			return fmt.Errorf("%w: user path is not applicable to the plain file kind", ErrInvalidParams)
		}
		if p.InstanceID != "" {
			return fmt.Errorf("%w: instance id is not applicable to the plain file kind", ErrInvalidParams)
		}
	case KindUserFile:
		if p.InstanceID != "" {
			return fmt.Errorf("%w: instance id is only applicable to the secure kind", ErrInvalidParams)
		}
	case KindSecureFile:
		// All fields apply.
	default:
		return fmt.Errorf("%w: unknown kind %v", ErrInvalidParams, p.Kind)
	}

	return nil
}
