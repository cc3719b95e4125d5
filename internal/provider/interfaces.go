// Package provider implements the file-backed configuration backends:
// a plain single-layer file, a user-overridable two-layer file and an
// encrypting two-layer file. A provider owns the on-disk representation
// and the in-memory settings table of every configuration type
// registered with it, and enforces token authorization on each call.
package provider

//go:generate mockgen -source=interfaces.go -destination=../mock/provider_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-config-keeper/models"
)

// Provider is one configuration backend. The service routes each
// registration to a provider by parameter kind and every subsequent
// operation to the provider owning the configuration type.
//
// Fire-and-forget variants (SaveValues, SaveConfigInstance,
// SaveDefaultFileContents) run in the background and surface failures
// only through [models.SaveErrorEvent]. The Context variants block,
// return the error and publish the same events.
type Provider interface {
	// Kind reports which registration parameter kind this provider serves.
	Kind() models.ParamsKind

	// AccessorKind reports the accessor capability registered types get.
	AccessorKind() models.AccessorKind

	// Register creates the registration for schema under the given
	// parameters: resolves file paths, seeds missing files with schema
	// defaults, builds the settings table and subscribes to file changes.
	Register(ctx context.Context, schema models.ConfigSchema, params models.RegistrationParams) error

	// Unregister tears the registration down: stops watching, waits for
	// in-flight operations and forgets the type. Token gating is the
	// service's concern.
	Unregister(typeName string) error

	// GetSetting returns the effective value of one field: the user
	// override when present, the default otherwise, coerced to the
	// field's declared type. Secure fields come back as
	// [models.SecureValue].
	GetSetting(typeName, key string, tokens models.TokenSet) (any, error)

	// GetDefaultSetting is GetSetting restricted to the default layer.
	GetDefaultSetting(typeName, key string, tokens models.TokenSet) (any, error)

	// SetSetting stores value as the field's user override, or clears
	// the override when value equals the default. In plain mode it
	// mutates the default layer directly.
	SetSetting(typeName, key string, value any, tokens models.TokenSet) error

	// SaveValues persists the registration's table in the background.
	SaveValues(typeName string, tokens models.TokenSet)

	// SaveValuesContext persists the registration's table: the default
	// layer document always, the user layer document (layered modes)
	// with only the overridden keys.
	SaveValuesContext(ctx context.Context, typeName string, tokens models.TokenSet) error

	// GetConfigInstance populates out (a struct pointer) with the
	// effective value of every readable field.
	GetConfigInstance(typeName string, tokens models.TokenSet, out any) error

	// SaveConfigInstance applies instance's fields as SetSetting calls
	// and persists, in the background.
	SaveConfigInstance(typeName string, tokens models.TokenSet, instance any)

	// SaveConfigInstanceContext applies instance's fields as SetSetting
	// calls and persists.
	SaveConfigInstanceContext(ctx context.Context, typeName string, tokens models.TokenSet, instance any) error

	// DefaultFileContents returns the raw bytes of the default-layer file.
	DefaultFileContents(typeName string, tokens models.TokenSet) ([]byte, error)

	// SaveDefaultFileContents overwrites the default-layer file in the
	// background after validating the JSON.
	SaveDefaultFileContents(typeName string, contents []byte, tokens models.TokenSet)

	// SaveDefaultFileContentsContext overwrites the default-layer file
	// with contents, rejects malformed JSON before any write, rebuilds
	// the settings table and publishes [models.ConfigReloadedEvent].
	SaveDefaultFileContentsContext(ctx context.Context, typeName string, contents []byte, tokens models.TokenSet) error

	// SealValue encrypts plaintext under the type's encryption context.
	// Only the secure provider supports it.
	SealValue(typeName string, plaintext []byte, tokens models.TokenSet) (models.SecureValue, error)

	// RevealValue decrypts a secure value sealed for the type. Only the
	// secure provider supports it.
	RevealValue(typeName string, value models.SecureValue, tokens models.TokenSet) ([]byte, error)

	// Close unregisters everything. Meant for subsystem teardown; it
	// skips token checks.
	Close() error
}

// Publisher receives the events providers raise. The configuration
// service implements it, fanning events out to its subscribers.
type Publisher interface {
	Publish(event models.Event)
}
