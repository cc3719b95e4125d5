// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cast"

	"github.com/MKhiriev/go-config-keeper/internal/config"
	"github.com/MKhiriev/go-config-keeper/internal/crypto"
	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/internal/store"
	"github.com/MKhiriev/go-config-keeper/internal/token"
	"github.com/MKhiriev/go-config-keeper/models"
)

// providerMode tags the behavior variant of a fileProvider. Variant
// differences are explicit branches on this tag; there is no dispatch
// chain to override.
type providerMode uint8

const (
	modePlain providerMode = iota + 1
	modeUserOverridable
	modeSecureUser
)

func (m providerMode) String() string {
	switch m {
	case modePlain:
		return "plain"
	case modeUserOverridable:
		return "user_overridable"
	case modeSecureUser:
		return "secure_user"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// registration is the live state of one configuration type: the
// normalized schema, resolved tokens, file paths and the settings table,
// all guarded by one reader/writer lock. Different types never share a
// lock.
type registration struct {
	mu          sync.RWMutex
	schema      models.ConfigSchema
	tokens      models.TokenSet
	instanceID  string
	defaultPath string
	userPath    string
	settings    map[string]*models.SettingRecord
	enc         *crypto.EncryptionContext
	watch       *store.Watch
	removed     bool
}

// fileProvider is the single implementation behind the three provider
// constructors.
type fileProvider struct {
	mode    providerMode
	opts    config.Options
	files   *store.FileSource
	watcher *store.Watcher
	keys    crypto.KeyService
	tokens  token.TokenService
	events  Publisher
	logger  *logger.Logger

	mu            sync.RWMutex
	registrations map[string]*registration
}

// nopPublisher drops events when no sink is configured.
type nopPublisher struct{}

func (nopPublisher) Publish(models.Event) {}

// NewPlainFileProvider constructs the single-layer provider: one default
// file per type, no user overrides.
func NewPlainFileProvider(opts config.Options, files *store.FileSource, watcher *store.Watcher, tokens token.TokenService, events Publisher, log *logger.Logger) Provider {
	return newFileProvider(modePlain, opts, files, watcher, nil, tokens, events, log)
}

// NewUserFileProvider constructs the two-layer provider: a default file
// plus a user override file per type.
func NewUserFileProvider(opts config.Options, files *store.FileSource, watcher *store.Watcher, tokens token.TokenService, events Publisher, log *logger.Logger) Provider {
	return newFileProvider(modeUserOverridable, opts, files, watcher, nil, tokens, events, log)
}

// NewSecureFileProvider constructs the encrypting two-layer provider.
// Fields marked secure are sealed under a per-(type, instance)
// encryption context before they touch disk.
func NewSecureFileProvider(opts config.Options, files *store.FileSource, watcher *store.Watcher, keys crypto.KeyService, tokens token.TokenService, events Publisher, log *logger.Logger) (Provider, error) {
	if keys == nil {
		return nil, errors.New("secure provider requires a key service")
	}
	return newFileProvider(modeSecureUser, opts, files, watcher, keys, tokens, events, log), nil
}

func newFileProvider(mode providerMode, opts config.Options, files *store.FileSource, watcher *store.Watcher, keys crypto.KeyService, tokens token.TokenService, events Publisher, log *logger.Logger) *fileProvider {
	if log == nil {
		log = logger.Nop()
	}
	if files == nil {
		files = store.NewFileSource(log)
	}
	if tokens == nil {
		tokens = token.NewTokenService(log)
	}
	if events == nil {
		events = nopPublisher{}
	}
	return &fileProvider{
		mode:          mode,
		opts:          opts,
		files:         files,
		watcher:       watcher,
		keys:          keys,
		tokens:        tokens,
		events:        events,
		logger:        log,
		registrations: make(map[string]*registration),
	}
}

// Kind implements [Provider].
func (p *fileProvider) Kind() models.ParamsKind {
	switch p.mode {
	case modeUserOverridable:
		return models.KindUserFile
	case modeSecureUser:
		return models.KindSecureFile
	default:
		return models.KindFile
	}
}

// AccessorKind implements [Provider].
func (p *fileProvider) AccessorKind() models.AccessorKind {
	if p.mode == modeSecureUser {
		return models.AccessorSecure
	}
	return models.AccessorStandard
}

// Register implements [Provider].
func (p *fileProvider) Register(ctx context.Context, schema models.ConfigSchema, params models.RegistrationParams) error {
	log := p.logger.GetChildLogger()

	if err := schema.Validate(); err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return err
	}
	if params.Kind != p.Kind() {
		return fmt.Errorf("%w: kind %s is not served by the %s provider", models.ErrInvalidParams, params.Kind, p.mode)
	}
	normalized, err := p.normalizeSchema(schema)
	if err != nil {
		return err
	}
	typeName := normalized.TypeName

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.registrations[typeName]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, typeName)
	}

	reg := &registration{
		schema:      normalized,
		tokens:      models.ResolveTokenSet(params.Tokens.Owner, params.Tokens.Read, params.Tokens.Write),
		instanceID:  params.InstanceID,
		defaultPath: p.resolvePath(params.DefaultPath, typeName, "default.json"),
	}
	if p.mode != modePlain {
		reg.userPath = p.resolvePath(params.UserPath, typeName, p.userSuffix())
	}
	if p.mode == modeSecureUser {
		enc, err := p.keys.Context(ctx, typeName, params.InstanceID)
		if err != nil {
			return fmt.Errorf("creating encryption context for %s: %w", typeName, err)
		}
		reg.enc = enc
	}

	if err := p.seedFiles(reg); err != nil {
		return err
	}
	settings, err := p.buildSettings(reg)
	if err != nil {
		return err
	}
	reg.settings = settings

	if p.watcher != nil {
		paths := []string{reg.defaultPath}
		if reg.userPath != "" {
			paths = append(paths, reg.userPath)
		}
		watch, err := p.watcher.Watch(paths, func() { p.reload(typeName) })
		if err != nil {
			return fmt.Errorf("watching %s files: %w", typeName, err)
		}
		reg.watch = watch
	}

	p.registrations[typeName] = reg
	log.Info().
		Str("func", "fileProvider.Register").
		Str("config_type", typeName).
		Str("mode", p.mode.String()).
		Str("path", reg.defaultPath).
		Msg("registered configuration type")
	return nil
}

// normalizeSchema copies the schema and coerces every declared default
// to its field's canonical type. A default that cannot be coerced is a
// declaration bug and rejects the registration.
func (p *fileProvider) normalizeSchema(schema models.ConfigSchema) (models.ConfigSchema, error) {
	fields := make([]models.FieldSpec, len(schema.Fields))
	copy(fields, schema.Fields)

	for i := range fields {
		f := &fields[i]
		if f.Secure {
			if p.mode != modeSecureUser {
				return models.ConfigSchema{}, fmt.Errorf("%w: secure field %q requires the secure provider", models.ErrInvalidSchema, f.Name)
			}
			if f.Default != nil {
				if _, err := models.NormalizeValue(models.FieldString, f.Default); err != nil {
					return models.ConfigSchema{}, fmt.Errorf("%w: secure field %q default must be a string", models.ErrInvalidSchema, f.Name)
				}
			}
			continue
		}
		if f.Default == nil {
			continue
		}
		norm, err := models.NormalizeValue(f.Type, f.Default)
		if err != nil {
			return models.ConfigSchema{}, fmt.Errorf("%w: default for field %q is not %s", models.ErrInvalidSchema, f.Name, f.Type)
		}
		f.Default = norm
	}
	return models.ConfigSchema{TypeName: schema.TypeName, Fields: fields}, nil
}

// resolvePath honors an explicit absolute path and otherwise falls back
// to the conventional {root}/{TypeName}.{suffix} location.
func (p *fileProvider) resolvePath(explicit, typeName, suffix string) string {
	if explicit != "" && filepath.IsAbs(explicit) {
		return explicit
	}
	return filepath.Join(p.opts.Root, typeName+"."+suffix)
}

func (p *fileProvider) userSuffix() string {
	if p.mode == modeSecureUser {
		return "secure.json"
	}
	return "user.json"
}

func (p *fileProvider) filePerm() os.FileMode {
	if p.mode == modeSecureUser {
		return 0o600
	}
	return 0o644
}

// seedFiles creates missing layer files: the default layer with the
// schema's declared defaults (secure defaults sealed first), the user
// layer empty.
func (p *fileProvider) seedFiles(reg *registration) error {
	seed := store.Document{}
	for _, f := range reg.schema.Fields {
		if f.Default == nil {
			continue
		}
		value := f.Default
		if f.Secure {
			sv, err := models.NewSecureValue(reg.enc, []byte(cast.ToString(f.Default)))
			if err != nil {
				return fmt.Errorf("sealing default for %s.%s: %w", reg.schema.TypeName, f.Name, err)
			}
			value = sv
		}
		raw, err := json.Marshal(models.EncodeValue(f.Type, value))
		if err != nil {
			return fmt.Errorf("encoding default for %s.%s: %w", reg.schema.TypeName, f.Name, err)
		}
		seed[f.Name] = raw
	}

	if _, err := p.files.Ensure(reg.defaultPath, seed, p.filePerm()); err != nil {
		return err
	}
	if reg.userPath != "" {
		if _, err := p.files.Ensure(reg.userPath, store.Document{}, p.filePerm()); err != nil {
			return err
		}
	}
	return nil
}

// buildSettings reads the layer files and assembles a fresh settings
// table. A value that fails to decode falls back to the schema default
// and is logged; only an unreadable document fails the build.
func (p *fileProvider) buildSettings(reg *registration) (map[string]*models.SettingRecord, error) {
	defaultDoc, err := p.files.Load(reg.defaultPath)
	if err != nil {
		return nil, err
	}
	userDoc := store.Document{}
	if reg.userPath != "" {
		if userDoc, err = p.files.Load(reg.userPath); err != nil {
			if !errors.Is(err, store.ErrFileNotFound) {
				return nil, err
			}
			// A deleted user file simply means no overrides.
			userDoc = store.Document{}
		}
	}

	log := p.logger.GetChildLogger()
	settings := make(map[string]*models.SettingRecord, len(reg.schema.Fields))
	for _, f := range reg.schema.Fields {
		rec := &models.SettingRecord{
			Type:         f.Type,
			DefaultValue: schemaDefault(f),
			ReadAllowed:  !f.WriteOnly,
			WriteAllowed: !f.ReadOnly,
		}
		if raw, ok := defaultDoc[f.Name]; ok {
			if v, err := decodeField(f, raw); err != nil {
				log.Warn().Err(err).
					Str("func", "fileProvider.buildSettings").
					Str("config_type", reg.schema.TypeName).
					Str("key", f.Name).
					Msg("undecodable default value, using schema default")
			} else {
				rec.DefaultValue = v
			}
		}
		if raw, ok := userDoc[f.Name]; ok {
			if v, err := decodeField(f, raw); err != nil {
				log.Warn().Err(err).
					Str("func", "fileProvider.buildSettings").
					Str("config_type", reg.schema.TypeName).
					Str("key", f.Name).
					Msg("undecodable user value, ignoring override")
			} else if !models.ValuesEqual(f.Type, v, rec.DefaultValue) {
				rec.UserValue = v
			}
		}
		settings[f.Name] = rec
	}
	return settings, nil
}

// schemaDefault is the fallback default when the layer file does not
// mention the field. Secure defaults exist only in sealed form, so their
// fallback is the zero secure value.
func schemaDefault(f models.FieldSpec) any {
	if f.Secure {
		return models.SecureValue{}
	}
	return f.Default
}

// decodeField decodes one raw document value into its stored form.
func decodeField(f models.FieldSpec, raw json.RawMessage) (any, error) {
	if f.Secure {
		var sv models.SecureValue
		if err := json.Unmarshal(raw, &sv); err != nil {
			return nil, err
		}
		return sv, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// reload rebuilds the settings table after the watcher reports a settled
// file change. A failing rebuild keeps the previous table.
func (p *fileProvider) reload(typeName string) {
	log := p.logger.GetChildLogger()
	reg := p.lookup(typeName)
	if reg == nil {
		return
	}

	reg.mu.Lock()
	if reg.removed {
		reg.mu.Unlock()
		return
	}
	settings, err := p.buildSettings(reg)
	if err == nil {
		reg.settings = settings
	}
	reg.mu.Unlock()

	if err != nil {
		log.Warn().Err(err).
			Str("func", "fileProvider.reload").
			Str("config_type", typeName).
			Msg("reload failed, keeping previous values")
		return
	}
	p.events.Publish(models.ConfigReloadedEvent{ConfigType: typeName})
	log.Info().
		Str("func", "fileProvider.reload").
		Str("config_type", typeName).
		Msg("configuration reloaded")
}

func (p *fileProvider) lookup(typeName string) *registration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.registrations[typeName]
}

// fetch is lookup with the not-registered error attached.
func (p *fileProvider) fetch(typeName string) (*registration, error) {
	if reg := p.lookup(typeName); reg != nil {
		return reg, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrConfigNotRegistered, typeName)
}

// Unregister implements [Provider].
func (p *fileProvider) Unregister(typeName string) error {
	p.mu.Lock()
	reg, ok := p.registrations[typeName]
	if !ok {
		p.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrConfigNotRegistered, typeName)
	}
	delete(p.registrations, typeName)
	p.mu.Unlock()

	p.teardown(reg)
	p.logger.Info().
		Str("func", "fileProvider.Unregister").
		Str("config_type", typeName).
		Msg("unregistered configuration type")
	return nil
}

// teardown waits for in-flight operations on the registration, marks it
// dead and stops its watch.
func (p *fileProvider) teardown(reg *registration) {
	reg.mu.Lock()
	reg.removed = true
	watch := reg.watch
	reg.watch = nil
	reg.mu.Unlock()

	if watch != nil {
		_ = watch.Cancel()
	}
}

// Close implements [Provider].
func (p *fileProvider) Close() error {
	p.mu.Lock()
	regs := p.registrations
	p.registrations = make(map[string]*registration)
	p.mu.Unlock()

	for _, reg := range regs {
		p.teardown(reg)
	}
	return nil
}

func (p *fileProvider) authorizeRead(reg *registration, tokens models.TokenSet) error {
	return p.tokens.RequireAccess(reg.tokens.Owner, reg.tokens.Read, tokens.Owner, tokens.Read)
}

func (p *fileProvider) authorizeWrite(reg *registration, tokens models.TokenSet) error {
	return p.tokens.RequireAccess(reg.tokens.Owner, reg.tokens.Write, tokens.Owner, tokens.Write)
}
