// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service is the front door of the configuration subsystem. The
// Service owns the providers, routes every registration to the provider
// serving its kind, dispatches operations to the provider owning each
// configuration type, hands out typed accessors, and fans provider events
// out to subscribed observers.
package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/go-config-keeper/internal/config"
	"github.com/MKhiriev/go-config-keeper/internal/crypto"
	"github.com/MKhiriev/go-config-keeper/internal/keystore"
	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/internal/provider"
	"github.com/MKhiriev/go-config-keeper/internal/store"
	"github.com/MKhiriev/go-config-keeper/internal/token"
	"github.com/MKhiriev/go-config-keeper/models"
)

// typeRecord tracks which provider owns a registered type and who
// registered it. The owner gates unregistration.
type typeRecord struct {
	provider provider.Provider
	owner    models.Token
}

// accessorFactory builds the accessor flavor a provider declares.
type accessorFactory func(s *Service, typeName string, tokens models.TokenSet) Accessor

// Service is the configuration subsystem facade.
type Service struct {
	opts     config.Options
	tokens   token.TokenService
	watcher  *store.Watcher
	keys     crypto.KeyService
	keyStore keystore.KeyStore
	logger   *logger.Logger

	mu        sync.RWMutex
	providers map[models.ParamsKind]provider.Provider
	types     map[string]*typeRecord
	closed    bool

	factories map[models.AccessorKind]accessorFactory

	obsMu     sync.RWMutex
	observers map[uint64]Observer
	nextObsID uint64
}

// New wires the complete subsystem from opts: token service, key store,
// key service, file source, watcher and the three file providers, all
// publishing through the returned service. ctx covers the key store
// connection only.
func New(ctx context.Context, opts config.Options, log *logger.Logger) (*Service, error) {
	if log == nil {
		log = logger.Nop()
	}

	tokens := token.NewTokenService(log)
	files := store.NewFileSource(log)

	watcher, err := store.NewWatcher(opts.Debounce, log)
	if err != nil {
		return nil, fmt.Errorf("starting file watcher: %w", err)
	}

	keyStore, err := OpenKeyStore(ctx, opts, log)
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}
	keys, err := crypto.NewKeyService(keyStore, opts.Algorithm, opts.Passphrase, log)
	if err != nil {
		_ = keyStore.Close()
		_ = watcher.Close()
		return nil, err
	}

	svc := newService(opts, tokens, watcher, keys, log)
	svc.keyStore = keyStore

	secure, err := provider.NewSecureFileProvider(opts, files, watcher, keys, tokens, svc, log)
	if err != nil {
		_ = keys.Close()
		_ = keyStore.Close()
		_ = watcher.Close()
		return nil, err
	}
	svc.providers = map[models.ParamsKind]provider.Provider{
		models.KindFile:       provider.NewPlainFileProvider(opts, files, watcher, tokens, svc, log),
		models.KindUserFile:   provider.NewUserFileProvider(opts, files, watcher, tokens, svc, log),
		models.KindSecureFile: secure,
	}

	log.Info().
		Str("func", "service.New").
		Str("root", opts.Root).
		Str("keystore", opts.KeyStoreKind).
		Msg("configuration service ready")
	return svc, nil
}

// newService builds the bare facade. Tests assemble providers themselves;
// New fills them in.
func newService(opts config.Options, tokens token.TokenService, watcher *store.Watcher, keys crypto.KeyService, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if tokens == nil {
		tokens = token.NewTokenService(log)
	}
	return &Service{
		opts:      opts,
		tokens:    tokens,
		watcher:   watcher,
		keys:      keys,
		logger:    log,
		providers: make(map[models.ParamsKind]provider.Provider),
		types:     make(map[string]*typeRecord),
		factories: map[models.AccessorKind]accessorFactory{
			models.AccessorStandard: newStandardAccessor,
			models.AccessorSecure:   newSecureAccessor,
		},
		observers: make(map[uint64]Observer),
	}
}

// OpenKeyStore selects and opens the key material backend the options
// call for. New uses it internally; the keygen command uses it to reach
// the same store without assembling a full service.
func OpenKeyStore(ctx context.Context, opts config.Options, log *logger.Logger) (keystore.KeyStore, error) {
	switch opts.KeyStoreKind {
	case config.KeyStoreSQLite:
		db, err := keystore.NewConnectSQLite(ctx, opts.KeyStoreDSN, log)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite key store: %w", err)
		}
		return keystore.NewSQLiteKeyStore(db, log), nil
	case config.KeyStoreFile, "":
		dir := opts.KeyStorePath
		if dir == "" {
			dir = filepath.Join(opts.Root, "keys")
		}
		return keystore.NewFileKeyStore(dir, log)
	default:
		return nil, fmt.Errorf("unknown key store kind %q", opts.KeyStoreKind)
	}
}

// TokenService exposes the token authority so callers can mint tokens and
// build token sets without a second wiring path.
func (s *Service) TokenService() token.TokenService {
	return s.tokens
}

// RegisterConfig registers schema with the provider serving params.Kind
// and records ownership for the unregistration gate.
func (s *Service) RegisterConfig(ctx context.Context, schema models.ConfigSchema, params models.RegistrationParams) error {
	if err := schema.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrServiceClosed
	}
	prov, ok := s.providers[params.Kind]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrNoProviderForKind, params.Kind)
	}
	if _, taken := s.types[schema.TypeName]; taken {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", provider.ErrAlreadyRegistered, schema.TypeName)
	}
	// Reserve the name so a concurrent registration of the same type
	// cannot double-book while the provider does its file work.
	rec := &typeRecord{provider: prov, owner: params.Tokens.Owner}
	s.types[schema.TypeName] = rec
	s.mu.Unlock()

	if err := prov.Register(ctx, schema, params); err != nil {
		s.mu.Lock()
		delete(s.types, schema.TypeName)
		s.mu.Unlock()
		return err
	}

	s.logger.Info().
		Str("func", "Service.RegisterConfig").
		Str("config_type", schema.TypeName).
		Str("kind", params.Kind.String()).
		Msg("configuration type registered")
	return nil
}

// UnregisterConfig removes the registration of typeName. An owned
// registration may be unregistered only by a caller presenting the owner
// token; an unowned one by anyone, otherwise it could never be removed.
func (s *Service) UnregisterConfig(typeName string, owner models.Token) error {
	s.mu.Lock()
	rec, ok := s.types[typeName]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", provider.ErrConfigNotRegistered, typeName)
	}
	if !rec.owner.IsZero() {
		// A blocked resource permission leaves only the owner bypass open.
		if err := s.tokens.RequireAccess(rec.owner, models.BlockedToken, owner, models.Token{}); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	delete(s.types, typeName)
	s.mu.Unlock()

	return rec.provider.Unregister(typeName)
}

// resolve returns the provider owning typeName.
func (s *Service) resolve(typeName string) (provider.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.types[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", provider.ErrConfigNotRegistered, typeName)
	}
	return rec.provider, nil
}

// Accessor builds the typed accessor for a registered type. The flavor
// follows the owning provider's declared accessor kind.
func (s *Service) Accessor(typeName string, tokens models.TokenSet) (Accessor, error) {
	prov, err := s.resolve(typeName)
	if err != nil {
		return nil, err
	}
	factory, ok := s.factories[prov.AccessorKind()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoAccessorForKind, prov.AccessorKind())
	}
	return factory(s, typeName, tokens), nil
}

// MultiAccessor builds an accessor front for several types at once,
// restricted to the given allow-list.
func (s *Service) MultiAccessor(tokens models.TokenSet, allowed ...string) *MultiAccessor {
	allow := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		allow[name] = struct{}{}
	}
	return &MultiAccessor{service: s, tokens: tokens, allowed: allow}
}

// Close tears the subsystem down: every registration, every provider, the
// watcher, the key service and the key store. The disposal path skips
// token checks. Close is idempotent.
func (s *Service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.types = make(map[string]*typeRecord)
	providers := s.providers
	s.mu.Unlock()

	var errs []error
	for _, prov := range providers {
		if err := prov.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.keys != nil {
		if err := s.keys.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.keyStore != nil {
		if err := s.keyStore.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	s.logger.Info().Str("func", "Service.Close").Msg("configuration service closed")
	return errors.Join(errs...)
}
