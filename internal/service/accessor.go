// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-config-keeper/internal/provider"
	"github.com/MKhiriev/go-config-keeper/models"
)

// accessor is the standard [Accessor] implementation: a thin binding of
// (type name, token set) over the service.
type accessor struct {
	service  *Service
	typeName string
	tokens   models.TokenSet
}

func newStandardAccessor(s *Service, typeName string, tokens models.TokenSet) Accessor {
	return &accessor{service: s, typeName: typeName, tokens: tokens}
}

// TypeName implements [Accessor].
func (a *accessor) TypeName() string {
	return a.typeName
}

// Get implements [Accessor].
func (a *accessor) Get(key string) (any, error) {
	return a.service.GetValue(a.typeName, key, a.tokens)
}

// plain is the shared fetch of the typed getters. Secure fields are
// rejected here: their ciphertext must never leak through a plain-type
// coercion.
func (a *accessor) plain(key string) (any, error) {
	v, err := a.Get(key)
	if err != nil {
		return nil, err
	}
	if _, ok := v.(models.SecureValue); ok {
		return nil, fmt.Errorf("%w: %s.%s holds an encrypted value", provider.ErrSecureValueRequired, a.typeName, key)
	}
	return v, nil
}

func (a *accessor) typed(key string, ft models.FieldType) (any, error) {
	v, err := a.plain(key)
	if err != nil {
		return nil, err
	}
	coerced, err := models.NormalizeValue(ft, v)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", a.typeName, key, err)
	}
	if coerced == nil {
		return models.ZeroValue(ft), nil
	}
	return coerced, nil
}

// GetString implements [Accessor].
func (a *accessor) GetString(key string) (string, error) {
	v, err := a.typed(key, models.FieldString)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// GetInt implements [Accessor].
func (a *accessor) GetInt(key string) (int, error) {
	v, err := a.GetInt64(key)
	return int(v), err
}

// GetInt64 implements [Accessor].
func (a *accessor) GetInt64(key string) (int64, error) {
	v, err := a.typed(key, models.FieldInt)
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

// GetFloat implements [Accessor].
func (a *accessor) GetFloat(key string) (float64, error) {
	v, err := a.typed(key, models.FieldFloat)
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// GetBool implements [Accessor].
func (a *accessor) GetBool(key string) (bool, error) {
	v, err := a.typed(key, models.FieldBool)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// GetDuration implements [Accessor].
func (a *accessor) GetDuration(key string) (time.Duration, error) {
	v, err := a.typed(key, models.FieldDuration)
	if err != nil {
		return 0, err
	}
	return v.(time.Duration), nil
}

// GetStringSlice implements [Accessor].
func (a *accessor) GetStringSlice(key string) ([]string, error) {
	v, err := a.typed(key, models.FieldStringSlice)
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// GetSecure implements [Accessor].
func (a *accessor) GetSecure(key string) (models.SecureValue, error) {
	v, err := a.Get(key)
	if err != nil {
		return models.SecureValue{}, err
	}
	sv, ok := v.(models.SecureValue)
	if !ok {
		return models.SecureValue{}, fmt.Errorf("%w: %s.%s is not a secure field", provider.ErrSecureValueRequired, a.typeName, key)
	}
	return sv, nil
}

// Set implements [Accessor].
func (a *accessor) Set(key string, value any) error {
	return a.service.SetValue(a.typeName, key, value, a.tokens)
}

// Save implements [Accessor].
func (a *accessor) Save() {
	a.service.SaveValues(a.typeName, a.tokens)
}

// SaveContext implements [Accessor].
func (a *accessor) SaveContext(ctx context.Context) error {
	return a.service.SaveValuesContext(ctx, a.typeName, a.tokens)
}

// Load implements [Accessor].
func (a *accessor) Load(out any) error {
	return a.service.GetConfigInstance(a.typeName, a.tokens, out)
}

// SaveInstance implements [Accessor].
func (a *accessor) SaveInstance(instance any) {
	a.service.SaveConfigInstance(a.typeName, a.tokens, instance)
}

// SaveInstanceContext implements [Accessor].
func (a *accessor) SaveInstanceContext(ctx context.Context, instance any) error {
	return a.service.SaveConfigInstanceContext(ctx, a.typeName, a.tokens, instance)
}
