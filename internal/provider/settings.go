package provider

import (
	"fmt"

	"github.com/MKhiriev/go-config-keeper/internal/token"
	"github.com/MKhiriev/go-config-keeper/models"
)

// GetSetting implements [Provider].
func (p *fileProvider) GetSetting(typeName, key string, tokens models.TokenSet) (any, error) {
	return p.getSetting(typeName, key, tokens, false)
}

// GetDefaultSetting implements [Provider].
func (p *fileProvider) GetDefaultSetting(typeName, key string, tokens models.TokenSet) (any, error) {
	return p.getSetting(typeName, key, tokens, true)
}

func (p *fileProvider) getSetting(typeName, key string, tokens models.TokenSet, defaultLayer bool) (any, error) {
	reg, err := p.fetch(typeName)
	if err != nil {
		return nil, err
	}

	reg.mu.RLock()
	defer reg.mu.RUnlock()
	if reg.removed {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotRegistered, typeName)
	}
	if err := p.authorizeRead(reg, tokens); err != nil {
		return nil, err
	}

	f, rec, err := p.field(reg, typeName, key)
	if err != nil {
		return nil, err
	}
	if !rec.ReadAllowed {
		return nil, fmt.Errorf("%w: %s.%s is write-only", token.ErrNotAuthorized, typeName, key)
	}

	value := rec.EffectiveValue()
	if defaultLayer {
		value = rec.DefaultValue
	}
	return p.materialize(f, value)
}

// SetSetting implements [Provider].
func (p *fileProvider) SetSetting(typeName, key string, value any, tokens models.TokenSet) error {
	reg, err := p.fetch(typeName)
	if err != nil {
		return err
	}

	reg.mu.Lock()
	event, err := p.setSettingLocked(reg, typeName, key, value, tokens)
	reg.mu.Unlock()
	if err != nil {
		return err
	}

	// Subscribers run outside the registration lock.
	p.events.Publish(event)
	return nil
}

func (p *fileProvider) setSettingLocked(reg *registration, typeName, key string, value any, tokens models.TokenSet) (models.SettingChangedEvent, error) {
	var none models.SettingChangedEvent
	if reg.removed {
		return none, fmt.Errorf("%w: %s", ErrConfigNotRegistered, typeName)
	}
	if err := p.authorizeWrite(reg, tokens); err != nil {
		return none, err
	}

	f, rec, err := p.field(reg, typeName, key)
	if err != nil {
		return none, err
	}
	if !rec.WriteAllowed {
		return none, fmt.Errorf("%w: %s.%s is read-only", token.ErrNotAuthorized, typeName, key)
	}

	incoming, err := normalizeIncoming(f, value)
	if err != nil {
		return none, err
	}
	return p.applyLocked(reg, typeName, f, rec, incoming), nil
}

// SealValue implements [Provider].
func (p *fileProvider) SealValue(typeName string, plaintext []byte, tokens models.TokenSet) (models.SecureValue, error) {
	if p.mode != modeSecureUser {
		return models.SecureValue{}, fmt.Errorf("%w: %s is not registered with the secure provider", ErrSecureValueRequired, typeName)
	}
	reg, err := p.fetch(typeName)
	if err != nil {
		return models.SecureValue{}, err
	}

	reg.mu.RLock()
	defer reg.mu.RUnlock()
	if reg.removed {
		return models.SecureValue{}, fmt.Errorf("%w: %s", ErrConfigNotRegistered, typeName)
	}
	if err := p.authorizeWrite(reg, tokens); err != nil {
		return models.SecureValue{}, err
	}
	return models.NewSecureValue(reg.enc, plaintext)
}

// RevealValue implements [Provider].
func (p *fileProvider) RevealValue(typeName string, value models.SecureValue, tokens models.TokenSet) ([]byte, error) {
	if p.mode != modeSecureUser {
		return nil, fmt.Errorf("%w: %s is not registered with the secure provider", ErrSecureValueRequired, typeName)
	}
	reg, err := p.fetch(typeName)
	if err != nil {
		return nil, err
	}

	reg.mu.RLock()
	defer reg.mu.RUnlock()
	if reg.removed {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotRegistered, typeName)
	}
	if err := p.authorizeRead(reg, tokens); err != nil {
		return nil, err
	}
	return value.Reveal(reg.enc)
}

// field resolves a key to its schema spec and settings record.
func (p *fileProvider) field(reg *registration, typeName, key string) (models.FieldSpec, *models.SettingRecord, error) {
	f, ok := reg.schema.Field(key)
	if !ok {
		return models.FieldSpec{}, nil, fmt.Errorf("%w: %s.%s", ErrSettingNotFound, typeName, key)
	}
	rec, ok := reg.settings[key]
	if !ok {
		return models.FieldSpec{}, nil, fmt.Errorf("%w: %s.%s", ErrSettingNotFound, typeName, key)
	}
	return f, rec, nil
}

// materialize coerces a stored value to the field's declared type.
// Secure fields travel as [models.SecureValue] untouched. In lenient
// mode (the default) an unconvertible value yields the type's zero
// default instead of an error.
func (p *fileProvider) materialize(f models.FieldSpec, v any) (any, error) {
	if f.Secure {
		if sv, ok := v.(models.SecureValue); ok {
			return sv, nil
		}
		return models.SecureValue{}, nil
	}

	coerced, err := models.NormalizeValue(f.Type, v)
	if err != nil {
		if p.opts.StrictConversion {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		p.logger.Debug().
			Str("func", "fileProvider.materialize").
			Str("key", f.Name).
			Msg("stored value not convertible, returning type default")
		return models.ZeroValue(f.Type), nil
	}
	return coerced, nil
}

// normalizeIncoming validates a written value against the field's
// declared type. Writes are strict in every mode: storing an
// unconvertible value would poison the file for every later reader.
func normalizeIncoming(f models.FieldSpec, value any) (any, error) {
	if f.Secure {
		switch sv := value.(type) {
		case models.SecureValue:
			return sv, nil
		case *models.SecureValue:
			if sv != nil {
				return *sv, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrSecureValueRequired, f.Name)
	}

	coerced, err := models.NormalizeValue(f.Type, value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name, err)
	}
	return coerced, nil
}

// applyLocked stores incoming under the default-collapse rule and
// reports the change. Callers hold the registration write lock and have
// already authorized the write.
func (p *fileProvider) applyLocked(reg *registration, typeName string, f models.FieldSpec, rec *models.SettingRecord, incoming any) models.SettingChangedEvent {
	old := rec.EffectiveValue()

	switch {
	case p.mode == modePlain:
		// Single layer: the default value is the value.
		rec.DefaultValue = incoming
	case models.ValuesEqual(f.Type, incoming, rec.DefaultValue):
		rec.UserValue = nil
	default:
		rec.UserValue = incoming
	}

	return models.SettingChangedEvent{
		ConfigType: typeName,
		Key:        f.Name,
		OldValue:   old,
		NewValue:   rec.EffectiveValue(),
	}
}
