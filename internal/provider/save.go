package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-config-keeper/internal/store"
	"github.com/MKhiriev/go-config-keeper/models"
)

// SaveValues implements [Provider].
func (p *fileProvider) SaveValues(typeName string, tokens models.TokenSet) {
	go func() {
		if err := p.SaveValuesContext(context.Background(), typeName, tokens); err != nil {
			p.logger.Err(err).
				Str("func", "fileProvider.SaveValues").
				Str("config_type", typeName).
				Msg("background save failed")
		}
	}()
}

// SaveValuesContext implements [Provider].
func (p *fileProvider) SaveValuesContext(ctx context.Context, typeName string, tokens models.TokenSet) error {
	if err := p.saveValues(ctx, typeName, tokens); err != nil {
		p.events.Publish(models.SaveErrorEvent{ConfigType: typeName, Operation: models.OpSaveValues, Err: err})
		return err
	}
	p.events.Publish(models.SaveCompletedEvent{ConfigType: typeName})
	return nil
}

func (p *fileProvider) saveValues(ctx context.Context, typeName string, tokens models.TokenSet) error {
	reg, err := p.fetch(typeName)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	reg.mu.RLock()
	if reg.removed {
		reg.mu.RUnlock()
		return fmt.Errorf("%w: %s", ErrConfigNotRegistered, typeName)
	}
	if err := p.authorizeWrite(reg, tokens); err != nil {
		reg.mu.RUnlock()
		return err
	}
	defaultDoc, userDoc, err := p.snapshotLocked(reg)
	reg.mu.RUnlock()
	if err != nil {
		return err
	}

	return p.writeLayers(reg, defaultDoc, userDoc)
}

// snapshotLocked encodes the settings table into its layer documents:
// the default layer completely, the user layer with overridden keys
// only. Callers hold at least the registration read lock.
func (p *fileProvider) snapshotLocked(reg *registration) (store.Document, store.Document, error) {
	defaultDoc := store.Document{}
	var userDoc store.Document
	if reg.userPath != "" {
		userDoc = store.Document{}
	}

	for _, f := range reg.schema.Fields {
		rec, ok := reg.settings[f.Name]
		if !ok {
			continue
		}
		raw, present, err := encodeStored(rec.Type, rec.DefaultValue)
		if err != nil {
			return nil, nil, fmt.Errorf("encoding %s.%s: %w", reg.schema.TypeName, f.Name, err)
		}
		if present {
			defaultDoc[f.Name] = raw
		}
		if userDoc == nil || rec.UserValue == nil {
			continue
		}
		raw, present, err = encodeStored(rec.Type, rec.UserValue)
		if err != nil {
			return nil, nil, fmt.Errorf("encoding %s.%s override: %w", reg.schema.TypeName, f.Name, err)
		}
		if present {
			userDoc[f.Name] = raw
		}
	}
	return defaultDoc, userDoc, nil
}

// encodeStored turns a stored value into its document form. nil values
// and empty secure values stay out of the document.
func encodeStored(ft models.FieldType, v any) (json.RawMessage, bool, error) {
	if v == nil {
		return nil, false, nil
	}
	if sv, ok := v.(models.SecureValue); ok && sv.IsZero() {
		return nil, false, nil
	}
	raw, err := json.Marshal(models.EncodeValue(ft, v))
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

// writeLayers persists the snapshot documents atomically.
func (p *fileProvider) writeLayers(reg *registration, defaultDoc, userDoc store.Document) error {
	if err := p.files.Write(reg.defaultPath, defaultDoc, p.filePerm()); err != nil {
		return err
	}
	if reg.userPath != "" {
		if err := p.files.Write(reg.userPath, userDoc, p.filePerm()); err != nil {
			return err
		}
	}
	return nil
}
