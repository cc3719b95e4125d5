package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-config-keeper/internal/store"
	"github.com/MKhiriev/go-config-keeper/models"
)

// GetConfigInstance implements [Provider]. Each readable field is
// applied to out through a single-key JSON round trip, so a field the
// target cannot hold is skipped, not fatal.
func (p *fileProvider) GetConfigInstance(typeName string, tokens models.TokenSet, out any) error {
	if out == nil {
		return errors.New("nil instance target")
	}
	reg, err := p.fetch(typeName)
	if err != nil {
		return err
	}
	log := p.logger.GetChildLogger()

	reg.mu.RLock()
	defer reg.mu.RUnlock()
	if reg.removed {
		return fmt.Errorf("%w: %s", ErrConfigNotRegistered, typeName)
	}
	if err := p.authorizeRead(reg, tokens); err != nil {
		return err
	}

	for _, f := range reg.schema.Fields {
		rec, ok := reg.settings[f.Name]
		if !ok || !rec.ReadAllowed {
			continue
		}
		value, err := p.materialize(f, rec.EffectiveValue())
		if err != nil {
			log.Warn().Err(err).
				Str("func", "fileProvider.GetConfigInstance").
				Str("config_type", typeName).
				Str("key", f.Name).
				Msg("skipping unconvertible field")
			continue
		}
		if value == nil {
			continue
		}
		raw, err := json.Marshal(map[string]any{f.Name: value})
		if err != nil {
			log.Warn().Err(err).
				Str("func", "fileProvider.GetConfigInstance").
				Str("config_type", typeName).
				Str("key", f.Name).
				Msg("skipping unencodable field")
			continue
		}
		if err := json.Unmarshal(raw, out); err != nil {
			log.Warn().Err(err).
				Str("func", "fileProvider.GetConfigInstance").
				Str("config_type", typeName).
				Str("key", f.Name).
				Msg("skipping field the instance cannot hold")
			continue
		}
	}
	return nil
}

// SaveConfigInstance implements [Provider].
func (p *fileProvider) SaveConfigInstance(typeName string, tokens models.TokenSet, instance any) {
	go func() {
		if err := p.SaveConfigInstanceContext(context.Background(), typeName, tokens, instance); err != nil {
			p.logger.Err(err).
				Str("func", "fileProvider.SaveConfigInstance").
				Str("config_type", typeName).
				Msg("background instance save failed")
		}
	}()
}

// SaveConfigInstanceContext implements [Provider].
func (p *fileProvider) SaveConfigInstanceContext(ctx context.Context, typeName string, tokens models.TokenSet, instance any) error {
	if err := p.saveConfigInstance(ctx, typeName, tokens, instance); err != nil {
		p.events.Publish(models.SaveErrorEvent{ConfigType: typeName, Operation: models.OpSaveInstance, Err: err})
		return err
	}
	p.events.Publish(models.SaveCompletedEvent{ConfigType: typeName})
	return nil
}

func (p *fileProvider) saveConfigInstance(ctx context.Context, typeName string, tokens models.TokenSet, instance any) error {
	reg, err := p.fetch(typeName)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(instance)
	if err != nil {
		return fmt.Errorf("encoding instance: %w", err)
	}
	doc, err := store.ParseDocument(raw)
	if err != nil {
		return fmt.Errorf("instance must encode to a JSON object: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	reg.mu.Lock()
	events, defaultDoc, userDoc, err := p.applyInstanceLocked(reg, typeName, doc, tokens)
	reg.mu.Unlock()
	if err != nil {
		return err
	}

	for _, e := range events {
		p.events.Publish(e)
	}
	return p.writeLayers(reg, defaultDoc, userDoc)
}

// applyInstanceLocked runs the per-field collapse rule over the decoded
// instance document and snapshots the resulting table. Callers hold the
// registration write lock.
func (p *fileProvider) applyInstanceLocked(reg *registration, typeName string, doc store.Document, tokens models.TokenSet) ([]models.SettingChangedEvent, store.Document, store.Document, error) {
	if reg.removed {
		return nil, nil, nil, fmt.Errorf("%w: %s", ErrConfigNotRegistered, typeName)
	}
	if err := p.authorizeWrite(reg, tokens); err != nil {
		return nil, nil, nil, err
	}
	log := p.logger.GetChildLogger()

	var events []models.SettingChangedEvent
	for _, f := range reg.schema.Fields {
		rec, ok := reg.settings[f.Name]
		if !ok || !rec.WriteAllowed {
			continue
		}
		fieldRaw, ok := doc[f.Name]
		if !ok {
			continue
		}
		value, err := decodeField(f, fieldRaw)
		if err != nil {
			log.Warn().Err(err).
				Str("func", "fileProvider.SaveConfigInstanceContext").
				Str("config_type", typeName).
				Str("key", f.Name).
				Msg("skipping undecodable instance field")
			continue
		}
		incoming, err := normalizeIncoming(f, value)
		if err != nil {
			log.Warn().Err(err).
				Str("func", "fileProvider.SaveConfigInstanceContext").
				Str("config_type", typeName).
				Str("key", f.Name).
				Msg("skipping instance field with mismatched type")
			continue
		}
		events = append(events, p.applyLocked(reg, typeName, f, rec, incoming))
	}

	defaultDoc, userDoc, err := p.snapshotLocked(reg)
	if err != nil {
		return nil, nil, nil, err
	}
	return events, defaultDoc, userDoc, nil
}
