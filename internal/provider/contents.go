package provider

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-config-keeper/internal/store"
	"github.com/MKhiriev/go-config-keeper/models"
)

// DefaultFileContents implements [Provider].
func (p *fileProvider) DefaultFileContents(typeName string, tokens models.TokenSet) ([]byte, error) {
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
	return p.files.ReadRaw(reg.defaultPath)
}

// SaveDefaultFileContents implements [Provider].
func (p *fileProvider) SaveDefaultFileContents(typeName string, contents []byte, tokens models.TokenSet) {
	go func() {
		if err := p.SaveDefaultFileContentsContext(context.Background(), typeName, contents, tokens); err != nil {
			p.logger.Err(err).
				Str("func", "fileProvider.SaveDefaultFileContents").
				Str("config_type", typeName).
				Msg("background contents save failed")
		}
	}()
}

// SaveDefaultFileContentsContext implements [Provider].
func (p *fileProvider) SaveDefaultFileContentsContext(ctx context.Context, typeName string, contents []byte, tokens models.TokenSet) error {
	if err := p.saveDefaultFileContents(ctx, typeName, contents, tokens); err != nil {
		p.events.Publish(models.SaveErrorEvent{ConfigType: typeName, Operation: models.OpSaveContents, Err: err})
		return err
	}
	p.events.Publish(models.ConfigReloadedEvent{ConfigType: typeName})
	return nil
}

func (p *fileProvider) saveDefaultFileContents(ctx context.Context, typeName string, contents []byte, tokens models.TokenSet) error {
	reg, err := p.fetch(typeName)
	if err != nil {
		return err
	}
	// Malformed payloads are rejected before anything touches disk.
	if _, err := store.ParseDocument(contents); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedContent, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if reg.removed {
		return fmt.Errorf("%w: %s", ErrConfigNotRegistered, typeName)
	}
	if err := p.authorizeWrite(reg, tokens); err != nil {
		return err
	}
	if err := p.files.WriteRaw(reg.defaultPath, contents, p.filePerm()); err != nil {
		return err
	}

	// The table reflects the new contents immediately; the debounced
	// watcher notification that follows is a no-op rebuild.
	settings, err := p.buildSettings(reg)
	if err != nil {
		return err
	}
	reg.settings = settings
	return nil
}
