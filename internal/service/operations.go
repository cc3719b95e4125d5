package service

import (
	"context"

	"github.com/MKhiriev/go-config-keeper/models"
)

// GetValue returns the effective value of one field of a registered type.
func (s *Service) GetValue(typeName, key string, tokens models.TokenSet) (any, error) {
	prov, err := s.resolve(typeName)
	if err != nil {
		return nil, err
	}
	return prov.GetSetting(typeName, key, tokens)
}

// GetDefaultValue returns the default-layer value of one field.
func (s *Service) GetDefaultValue(typeName, key string, tokens models.TokenSet) (any, error) {
	prov, err := s.resolve(typeName)
	if err != nil {
		return nil, err
	}
	return prov.GetDefaultSetting(typeName, key, tokens)
}

// SetValue stores value for one field of a registered type.
func (s *Service) SetValue(typeName, key string, value any, tokens models.TokenSet) error {
	prov, err := s.resolve(typeName)
	if err != nil {
		return err
	}
	return prov.SetSetting(typeName, key, value, tokens)
}

// SaveValues persists a type's settings in the background. Failures
// surface only as [models.SaveErrorEvent].
func (s *Service) SaveValues(typeName string, tokens models.TokenSet) {
	prov, err := s.resolve(typeName)
	if err != nil {
		s.reportAsyncFailure(typeName, models.OpSaveValues, err)
		return
	}
	prov.SaveValues(typeName, tokens)
}

// SaveValuesContext persists a type's settings and blocks until done.
func (s *Service) SaveValuesContext(ctx context.Context, typeName string, tokens models.TokenSet) error {
	prov, err := s.resolve(typeName)
	if err != nil {
		return err
	}
	return prov.SaveValuesContext(ctx, typeName, tokens)
}

// GetConfigInstance populates out with the effective values of every
// readable field of the type.
func (s *Service) GetConfigInstance(typeName string, tokens models.TokenSet, out any) error {
	prov, err := s.resolve(typeName)
	if err != nil {
		return err
	}
	return prov.GetConfigInstance(typeName, tokens, out)
}

// SaveConfigInstance applies and persists a whole instance in the
// background. Failures surface only as [models.SaveErrorEvent].
func (s *Service) SaveConfigInstance(typeName string, tokens models.TokenSet, instance any) {
	prov, err := s.resolve(typeName)
	if err != nil {
		s.reportAsyncFailure(typeName, models.OpSaveInstance, err)
		return
	}
	prov.SaveConfigInstance(typeName, tokens, instance)
}

// SaveConfigInstanceContext applies and persists a whole instance.
func (s *Service) SaveConfigInstanceContext(ctx context.Context, typeName string, tokens models.TokenSet, instance any) error {
	prov, err := s.resolve(typeName)
	if err != nil {
		return err
	}
	return prov.SaveConfigInstanceContext(ctx, typeName, tokens, instance)
}

// DefaultFileContents returns the raw default-layer file of the type.
func (s *Service) DefaultFileContents(typeName string, tokens models.TokenSet) ([]byte, error) {
	prov, err := s.resolve(typeName)
	if err != nil {
		return nil, err
	}
	return prov.DefaultFileContents(typeName, tokens)
}

// SaveDefaultFileContents replaces the raw default-layer file in the
// background. Failures surface only as [models.SaveErrorEvent].
func (s *Service) SaveDefaultFileContents(typeName string, contents []byte, tokens models.TokenSet) {
	prov, err := s.resolve(typeName)
	if err != nil {
		s.reportAsyncFailure(typeName, models.OpSaveContents, err)
		return
	}
	prov.SaveDefaultFileContents(typeName, contents, tokens)
}

// SaveDefaultFileContentsContext replaces the raw default-layer file.
func (s *Service) SaveDefaultFileContentsContext(ctx context.Context, typeName string, contents []byte, tokens models.TokenSet) error {
	prov, err := s.resolve(typeName)
	if err != nil {
		return err
	}
	return prov.SaveDefaultFileContentsContext(ctx, typeName, contents, tokens)
}

// SealValue encrypts plaintext for a type registered with the secure
// provider.
func (s *Service) SealValue(typeName string, plaintext []byte, tokens models.TokenSet) (models.SecureValue, error) {
	prov, err := s.resolve(typeName)
	if err != nil {
		return models.SecureValue{}, err
	}
	return prov.SealValue(typeName, plaintext, tokens)
}

// RevealValue decrypts a secure value sealed for the type.
func (s *Service) RevealValue(typeName string, value models.SecureValue, tokens models.TokenSet) ([]byte, error) {
	prov, err := s.resolve(typeName)
	if err != nil {
		return nil, err
	}
	return prov.RevealValue(typeName, value, tokens)
}

// reportAsyncFailure routes a fire-and-forget failure to the event list,
// matching what the provider save paths publish.
func (s *Service) reportAsyncFailure(typeName string, op models.Operation, err error) {
	s.logger.Err(err).
		Str("func", "Service.reportAsyncFailure").
		Str("config_type", typeName).
		Str("operation", string(op)).
		Msg("background save rejected")
	s.Publish(models.SaveErrorEvent{ConfigType: typeName, Operation: op, Err: err})
}
