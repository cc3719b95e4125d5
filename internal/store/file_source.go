// Package store persists configuration documents as JSON files on disk
// and reports external changes to them. It knows nothing about schemas,
// tokens or encryption; callers hand it documents and paths.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/internal/utils"
)

// Document is one configuration layer's decoded content, keyed by setting
// name. Values stay raw so a load/save cycle keeps foreign fields and
// formatting-independent bytes stable.
type Document map[string]json.RawMessage

// FileSource reads and writes configuration documents. Writes are atomic
// replaces, so a watcher or concurrent reader never observes a torn file.
type FileSource struct {
	logger *logger.Logger
}

// NewFileSource constructs a [FileSource].
func NewFileSource(log *logger.Logger) *FileSource {
	if log == nil {
		log = logger.Nop()
	}
	return &FileSource{logger: log}
}

// ParseDocument decodes data into a [Document]. Anything but a single
// JSON object fails with [ErrMalformedDocument].
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	if doc == nil {
		// "null" parses into a nil map; treat it like an empty object.
		doc = Document{}
	}
	return doc, nil
}

// Load reads and decodes the document at path. A missing file fails with
// [ErrFileNotFound], undecodable content with [ErrMalformedDocument].
func (s *FileSource) Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		s.logger.Err(err).Str("func", "FileSource.Load").Str("path", path).Msg("failed to read configuration file")
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Write encodes doc and atomically replaces the file at path, creating
// parent directories as needed. perm applies to a newly created file.
func (s *FileSource) Write(path string, doc Document, perm os.FileMode) error {
	if doc == nil {
		doc = Document{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return s.WriteRaw(path, append(data, '\n'), perm)
}

// WriteRaw atomically replaces the file at path with data as-is. Callers
// validate content beforehand; WriteRaw itself accepts any bytes.
func (s *FileSource) WriteRaw(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.logger.Err(err).Str("func", "FileSource.WriteRaw").Str("path", path).Msg("failed to create configuration directory")
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := utils.AtomicWriteFile(path, data, perm); err != nil {
		s.logger.Err(err).Str("func", "FileSource.WriteRaw").Str("path", path).Msg("failed to write configuration file")
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadRaw returns the file's bytes untouched. A missing file fails with
// [ErrFileNotFound].
func (s *FileSource) ReadRaw(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// Ensure writes seed to path when no file exists there yet. It reports
// whether it created the file.
func (s *FileSource) Ensure(path string, seed Document, perm os.FileMode) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	if err := s.Write(path, seed, perm); err != nil {
		return false, err
	}
	s.logger.Info().Str("func", "FileSource.Ensure").Str("path", path).Msg("seeded configuration file")
	return true, nil
}
