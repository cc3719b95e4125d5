// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package keystore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/internal/utils"
)

// fileKeyStore is the file-system implementation of [KeyStore]. Each blob
// lives in its own 0600 file named "<id>.key" inside a 0700 directory, and
// every write replaces the file atomically.
type fileKeyStore struct {
	dir    string
	logger *logger.Logger
}

// NewFileKeyStore constructs a [KeyStore] rooted at dir, creating the
// directory with owner-only permissions when it does not exist.
func NewFileKeyStore(dir string, log *logger.Logger) (KeyStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		log.Err(err).Str("func", "NewFileKeyStore").Str("dir", dir).Msg("error creating key store directory")
		return nil, fmt.Errorf("creating key store directory: %w", err)
	}

	return &fileKeyStore{dir: dir, logger: log}, nil
}

func (f *fileKeyStore) Load(_ context.Context, id string) ([]byte, error) {
	path, err := f.path(id)
	if err != nil {
		return nil, err
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, id)
		}
		f.logger.Err(err).Str("func", "fileKeyStore.Load").Str("key_id", id).Msg("failed to read key file")
		return nil, fmt.Errorf("reading key %s: %w", id, err)
	}

	return blob, nil
}

func (f *fileKeyStore) Store(_ context.Context, id string, blob []byte) error {
	path, err := f.path(id)
	if err != nil {
		return err
	}

	if err := utils.AtomicWriteFile(path, blob, 0o600); err != nil {
		f.logger.Err(err).Str("func", "fileKeyStore.Store").Str("key_id", id).Msg("failed to write key file")
		return fmt.Errorf("storing key %s: %w", id, err)
	}

	return nil
}

func (f *fileKeyStore) Exists(_ context.Context, id string) (bool, error) {
	path, err := f.path(id)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("checking key %s: %w", id, err)
	}

	return true, nil
}

func (f *fileKeyStore) Delete(_ context.Context, id string) error {
	path, err := f.path(id)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		f.logger.Err(err).Str("func", "fileKeyStore.Delete").Str("key_id", id).Msg("failed to remove key file")
		return fmt.Errorf("deleting key %s: %w", id, err)
	}

	return nil
}

func (f *fileKeyStore) Close() error {
	return nil
}

// path maps an identifier to its file location, rejecting anything that
// could escape the store directory.
func (f *fileKeyStore) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKeyID, id)
	}

	return filepath.Join(f.dir, id+".key"), nil
}
