// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package keystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-config-keeper/internal/logger"
)

// sqliteKeyStore is the SQLite-backed implementation of [KeyStore]. Blobs
// live in the encryption_keys table managed by the embedded migrations.
type sqliteKeyStore struct {
	db     *DB
	logger *logger.Logger
}

// NewSQLiteKeyStore constructs a [KeyStore] on top of an open database
// connection obtained from [NewConnectSQLite].
func NewSQLiteKeyStore(db *DB, log *logger.Logger) KeyStore {
	return &sqliteKeyStore{
		db:     db,
		logger: log,
	}
}

func (s *sqliteKeyStore) Load(ctx context.Context, id string) ([]byte, error) {
	query, args, err := sq.
		Select("blob").
		From("encryption_keys").
		Where(sq.Eq{"key_id": id}).
		ToSql()
	if err != nil {
		s.logger.Err(err).Str("func", "sqliteKeyStore.Load").Str("key_id", id).Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var blob []byte
	row := s.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, id)
		}
		s.logger.Err(err).Str("func", "sqliteKeyStore.Load").Str("key_id", id).Msg("failed to scan key row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return blob, nil
}

func (s *sqliteKeyStore) Store(ctx context.Context, id string, blob []byte) error {
	query, args, err := sq.
		Insert("encryption_keys").
		Columns("key_id", "blob").
		Values(id, blob).
		Suffix("ON CONFLICT(key_id) DO UPDATE SET blob = excluded.blob, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		s.logger.Err(err).Str("func", "sqliteKeyStore.Store").Str("key_id", id).Msg("failed to build upsert")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "sqliteKeyStore.Store").Str("key_id", id).Msg("failed to execute upsert")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteKeyStore) Exists(ctx context.Context, id string) (bool, error) {
	query, args, err := sq.
		Select("1").
		From("encryption_keys").
		Where(sq.Eq{"key_id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	row := s.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		s.logger.Err(err).Str("func", "sqliteKeyStore.Exists").Str("key_id", id).Msg("failed to query key presence")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return true, nil
}

func (s *sqliteKeyStore) Delete(ctx context.Context, id string) error {
	query, args, err := sq.
		Delete("encryption_keys").
		Where(sq.Eq{"key_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "sqliteKeyStore.Delete").Str("key_id", id).Msg("failed to execute delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteKeyStore) Close() error {
	return s.db.Close()
}
