package keystore

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/MKhiriev/go-config-keeper/internal/logger"
)

func newTestSQLiteStore(t *testing.T) (*sqliteKeyStore, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	store := &sqliteKeyStore{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return store, mock, db
}

func TestSQLiteKeyStore_Load(t *testing.T) {
	store, mock, db := newTestSQLiteStore(t)
	defer db.Close()

	blob := []byte{0x11, 0xAA}
	rows := sqlmock.NewRows([]string{"blob"}).AddRow(blob)

	mock.ExpectQuery("SELECT blob FROM encryption_keys").
		WithArgs("abc123").
		WillReturnRows(rows)

	got, err := store.Load(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(blob) {
		t.Errorf("expected blob %v, got %v", blob, got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSQLiteKeyStore_LoadMissing(t *testing.T) {
	store, mock, db := newTestSQLiteStore(t)
	defer db.Close()

	mock.ExpectQuery("SELECT blob FROM encryption_keys").
		WithArgs("absent").
		WillReturnError(sql.ErrNoRows)

	_, err := store.Load(context.Background(), "absent")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got: %v", err)
	}
}

func TestSQLiteKeyStore_StoreUpsert(t *testing.T) {
	store, mock, db := newTestSQLiteStore(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO encryption_keys").
		WithArgs("abc123", []byte("material")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Store(context.Background(), "abc123", []byte("material")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSQLiteKeyStore_StoreExecError(t *testing.T) {
	store, mock, db := newTestSQLiteStore(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO encryption_keys").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("disk I/O error"))

	err := store.Store(context.Background(), "abc123", []byte("material"))
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got: %v", err)
	}
}

func TestSQLiteKeyStore_Exists(t *testing.T) {
	store, mock, db := newTestSQLiteStore(t)
	defer db.Close()

	mock.ExpectQuery("SELECT 1 FROM encryption_keys").
		WithArgs("abc123").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	ok, err := store.Exists(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected key to exist")
	}

	mock.ExpectQuery("SELECT 1 FROM encryption_keys").
		WithArgs("absent").
		WillReturnError(sql.ErrNoRows)

	ok, err = store.Exists(context.Background(), "absent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected key to be absent")
	}
}

func TestSQLiteKeyStore_Delete(t *testing.T) {
	store, mock, db := newTestSQLiteStore(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM encryption_keys").
		WithArgs("abc123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Delete(context.Background(), "abc123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
