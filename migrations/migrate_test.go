// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // goose talks to the DB directly; no expectations set, so it must fail

	err = Migrate(db)
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrations_AreEmbedded(t *testing.T) {
	entries, err := embedMigrations.ReadDir(".")
	if err != nil {
		t.Fatalf("failed to read embedded migrations: %v", err)
	}

	found := false
	for _, entry := range entries {
		if entry.Name() == "00001_create_encryption_keys.sql" {
			found = true
		}
		if !strings.HasSuffix(entry.Name(), ".sql") {
			t.Errorf("unexpected embedded file: %s", entry.Name())
		}
	}

	if !found {
		t.Error("encryption_keys migration is not embedded")
	}
}
