// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Key store backends selectable through [Options.KeyStoreKind].
const (
	// KeyStoreFile keeps key material in per-key files under KeyStorePath.
	KeyStoreFile = "file"
	// KeyStoreSQLite keeps key material in a SQLite database at KeyStoreDSN.
	KeyStoreSQLite = "sqlite"
)

// Envelope algorithms selectable through [Options.Algorithm].
const (
	// AlgorithmAESGCM selects AES-256-GCM envelopes (the default).
	AlgorithmAESGCM = "aes-gcm"
	// AlgorithmChaCha20 selects ChaCha20-Poly1305 envelopes.
	AlgorithmChaCha20 = "chacha20poly1305"
)

// Options is the top-level configuration container for the subsystem
// itself: where settings files live, how reloads are debounced, and how key
// material is stored and wrapped. It is populated by merging programmatic
// overrides, environment variables, and an optional JSON file.
//
// Struct tags:
//   - env  — environment variable name for the field (caarlos0/env).
//   - json — field name in the optional KEEPER_CONFIG options file.
type Options struct {
	// Root is the directory where conventionally named settings files are
	// created and watched. Relative paths are resolved against the process
	// working directory.
	// Env: KEEPER_ROOT
	Root string `env:"KEEPER_ROOT" json:"root"`

	// Debounce is how long a burst of file change notifications is
	// coalesced before one reload runs (e.g. "300ms").
	// Env: KEEPER_DEBOUNCE
	Debounce time.Duration `env:"KEEPER_DEBOUNCE" json:"debounce"`

	// KeyStoreKind selects the key material backend: "file" or "sqlite".
	// Env: KEEPER_KEYSTORE_KIND
	KeyStoreKind string `env:"KEEPER_KEYSTORE_KIND" json:"keystore_kind"`

	// KeyStorePath is the directory of the file key store. Defaults to
	// "keys" under Root when empty.
	// Env: KEEPER_KEYSTORE_PATH
	KeyStorePath string `env:"KEEPER_KEYSTORE_PATH" json:"keystore_path"`

	// KeyStoreDSN is the SQLite data source name of the database key store
	// (e.g. "file:keeper-keys.db"). Required when KeyStoreKind is "sqlite".
	// Env: KEEPER_KEYSTORE_DSN
	KeyStoreDSN string `env:"KEEPER_KEYSTORE_DSN" json:"keystore_dsn"`

	// Algorithm selects the envelope cipher for newly encrypted values:
	// "aes-gcm" or "chacha20poly1305". Existing envelopes always decrypt by
	// their marker byte regardless of this setting.
	// Env: KEEPER_ALGORITHM
	Algorithm string `env:"KEEPER_ALGORITHM" json:"algorithm"`

	// Passphrase, when non-empty, wraps the persisted master key under a
	// key derived from it. Must be kept confidential.
	// Env: KEEPER_PASSPHRASE
	Passphrase string `env:"KEEPER_PASSPHRASE" json:"-"`

	// StrictConversion makes reads of unconvertible stored values return an
	// error instead of silently falling back to the type's zero default.
	// Env: KEEPER_STRICT_CONVERSION
	StrictConversion bool `env:"KEEPER_STRICT_CONVERSION" json:"strict_conversion"`

	// JSONFilePath is the optional path to a JSON options file merged after
	// environment variables.
	// Env: KEEPER_CONFIG
	JSONFilePath string `env:"KEEPER_CONFIG" json:"-"`
}

// defaultOptions returns the built-in last-resort values.
func defaultOptions() *Options {
	return &Options{
		Root:         "configs",
		Debounce:     300 * time.Millisecond,
		KeyStoreKind: KeyStoreFile,
		Algorithm:    AlgorithmAESGCM,
	}
}

// GetOptions loads, merges, and validates the subsystem options from all
// available sources. For every field the first source that supplies a
// non-zero value wins, in this order:
//  1. The overrides argument (may be nil)
//  2. Environment variables
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns fully populated *Options or an error if any source fails to load
// or the final result fails validation.
func GetOptions(overrides *Options) (*Options, error) {
	return newOptionsBuilder().
		withOverrides(overrides).
		withEnv().
		withJSON().
		withDefaults().
		build()
}
