// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package provider

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-config-keeper/internal/token"
	"github.com/MKhiriev/go-config-keeper/models"
)

// ── Layered read/write ───────────────────────────────────────────────────────

// TestUserOverridableLifecycle walks the documented two-layer flow: defaults
// seed the file, a divergent write becomes an override, and writing the
// default back collapses the override out of the user layer.
func TestUserOverridableLifecycle(t *testing.T) {
	f := newFixture(t)
	p := f.user()
	registerUser(t, f, p, appSchema())

	data, err := os.ReadFile(filepath.Join(f.dir, "AppConfig.default.json"))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Light", doc["Theme"])

	v, err := p.GetSetting("AppConfig", "Theme", f.callSet)
	require.NoError(t, err)
	assert.Equal(t, "Light", v)

	// Diverge: the write lands in the user layer only.
	require.NoError(t, p.SetSetting("AppConfig", "Theme", "Dark", f.callSet))

	v, err = p.GetSetting("AppConfig", "Theme", f.callSet)
	require.NoError(t, err)
	assert.Equal(t, "Dark", v)

	v, err = p.GetDefaultSetting("AppConfig", "Theme", f.callSet)
	require.NoError(t, err)
	assert.Equal(t, "Light", v)

	require.NoError(t, p.SaveValuesContext(context.Background(), "AppConfig", f.callSet))
	data, err = os.ReadFile(filepath.Join(f.dir, "AppConfig.user.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Theme":"Dark"}`, string(data))

	// Converge: writing the default value back clears the override.
	require.NoError(t, p.SetSetting("AppConfig", "Theme", "Light", f.callSet))
	require.NoError(t, p.SaveValuesContext(context.Background(), "AppConfig", f.callSet))

	data, err = os.ReadFile(filepath.Join(f.dir, "AppConfig.user.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestPlainMode_WritesDefaultLayer(t *testing.T) {
	f := newFixture(t)
	p := f.plain()
	require.NoError(t, p.Register(context.Background(), appSchema(), models.NewFileParams(f.callSet)))

	require.NoError(t, p.SetSetting("AppConfig", "Theme", "Dark", f.callSet))

	// Single layer: the write replaces the default itself.
	v, err := p.GetDefaultSetting("AppConfig", "Theme", f.callSet)
	require.NoError(t, err)
	assert.Equal(t, "Dark", v)

	require.NoError(t, p.SaveValuesContext(context.Background(), "AppConfig", f.callSet))
	data, err := os.ReadFile(filepath.Join(f.dir, "AppConfig.default.json"))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Dark", doc["Theme"])

	_, err = os.Stat(filepath.Join(f.dir, "AppConfig.user.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestGetSetting_UnknownTypeAndKey(t *testing.T) {
	f := newFixture(t)
	p := f.user()
	registerUser(t, f, p, appSchema())

	_, err := p.GetSetting("Nope", "Theme", f.callSet)
	require.ErrorIs(t, err, ErrConfigNotRegistered)

	_, err = p.GetSetting("AppConfig", "Nope", f.callSet)
	require.ErrorIs(t, err, ErrSettingNotFound)

	err = p.SetSetting("AppConfig", "Nope", 1, f.callSet)
	require.ErrorIs(t, err, ErrSettingNotFound)
}

// ── Coercion ─────────────────────────────────────────────────────────────────

func TestSetSetting_CoercesToDeclaredType(t *testing.T) {
	f := newFixture(t)
	p := f.user()
	schema := models.ConfigSchema{
		TypeName: "Tuning",
		Fields: []models.FieldSpec{
			{Name: "Port", Type: models.FieldInt, Default: 8080},
			{Name: "Ratio", Type: models.FieldFloat, Default: 0.5},
			{Name: "Verbose", Type: models.FieldBool, Default: false},
			{Name: "Timeout", Type: models.FieldDuration, Default: 5 * time.Second},
			{Name: "Hosts", Type: models.FieldStringSlice, Default: []string{"a"}},
		},
	}
	registerUser(t, f, p, schema)

	cases := []struct {
		key  string
		in   any
		want any
	}{
		{"Port", "9090", int64(9090)},
		{"Port", 9091.0, int64(9091)},
		{"Ratio", "0.25", 0.25},
		{"Verbose", "true", true},
		{"Timeout", "250ms", 250 * time.Millisecond},
		{"Timeout", 2 * time.Second, 2 * time.Second},
		{"Hosts", []any{"x", "y"}, []string{"x", "y"}},
	}
	for _, tc := range cases {
		require.NoError(t, p.SetSetting("Tuning", tc.key, tc.in, f.callSet), "set %s = %v", tc.key, tc.in)
		got, err := p.GetSetting("Tuning", tc.key, f.callSet)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s after writing %v", tc.key, tc.in)
	}
}

func TestSetSetting_RejectsUnconvertible(t *testing.T) {
	f := newFixture(t)
	p := f.user()
	registerUser(t, f, p, appSchema())

	err := p.SetSetting("AppConfig", "Port", "not a number", f.callSet)
	require.ErrorIs(t, err, models.ErrValueNotConvertible)

	// The failed write left the table untouched.
	v, err := p.GetSetting("AppConfig", "Port", f.callSet)
	require.NoError(t, err)
	assert.Equal(t, int64(8080), v)
}

func TestGetSetting_LenientFallsBackToZero(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "AppConfig.default.json"), []byte(`{"Port":"garbage"}`), 0o644))

	p := f.user()
	registerUser(t, f, p, appSchema())

	v, err := p.GetSetting("AppConfig", "Port", f.callSet)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
}

func TestGetSetting_StrictConversion(t *testing.T) {
	f := newFixture(t)
	f.opts.StrictConversion = true
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "AppConfig.default.json"), []byte(`{"Port":"garbage"}`), 0o644))

	p := f.user()
	registerUser(t, f, p, appSchema())

	_, err := p.GetSetting("AppConfig", "Port", f.callSet)
	require.ErrorIs(t, err, models.ErrValueNotConvertible)
}

// ── Authorization ────────────────────────────────────────────────────────────

func TestAccessControl_TokenMatching(t *testing.T) {
	f := newFixture(t)
	p := f.user()

	owner, err := f.tokens.CreateToken()
	require.NoError(t, err)
	readTok, err := f.tokens.CreateToken()
	require.NoError(t, err)
	writeTok, err := f.tokens.CreateToken()
	require.NoError(t, err)
	regSet := f.tokens.CreateTokenSet(owner, readTok, writeTok)
	require.NoError(t, p.Register(context.Background(), appSchema(), models.NewUserFileParams(regSet)))

	reader := models.TokenSet{Read: readTok}
	writer := models.TokenSet{Write: writeTok}
	stranger := models.TokenSet{}

	_, err = p.GetSetting("AppConfig", "Theme", reader)
	require.NoError(t, err)
	_, err = p.GetSetting("AppConfig", "Theme", writer)
	require.ErrorIs(t, err, token.ErrNotAuthorized)
	_, err = p.GetSetting("AppConfig", "Theme", stranger)
	require.ErrorIs(t, err, token.ErrNotAuthorized)

	require.NoError(t, p.SetSetting("AppConfig", "Theme", "Dark", writer))
	require.ErrorIs(t, p.SetSetting("AppConfig", "Theme", "Dark", reader), token.ErrNotAuthorized)

	// The owner bypasses both checks with no permission tokens at all.
	ownerSet := models.TokenSet{Owner: owner}
	_, err = p.GetSetting("AppConfig", "Theme", ownerSet)
	require.NoError(t, err)
	require.NoError(t, p.SetSetting("AppConfig", "Theme", "Solarized", ownerSet))
}

func TestAccessControl_DefaultsToPublicReadOwnerWrite(t *testing.T) {
	f := newFixture(t)
	p := f.user()

	owner, err := f.tokens.CreateToken()
	require.NoError(t, err)
	regSet := f.tokens.CreateTokenSet(owner, models.Token{}, models.Token{})
	require.NoError(t, p.Register(context.Background(), appSchema(), models.NewUserFileParams(regSet)))

	// Unspecified read resolves to public, unspecified write to blocked.
	stranger := models.TokenSet{}
	_, err = p.GetSetting("AppConfig", "Theme", stranger)
	require.NoError(t, err)
	require.ErrorIs(t, p.SetSetting("AppConfig", "Theme", "Dark", stranger), token.ErrNotAuthorized)

	require.NoError(t, p.SetSetting("AppConfig", "Theme", "Dark", models.TokenSet{Owner: owner}))
}

func TestFieldFlags(t *testing.T) {
	f := newFixture(t)
	p := f.user()
	schema := models.ConfigSchema{
		TypeName: "Flags",
		Fields: []models.FieldSpec{
			{Name: "Version", Type: models.FieldString, Default: "v1", ReadOnly: true},
			{Name: "APIKey", Type: models.FieldString, WriteOnly: true},
			{Name: "Free", Type: models.FieldString},
		},
	}
	registerUser(t, f, p, schema)

	v, err := p.GetSetting("Flags", "Version", f.callSet)
	require.NoError(t, err)
	assert.Equal(t, "v1", v)
	err = p.SetSetting("Flags", "Version", "v2", f.callSet)
	require.ErrorIs(t, err, token.ErrNotAuthorized)

	require.NoError(t, p.SetSetting("Flags", "APIKey", "s3cret", f.callSet))
	_, err = p.GetSetting("Flags", "APIKey", f.callSet)
	require.ErrorIs(t, err, token.ErrNotAuthorized)

	require.NoError(t, p.SetSetting("Flags", "Free", "anything", f.callSet))
}

// ── Secure fields ────────────────────────────────────────────────────────────

func credsSchema() models.ConfigSchema {
	return models.ConfigSchema{
		TypeName: "Creds",
		Fields: []models.FieldSpec{
			{Name: "Host", Type: models.FieldString, Default: "db.local"},
			{Name: "Password", Type: models.FieldString, Secure: true, Default: "hunter2"},
		},
	}
}

func TestSecureField_SealedAtRest(t *testing.T) {
	f := newFixture(t)
	p := f.secure()
	require.NoError(t, p.Register(context.Background(), credsSchema(), models.NewSecureFileParams(f.callSet, "")))

	data, err := os.ReadFile(filepath.Join(f.dir, "Creds.default.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hunter2")
	assert.Contains(t, string(data), "EncryptedBase64")

	// Secure files are private to the process owner.
	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(f.dir, "Creds.default.json"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	v, err := p.GetSetting("Creds", "Password", f.callSet)
	require.NoError(t, err)
	sv, ok := v.(models.SecureValue)
	require.True(t, ok, "secure field must come back as a SecureValue, got %T", v)

	plain, err := p.RevealValue("Creds", sv, f.callSet)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", string(plain))
}

func TestSecureField_SealWriteReveal(t *testing.T) {
	f := newFixture(t)
	p := f.secure()
	require.NoError(t, p.Register(context.Background(), credsSchema(), models.NewSecureFileParams(f.callSet, "")))

	sealed, err := p.SealValue("Creds", []byte("rotated"), f.callSet)
	require.NoError(t, err)
	require.NoError(t, p.SetSetting("Creds", "Password", sealed, f.callSet))

	v, err := p.GetSetting("Creds", "Password", f.callSet)
	require.NoError(t, err)
	plain, err := p.RevealValue("Creds", v.(models.SecureValue), f.callSet)
	require.NoError(t, err)
	assert.Equal(t, "rotated", string(plain))

	// Plain values never reach a secure field.
	err = p.SetSetting("Creds", "Password", "plaintext", f.callSet)
	require.ErrorIs(t, err, ErrSecureValueRequired)
}

func TestSecureField_OverrideNeverCollapses(t *testing.T) {
	f := newFixture(t)
	p := f.secure()
	require.NoError(t, p.Register(context.Background(), credsSchema(), models.NewSecureFileParams(f.callSet, "")))

	// Re-sealing the default plaintext yields a distinct ciphertext, so the
	// override must survive the collapse rule.
	sealed, err := p.SealValue("Creds", []byte("hunter2"), f.callSet)
	require.NoError(t, err)
	require.NoError(t, p.SetSetting("Creds", "Password", sealed, f.callSet))
	require.NoError(t, p.SaveValuesContext(context.Background(), "Creds", f.callSet))

	data, err := os.ReadFile(filepath.Join(f.dir, "Creds.secure.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "EncryptedBase64")
}

func TestSecureField_SurvivesRestart(t *testing.T) {
	f := newFixture(t)
	p := f.secure()
	require.NoError(t, p.Register(context.Background(), credsSchema(), models.NewSecureFileParams(f.callSet, "")))

	sealed, err := p.SealValue("Creds", []byte("rotated"), f.callSet)
	require.NoError(t, err)
	require.NoError(t, p.SetSetting("Creds", "Password", sealed, f.callSet))
	require.NoError(t, p.SaveValuesContext(context.Background(), "Creds", f.callSet))
	require.NoError(t, p.Close())

	// A second provider over the same root and key store must reveal the
	// value written by the first.
	p2 := f.secure()
	require.NoError(t, p2.Register(context.Background(), credsSchema(), models.NewSecureFileParams(f.callSet, "")))

	v, err := p2.GetSetting("Creds", "Password", f.callSet)
	require.NoError(t, err)
	plain, err := p2.RevealValue("Creds", v.(models.SecureValue), f.callSet)
	require.NoError(t, err)
	assert.Equal(t, "rotated", string(plain))
}

func TestSealReveal_RequireSecureProvider(t *testing.T) {
	f := newFixture(t)
	p := f.user()
	registerUser(t, f, p, appSchema())

	_, err := p.SealValue("AppConfig", []byte("x"), f.callSet)
	require.ErrorIs(t, err, ErrSecureValueRequired)
	_, err = p.RevealValue("AppConfig", models.SecureValue{}, f.callSet)
	require.ErrorIs(t, err, ErrSecureValueRequired)
}

// ── Events ───────────────────────────────────────────────────────────────────

func TestSetSetting_PublishesSettingChanged(t *testing.T) {
	f := newFixture(t)
	p := f.user()
	registerUser(t, f, p, appSchema())

	require.NoError(t, p.SetSetting("AppConfig", "Theme", "Dark", f.callSet))

	events := f.events.All()
	require.Len(t, events, 1)
	changed, ok := events[0].(models.SettingChangedEvent)
	require.True(t, ok, "got %T", events[0])
	assert.Equal(t, "AppConfig", changed.ConfigType)
	assert.Equal(t, "Theme", changed.Key)
	assert.Equal(t, "Light", changed.OldValue)
	assert.Equal(t, "Dark", changed.NewValue)
}

func TestSaveValuesContext_PublishesOutcome(t *testing.T) {
	f := newFixture(t)
	p := f.user()
	registerUser(t, f, p, appSchema())

	require.NoError(t, p.SaveValuesContext(context.Background(), "AppConfig", f.callSet))
	require.Error(t, p.SaveValuesContext(context.Background(), "Missing", f.callSet))

	events := f.events.All()
	require.Len(t, events, 2)
	completed, ok := events[0].(models.SaveCompletedEvent)
	require.True(t, ok, "got %T", events[0])
	assert.Equal(t, "AppConfig", completed.ConfigType)

	failed, ok := events[1].(models.SaveErrorEvent)
	require.True(t, ok, "got %T", events[1])
	assert.Equal(t, "Missing", failed.ConfigType)
	assert.Equal(t, models.OpSaveValues, failed.Operation)
	assert.ErrorIs(t, failed.Err, ErrConfigNotRegistered)
}

func TestSaveValues_Background(t *testing.T) {
	f := newFixture(t)
	p := f.user()
	registerUser(t, f, p, appSchema())
	require.NoError(t, p.SetSetting("AppConfig", "Theme", "Dark", f.callSet))

	p.SaveValues("AppConfig", f.callSet)

	f.events.waitFor(t, 3*time.Second, func(events []models.Event) bool {
		for _, e := range events {
			if _, ok := e.(models.SaveCompletedEvent); ok {
				return true
			}
		}
		return false
	})

	data, err := os.ReadFile(filepath.Join(f.dir, "AppConfig.user.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Theme":"Dark"}`, string(data))
}

// ── Concurrency ──────────────────────────────────────────────────────────────

func TestConcurrentReadersAndWriters(t *testing.T) {
	f := newFixture(t)
	p := f.user()
	registerUser(t, f, p, appSchema())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				v, err := p.GetSetting("AppConfig", "Theme", f.callSet)
				assert.NoError(t, err)
				assert.Contains(t, []any{"Light", "Dark"}, v)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				theme := "Dark"
				if j%2 == 0 {
					theme = "Light"
				}
				assert.NoError(t, p.SetSetting("AppConfig", "Theme", theme, f.callSet))
			}
		}()
	}
	wg.Wait()

	require.NoError(t, p.SaveValuesContext(context.Background(), "AppConfig", f.callSet))
}
