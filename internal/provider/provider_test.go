package provider

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-config-keeper/internal/config"
	"github.com/MKhiriev/go-config-keeper/internal/crypto"
	"github.com/MKhiriev/go-config-keeper/internal/keystore"
	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/internal/mock"
	"github.com/MKhiriev/go-config-keeper/internal/store"
	"github.com/MKhiriev/go-config-keeper/internal/token"
	"github.com/MKhiriev/go-config-keeper/models"
)

// eventRecorder collects published events for assertions.
type eventRecorder struct {
	mu     sync.Mutex
	events []models.Event
}

func (r *eventRecorder) Publish(e models.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) All() []models.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Event, len(r.events))
	copy(out, r.events)
	return out
}

// waitFor polls until pred passes or the deadline expires.
func (r *eventRecorder) waitFor(t *testing.T, timeout time.Duration, pred func([]models.Event) bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if pred(r.All()) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met after %v; events: %v", timeout, r.All())
}

type fixture struct {
	t       *testing.T
	dir     string
	opts    config.Options
	events  *eventRecorder
	tokens  token.TokenService
	callSet models.TokenSet
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	svc := token.NewTokenService(logger.Nop())
	return &fixture{
		t:       t,
		dir:     dir,
		opts:    config.Options{Root: dir},
		events:  &eventRecorder{},
		tokens:  svc,
		callSet: newTokenSet(t, svc),
	}
}

func newTokenSet(t *testing.T, svc token.TokenService) models.TokenSet {
	t.Helper()
	owner, err := svc.CreateToken()
	require.NoError(t, err)
	write, err := svc.CreateToken()
	require.NoError(t, err)
	return svc.CreateTokenSet(owner, models.Token{}, write)
}

func (f *fixture) plain() Provider {
	return NewPlainFileProvider(f.opts, nil, nil, f.tokens, f.events, logger.Nop())
}

func (f *fixture) user() Provider {
	return NewUserFileProvider(f.opts, nil, nil, f.tokens, f.events, logger.Nop())
}

func (f *fixture) secure() Provider {
	f.t.Helper()
	ks, err := keystore.NewFileKeyStore(filepath.Join(f.dir, "keys"), logger.Nop())
	require.NoError(f.t, err)
	keys, err := crypto.NewKeyService(ks, "aes-gcm", "", logger.Nop())
	require.NoError(f.t, err)
	p, err := NewSecureFileProvider(f.opts, nil, nil, keys, f.tokens, f.events, logger.Nop())
	require.NoError(f.t, err)
	return p
}

func appSchema() models.ConfigSchema {
	return models.ConfigSchema{
		TypeName: "AppConfig",
		Fields: []models.FieldSpec{
			{Name: "Theme", Type: models.FieldString, Default: "Light"},
			{Name: "Port", Type: models.FieldInt, Default: 8080},
			{Name: "Debug", Type: models.FieldBool, Default: false},
		},
	}
}

func registerUser(t *testing.T, f *fixture, p Provider, schema models.ConfigSchema) {
	t.Helper()
	params := models.NewUserFileParams(f.callSet)
	require.NoError(t, p.Register(context.Background(), schema, params))
}

// ── Registration ─────────────────────────────────────────────────────────────

func TestRegister_SeedsDefaultFile(t *testing.T) {
	f := newFixture(t)
	p := f.user()
	registerUser(t, f, p, appSchema())

	data, err := os.ReadFile(filepath.Join(f.dir, "AppConfig.default.json"))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Light", doc["Theme"])
	assert.EqualValues(t, 8080, doc["Port"])
	assert.Equal(t, false, doc["Debug"])

	// The user layer starts empty.
	data, err = os.ReadFile(filepath.Join(f.dir, "AppConfig.user.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestRegister_KeepsExistingFiles(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "AppConfig.default.json"), []byte(`{"Theme":"Solarized","Port":9090}`), 0o644))

	p := f.user()
	registerUser(t, f, p, appSchema())

	v, err := p.GetSetting("AppConfig", "Theme", f.callSet)
	require.NoError(t, err)
	assert.Equal(t, "Solarized", v)

	// A field the file does not mention falls back to the schema default.
	v, err = p.GetSetting("AppConfig", "Debug", f.callSet)
	require.NoError(t, err)
	assert.Equal(t, false, v)
}

func TestRegister_LoadsUserOverrides(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "AppConfig.user.json"), []byte(`{"Theme":"Dark"}`), 0o644))

	p := f.user()
	registerUser(t, f, p, appSchema())

	v, err := p.GetSetting("AppConfig", "Theme", f.callSet)
	require.NoError(t, err)
	assert.Equal(t, "Dark", v)

	v, err = p.GetDefaultSetting("AppConfig", "Theme", f.callSet)
	require.NoError(t, err)
	assert.Equal(t, "Light", v)
}

func TestRegister_CollapsesRedundantOverridesOnLoad(t *testing.T) {
	f := newFixture(t)
	// The override equals the default and must not survive as one.
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "AppConfig.user.json"), []byte(`{"Theme":"Light"}`), 0o644))

	p := f.user()
	registerUser(t, f, p, appSchema())
	require.NoError(t, p.SaveValuesContext(context.Background(), "AppConfig", f.callSet))

	data, err := os.ReadFile(filepath.Join(f.dir, "AppConfig.user.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestRegister_Duplicate(t *testing.T) {
	f := newFixture(t)
	p := f.user()
	registerUser(t, f, p, appSchema())

	err := p.Register(context.Background(), appSchema(), models.NewUserFileParams(f.callSet))
	require.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegister_KindMismatch(t *testing.T) {
	f := newFixture(t)
	p := f.plain()

	err := p.Register(context.Background(), appSchema(), models.NewUserFileParams(f.callSet))
	require.ErrorIs(t, err, models.ErrInvalidParams)
}

func TestRegister_SecureFieldNeedsSecureProvider(t *testing.T) {
	f := newFixture(t)
	p := f.user()

	schema := models.ConfigSchema{
		TypeName: "Creds",
		Fields: []models.FieldSpec{
			{Name: "Password", Type: models.FieldString, Secure: true},
		},
	}
	err := p.Register(context.Background(), schema, models.NewUserFileParams(f.callSet))
	require.ErrorIs(t, err, models.ErrInvalidSchema)
}

func TestRegister_RejectsMistypedDefault(t *testing.T) {
	f := newFixture(t)
	p := f.user()

	schema := models.ConfigSchema{
		TypeName: "Broken",
		Fields: []models.FieldSpec{
			{Name: "Port", Type: models.FieldInt, Default: "not a number"},
		},
	}
	err := p.Register(context.Background(), schema, models.NewUserFileParams(f.callSet))
	require.ErrorIs(t, err, models.ErrInvalidSchema)
}

func TestRegister_AbsolutePathOverride(t *testing.T) {
	f := newFixture(t)
	p := f.user()

	other := t.TempDir()
	params := models.NewUserFileParams(f.callSet)
	params.DefaultPath = filepath.Join(other, "custom.json")
	// Relative overrides are ignored in favor of the convention.
	params.UserPath = "relative/custom-user.json"
	require.NoError(t, p.Register(context.Background(), appSchema(), params))

	_, err := os.Stat(filepath.Join(other, "custom.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(f.dir, "AppConfig.user.json"))
	require.NoError(t, err)
}

func TestRegister_KeyServiceFailureAborts(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	keys := mock.NewMockKeyService(ctrl)
	keys.EXPECT().
		Context(gomock.Any(), "Creds", "").
		Return(nil, errors.New("hsm unreachable"))

	// Zero expectations: a failed registration publishes nothing.
	events := mock.NewMockPublisher(ctrl)

	p, err := NewSecureFileProvider(f.opts, nil, nil, keys, f.tokens, events, logger.Nop())
	require.NoError(t, err)

	err = p.Register(context.Background(), credsSchema(), models.NewSecureFileParams(f.callSet, ""))
	require.ErrorContains(t, err, "creating encryption context")

	// The name stays free for a later attempt.
	_, err = p.GetSetting("Creds", "Host", f.callSet)
	require.ErrorIs(t, err, ErrConfigNotRegistered)
}

func TestRegister_SurfacesKeyStoreFailure(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ks := mock.NewMockKeyStore(ctrl)
	ks.EXPECT().
		Load(gomock.Any(), crypto.MasterKeyID).
		Return(nil, errors.New("backend gone"))

	keys, err := crypto.NewKeyService(ks, "aes-gcm", "", logger.Nop())
	require.NoError(t, err)

	p, err := NewSecureFileProvider(f.opts, nil, nil, keys, f.tokens, f.events, logger.Nop())
	require.NoError(t, err)

	err = p.Register(context.Background(), credsSchema(), models.NewSecureFileParams(f.callSet, ""))
	require.ErrorContains(t, err, "load master key")
	require.ErrorContains(t, err, "backend gone")
}

// ── Lifecycle ────────────────────────────────────────────────────────────────

func TestUnregister(t *testing.T) {
	f := newFixture(t)
	p := f.user()
	registerUser(t, f, p, appSchema())

	require.NoError(t, p.Unregister("AppConfig"))

	_, err := p.GetSetting("AppConfig", "Theme", f.callSet)
	require.ErrorIs(t, err, ErrConfigNotRegistered)
	require.ErrorIs(t, p.Unregister("AppConfig"), ErrConfigNotRegistered)

	// The type can be registered again after teardown.
	registerUser(t, f, p, appSchema())
}

func TestClose_TearsDownEverything(t *testing.T) {
	f := newFixture(t)
	p := f.user()
	registerUser(t, f, p, appSchema())
	require.NoError(t, p.Close())

	_, err := p.GetSetting("AppConfig", "Theme", f.callSet)
	require.ErrorIs(t, err, ErrConfigNotRegistered)
}

func TestKindAndAccessorKind(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, models.KindFile, f.plain().Kind())
	assert.Equal(t, models.AccessorStandard, f.plain().AccessorKind())
	assert.Equal(t, models.KindUserFile, f.user().Kind())
	assert.Equal(t, models.AccessorStandard, f.user().AccessorKind())
	assert.Equal(t, models.KindSecureFile, f.secure().Kind())
	assert.Equal(t, models.AccessorSecure, f.secure().AccessorKind())
}

// ── Hot reload ───────────────────────────────────────────────────────────────

func TestReload_PicksUpExternalChange(t *testing.T) {
	f := newFixture(t)
	watcher, err := store.NewWatcher(50*time.Millisecond, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = watcher.Close() })

	p := NewUserFileProvider(f.opts, nil, watcher, f.tokens, f.events, logger.Nop())
	registerUser(t, f, p, appSchema())

	// An external edit of the user layer must surface after the debounce.
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "AppConfig.user.json"), []byte(`{"Theme":"Dark"}`), 0o644))

	f.events.waitFor(t, 3*time.Second, func(events []models.Event) bool {
		for _, e := range events {
			if r, ok := e.(models.ConfigReloadedEvent); ok && r.ConfigType == "AppConfig" {
				return true
			}
		}
		return false
	})

	v, err := p.GetSetting("AppConfig", "Theme", f.callSet)
	require.NoError(t, err)
	assert.Equal(t, "Dark", v)
}

func TestReload_MalformedFileKeepsOldValues(t *testing.T) {
	f := newFixture(t)
	watcher, err := store.NewWatcher(50*time.Millisecond, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = watcher.Close() })

	p := NewUserFileProvider(f.opts, nil, watcher, f.tokens, f.events, logger.Nop())
	registerUser(t, f, p, appSchema())

	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "AppConfig.default.json"), []byte(`{"Theme": `), 0o644))
	time.Sleep(400 * time.Millisecond)

	v, err := p.GetSetting("AppConfig", "Theme", f.callSet)
	require.NoError(t, err)
	assert.Equal(t, "Light", v)
}
