package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-config-keeper/models"
)

func TestSubscribe_DeliversProviderEvents(t *testing.T) {
	svc, _ := newTestService(t)
	set := newCallSet(t, svc)
	require.NoError(t, svc.RegisterConfig(context.Background(), themeSchema(), models.NewUserFileParams(set)))

	var got []models.Event
	sub := svc.Subscribe(func(e models.Event) { got = append(got, e) })
	defer sub.Unsubscribe()

	require.NoError(t, svc.SetValue("AppConfig", "Theme", "Dark", set))

	require.Len(t, got, 1)
	changed, ok := got[0].(models.SettingChangedEvent)
	require.True(t, ok, "got %T", got[0])
	assert.Equal(t, "AppConfig", changed.ConfigType)
	assert.Equal(t, "Theme", changed.Key)
	assert.Equal(t, "Light", changed.OldValue)
	assert.Equal(t, "Dark", changed.NewValue)
}

func TestSubscribe_MultipleObservers(t *testing.T) {
	svc, _ := newTestService(t)
	set := newCallSet(t, svc)
	require.NoError(t, svc.RegisterConfig(context.Background(), themeSchema(), models.NewUserFileParams(set)))

	var first, second int
	s1 := svc.Subscribe(func(models.Event) { first++ })
	s2 := svc.Subscribe(func(models.Event) { second++ })
	defer s2.Unsubscribe()

	require.NoError(t, svc.SetValue("AppConfig", "Theme", "Dark", set))
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)

	s1.Unsubscribe()
	require.NoError(t, svc.SetValue("AppConfig", "Theme", "Solarized", set))
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestUnsubscribe_Idempotent(t *testing.T) {
	svc, _ := newTestService(t)

	var calls int
	sub := svc.Subscribe(func(models.Event) { calls++ })
	sub.Unsubscribe()
	sub.Unsubscribe()

	svc.Publish(models.ConfigReloadedEvent{ConfigType: "X"})
	assert.Zero(t, calls)
}

func TestPublish_NoSubscribers(t *testing.T) {
	svc, _ := newTestService(t)

	// Publishing into an empty list must be a quiet no-op.
	svc.Publish(models.SaveCompletedEvent{ConfigType: "X"})
}

func TestObserverMayCallBackIntoService(t *testing.T) {
	svc, _ := newTestService(t)
	set := newCallSet(t, svc)
	require.NoError(t, svc.RegisterConfig(context.Background(), themeSchema(), models.NewUserFileParams(set)))

	// Delivery happens outside provider locks, so an observer reading the
	// value it was notified about must not deadlock.
	var seen any
	sub := svc.Subscribe(func(e models.Event) {
		if _, ok := e.(models.SettingChangedEvent); ok {
			v, err := svc.GetValue("AppConfig", "Theme", set)
			require.NoError(t, err)
			seen = v
		}
	})
	defer sub.Unsubscribe()

	require.NoError(t, svc.SetValue("AppConfig", "Theme", "Dark", set))
	assert.Equal(t, "Dark", seen)
}
