package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/model"
	"github.com/saadjs/pawfuel-cli/internal/service"
	"github.com/saadjs/pawfuel-cli/internal/store"
)

func TestNewBuildsAndSavesDefaultState(t *testing.T) {
	t.Parallel()
	app, mem, _ := newTestApp(t)

	assert.Equal(t, 1, mem.Saves)
	dog, err := app.ActiveDog()
	require.NoError(t, err)
	assert.Equal(t, "Killer", dog.Name)
	assert.Equal(t, 25.0, dog.WeightKg)
	assert.Len(t, app.State().InventoryEvents, 11)
	assert.Equal(t, 2.0, app.CurrentStock("trio1kg"))
	assert.Equal(t, startTime.Add(365*24*time.Hour), app.State().ProExpiry)
	assert.True(t, app.ProActive())
	assert.False(t, app.MemoryFallback())
}

func TestNewReloadsStoredState(t *testing.T) {
	t.Parallel()
	app, mem, _ := newTestApp(t)
	_, err := app.AddInventoryEvent(context.Background(), "duo400g", model.EventReceive, 3)
	require.NoError(t, err)

	again, err := service.New(context.Background(), service.Options{Store: mem, Clock: engine.FixedClock(startTime)})
	require.NoError(t, err)
	assert.Equal(t, 5.0, again.CurrentStock("duo400g"))
	assert.Equal(t, app.State().InventoryEvents, again.State().InventoryEvents)
}

func TestNewKeepsProductsWhenCatalogFails(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.WarnLevel)
	app, err := service.New(context.Background(), service.Options{
		Store:   &store.Memory{},
		Catalog: brokenCatalog{},
		Clock:   engine.FixedClock(startTime),
		Logger:  zap.New(core),
	})
	require.NoError(t, err)
	require.Error(t, app.CatalogError())
	assert.NotEmpty(t, app.State().Products)
	assert.Equal(t, 1, logs.FilterMessage("catalog unavailable; keeping stored products").Len())

	err = app.RefreshCatalog(context.Background(), brokenCatalog{})
	require.ErrorIs(t, err, engine.ErrResourceUnavailable)
}

func TestSaveFailureWarnsOnce(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.WarnLevel)
	fs := &failingStore{}
	app, err := service.New(context.Background(), service.Options{
		Store:  fs,
		Clock:  engine.FixedClock(startTime),
		Logger: zap.New(core),
	})
	require.NoError(t, err)
	assert.True(t, app.MemoryFallback())

	_, err = app.AddInventoryEvent(context.Background(), "duo400g", model.EventReceive, 1)
	require.NoError(t, err)
	_, err = app.AddInventoryEvent(context.Background(), "duo400g", model.EventReceive, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, fs.saves)
	assert.Equal(t, 4.0, app.CurrentStock("duo400g"))
	assert.Equal(t, 1, logs.FilterMessage("saving state failed; changes are kept in memory only").Len())
}

func TestNewRequiresStore(t *testing.T) {
	t.Parallel()
	_, err := service.New(context.Background(), service.Options{})
	require.Error(t, err)
}

func TestDefaultFeedingPercentSeedsFreshSettings(t *testing.T) {
	t.Parallel()
	app, err := service.New(context.Background(), service.Options{
		Store:                 &store.Memory{},
		Clock:                 engine.FixedClock(startTime),
		DefaultFeedingPercent: 0.04,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.04, app.Settings().FeedingPercent)
}

func TestResetRestoresDefaults(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)
	ctx := context.Background()
	_, err := app.CreateAccount(ctx, "owner@example.com", "secret-pass")
	require.NoError(t, err)
	_, err = app.AddInventoryEvent(ctx, "duo400g", model.EventReceive, 4)
	require.NoError(t, err)

	require.NoError(t, app.Reset(ctx))
	assert.Nil(t, app.State().Account)
	assert.Len(t, app.State().InventoryEvents, 11)
	assert.Equal(t, 2.0, app.CurrentStock("duo400g"))
}

func TestSetSetting(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.SetSetting(ctx, "language", "AR"))
	require.NoError(t, app.SetSetting(ctx, "branch", "cyprus"))
	require.NoError(t, app.SetSetting(ctx, "thaw_time", "21:30"))
	require.NoError(t, app.SetSetting(ctx, "feeding_percent", "0.025"))
	s := app.Settings()
	assert.Equal(t, "ar", s.Language)
	assert.Equal(t, "cyprus", s.Branch)
	assert.Equal(t, "21:30", s.ThawTime)
	assert.Equal(t, 0.025, s.FeedingPercent)

	for _, tc := range []struct{ key, value string }{
		{"language", "fr"},
		{"branch", "mars"},
		{"morning_time", "8am"},
		{"feeding_percent", "2"},
		{"feeding_percent", "0"},
		{"units", "stones"},
		{"colour", "red"},
	} {
		err := app.SetSetting(ctx, tc.key, tc.value)
		assert.ErrorIs(t, err, engine.ErrInvalidInput, "%s=%s", tc.key, tc.value)
	}
}
