package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/model"
	"github.com/saadjs/pawfuel-cli/internal/store"
)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "pawfuel.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleState() *model.State {
	at := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	trial := at.Add(-24 * time.Hour)
	price := decimal.RequireFromString("18.50")
	whole := model.Macros{Muscle: 0.8, Organ: 0.1, Bone: 0.1}
	return &model.State{
		Dogs: []model.Dog{{
			ID: "dog_1", Name: "Killer", WeightKg: 25, AgeYears: 4,
			Energy: model.EnergyNormal, BodyCondition: model.ConditionIdeal,
			Allergies: []string{"chicken", "duck"}, CreatedAt: at, UpdatedAt: at,
		}},
		ActiveDogID: "dog_1",
		Products: []model.Product{
			{ID: "duo400g", Name: "Duo Pack 400g", GramsPerPack: 400, Category: model.CategoryRaw, Protein: "mixed", Macros: model.Macros{Muscle: 0.75, Organ: 0.15, Bone: 0.10}, Price: &price, Currency: "USD"},
			{ID: "rabbitWhole230", Name: "Whole Rabbit 230g", GramsPerPack: 230, Category: model.CategoryRaw, Protein: "rabbit", Macros: whole},
			{ID: "chickenWhole230", Name: "Whole Chicken 230g", GramsPerPack: 230, Category: model.CategoryRaw, Protein: "chicken", Macros: whole},
			{ID: "boneBroth", Name: "Bone Broth 250g", GramsPerPack: 250, Category: model.CategoryPantry, Protein: "broth", Pantry: true},
			{ID: "myLiver", Name: "My Liver", GramsPerPack: 100, Category: model.CategoryTreat, Protein: "beef", Macros: model.Macros{Organ: 1}, Pantry: true, Custom: true},
		},
		InventoryEvents: []model.InventoryEvent{
			{ID: "ev_1", ProductID: "duo400g", Type: model.EventReceive, Packs: 2, At: at},
			{ID: "ev_2", ProductID: "rabbitWhole230", Type: model.EventReceive, Packs: 3, At: at},
			{ID: "ev_3", ProductID: "duo400g", Type: model.EventConsume, Packs: 0.5, At: at},
			{ID: "ev_4", ProductID: "boneBroth", Type: model.EventReceive, Packs: 1, At: at},
			{ID: "ev_5", ProductID: "chickenWhole230", Type: model.EventReceive, Packs: 4, At: at},
		},
		Meals: []model.MealLog{{
			ID: "meal_1", DogID: "dog_1", Date: "2026-02-28",
			Items:  []model.MealItem{{ProductID: "rabbitWhole230", Grams: 230}, {ProductID: "duo400g", Grams: 200}},
			Macros: model.Macros{Muscle: 0.77, Organ: 0.12, Bone: 0.1},
		}},
		StoolLogs: []model.StoolLog{{ID: "st_1", DogID: "dog_1", Date: "2026-02-28", Result: model.StoolWatch, Brightness: 100, ImagePath: "/tmp/a.jpg"}},
		Rotation: []model.RotationDay{{
			Day: 1, Items: []model.MealItem{{ProductID: "rabbitWhole230", Grams: 230}},
			Snacks: []model.TreatSuggestion{{ProductID: "myLiver", Pieces: 4}}, Macros: whole,
		}},
		Settings:          model.DefaultSettings(),
		LastBrothDay:      "2026-02-28",
		Account:           &model.Account{Email: "a@b.c", PasswordHash: "hash", CreatedAt: at, LoggedIn: true, TrialStart: &trial},
		OnboardingDone:    true,
		ConsentGiven:      true,
		ProExpiry:         at.AddDate(1, 0, 0),
		ProExpiryNotified: true,
		OrderHistory: []model.Order{{
			ID: "ord_1", At: at, Branch: "lebanon", Address: "Beirut", Notes: "ring twice",
			Items: []model.OrderLine{{ProductID: "duo400g", Name: "Duo Pack 400g", Qty: 2, Size: "400g", Price: "18.50"}},
		}},
		RecurringOrders: []model.RecurringOrder{{
			ID: "rec_1", Weekday: time.Friday, Time: "09:00",
			Items: []model.RecurringItem{{ProductID: "rabbitWhole230", Qty: 3}},
		}},
	}
}

func TestLoadEmptyReturnsNil(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	state, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	want := sampleState()
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, want.Dogs, got.Dogs)
	assert.Equal(t, want.ActiveDogID, got.ActiveDogID)
	assert.Equal(t, want.InventoryEvents, got.InventoryEvents)
	assert.Equal(t, want.Meals, got.Meals)
	assert.Equal(t, want.StoolLogs, got.StoolLogs)
	assert.Equal(t, want.Rotation, got.Rotation)
	assert.Equal(t, want.Settings, got.Settings)
	assert.Equal(t, want.LastBrothDay, got.LastBrothDay)
	assert.Equal(t, want.Account, got.Account)
	assert.Equal(t, want.OrderHistory, got.OrderHistory)
	assert.Equal(t, want.RecurringOrders, got.RecurringOrders)
	assert.True(t, got.ProExpiry.Equal(want.ProExpiry))
	assert.True(t, got.OnboardingDone)
	assert.True(t, got.ConsentGiven)
	assert.True(t, got.ProExpiryNotified)
	assert.False(t, got.BannerDismissed)

	require.Len(t, got.Products, len(want.Products))
	for i := range want.Products {
		assert.Equal(t, want.Products[i].ID, got.Products[i].ID)
		assert.Equal(t, want.Products[i].Macros, got.Products[i].Macros)
		assert.Equal(t, want.Products[i].Custom, got.Products[i].Custom)
	}
	require.NotNil(t, got.Products[0].Price)
	assert.True(t, got.Products[0].Price.Equal(*want.Products[0].Price))

	// Stock and planning are identical before and after the round trip.
	before, after := engine.NewLedger(&want.InventoryEvents), engine.NewLedger(&got.InventoryEvents)
	for _, p := range want.Products {
		assert.InDelta(t, before.CurrentStock(p.ID), after.CurrentStock(p.ID), 1e-9)
	}
	planIn := func(st *model.State, l *engine.Ledger) engine.PlanInput {
		return engine.PlanInput{
			Dog: st.ActiveDog(), Products: st.Products, Stock: l,
			RecentMeals: st.MealsForDog(st.ActiveDogID), Today: "2026-03-01", LastBrothDay: st.LastBrothDay,
		}
	}
	assert.Equal(t, engine.PlanMeal(planIn(want, before)), engine.PlanMeal(planIn(got, after)))
}

func TestSaveReplacesSnapshot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	state := sampleState()
	require.NoError(t, s.Save(ctx, state))

	state.Dogs = state.Dogs[:0]
	state.Account = nil
	state.Meals = nil
	require.NoError(t, s.Save(ctx, state))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Dogs)
	assert.Empty(t, got.Meals)
	assert.Nil(t, got.Account)
	assert.Len(t, got.InventoryEvents, 5)
}

func TestSaveRejectsInvalidRows(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Save(ctx, sampleState()))

	bad := sampleState()
	bad.InventoryEvents = append(bad.InventoryEvents, model.InventoryEvent{ID: "ev_bad", ProductID: "duo400g", Type: model.EventConsume, Packs: -1})
	require.Error(t, s.Save(ctx, bad))

	// The failed transaction leaves the previous snapshot intact.
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.InventoryEvents, 5)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := &store.Memory{}
	state, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, state)

	want := sampleState()
	want.MemoryFallback = true
	require.NoError(t, m.Save(ctx, want))
	got, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.InventoryEvents, got.InventoryEvents)
	assert.False(t, got.MemoryFallback)
	assert.Equal(t, 1, m.Saves)
}

func TestConfigSetGetList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SetConfig(ctx, " Catalog_Source ", " https://example.com/c.json "))
	v, ok, err := s.GetConfig(ctx, store.ConfigCatalogSource)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/c.json", v)

	_, ok, err = s.GetConfig(ctx, store.ConfigPhoneCyprus)
	require.NoError(t, err)
	assert.False(t, ok)

	require.ErrorContains(t, s.SetConfig(ctx, "colour", "red"), "unknown config key")
	require.Error(t, s.SetConfig(ctx, "", "x"))

	all, err := s.ListConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{store.ConfigCatalogSource: "https://example.com/c.json"}, all)

	require.NoError(t, s.UnsetConfig(ctx, store.ConfigCatalogSource))
	all, err = s.ListConfig(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestBackupAndRestore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Save(ctx, sampleState()))

	dir := t.TempDir()
	backupPath := filepath.Join(dir, "pawfuel-backup.db")
	info, err := s.Backup(ctx, backupPath)
	require.NoError(t, err)
	assert.NotEmpty(t, info.Checksum)
	assert.Positive(t, info.SizeBytes)

	_, err = s.Backup(ctx, backupPath)
	require.ErrorContains(t, err, "already exists")

	list, err := store.ListBackups(dir)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, info.Checksum, list[0].Checksum)

	restored := filepath.Join(t.TempDir(), "restored.db")
	require.NoError(t, store.RestoreBackup(backupPath, restored, false))
	require.ErrorContains(t, store.RestoreBackup(backupPath, restored, false), "--force")

	rs, err := store.OpenSQLite(ctx, restored, nil)
	require.NoError(t, err)
	defer rs.Close()
	got, err := rs.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.InventoryEvents, 5)

	check, err := rs.IntegrityCheck(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", check)
}

func TestRestoreDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Save(ctx, sampleState()))

	backupPath := filepath.Join(t.TempDir(), "b.db")
	_, err := s.Backup(ctx, backupPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(backupPath+".sha256", []byte("deadbeef\n"), 0o644))

	err = store.RestoreBackup(backupPath, filepath.Join(t.TempDir(), "x.db"), true)
	require.ErrorContains(t, err, "checksum mismatch")
}
