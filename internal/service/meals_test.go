package service_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/model"
	"github.com/saadjs/pawfuel-cli/internal/service"
)

func TestPlanMealDoesNotTouchStock(t *testing.T) {
	t.Parallel()
	app, mem, _ := newTestApp(t)
	before := stockSnapshot(app)
	events := len(app.State().InventoryEvents)

	plan, err := app.PlanMeal()
	require.NoError(t, err)
	require.NotEmpty(t, plan.Items)
	assert.Equal(t, 625.0, plan.GramsTarget)
	assert.Equal(t, before, stockSnapshot(app))
	assert.Len(t, app.State().InventoryEvents, events)
	assert.Equal(t, 1, mem.Saves)
}

func TestConfirmMealConsumesStockAndLogsMeal(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)
	ctx := context.Background()
	before := stockSnapshot(app)

	plan, err := app.PlanMeal()
	require.NoError(t, err)
	index := engine.IndexProducts(app.State().Products)
	require.True(t, plan.HasBroth(index))

	meal, err := app.ConfirmMeal(ctx, plan)
	require.NoError(t, err)
	assert.Equal(t, "dog1", meal.DogID)
	assert.Equal(t, "2026-03-02", meal.Date)
	assert.Equal(t, plan.Items, meal.Items)
	assert.Equal(t, plan.Macros, meal.Macros)
	assert.Len(t, app.State().Meals, 1)
	assert.Equal(t, "2026-03-02", app.State().LastBrothDay)

	used := map[string]float64{}
	for _, it := range plan.Items {
		used[it.ProductID] += it.Grams / index[it.ProductID].GramsPerPack
	}
	for id, packs := range used {
		assert.InDelta(t, before[id]-packs, app.CurrentStock(id), 1e-9, id)
	}
	for id, qty := range stockSnapshot(app) {
		assert.GreaterOrEqual(t, qty, 0.0, id)
	}

	again, err := app.PlanMeal()
	require.NoError(t, err)
	assert.False(t, again.HasBroth(index), "broth is offered once per day")
}

func TestConfirmMealBrothReturnsNextDay(t *testing.T) {
	t.Parallel()
	app, _, clock := newTestApp(t)
	plan, err := app.PlanMeal()
	require.NoError(t, err)
	_, err = app.ConfirmMeal(context.Background(), plan)
	require.NoError(t, err)

	clock.advance(24 * time.Hour)
	next, err := app.PlanMeal()
	require.NoError(t, err)
	assert.True(t, next.HasBroth(engine.IndexProducts(app.State().Products)))
}

func TestConfirmMealRejectsOverdraw(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)
	events := len(app.State().InventoryEvents)

	plan := &engine.Plan{
		DogID: "dog1",
		Date:  "2026-03-02",
		Items: []model.MealItem{
			{ProductID: "duo400g", Grams: 400},
			{ProductID: "rabbitWhole230", Grams: 230 * 3},
		},
	}
	_, err := app.ConfirmMeal(context.Background(), plan)
	require.ErrorIs(t, err, engine.ErrInvalidInput)
	assert.Len(t, app.State().InventoryEvents, events, "nothing appended on failure")
	assert.Empty(t, app.State().Meals)
}

func TestConfirmMealValidation(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)
	ctx := context.Background()

	_, err := app.ConfirmMeal(ctx, nil)
	require.ErrorIs(t, err, engine.ErrInvalidInput)
	_, err = app.ConfirmMeal(ctx, &engine.Plan{Items: []model.MealItem{{ProductID: "duo400g", Grams: math.NaN()}}})
	require.ErrorIs(t, err, engine.ErrInvalidInput)
	_, err = app.ConfirmMeal(ctx, &engine.Plan{DogID: "ghost", Items: []model.MealItem{{ProductID: "duo400g", Grams: 400}}})
	require.ErrorIs(t, err, engine.ErrNoActiveDog)
}

func TestConfirmMealSkipsUnknownProducts(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)
	events := len(app.State().InventoryEvents)

	meal, err := app.ConfirmMeal(context.Background(), &engine.Plan{
		Items: []model.MealItem{{ProductID: "duo400g", Grams: 200}, {ProductID: "retired", Grams: 100}},
	})
	require.NoError(t, err)
	assert.Len(t, app.State().InventoryEvents, events+1)
	assert.InDelta(t, 1.5, app.CurrentStock("duo400g"), 1e-9)
	assert.Len(t, meal.Items, 2)
}

func TestGenerateRotationStoresSevenDays(t *testing.T) {
	t.Parallel()
	app, mem, _ := newTestApp(t)
	before := stockSnapshot(app)

	days, err := app.GenerateRotation(context.Background())
	require.NoError(t, err)
	require.Len(t, days, engine.RotationDays)
	assert.Equal(t, days, app.State().Rotation)
	assert.Equal(t, before, stockSnapshot(app))
	assert.Equal(t, 2, mem.Saves)
}

func TestNoActiveDog(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)
	app.State().Dogs = nil

	_, err := app.PlanMeal()
	require.ErrorIs(t, err, engine.ErrNoActiveDog)
	_, err = app.GenerateRotation(context.Background())
	require.ErrorIs(t, err, engine.ErrNoActiveDog)
	_, err = app.DailyTreats()
	require.ErrorIs(t, err, engine.ErrNoActiveDog)
	_, err = app.CoachMessages(nil)
	require.ErrorIs(t, err, engine.ErrNoActiveDog)
}

func TestCoachMessagesAndTreats(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)

	treats, err := app.DailyTreats()
	require.NoError(t, err)
	total := 0
	for _, tr := range treats {
		total += tr.Pieces
	}
	assert.LessOrEqual(t, total, engine.TreatCap(25))

	msgs, err := app.CoachMessages(nil)
	require.NoError(t, err)
	require.NotEmpty(t, msgs)
	assert.Equal(t, engine.MsgVarietyLow, msgs[0].Key, "no meals logged yet")

	days, ok, err := app.DaysOfFoodLeft()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Greater(t, days, 0.0)
}

func TestPlateRequiresPro(t *testing.T) {
	t.Parallel()
	app, _, clock := newTestApp(t)

	items, err := app.Plate(engine.PlateHighActivity)
	require.NoError(t, err)
	assert.NotEmpty(t, items)
	_, err = app.Plate("midnight-snack")
	require.ErrorIs(t, err, engine.ErrInvalidInput)

	clock.advance(400 * 24 * time.Hour)
	_, err = app.Plate(engine.PlateAllergySeason)
	require.ErrorIs(t, err, service.ErrProRequired)
}

func TestDailyPlansStayConfirmable(t *testing.T) {
	t.Parallel()
	app, _, clock := newTestApp(t)
	ctx := context.Background()

	for day := 1; day <= 40; day++ {
		plan, err := app.PlanMeal()
		require.NoError(t, err)
		if len(plan.Items) == 0 {
			break
		}
		_, err = app.ConfirmMeal(ctx, plan)
		require.NoError(t, err, "day %d", day)
		for id, qty := range stockSnapshot(app) {
			require.GreaterOrEqual(t, qty, -1e-9, "day %d %s", day, id)
		}
		clock.advance(24 * time.Hour)
	}
}

func TestPlanMealIgnoresPartialPack(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)
	ctx := context.Background()
	for id, qty := range stockSnapshot(app) {
		if qty > 0 {
			_, err := app.AddInventoryEvent(ctx, id, model.EventConsume, qty)
			require.NoError(t, err)
		}
	}
	_, err := app.AddInventoryEvent(ctx, "duo400g", model.EventReceive, 0.5)
	require.NoError(t, err)

	plan, err := app.PlanMeal()
	require.NoError(t, err)
	assert.Empty(t, plan.Items)
	assert.InDelta(t, 0.5, app.CurrentStock("duo400g"), 1e-9)
}
