package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/model"
	"github.com/saadjs/pawfuel-cli/internal/service"
)

func TestAddDogAndSwitchActive(t *testing.T) {
	t.Parallel()
	app, _, clock := newTestApp(t)
	ctx := context.Background()

	dog, err := app.AddDog(ctx, service.DogInput{
		Name:      "Luna",
		WeightKg:  8,
		AgeYears:  0.4,
		Energy:    "HIGH",
		Allergies: []string{" Chicken", "chicken", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, model.EnergyHigh, dog.Energy)
	assert.Equal(t, model.ConditionIdeal, dog.BodyCondition)
	assert.Equal(t, []string{"chicken"}, dog.Allergies)

	active, err := app.ActiveDog()
	require.NoError(t, err)
	assert.Equal(t, "dog1", active.ID, "adding a dog keeps the current selection")

	require.NoError(t, app.SetActiveDog(ctx, dog.ID))
	plan, err := app.PlanMeal()
	require.NoError(t, err)
	assert.Equal(t, dog.ID, plan.DogID)
	index := engine.IndexProducts(app.State().Products)
	for _, it := range plan.Items {
		assert.NotEqual(t, "chicken", index[it.ProductID].Protein)
	}
	require.ErrorIs(t, app.SetActiveDog(ctx, "ghost"), engine.ErrInvalidInput)

	clock.advance(400 * day)
	_, err = app.AddDog(ctx, service.DogInput{Name: "Third", WeightKg: 10})
	require.ErrorIs(t, err, service.ErrProRequired)
}

func TestDogValidation(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)
	ctx := context.Background()

	for _, in := range []service.DogInput{
		{Name: "", WeightKg: 10},
		{Name: "Rex", WeightKg: -1},
		{Name: "Rex", WeightKg: 10, Energy: "hyper"},
		{Name: "Rex", WeightKg: 10, BodyCondition: "round"},
	} {
		_, err := app.AddDog(ctx, in)
		assert.ErrorIs(t, err, engine.ErrInvalidInput, "%+v", in)
	}

	updated, err := app.UpdateDog(ctx, "dog1", service.DogInput{Name: "Killer", WeightKg: 30, AgeYears: 5, BodyCondition: "lean"})
	require.NoError(t, err)
	assert.Equal(t, 30.0, updated.WeightKg)
	assert.Equal(t, model.ConditionLean, updated.BodyCondition)
	_, err = app.UpdateDog(ctx, "ghost", service.DogInput{Name: "x"})
	require.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestOnboard(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)
	ctx := context.Background()

	_, err := app.Onboard(ctx, service.OnboardInput{WeightKg: 20})
	require.ErrorIs(t, err, engine.ErrInvalidInput)
	assert.False(t, app.State().OnboardingDone)

	dog, err := app.Onboard(ctx, service.OnboardInput{
		WeightKg:  20,
		AgeYears:  2,
		Energy:    model.EnergyLow,
		Allergies: service.ParseList("Beef, duck"),
		Consent:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"beef", "duck"}, dog.Allergies)
	assert.True(t, app.State().OnboardingDone)
	assert.True(t, app.State().ConsentGiven)
	assert.Len(t, app.State().Rotation, engine.RotationDays)
}

func TestOnboardWithoutProDropsRotation(t *testing.T) {
	t.Parallel()
	app, _, clock := newTestApp(t)
	ctx := context.Background()

	_, err := app.GenerateRotation(ctx)
	require.NoError(t, err)
	require.Len(t, app.State().Rotation, engine.RotationDays)

	clock.advance(400 * 24 * time.Hour)
	require.False(t, app.ProActive())

	_, err = app.Onboard(ctx, service.OnboardInput{
		WeightKg:  18,
		AgeYears:  3,
		Allergies: service.ParseList("duck, chicken, rabbit"),
		Consent:   true,
	})
	require.NoError(t, err)
	assert.Empty(t, app.State().Rotation)

	_, err = app.GenerateRotation(ctx)
	require.ErrorIs(t, err, service.ErrProRequired)
	_, err = app.Rotation()
	require.ErrorIs(t, err, service.ErrProRequired)
	assert.Empty(t, app.State().Rotation)
}

func TestAddCustomProduct(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)
	ctx := context.Background()

	p, err := app.AddCustomProduct(ctx, service.ProductInput{Name: "Goat Trio", GramsPerPack: 500, Protein: "Goat"})
	require.NoError(t, err)
	assert.True(t, p.Custom)
	assert.False(t, p.Pantry)
	assert.Equal(t, "goat", p.Protein)
	assert.Equal(t, "Custom", p.Brand)
	assert.Equal(t, model.Macros{Muscle: 0.70, Organ: 0.15, Bone: 0.15}, p.Macros)
	assert.NotNil(t, app.State().Product(p.ID))

	liver, err := app.AddCustomProduct(ctx, service.ProductInput{ID: "liverBites", Name: "Liver Bites", GramsPerPack: 100, Category: model.CategoryTreat})
	require.NoError(t, err)
	assert.True(t, liver.Pantry)
	assert.Equal(t, model.Macros{Organ: 1}, liver.Macros)

	_, err = app.AddCustomProduct(ctx, service.ProductInput{ID: "liverBites", Name: "Again", GramsPerPack: 100})
	require.ErrorIs(t, err, engine.ErrInvalidInput)
	_, err = app.AddCustomProduct(ctx, service.ProductInput{Name: "Zero", GramsPerPack: 0})
	require.ErrorIs(t, err, engine.ErrInvalidInput)
	_, err = app.AddCustomProduct(ctx, service.ProductInput{Name: "Odd", GramsPerPack: 10, Macros: &model.Macros{Muscle: 1.5}})
	require.ErrorIs(t, err, engine.ErrInvalidInput)
	_, err = app.AddCustomProduct(ctx, service.ProductInput{Name: "Odd", GramsPerPack: 10, Category: "snack"})
	require.ErrorIs(t, err, engine.ErrInvalidInput)

	_, err = app.AddInventoryEvent(ctx, p.ID, model.EventReceive, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, app.CurrentStock(p.ID))
}

func TestAddInventoryEvent(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)
	ctx := context.Background()

	id, err := app.AddInventoryEvent(ctx, "duo400g", model.EventConsume, 0.5)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1.5, app.CurrentStock("duo400g"))

	_, err = app.AddInventoryEvent(ctx, "duo400g", model.EventConsume, 2)
	require.ErrorIs(t, err, engine.ErrInvalidInput)
	_, err = app.AddInventoryEvent(ctx, "duo400g", model.EventReceive, -1)
	require.ErrorIs(t, err, engine.ErrInvalidInput)
	_, err = app.AddInventoryEvent(ctx, "nope", model.EventReceive, 1)
	require.ErrorIs(t, err, engine.ErrInvalidInput)
	_, err = app.AddInventoryEvent(ctx, "duo400g", "spoil", 1)
	require.ErrorIs(t, err, engine.ErrInvalidInput)
	assert.Equal(t, 1.5, app.CurrentStock("duo400g"))

	lines := app.StockList()
	require.NotEmpty(t, lines)
	for _, l := range lines {
		assert.NotZero(t, l.Packs)
	}
}
