package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/model"
)

// PlanMeal suggests today's meal for the active dog. Stock is not touched.
func (a *App) PlanMeal() (*engine.Plan, error) {
	dog, err := a.activeDog()
	if err != nil {
		return nil, err
	}
	return engine.PlanMeal(engine.PlanInput{
		Dog:                   dog,
		Products:              a.state.Products,
		Stock:                 a.ledger,
		RecentMeals:           a.state.MealsForDog(dog.ID),
		Today:                 a.today(),
		LastBrothDay:          a.state.LastBrothDay,
		DefaultFeedingPercent: a.feedingFallback(),
	}), nil
}

// ConfirmMeal turns a plan into consume events and a meal log entry. The
// whole plan is rejected when any product would go below zero stock, so a
// failed confirmation appends nothing.
func (a *App) ConfirmMeal(ctx context.Context, plan *engine.Plan) (model.MealLog, error) {
	if plan == nil || len(plan.Items) == 0 {
		return model.MealLog{}, fmt.Errorf("confirm meal: empty plan: %w", engine.ErrInvalidInput)
	}
	dogID := plan.DogID
	if dogID == "" {
		dog, err := a.activeDog()
		if err != nil {
			return model.MealLog{}, err
		}
		dogID = dog.ID
	}
	if a.state.Dog(dogID) == nil {
		return model.MealLog{}, fmt.Errorf("confirm meal: dog %q: %w", dogID, engine.ErrNoActiveDog)
	}

	index := engine.IndexProducts(a.state.Products)
	consume := make(map[string]float64)
	order := make([]string, 0, len(plan.Items))
	for _, it := range plan.Items {
		if err := validateNonNegativeFloat("grams", it.Grams); err != nil {
			return model.MealLog{}, fmt.Errorf("confirm meal: %w", err)
		}
		p, ok := index[it.ProductID]
		if !ok || p.GramsPerPack <= 0 {
			continue
		}
		if _, seen := consume[p.ID]; !seen {
			order = append(order, p.ID)
		}
		consume[p.ID] += it.Grams / p.GramsPerPack
	}
	for _, id := range order {
		if left := a.ledger.CurrentStock(id) - consume[id]; left < -stockEpsilon {
			return model.MealLog{}, fmt.Errorf("confirm meal: not enough %s in stock: %w", id, engine.ErrInvalidInput)
		}
	}

	now := a.clock.Now()
	for _, it := range plan.Items {
		p, ok := index[it.ProductID]
		if !ok || p.GramsPerPack <= 0 {
			continue
		}
		if _, err := a.ledger.Append(p.ID, model.EventConsume, it.Grams/p.GramsPerPack, now); err != nil {
			return model.MealLog{}, fmt.Errorf("confirm meal: %w", err)
		}
	}

	date := plan.Date
	if date == "" {
		date = engine.DayKey(now)
	}
	macros, _ := engine.RealizedMacros(plan.Items, index)
	meal := model.MealLog{
		ID:     newID("meal_"),
		DogID:  dogID,
		Date:   date,
		Items:  append([]model.MealItem(nil), plan.Items...),
		Macros: macros,
	}
	a.state.Meals = append(a.state.Meals, meal)
	if plan.HasBroth(index) {
		a.state.LastBrothDay = date
	}
	a.save(ctx)
	a.logger.Debug("meal confirmed", zap.String("meal_id", meal.ID), zap.Int("items", len(meal.Items)))
	return meal, nil
}

// GenerateRotation replaces the stored seven-day rotation for the active dog.
func (a *App) GenerateRotation(ctx context.Context) ([]model.RotationDay, error) {
	if !a.ProActive() {
		return nil, ErrProRequired
	}
	dog, err := a.activeDog()
	if err != nil {
		return nil, err
	}
	days := engine.GenerateRotation(engine.RotationInput{
		Dog:                   dog,
		Products:              a.state.Products,
		DefaultFeedingPercent: a.feedingFallback(),
	}, a.rnd)
	a.state.Rotation = days
	a.save(ctx)
	return days, nil
}

// Rotation returns the stored seven-day rotation, empty until one is built.
func (a *App) Rotation() ([]model.RotationDay, error) {
	if !a.ProActive() {
		return nil, ErrProRequired
	}
	return a.state.Rotation, nil
}

func (a *App) DailyTreats() ([]model.TreatSuggestion, error) {
	dog, err := a.activeDog()
	if err != nil {
		return nil, err
	}
	return engine.DailyTreats(dog, a.state.Products, a.rnd), nil
}

// CoachMessages evaluates plan against the active dog's history. A nil plan
// is planned first.
func (a *App) CoachMessages(plan *engine.Plan) ([]engine.CoachMessage, error) {
	dog, err := a.activeDog()
	if err != nil {
		return nil, err
	}
	if plan == nil {
		if plan, err = a.PlanMeal(); err != nil {
			return nil, err
		}
	}
	return engine.CoachMessages(engine.CoachInput{
		Plan:                  plan,
		Dog:                   dog,
		Meals:                 a.state.MealsForDog(dog.ID),
		Products:              a.state.Products,
		Stock:                 a.ledger,
		DefaultFeedingPercent: a.feedingFallback(),
	}, a.rnd), nil
}

// DaysOfFoodLeft estimates how long raw stock lasts the active dog.
func (a *App) DaysOfFoodLeft() (float64, bool, error) {
	dog, err := a.activeDog()
	if err != nil {
		return 0, false, err
	}
	days, ok := engine.DaysOfFoodLeft(dog, a.state.Products, a.ledger, a.feedingFallback())
	return days, ok, nil
}

// Plate builds one of the themed plates from stock. Pro only.
func (a *App) Plate(kind engine.PlateKind) ([]model.MealItem, error) {
	if !a.ProActive() {
		return nil, ErrProRequired
	}
	dog, err := a.activeDog()
	if err != nil {
		return nil, err
	}
	switch kind {
	case engine.PlateAllergySeason, engine.PlateHighActivity:
	default:
		return nil, fmt.Errorf("unknown plate %q: %w", kind, engine.ErrInvalidInput)
	}
	return engine.BuildPlate(kind, dog, a.state.Products, a.ledger), nil
}
