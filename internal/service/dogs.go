package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/model"
)

type DogInput struct {
	Name          string
	Breed         string
	Sex           string
	WeightKg      float64
	AgeYears      float64
	Energy        model.Energy
	BodyCondition model.BodyCondition
	Allergies     []string
}

func (in DogInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("dog name is required: %w", engine.ErrInvalidInput)
	}
	if err := validateNonNegativeFloat("weight", in.WeightKg); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("age", in.AgeYears); err != nil {
		return err
	}
	if _, err := ParseEnergy(string(in.Energy)); err != nil {
		return err
	}
	if _, err := ParseBodyCondition(string(in.BodyCondition)); err != nil {
		return err
	}
	return nil
}

func ParseEnergy(s string) (model.Energy, error) {
	switch e := model.Energy(normalizeName(s)); e {
	case "":
		return model.EnergyNormal, nil
	case model.EnergyLow, model.EnergyNormal, model.EnergyHigh:
		return e, nil
	}
	return "", fmt.Errorf("energy must be low, normal or high: %w", engine.ErrInvalidInput)
}

func ParseBodyCondition(s string) (model.BodyCondition, error) {
	switch c := model.BodyCondition(normalizeName(s)); c {
	case "":
		return model.ConditionIdeal, nil
	case model.ConditionLean, model.ConditionIdeal, model.ConditionOverweight:
		return c, nil
	}
	return "", fmt.Errorf("body condition must be lean, ideal or overweight: %w", engine.ErrInvalidInput)
}

func normalizeAllergies(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, a := range in {
		v := normalizeName(a)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func (a *App) Dogs() []model.Dog { return a.state.Dogs }

func (a *App) ActiveDog() (model.Dog, error) {
	dog, err := a.activeDog()
	if err != nil {
		return model.Dog{}, err
	}
	return *dog, nil
}

// AddDog creates a profile. Free users are limited to one dog.
func (a *App) AddDog(ctx context.Context, in DogInput) (model.Dog, error) {
	if err := in.validate(); err != nil {
		return model.Dog{}, err
	}
	if len(a.state.Dogs) >= freeDogProfile && !a.ProActive() {
		return model.Dog{}, ErrProRequired
	}
	energy, _ := ParseEnergy(string(in.Energy))
	cond, _ := ParseBodyCondition(string(in.BodyCondition))
	now := a.clock.Now()
	dog := model.Dog{
		ID:            newID("dog_"),
		Name:          strings.TrimSpace(in.Name),
		Breed:         strings.TrimSpace(in.Breed),
		Sex:           strings.TrimSpace(in.Sex),
		WeightKg:      in.WeightKg,
		AgeYears:      in.AgeYears,
		Energy:        energy,
		BodyCondition: cond,
		Allergies:     normalizeAllergies(in.Allergies),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	a.state.Dogs = append(a.state.Dogs, dog)
	if a.state.ActiveDog() == nil {
		a.state.ActiveDogID = dog.ID
	}
	a.save(ctx)
	return dog, nil
}

func (a *App) UpdateDog(ctx context.Context, id string, in DogInput) (model.Dog, error) {
	dog := a.state.Dog(id)
	if dog == nil {
		return model.Dog{}, fmt.Errorf("dog %q does not exist: %w", id, engine.ErrInvalidInput)
	}
	if err := in.validate(); err != nil {
		return model.Dog{}, err
	}
	dog.Name = strings.TrimSpace(in.Name)
	dog.Breed = strings.TrimSpace(in.Breed)
	dog.Sex = strings.TrimSpace(in.Sex)
	dog.WeightKg = in.WeightKg
	dog.AgeYears = in.AgeYears
	dog.Energy, _ = ParseEnergy(string(in.Energy))
	dog.BodyCondition, _ = ParseBodyCondition(string(in.BodyCondition))
	dog.Allergies = normalizeAllergies(in.Allergies)
	dog.UpdatedAt = a.clock.Now()
	a.save(ctx)
	return *dog, nil
}

func (a *App) SetActiveDog(ctx context.Context, id string) error {
	if a.state.Dog(id) == nil {
		return fmt.Errorf("dog %q does not exist: %w", id, engine.ErrInvalidInput)
	}
	a.state.ActiveDogID = id
	a.save(ctx)
	return nil
}

type OnboardInput struct {
	WeightKg  float64
	AgeYears  float64
	Energy    model.Energy
	Allergies []string
	Consent   bool
}

// Onboard completes first-run setup for the active dog. Consent to the
// privacy policy is required. Any stored rotation is discarded; with Pro
// active a fresh one is built.
func (a *App) Onboard(ctx context.Context, in OnboardInput) (model.Dog, error) {
	if !in.Consent {
		return model.Dog{}, fmt.Errorf("consent is required to finish onboarding: %w", engine.ErrInvalidInput)
	}
	dog, err := a.activeDog()
	if err != nil {
		return model.Dog{}, err
	}
	update := DogInput{
		Name:          dog.Name,
		Breed:         dog.Breed,
		Sex:           dog.Sex,
		WeightKg:      in.WeightKg,
		AgeYears:      in.AgeYears,
		Energy:        in.Energy,
		BodyCondition: dog.BodyCondition,
		Allergies:     in.Allergies,
	}
	if err := update.validate(); err != nil {
		return model.Dog{}, err
	}
	dog.WeightKg = in.WeightKg
	dog.AgeYears = in.AgeYears
	dog.Energy, _ = ParseEnergy(string(in.Energy))
	dog.Allergies = normalizeAllergies(in.Allergies)
	dog.UpdatedAt = a.clock.Now()

	a.state.ConsentGiven = true
	a.state.OnboardingDone = true
	if a.state.Account != nil {
		a.state.Account.OnboardingDone = true
	}
	a.state.Rotation = []model.RotationDay{}
	if a.ProActive() {
		a.state.Rotation = engine.GenerateRotation(engine.RotationInput{
			Dog:                   dog,
			Products:              a.state.Products,
			DefaultFeedingPercent: a.feedingFallback(),
		}, a.rnd)
	}
	a.save(ctx)
	return *dog, nil
}
