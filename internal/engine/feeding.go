package engine

import "github.com/saadjs/pawfuel-cli/internal/model"

const (
	minFeedingPercent = 0.02
	maxFeedingPercent = 0.06
	conditionStep     = 0.005

	// DefaultFeedingPercent applies when a dog has no usable weight.
	DefaultFeedingPercent = 0.025
)

// Default macro split of the daily ration.
var TargetSplit = model.Macros{Muscle: 0.80, Organ: 0.10, Bone: 0.10}

type Targets struct {
	FeedingPercent float64
	Grams          float64
	Muscle         float64
	Organ          float64
	Bone           float64
}

// FeedingPercent returns the daily ration as a fraction of body weight.
// Puppies under six months start at 6%, juveniles under a year at 4% and
// adults at 2.5%; lean or highly active dogs get half a point more,
// overweight or low-energy dogs half a point less, clamped to 2..6%.
// fallback is returned for a dog without a positive weight; a non-positive
// fallback means DefaultFeedingPercent.
func FeedingPercent(dog *model.Dog, fallback float64) float64 {
	if dog == nil || dog.WeightKg <= 0 {
		if fallback > 0 {
			return fallback
		}
		return DefaultFeedingPercent
	}
	var pct float64
	switch {
	case dog.AgeYears < 0.5:
		pct = 0.06
	case dog.AgeYears < 1:
		pct = 0.04
	default:
		pct = 0.025
	}
	switch dog.BodyCondition {
	case model.ConditionLean:
		pct += conditionStep
	case model.ConditionOverweight:
		pct -= conditionStep
	}
	switch dog.Energy {
	case model.EnergyHigh:
		pct += conditionStep
	case model.EnergyLow:
		pct -= conditionStep
	}
	if pct < minFeedingPercent {
		pct = minFeedingPercent
	}
	if pct > maxFeedingPercent {
		pct = maxFeedingPercent
	}
	return pct
}

func DailyTargets(dog *model.Dog, fallback float64) Targets {
	pct := FeedingPercent(dog, fallback)
	var weight float64
	if dog != nil && dog.WeightKg > 0 {
		weight = dog.WeightKg
	}
	grams := weight * pct * 1000
	return Targets{
		FeedingPercent: pct,
		Grams:          grams,
		Muscle:         grams * TargetSplit.Muscle,
		Organ:          grams * TargetSplit.Organ,
		Bone:           grams * TargetSplit.Bone,
	}
}
