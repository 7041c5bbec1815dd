package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/model"
)

func TestFeedingPercentAgeBoundaries(t *testing.T) {
	t.Parallel()
	cases := []struct {
		age  float64
		pct  float64
		gram float64
	}{
		{0.49, 0.06, 600},
		{0.5, 0.04, 400},
		{0.99, 0.04, 400},
		{1.0, 0.025, 250},
	}
	for _, tc := range cases {
		dog := &model.Dog{WeightKg: 10, AgeYears: tc.age}
		assert.InDelta(t, tc.pct, engine.FeedingPercent(dog, 0), 1e-9, "age %v", tc.age)
		assert.InDelta(t, tc.gram, engine.DailyTargets(dog, 0).Grams, 1e-6, "age %v", tc.age)
	}
}

func TestFeedingPercentAdjustmentsAndClamp(t *testing.T) {
	t.Parallel()
	lean := &model.Dog{WeightKg: 20, AgeYears: 3, BodyCondition: model.ConditionLean, Energy: model.EnergyHigh}
	assert.InDelta(t, 0.035, engine.FeedingPercent(lean, 0), 1e-9)

	heavy := &model.Dog{WeightKg: 20, AgeYears: 3, BodyCondition: model.ConditionOverweight, Energy: model.EnergyLow}
	assert.InDelta(t, 0.02, engine.FeedingPercent(heavy, 0), 1e-9)

	puppy := &model.Dog{WeightKg: 5, AgeYears: 0.2, BodyCondition: model.ConditionLean, Energy: model.EnergyHigh}
	assert.InDelta(t, 0.06, engine.FeedingPercent(puppy, 0), 1e-9)
}

func TestDailyTargetsScenarios(t *testing.T) {
	t.Parallel()
	targets := engine.DailyTargets(adultDog(), 0)
	assert.InDelta(t, 0.025, targets.FeedingPercent, 1e-9)
	assert.InDelta(t, 625, targets.Grams, 1e-6)
	assert.InDelta(t, 500, targets.Muscle, 1e-6)
	assert.InDelta(t, 62.5, targets.Organ, 1e-6)
	assert.InDelta(t, 62.5, targets.Bone, 1e-6)

	puppy := &model.Dog{WeightKg: 8, AgeYears: 0.3}
	assert.InDelta(t, 480, engine.DailyTargets(puppy, 0).Grams, 1e-6)
}

func TestFeedingPercentFallbackWithoutWeight(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 0.03, engine.FeedingPercent(&model.Dog{}, 0.03), 1e-9)
	assert.InDelta(t, engine.DefaultFeedingPercent, engine.FeedingPercent(nil, 0), 1e-9)
	assert.Zero(t, engine.DailyTargets(&model.Dog{}, 0.03).Grams)
}
