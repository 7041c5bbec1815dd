package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/model"
)

func TestTreatCap(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 2, engine.TreatCap(9.9))
	assert.Equal(t, 3, engine.TreatCap(10))
	assert.Equal(t, 3, engine.TreatCap(24.9))
	assert.Equal(t, 4, engine.TreatCap(25))
}

func TestDailyTreatsSumToCap(t *testing.T) {
	t.Parallel()
	for _, weight := range []float64{4, 12, 25, 40} {
		dog := adultDog()
		dog.WeightKg = weight
		for seed := uint64(1); seed <= 10; seed++ {
			treats := engine.DailyTreats(dog, testCatalog(), engine.NewRand(seed))
			require.NotEmpty(t, treats)
			require.LessOrEqual(t, len(treats), 2)
			sum := 0
			for _, tr := range treats {
				assert.GreaterOrEqual(t, tr.Pieces, 1)
				assert.NotEqual(t, "boneBroth", tr.ProductID)
				sum += tr.Pieces
			}
			assert.Equal(t, engine.TreatCap(weight), sum)
		}
	}
}

func TestDailyTreatsEmptyPool(t *testing.T) {
	t.Parallel()
	products := []model.Product{
		raw("a", "beef", 250, model.Macros{Muscle: 1}),
		{ID: "boneBroth", Category: model.CategoryPantry, Protein: "broth", Pantry: true, GramsPerPack: 250},
	}
	treats := engine.DailyTreats(adultDog(), products, engine.NewRand(1))
	assert.NotNil(t, treats)
	assert.Empty(t, treats)
	assert.Empty(t, engine.DailyTreats(nil, testCatalog(), engine.NewRand(1)))
}

func TestDailyTreatsSingleProductTakesAllPieces(t *testing.T) {
	t.Parallel()
	dog := adultDog()
	dog.Allergies = []string{"fish"}
	treats := engine.DailyTreats(dog, testCatalog(), engine.NewRand(5))
	require.Len(t, treats, 1)
	assert.Equal(t, model.TreatSuggestion{ProductID: "beefHeartChips85", Pieces: 4}, treats[0])
}
