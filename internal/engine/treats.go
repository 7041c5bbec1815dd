package engine

import (
	"strings"

	"github.com/saadjs/pawfuel-cli/internal/model"
)

const maxTreatProducts = 2

// TreatCap is the number of treat pieces a dog may have per day.
func TreatCap(weightKg float64) int {
	switch {
	case weightKg < 10:
		return 2
	case weightKg < 25:
		return 3
	default:
		return 4
	}
}

// DailyTreats picks up to two pantry treats (never broth) and spreads the
// weight-based piece cap over them so each gets at least one piece.
func DailyTreats(dog *model.Dog, products []model.Product, rnd Rand) []model.TreatSuggestion {
	out := make([]model.TreatSuggestion, 0, maxTreatProducts)
	if dog == nil {
		return out
	}
	allergies := AllergySet(dog)
	pool := make([]*model.Product, 0)
	for i := range products {
		p := &products[i]
		if !p.Pantry || strings.Contains(normalizeTag(p.Protein), model.ProteinBroth) {
			continue
		}
		if Excluded(p, allergies) {
			continue
		}
		pool = append(pool, p)
	}
	if len(pool) == 0 {
		return out
	}

	remaining := TreatCap(dog.WeightKg)
	selected := shuffle(pool, rnd)
	if len(selected) > maxTreatProducts {
		selected = selected[:maxTreatProducts]
	}
	for i, p := range selected {
		pieces := remaining
		if i < len(selected)-1 {
			pieces = max(1, remaining/(len(selected)-i))
		}
		remaining -= pieces
		out = append(out, model.TreatSuggestion{ProductID: p.ID, Pieces: pieces})
	}
	return out
}
