package engine

import (
	"strings"

	"github.com/saadjs/pawfuel-cli/internal/model"
)

type PlateKind string

const (
	PlateAllergySeason PlateKind = "allergy-season"
	PlateHighActivity  PlateKind = "high-activity"
)

const (
	beetGrams          = 30
	activityBrothGrams = 120
	activityRawItems   = 2
)

// BuildPlate assembles one of the themed plates from whatever is in stock.
func BuildPlate(kind PlateKind, dog *model.Dog, products []model.Product, stock StockReader) []model.MealItem {
	allergies := AllergySet(dog)
	items := make([]model.MealItem, 0, 3)
	inStock := func(p *model.Product) bool {
		return stock.CurrentStock(p.ID) > 0 && !Excluded(p, allergies)
	}

	rawLimit := 1
	brothPortion := float64(brothGrams)
	if kind == PlateHighActivity {
		rawLimit = activityRawItems
		brothPortion = activityBrothGrams
	}
	for i := range products {
		p := &products[i]
		if len(items) >= rawLimit {
			break
		}
		if p.Category == model.CategoryRaw && inStock(p) {
			items = append(items, model.MealItem{ProductID: p.ID, Grams: p.GramsPerPack})
		}
	}
	if kind == PlateAllergySeason {
		for i := range products {
			p := &products[i]
			if isBeetroot(p) {
				if inStock(p) {
					items = append(items, model.MealItem{ProductID: p.ID, Grams: beetGrams})
				}
				break
			}
		}
	}
	if broth := findBroth(products, allergies); broth != nil && stock.CurrentStock(broth.ID) > 0 {
		items = append(items, model.MealItem{ProductID: broth.ID, Grams: brothPortion})
	}
	return items
}

func isBeetroot(p *model.Product) bool {
	return strings.Contains(strings.ToLower(p.Name), "beet") ||
		strings.Contains(strings.ToLower(p.Ingredients), "beet")
}
