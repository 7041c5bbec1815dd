package engine_test

import (
	"time"

	"github.com/saadjs/pawfuel-cli/internal/model"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type stockMap map[string]float64

func (s stockMap) CurrentStock(id string) float64 { return s[id] }

func adultDog() *model.Dog {
	return &model.Dog{
		ID:            "dog_1",
		Name:          "Killer",
		WeightKg:      25,
		AgeYears:      4,
		Energy:        model.EnergyNormal,
		BodyCondition: model.ConditionIdeal,
	}
}

func raw(id, protein string, grams float64, m model.Macros) model.Product {
	return model.Product{ID: id, Name: id, GramsPerPack: grams, Category: model.CategoryRaw, Protein: protein, Macros: m}
}

func testCatalog() []model.Product {
	whole := model.Macros{Muscle: 0.80, Organ: 0.10, Bone: 0.10}
	return []model.Product{
		raw("trio1kg", "mixed", 1000, model.Macros{Muscle: 0.70, Organ: 0.15, Bone: 0.15}),
		raw("duo400g", "mixed", 400, model.Macros{Muscle: 0.75, Organ: 0.15, Bone: 0.10}),
		raw("rabbitWhole230", "rabbit", 230, whole),
		raw("duckWhole230", "duck", 230, whole),
		raw("chickenWhole230", "chicken", 230, whole),
		{ID: "beefHeartChips85", Name: "Beef Heart Chips", GramsPerPack: 85, Category: model.CategoryTreat, Protein: "beef", Macros: model.Macros{Organ: 1}, Pantry: true},
		{ID: "sardines30", Name: "Sardines", GramsPerPack: 30, Category: model.CategoryTreat, Protein: "fish", Macros: model.Macros{Muscle: 1}, Pantry: true},
		{ID: "boneBroth", Name: "Bone Broth", GramsPerPack: 250, Category: model.CategoryPantry, Protein: "broth", Pantry: true},
	}
}

func fullStock(products []model.Product) stockMap {
	out := stockMap{}
	for _, p := range products {
		out[p.ID] = 2
	}
	return out
}
