package service

import (
	"github.com/saadjs/pawfuel-cli/internal/model"
)

// defaultHistoryMeals is how many recent meals the history view shows.
const defaultHistoryMeals = 7

type MealSummary struct {
	Meal     model.MealLog `json:"meal"`
	Proteins []string      `json:"proteins"`
}

// MealHistory returns the active dog's last n meals, oldest first, with the
// protein tag of every item. n <= 0 means the default week. Items whose
// product is gone are listed with an empty tag.
func (a *App) MealHistory(n int) ([]MealSummary, error) {
	if !a.ProActive() {
		return nil, ErrProRequired
	}
	dog, err := a.activeDog()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = defaultHistoryMeals
	}
	meals := a.state.MealsForDog(dog.ID)
	if len(meals) > n {
		meals = meals[len(meals)-n:]
	}
	out := make([]MealSummary, 0, len(meals))
	for _, m := range meals {
		proteins := make([]string, 0, len(m.Items))
		for _, it := range m.Items {
			var tag string
			if p := a.state.Product(it.ProductID); p != nil {
				tag = p.Protein
			}
			proteins = append(proteins, tag)
		}
		out = append(out, MealSummary{Meal: m, Proteins: proteins})
	}
	return out, nil
}
