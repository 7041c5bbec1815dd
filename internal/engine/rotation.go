package engine

import (
	"math"

	"github.com/saadjs/pawfuel-cli/internal/model"
)

const (
	RotationDays     = 7
	minItemsPerDay   = 2
	extraItemsPerDay = 3 // item count is drawn from {2,3,4}
)

type RotationInput struct {
	Dog                   *model.Dog
	Products              []model.Product
	DefaultFeedingPercent float64
}

// GenerateRotation builds a seven-day forward plan of distinct raw items per
// day plus snacks. Stock is not consulted and nothing is reserved.
func GenerateRotation(in RotationInput, rnd Rand) []model.RotationDay {
	days := make([]model.RotationDay, 0, RotationDays)
	if in.Dog == nil {
		return days
	}
	targets := DailyTargets(in.Dog, in.DefaultFeedingPercent)
	gramsPerDay := math.Round(targets.Grams)
	index := IndexProducts(in.Products)
	allergies := AllergySet(in.Dog)

	raw := make([]*model.Product, 0)
	for i := range in.Products {
		p := &in.Products[i]
		if p.Category != model.CategoryRaw || p.Pantry || p.GramsPerPack <= 0 {
			continue
		}
		if index[p.ID] != p || Excluded(p, allergies) {
			continue
		}
		raw = append(raw, p)
	}
	if len(raw) == 0 {
		return days
	}

	for d := 0; d < RotationDays; d++ {
		count := minItemsPerDay + rnd.IntN(extraItemsPerDay)
		if len(raw) < count {
			count = len(raw)
		}
		picked := pickDistinct(shuffle(raw, rnd), count)
		items := allocateGrams(picked, gramsPerDay)
		macros, _ := RealizedMacros(items, index)
		days = append(days, model.RotationDay{
			Day:    d + 1,
			Items:  items,
			Snacks: DailyTreats(in.Dog, in.Products, rnd),
			Macros: macros,
		})
	}
	return days
}

// pickDistinct takes the first count products with unique ids, refilling
// from the rest of the list when a duplicate is skipped.
func pickDistinct(shuffled []*model.Product, count int) []*model.Product {
	out := make([]*model.Product, 0, count)
	seen := make(map[string]struct{}, count)
	for _, p := range shuffled[:count] {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	for _, p := range shuffled[count:] {
		if len(out) >= count {
			break
		}
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

// allocateGrams gives every item but the last an equal share rounded to
// whole packs (at least one pack); the last item takes what is left.
func allocateGrams(products []*model.Product, gramsPerDay float64) []model.MealItem {
	items := make([]model.MealItem, 0, len(products))
	remaining := gramsPerDay
	share := gramsPerDay / float64(len(products))
	for i, p := range products {
		grams := math.Round(share/p.GramsPerPack) * p.GramsPerPack
		if grams < p.GramsPerPack {
			grams = p.GramsPerPack
		}
		if i == len(products)-1 {
			grams = remaining
		}
		if grams < 0 {
			grams = p.GramsPerPack
		}
		items = append(items, model.MealItem{ProductID: p.ID, Grams: grams})
		remaining -= grams
	}
	return items
}
