package engine

import (
	"sort"

	"github.com/saadjs/pawfuel-cli/internal/model"
)

const (
	// overshootGrams is how far a pack may exceed the remaining budget.
	overshootGrams = 50
	// topUpThreshold is the unfilled budget that triggers the smallest-pack top-up.
	topUpThreshold = 20
	brothGrams     = 80
	recentMealSpan = 4
	// packEpsilon absorbs float drift from fractional consumes.
	packEpsilon = 1e-9
)

type PlanInput struct {
	Dog         *model.Dog
	Products    []model.Product
	Stock       StockReader
	RecentMeals []model.MealLog
	// Today and LastBrothDay are calendar-day keys (see DayKey).
	Today                 string
	LastBrothDay          string
	DefaultFeedingPercent float64
}

type Plan struct {
	DogID       string           `json:"dog_id"`
	Date        string           `json:"date"`
	Items       []model.MealItem `json:"items"`
	GramsTarget float64          `json:"grams_target"`
	TotalGrams  float64          `json:"total_grams"`
	Macros      model.Macros     `json:"macros"`
	// Remaining is the unfilled part of the gram target; negative on overshoot.
	Remaining float64 `json:"remaining"`
	// MacroGap is what is still missing from the per-macro gram targets
	// after the raw packs were chosen.
	MacroGap model.Macros `json:"macro_gap"`
}

// HasBroth reports whether the plan includes the daily broth portion.
func (p *Plan) HasBroth(products map[string]*model.Product) bool {
	for _, it := range p.Items {
		if prod, ok := products[it.ProductID]; ok && isBroth(prod) {
			return true
		}
	}
	return false
}

// reservations tracks packs set aside while a plan is being built so the
// durable ledger is never touched before confirmation.
type reservations struct {
	stock    StockReader
	reserved map[string]float64
}

func (r *reservations) available(productID string) float64 {
	return r.stock.CurrentStock(productID) - r.reserved[productID]
}

// covers reports whether packs can be taken without overdrawing stock.
func (r *reservations) covers(productID string, packs float64) bool {
	return r.available(productID)+packEpsilon >= packs
}

func (r *reservations) take(productID string, packs float64) {
	r.reserved[productID] += packs
}

// PlanMeal suggests today's meal from stock without mutating it. It returns
// nil when there is no dog to plan for.
func PlanMeal(in PlanInput) *Plan {
	if in.Dog == nil {
		return nil
	}
	targets := DailyTargets(in.Dog, in.DefaultFeedingPercent)
	index := IndexProducts(in.Products)
	usage := proteinUsage(lastMeals(in.RecentMeals, recentMealSpan), index)
	allergies := AllergySet(in.Dog)

	candidates := make([]*model.Product, 0, len(in.Products))
	for i := range in.Products {
		p := &in.Products[i]
		if p.Pantry || p.GramsPerPack <= 0 {
			continue
		}
		if index[p.ID] != p {
			continue
		}
		if in.Stock.CurrentStock(p.ID) <= 0 || Excluded(p, allergies) {
			continue
		}
		candidates = append(candidates, p)
	}
	// Rarest protein first; among equals the largest stock goes first to
	// work through bulk packs.
	sort.SliceStable(candidates, func(i, j int) bool {
		ui, uj := usage[normalizeTag(candidates[i].Protein)], usage[normalizeTag(candidates[j].Protein)]
		if ui != uj {
			return ui < uj
		}
		return in.Stock.CurrentStock(candidates[i].ID) > in.Stock.CurrentStock(candidates[j].ID)
	})

	res := &reservations{stock: in.Stock, reserved: make(map[string]float64)}
	plan := &Plan{
		DogID:       in.Dog.ID,
		Date:        in.Today,
		Items:       make([]model.MealItem, 0),
		GramsTarget: targets.Grams,
	}
	remaining := targets.Grams
	gap := model.Macros{Muscle: targets.Muscle, Organ: targets.Organ, Bone: targets.Bone}

	for _, p := range candidates {
		for remaining > 0 && res.covers(p.ID, 1) {
			if p.GramsPerPack > remaining+overshootGrams {
				break
			}
			plan.Items = append(plan.Items, model.MealItem{ProductID: p.ID, Grams: p.GramsPerPack})
			remaining -= p.GramsPerPack
			gap.Muscle -= p.GramsPerPack * p.Macros.Muscle
			gap.Organ -= p.GramsPerPack * p.Macros.Organ
			gap.Bone -= p.GramsPerPack * p.Macros.Bone
			res.take(p.ID, 1)
		}
		if remaining <= 0 {
			break
		}
	}

	if in.LastBrothDay != in.Today {
		broth := findBroth(in.Products, allergies)
		if broth != nil && broth.GramsPerPack > 0 && res.covers(broth.ID, brothGrams/broth.GramsPerPack) {
			plan.Items = append(plan.Items, model.MealItem{ProductID: broth.ID, Grams: brothGrams})
			res.take(broth.ID, brothGrams/broth.GramsPerPack)
		}
	}

	if remaining > topUpThreshold {
		smallest := make([]*model.Product, len(candidates))
		copy(smallest, candidates)
		sort.SliceStable(smallest, func(i, j int) bool {
			return smallest[i].GramsPerPack < smallest[j].GramsPerPack
		})
		for _, p := range smallest {
			if !res.covers(p.ID, 1) {
				continue
			}
			if p.GramsPerPack <= remaining+overshootGrams {
				plan.Items = append(plan.Items, model.MealItem{ProductID: p.ID, Grams: p.GramsPerPack})
				remaining -= p.GramsPerPack
				gap.Muscle -= p.GramsPerPack * p.Macros.Muscle
				gap.Organ -= p.GramsPerPack * p.Macros.Organ
				gap.Bone -= p.GramsPerPack * p.Macros.Bone
				res.take(p.ID, 1)
				break
			}
		}
	}

	plan.Macros, plan.TotalGrams = RealizedMacros(plan.Items, index)
	plan.Remaining = remaining
	plan.MacroGap = gap
	return plan
}

func lastMeals(meals []model.MealLog, n int) []model.MealLog {
	if len(meals) <= n {
		return meals
	}
	return meals[len(meals)-n:]
}

// proteinUsage counts how many logged items used each protein tag.
func proteinUsage(meals []model.MealLog, index map[string]*model.Product) map[string]int {
	out := make(map[string]int)
	for _, m := range meals {
		for _, it := range m.Items {
			p, ok := index[it.ProductID]
			if !ok {
				continue
			}
			out[normalizeTag(p.Protein)]++
		}
	}
	return out
}

func findBroth(products []model.Product, allergies map[string]struct{}) *model.Product {
	for i := range products {
		p := &products[i]
		if isBroth(p) && !Excluded(p, allergies) {
			return p
		}
	}
	return nil
}
