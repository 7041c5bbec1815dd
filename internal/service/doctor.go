package service

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

type DoctorReport struct {
	UnknownEventProducts []string `json:"unknown_event_products"`
	UnknownMealProducts  []string `json:"unknown_meal_products"`
	NegativeStock        []string `json:"negative_stock"`
	DuplicateEventIDs    int      `json:"duplicate_event_ids"`
	DuplicateMealIDs     int      `json:"duplicate_meal_ids"`
	MissingActiveDog     bool     `json:"missing_active_dog"`
	Integrity            string   `json:"integrity,omitempty"`
	Fixed                int      `json:"fixed,omitempty"`
}

func (r DoctorReport) Healthy() bool {
	return len(r.UnknownEventProducts) == 0 &&
		len(r.UnknownMealProducts) == 0 &&
		len(r.NegativeStock) == 0 &&
		r.DuplicateEventIDs == 0 &&
		r.DuplicateMealIDs == 0 &&
		!r.MissingActiveDog &&
		(r.Integrity == "" || r.Integrity == "ok")
}

type integrityChecker interface {
	IntegrityCheck(ctx context.Context) (string, error)
}

// RunDoctor reports references to unknown products, negative balances and
// duplicate ids. With fix, repeated event and meal ids are dropped keeping
// the first occurrence; unknown references are only reported since they
// already contribute nothing.
func (a *App) RunDoctor(ctx context.Context, fix bool) (DoctorReport, error) {
	report := DoctorReport{MissingActiveDog: a.state.ActiveDog() == nil}

	known := make(map[string]struct{}, len(a.state.Products))
	for _, p := range a.state.Products {
		known[p.ID] = struct{}{}
	}
	unknownEvents := map[string]struct{}{}
	for _, ev := range a.state.InventoryEvents {
		if _, ok := known[ev.ProductID]; !ok {
			unknownEvents[ev.ProductID] = struct{}{}
		}
	}
	unknownMeals := map[string]struct{}{}
	for _, m := range a.state.Meals {
		for _, it := range m.Items {
			if _, ok := known[it.ProductID]; !ok {
				unknownMeals[it.ProductID] = struct{}{}
			}
		}
	}
	report.UnknownEventProducts = sortedKeys(unknownEvents)
	report.UnknownMealProducts = sortedKeys(unknownMeals)
	report.NegativeStock = negativeStock(a.state)

	seenEvents := map[string]struct{}{}
	events := a.state.InventoryEvents[:0:0]
	for _, ev := range a.state.InventoryEvents {
		if _, dup := seenEvents[ev.ID]; dup {
			report.DuplicateEventIDs++
			continue
		}
		seenEvents[ev.ID] = struct{}{}
		events = append(events, ev)
	}
	seenMeals := map[string]struct{}{}
	meals := a.state.Meals[:0:0]
	for _, m := range a.state.Meals {
		if _, dup := seenMeals[m.ID]; dup {
			report.DuplicateMealIDs++
			continue
		}
		seenMeals[m.ID] = struct{}{}
		meals = append(meals, m)
	}

	if checker, ok := a.store.(integrityChecker); ok {
		result, err := checker.IntegrityCheck(ctx)
		if err != nil {
			return report, err
		}
		report.Integrity = result
	}

	if fix && report.DuplicateEventIDs+report.DuplicateMealIDs > 0 {
		a.state.InventoryEvents = events
		a.state.Meals = meals
		report.Fixed = report.DuplicateEventIDs + report.DuplicateMealIDs
		a.save(ctx)
		a.logger.Info("doctor removed duplicate rows", zap.Int("fixed", report.Fixed))
	}
	return report, nil
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
