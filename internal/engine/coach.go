package engine

import "github.com/saadjs/pawfuel-cli/internal/model"

// Coach message keys. Text lives in the i18n tables.
const (
	MsgVarietyGood = "coach.variety_good"
	MsgVarietyLow  = "coach.variety_low"
	MsgOrganLow    = "coach.organ_low"
	MsgOrganHigh   = "coach.organ_high"
	MsgBoneLow     = "coach.bone_low"
	MsgBoneHigh    = "coach.bone_high"
	MsgLowStock    = "coach.low_stock"
	MsgTreat       = "coach.treat"
)

const (
	varietyWindow  = 7
	varietyGoal    = 3
	macroLowBound  = 0.08
	macroHighBound = 0.12
	lowStockDays   = 2
)

type CoachMessage struct {
	Key       string  `json:"key"`
	Count     int     `json:"count,omitempty"`
	Value     float64 `json:"value,omitempty"`
	ProductID string  `json:"product_id,omitempty"`
}

type CoachInput struct {
	Plan                  *Plan
	Dog                   *model.Dog
	Meals                 []model.MealLog
	Products              []model.Product
	Stock                 StockReader
	DefaultFeedingPercent float64
}

// CoachMessages evaluates a plan against recent history and stock. The
// order of the returned messages is fixed: variety, organ, bone, stock,
// treat.
func CoachMessages(in CoachInput, rnd Rand) []CoachMessage {
	out := make([]CoachMessage, 0, 5)
	if in.Plan == nil {
		return out
	}
	index := IndexProducts(in.Products)

	proteins := make(map[string]struct{})
	for _, m := range lastMeals(in.Meals, varietyWindow) {
		for _, it := range m.Items {
			if p, ok := index[it.ProductID]; ok {
				proteins[normalizeTag(p.Protein)] = struct{}{}
			}
		}
	}
	if len(proteins) >= varietyGoal {
		out = append(out, CoachMessage{Key: MsgVarietyGood, Count: len(proteins)})
	} else {
		out = append(out, CoachMessage{Key: MsgVarietyLow, Count: len(proteins)})
	}

	organ := in.Plan.Macros.Organ
	if organ < macroLowBound {
		out = append(out, CoachMessage{Key: MsgOrganLow, Value: organ})
	}
	if organ > macroHighBound {
		out = append(out, CoachMessage{Key: MsgOrganHigh, Value: organ})
	}
	bone := in.Plan.Macros.Bone
	if bone < macroLowBound {
		out = append(out, CoachMessage{Key: MsgBoneLow, Value: bone})
	}
	if bone > macroHighBound {
		out = append(out, CoachMessage{Key: MsgBoneHigh, Value: bone})
	}

	if days, ok := DaysOfFoodLeft(in.Dog, in.Products, in.Stock, in.DefaultFeedingPercent); ok && days <= lowStockDays {
		out = append(out, CoachMessage{Key: MsgLowStock, Value: days})
	}

	if treats := DailyTreats(in.Dog, in.Products, rnd); len(treats) > 0 {
		out = append(out, CoachMessage{Key: MsgTreat, ProductID: treats[0].ProductID, Count: treats[0].Pieces})
	}
	return out
}

// DaysOfFoodLeft divides the grams of raw (non-pantry) stock by the daily
// target. ok is false when the target is zero.
func DaysOfFoodLeft(dog *model.Dog, products []model.Product, stock StockReader, fallback float64) (float64, bool) {
	target := DailyTargets(dog, fallback).Grams
	if target <= 0 {
		return 0, false
	}
	var grams float64
	for id, p := range IndexProducts(products) {
		if p.Pantry {
			continue
		}
		grams += stock.CurrentStock(id) * p.GramsPerPack
	}
	return grams / target, true
}

func Keys(msgs []CoachMessage) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Key
	}
	return out
}
