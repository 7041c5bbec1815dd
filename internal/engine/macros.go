package engine

import (
	"strings"

	"github.com/saadjs/pawfuel-cli/internal/model"
)

// DefaultMacros infers a muscle/organ/bone split from a product's name and
// category when the user does not supply one.
func DefaultMacros(name string, category model.Category) model.Macros {
	n := strings.ToLower(name)
	if category != model.CategoryRaw {
		switch {
		case strings.Contains(n, "shell"):
			return model.Macros{Bone: 1}
		case strings.Contains(n, "liver"), strings.Contains(n, "tripe"), strings.Contains(n, "organ"):
			return model.Macros{Organ: 1}
		case strings.Contains(n, "muscle"), strings.Contains(n, "breast"), strings.Contains(n, "cube"):
			return model.Macros{Muscle: 1}
		}
		return model.Macros{}
	}
	switch {
	case strings.Contains(n, "boneless"):
		return model.Macros{Muscle: 0.90, Organ: 0.05, Bone: 0.05}
	case strings.Contains(n, "trio"):
		return model.Macros{Muscle: 0.70, Organ: 0.15, Bone: 0.15}
	case strings.Contains(n, "duo"), strings.Contains(n, "tripe"):
		return model.Macros{Muscle: 0.75, Organ: 0.15, Bone: 0.10}
	case strings.Contains(n, "cube"), strings.Contains(n, "whole"):
		return model.Macros{Muscle: 0.80, Organ: 0.10, Bone: 0.10}
	case strings.Contains(n, "breast"), strings.Contains(n, "muscle"):
		return model.Macros{Muscle: 1}
	}
	return TargetSplit
}

// RealizedMacros weights each item's macro fractions by its grams and
// normalizes by the total. Items whose product is unknown still count
// toward the total but contribute no macros.
func RealizedMacros(items []model.MealItem, products map[string]*model.Product) (model.Macros, float64) {
	var total, muscle, organ, bone float64
	for _, it := range items {
		total += it.Grams
		p, ok := products[it.ProductID]
		if !ok {
			continue
		}
		muscle += it.Grams * p.Macros.Muscle
		organ += it.Grams * p.Macros.Organ
		bone += it.Grams * p.Macros.Bone
	}
	if total <= 0 {
		return model.Macros{}, total
	}
	return model.Macros{Muscle: muscle / total, Organ: organ / total, Bone: bone / total}, total
}

// IndexProducts keys products by id; the first occurrence of an id wins.
func IndexProducts(products []model.Product) map[string]*model.Product {
	out := make(map[string]*model.Product, len(products))
	for i := range products {
		if _, ok := out[products[i].ID]; ok {
			continue
		}
		out[products[i].ID] = &products[i]
	}
	return out
}

func normalizeTag(tag string) string {
	return strings.TrimSpace(strings.ToLower(tag))
}

// AllergySet lower-cases a dog's allergy tags.
func AllergySet(dog *model.Dog) map[string]struct{} {
	out := make(map[string]struct{})
	if dog == nil {
		return out
	}
	for _, a := range dog.Allergies {
		a = normalizeTag(a)
		if a == "" {
			continue
		}
		out[a] = struct{}{}
	}
	return out
}

// Excluded reports whether a product's protein tag is one of the allergies.
// The "none" and "mixed" sentinels never match.
func Excluded(p *model.Product, allergies map[string]struct{}) bool {
	tag := normalizeTag(p.Protein)
	if tag == "" || tag == model.ProteinNone || tag == model.ProteinMixed {
		return false
	}
	_, ok := allergies[tag]
	return ok
}

func isBroth(p *model.Product) bool {
	return normalizeTag(p.Protein) == model.ProteinBroth
}
