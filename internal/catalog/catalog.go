package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/model"
)

// Provider supplies the product catalog at startup.
type Provider interface {
	Load(ctx context.Context) ([]model.Product, error)
}

// document is the on-disk and on-wire catalog layout. Both the planner
// schema (id, grams_per_pack, macros) and the shop price-list schema
// (product_key, price_amount) are accepted.
type document struct {
	Products []record `json:"products" yaml:"products"`
}

type record struct {
	ID            string        `json:"id" yaml:"id"`
	ProductKey    string        `json:"product_key" yaml:"product_key"`
	Name          string        `json:"name" yaml:"name"`
	ProductName   string        `json:"product_name" yaml:"product_name"`
	Brand         string        `json:"brand" yaml:"brand"`
	GramsPerPack  float64       `json:"grams_per_pack" yaml:"grams_per_pack"`
	Category      string        `json:"category" yaml:"category"`
	Protein       string        `json:"protein" yaml:"protein"`
	Macros        *model.Macros `json:"macros" yaml:"macros"`
	Pantry        *bool         `json:"pantry" yaml:"pantry"`
	Ingredients   string        `json:"ingredients" yaml:"ingredients"`
	Description   string        `json:"description" yaml:"description"`
	Price         string        `json:"price" yaml:"price"`
	PriceAmount   any           `json:"price_amount" yaml:"price_amount"`
	Currency      string        `json:"currency" yaml:"currency"`
	PriceCurrency string        `json:"price_currency" yaml:"price_currency"`
}

func (r record) product() (model.Product, error) {
	p := model.Product{
		ID:           strings.TrimSpace(firstNonEmpty(r.ID, r.ProductKey)),
		Name:         strings.TrimSpace(firstNonEmpty(r.Name, r.ProductName)),
		Brand:        strings.TrimSpace(r.Brand),
		GramsPerPack: r.GramsPerPack,
		Category:     model.Category(strings.ToLower(strings.TrimSpace(r.Category))),
		Protein:      strings.ToLower(strings.TrimSpace(r.Protein)),
		Ingredients:  strings.TrimSpace(firstNonEmpty(r.Ingredients, r.Description)),
		Currency:     strings.ToUpper(strings.TrimSpace(firstNonEmpty(r.Currency, r.PriceCurrency))),
	}
	if p.ID == "" {
		return model.Product{}, fmt.Errorf("catalog entry %q has no id", p.Name)
	}
	if p.GramsPerPack < 0 {
		return model.Product{}, fmt.Errorf("catalog entry %q: grams_per_pack must be >= 0", p.ID)
	}
	if p.Name == "" {
		p.Name = p.ID
	}
	if p.Protein == "" {
		p.Protein = model.ProteinNone
	}
	switch {
	case r.Pantry != nil:
		p.Pantry = *r.Pantry
	default:
		p.Pantry = p.Category != model.CategoryRaw
	}
	if r.Macros != nil {
		p.Macros = *r.Macros
	} else {
		p.Macros = engine.DefaultMacros(p.Name, p.Category)
	}

	price, err := parsePrice(firstNonEmpty(r.Price, priceString(r.PriceAmount)))
	if err != nil {
		return model.Product{}, fmt.Errorf("catalog entry %q: %w", p.ID, err)
	}
	p.Price = price
	if p.Price != nil && p.Currency == "" {
		p.Currency = "USD"
	}
	return p, nil
}

func decodeRecords(records []record) ([]model.Product, error) {
	out := make([]model.Product, 0, len(records))
	for _, r := range records {
		p, err := r.product()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return Dedupe(out), nil
}

// Dedupe keeps the first product for each id.
func Dedupe(products []model.Product) []model.Product {
	seen := make(map[string]struct{}, len(products))
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Merge overlays incoming catalog data on the current product list. Entries
// without a pack size only carry prices and update existing products;
// full entries replace or append. Custom products are left untouched.
func Merge(current, incoming []model.Product) []model.Product {
	out := make([]model.Product, len(current))
	copy(out, current)
	pos := make(map[string]int, len(out))
	for i, p := range out {
		pos[p.ID] = i
	}
	for _, in := range incoming {
		i, exists := pos[in.ID]
		switch {
		case exists && out[i].Custom:
			continue
		case exists && in.GramsPerPack <= 0:
			if in.Price != nil {
				out[i].Price = in.Price
				out[i].Currency = in.Currency
			}
		case exists:
			if in.Price == nil {
				in.Price, in.Currency = out[i].Price, out[i].Currency
			}
			out[i] = in
		case in.GramsPerPack > 0:
			pos[in.ID] = len(out)
			out = append(out, in)
		}
	}
	return out
}

func parsePrice(raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", raw, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("price must be >= 0")
	}
	return &d, nil
}

func priceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return decimal.NewFromFloat(t).String()
	case int:
		return decimal.NewFromInt(int64(t)).String()
	default:
		return fmt.Sprint(t)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
