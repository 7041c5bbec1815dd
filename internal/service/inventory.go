package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/model"
)

func (a *App) CurrentStock(productID string) float64 {
	return a.ledger.CurrentStock(productID)
}

type StockLine struct {
	Product model.Product `json:"product"`
	Packs   float64       `json:"packs"`
}

// StockList returns every product with a non-zero balance, sorted by name.
func (a *App) StockList() []StockLine {
	stock := a.ledger.Stock()
	out := make([]StockLine, 0, len(stock))
	for id, packs := range stock {
		if packs == 0 {
			continue
		}
		p := a.state.Product(id)
		if p == nil {
			continue
		}
		out = append(out, StockLine{Product: *p, Packs: packs})
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Product.Name) < strings.ToLower(out[j].Product.Name)
	})
	return out
}

// AddInventoryEvent appends a receive or consume event and persists. The
// ledger itself only rejects quantities that are negative or not finite;
// this entry point also rejects unknown products and a consume larger than
// the current balance, so stock is never stored negative.
func (a *App) AddInventoryEvent(ctx context.Context, productID string, typ model.EventType, packs float64) (string, error) {
	if a.state.Product(productID) == nil {
		return "", fmt.Errorf("product %q does not exist: %w", productID, engine.ErrInvalidInput)
	}
	if err := engine.ValidateQuantity(packs); err != nil {
		return "", err
	}
	if typ == model.EventConsume && a.ledger.CurrentStock(productID)-packs < -stockEpsilon {
		return "", fmt.Errorf("consume %g packs of %s exceeds stock: %w", packs, productID, engine.ErrInvalidInput)
	}
	id, err := a.ledger.Append(productID, typ, packs, a.clock.Now())
	if err != nil {
		return "", err
	}
	a.save(ctx)
	a.logger.Debug("inventory event", zap.String("product_id", productID), zap.String("type", string(typ)), zap.Float64("packs", packs))
	return id, nil
}

type ProductInput struct {
	ID           string
	Name         string
	Brand        string
	GramsPerPack float64
	Category     model.Category
	Protein      string
	// Macros nil means infer from name and category.
	Macros      *model.Macros
	Ingredients string
}

// AddCustomProduct appends a user product to the catalog.
func (a *App) AddCustomProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Product{}, fmt.Errorf("product name is required: %w", engine.ErrInvalidInput)
	}
	if err := validateNonNegativeFloat("grams per pack", in.GramsPerPack); err != nil {
		return model.Product{}, err
	}
	if in.GramsPerPack == 0 {
		return model.Product{}, fmt.Errorf("grams per pack must be > 0: %w", engine.ErrInvalidInput)
	}
	category := model.Category(normalizeName(string(in.Category)))
	switch category {
	case "":
		category = model.CategoryRaw
	case model.CategoryRaw, model.CategoryTreat, model.CategorySupplement, model.CategoryPantry:
	default:
		return model.Product{}, fmt.Errorf("unknown category %q: %w", in.Category, engine.ErrInvalidInput)
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = newID("prod_")
	}
	if a.state.Product(id) != nil {
		return model.Product{}, fmt.Errorf("product %q already exists: %w", id, engine.ErrInvalidInput)
	}

	macros := engine.DefaultMacros(name, category)
	if in.Macros != nil {
		for field, v := range map[string]float64{"muscle": in.Macros.Muscle, "organ": in.Macros.Organ, "bone": in.Macros.Bone} {
			if err := validateRatio(field, v); err != nil {
				return model.Product{}, err
			}
		}
		macros = *in.Macros
	}
	brand := strings.TrimSpace(in.Brand)
	if brand == "" {
		brand = "Custom"
	}
	protein := normalizeName(in.Protein)
	if protein == "" {
		protein = "unknown"
	}

	p := model.Product{
		ID:           id,
		Name:         name,
		Brand:        brand,
		GramsPerPack: in.GramsPerPack,
		Category:     category,
		Protein:      protein,
		Macros:       macros,
		Pantry:       category != model.CategoryRaw,
		Ingredients:  strings.TrimSpace(in.Ingredients),
		Custom:       true,
	}
	a.state.Products = append(a.state.Products, p)
	a.save(ctx)
	return p, nil
}

// Products lists the catalog, optionally filtered by category.
func (a *App) Products(category model.Category) []model.Product {
	out := make([]model.Product, 0, len(a.state.Products))
	for _, p := range a.state.Products {
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}
