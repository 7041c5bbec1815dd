package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/saadjs/pawfuel-cli/internal/model"
)

//go:embed data/products.yaml
var defaultCatalog []byte

// Embedded serves the catalog compiled into the binary.
type Embedded struct{}

func (Embedded) Load(ctx context.Context) ([]model.Product, error) {
	_ = ctx
	return DefaultProducts()
}

func DefaultProducts() ([]model.Product, error) {
	var doc document
	if err := yaml.Unmarshal(defaultCatalog, &doc); err != nil {
		return nil, fmt.Errorf("decode embedded catalog: %w", err)
	}
	return decodeRecords(doc.Products)
}

// seedStock is the stock a fresh install starts with, in packs.
var seedStock = []struct {
	productID string
	packs     float64
}{
	{"trio1kg", 2},
	{"duo400g", 2},
	{"rabbitWhole230", 2},
	{"duckWhole230", 2},
	{"turkeyWhole230", 2},
	{"lambBeefBoneless230", 2},
	{"chickenWhole230", 2},
	{"salmonWhole230", 2},
	{"boneBroth", 2},
	{"berryFusion200", 1},
	{"beefHeartChips85", 1},
}

func SeedEvents(at time.Time) []model.InventoryEvent {
	out := make([]model.InventoryEvent, 0, len(seedStock))
	for _, s := range seedStock {
		out = append(out, model.InventoryEvent{
			ID:        "ev_" + uuid.NewString(),
			ProductID: s.productID,
			Type:      model.EventReceive,
			Packs:     s.packs,
			At:        at,
		})
	}
	return out
}
