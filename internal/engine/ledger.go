package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/saadjs/pawfuel-cli/internal/model"
)

// StockReader reports current stock in packs for a product.
type StockReader interface {
	CurrentStock(productID string) float64
}

// Ledger is an append-only view over a slice of inventory events owned by
// the caller's state. Events are never mutated or removed.
type Ledger struct {
	events *[]model.InventoryEvent
}

func NewLedger(events *[]model.InventoryEvent) *Ledger {
	if events == nil {
		events = &[]model.InventoryEvent{}
	}
	return &Ledger{events: events}
}

func (l *Ledger) CurrentStock(productID string) float64 {
	var qty float64
	for _, ev := range *l.events {
		if ev.ProductID != productID {
			continue
		}
		switch ev.Type {
		case model.EventReceive:
			qty += ev.Packs
		case model.EventConsume:
			qty -= ev.Packs
		}
	}
	return qty
}

// Stock returns the summed stock of every product referenced by the ledger.
func (l *Ledger) Stock() map[string]float64 {
	out := make(map[string]float64)
	for _, ev := range *l.events {
		switch ev.Type {
		case model.EventReceive:
			out[ev.ProductID] += ev.Packs
		case model.EventConsume:
			out[ev.ProductID] -= ev.Packs
		}
	}
	return out
}

func (l *Ledger) Events() []model.InventoryEvent {
	return *l.events
}

func (l *Ledger) Len() int {
	return len(*l.events)
}

func (l *Ledger) Append(productID string, typ model.EventType, packs float64, at time.Time) (string, error) {
	if err := ValidateQuantity(packs); err != nil {
		return "", err
	}
	if productID == "" {
		return "", fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	if typ != model.EventReceive && typ != model.EventConsume {
		return "", fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, typ)
	}
	ev := model.InventoryEvent{
		ID:        "ev_" + uuid.NewString(),
		ProductID: productID,
		Type:      typ,
		Packs:     packs,
		At:        at,
	}
	*l.events = append(*l.events, ev)
	return ev.ID, nil
}

func ValidateQuantity(packs float64) error {
	if math.IsNaN(packs) || math.IsInf(packs, 0) {
		return fmt.Errorf("%w: quantity must be a finite number", ErrInvalidInput)
	}
	if packs < 0 {
		return fmt.Errorf("%w: quantity must be >= 0", ErrInvalidInput)
	}
	return nil
}
