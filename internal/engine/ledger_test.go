package engine_test

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/model"
)

func TestLedgerSignedSum(t *testing.T) {
	t.Parallel()
	var events []model.InventoryEvent
	ledger := engine.NewLedger(&events)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	steps := []struct {
		typ   model.EventType
		packs float64
	}{
		{model.EventReceive, 3},
		{model.EventConsume, 0.5},
		{model.EventReceive, 0},
		{model.EventConsume, 0.25},
		{model.EventReceive, 1.5},
	}
	for _, s := range steps {
		id, err := ledger.Append("duo400g", s.typ, s.packs, now)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(id, "ev_"))
	}
	_, err := ledger.Append("trio1kg", model.EventReceive, 2, now)
	require.NoError(t, err)

	assert.InDelta(t, 3.75, ledger.CurrentStock("duo400g"), 1e-9)
	assert.InDelta(t, 2, ledger.CurrentStock("trio1kg"), 1e-9)
	assert.Zero(t, ledger.CurrentStock("missing"))
	assert.Len(t, events, 6)
	assert.InDelta(t, 3.75, ledger.Stock()["duo400g"], 1e-9)
}

func TestLedgerRejectsInvalidQuantity(t *testing.T) {
	t.Parallel()
	ledger := engine.NewLedger(nil)
	for _, packs := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := ledger.Append("duo400g", model.EventReceive, packs, time.Now())
		require.Error(t, err)
		assert.True(t, errors.Is(err, engine.ErrInvalidInput))
	}
	_, err := ledger.Append("duo400g", model.EventType("gift"), 1, time.Now())
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
	_, err = ledger.Append("", model.EventReceive, 1, time.Now())
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
	assert.Zero(t, ledger.Len())
}
