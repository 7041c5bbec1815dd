package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/model"
	"github.com/saadjs/pawfuel-cli/internal/service"
	"github.com/saadjs/pawfuel-cli/internal/store"
)

var startTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

var testPhones = map[string]string{"lebanon": "96181678131", "cyprus": "35700000000"}

// testClock is a settable clock for advancing past trial and expiry dates.
type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type failingStore struct{ saves int }

func (f *failingStore) Load(context.Context) (*model.State, error) { return nil, nil }

func (f *failingStore) Save(context.Context, *model.State) error {
	f.saves++
	return errors.New("disk full")
}

type brokenCatalog struct{}

func (brokenCatalog) Load(context.Context) ([]model.Product, error) {
	return nil, errors.New("catalog offline")
}

func newTestApp(t *testing.T) (*service.App, *store.Memory, *testClock) {
	t.Helper()
	mem := &store.Memory{}
	clock := &testClock{now: startTime}
	app, err := service.New(context.Background(), service.Options{
		Store:        mem,
		Clock:        clock,
		Rand:         engine.NewRand(7),
		Logger:       zap.NewNop(),
		BranchPhones: testPhones,
	})
	require.NoError(t, err)
	return app, mem, clock
}

func stockSnapshot(app *service.App) map[string]float64 {
	out := make(map[string]float64)
	for _, p := range app.State().Products {
		out[p.ID] = app.CurrentStock(p.ID)
	}
	return out
}
