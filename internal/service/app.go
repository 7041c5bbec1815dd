package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/saadjs/pawfuel-cli/internal/catalog"
	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/model"
	"github.com/saadjs/pawfuel-cli/internal/store"
)

const (
	defaultDogID   = "dog1"
	founderYear    = 365 * 24 * time.Hour
	trialDuration  = 30 * 24 * time.Hour
	freeDogProfile = 1
)

var ErrProRequired = errors.New("pro feature: requires the founder year, an active trial or a subscription")

type Options struct {
	Store store.Store
	// Catalog is merged over the stored products at startup. nil keeps
	// whatever the state already holds.
	Catalog               catalog.Provider
	Clock                 engine.Clock
	Rand                  engine.Rand
	Logger                *zap.Logger
	DefaultFeedingPercent float64
	// BranchPhones maps a branch key to its WhatsApp number.
	BranchPhones map[string]string
}

// App owns the application state and persists it after every mutation.
//
// App is not safe for concurrent use. Every operation runs to completion
// before the next one starts; callers sharing an App across goroutines
// must serialize access themselves.
type App struct {
	state   *model.State
	store   store.Store
	ledger  *engine.Ledger
	clock   engine.Clock
	rnd     engine.Rand
	logger  *zap.Logger
	phones  map[string]string
	feeding float64

	catalogErr error
}

// New loads the persisted state, or builds and saves the default one, and
// merges the configured catalog into it. A catalog that cannot be loaded is
// logged and the stored products are kept.
func New(ctx context.Context, opts Options) (*App, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	a := &App{
		store:   opts.Store,
		clock:   opts.Clock,
		rnd:     opts.Rand,
		logger:  opts.Logger,
		phones:  opts.BranchPhones,
		feeding: opts.DefaultFeedingPercent,
	}
	if a.clock == nil {
		a.clock = engine.SystemClock{}
	}
	if a.rnd == nil {
		a.rnd = engine.NewRand(0)
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	a.logger = a.logger.Named("app")

	state, err := a.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	fresh := state == nil
	if fresh {
		state, err = DefaultState(a.clock.Now())
		if err != nil {
			return nil, err
		}
		if a.feeding > 0 {
			state.Settings.FeedingPercent = a.feeding
		}
	}
	a.attach(state)

	if opts.Catalog != nil {
		if err := a.mergeCatalog(ctx, opts.Catalog); err != nil {
			a.catalogErr = err
			a.logger.Warn("catalog unavailable; keeping stored products", zap.Error(err))
		}
	}
	if fresh {
		a.save(ctx)
	}
	return a, nil
}

// DefaultState is the first-run state: one adult dog, the bundled catalog
// and a small seed stock.
func DefaultState(now time.Time) (*model.State, error) {
	products, err := catalog.DefaultProducts()
	if err != nil {
		return nil, err
	}
	return &model.State{
		Dogs: []model.Dog{{
			ID:            defaultDogID,
			Name:          "Killer",
			Breed:         "Mixed",
			Sex:           "Male",
			WeightKg:      25,
			AgeYears:      4,
			Energy:        model.EnergyNormal,
			BodyCondition: model.ConditionIdeal,
			Allergies:     []string{},
			CreatedAt:     now,
			UpdatedAt:     now,
		}},
		ActiveDogID:     defaultDogID,
		Products:        products,
		InventoryEvents: catalog.SeedEvents(now),
		Meals:           []model.MealLog{},
		StoolLogs:       []model.StoolLog{},
		Rotation:        []model.RotationDay{},
		Settings:        model.DefaultSettings(),
		ProExpiry:       now.Add(founderYear),
		OrderHistory:    []model.Order{},
		RecurringOrders: []model.RecurringOrder{},
	}, nil
}

// attach fills fields older snapshots may lack and binds the ledger.
func (a *App) attach(state *model.State) {
	defaults := model.DefaultSettings()
	if state.Settings.FeedingPercent <= 0 {
		state.Settings.FeedingPercent = defaults.FeedingPercent
		if a.feeding > 0 {
			state.Settings.FeedingPercent = a.feeding
		}
	}
	if state.Settings.Language == "" {
		state.Settings.Language = defaults.Language
	}
	if state.Settings.Branch == "" {
		state.Settings.Branch = defaults.Branch
	}
	if state.Settings.Units == "" {
		state.Settings.Units = defaults.Units
	}
	if state.ProExpiry.IsZero() {
		state.ProExpiry = a.clock.Now().Add(founderYear)
	}
	if state.ActiveDog() == nil && len(state.Dogs) > 0 {
		state.ActiveDogID = state.Dogs[0].ID
	}
	if a.state != nil {
		state.MemoryFallback = a.state.MemoryFallback
	}
	a.state = state
	a.ledger = engine.NewLedger(&a.state.InventoryEvents)
}

func (a *App) mergeCatalog(ctx context.Context, provider catalog.Provider) error {
	incoming, err := provider.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	a.state.Products = catalog.Merge(a.state.Products, incoming)
	return nil
}

// RefreshCatalog merges the provider's catalog into the stored products.
func (a *App) RefreshCatalog(ctx context.Context, provider catalog.Provider) error {
	if err := a.mergeCatalog(ctx, provider); err != nil {
		return errors.Join(err, engine.ErrResourceUnavailable)
	}
	a.catalogErr = nil
	a.save(ctx)
	return nil
}

// CatalogError is the startup catalog failure, if any.
func (a *App) CatalogError() error { return a.catalogErr }

// save persists the whole state. Failures never reach the caller: the
// first one switches the app to in-memory mode and logs once.
func (a *App) save(ctx context.Context) {
	if err := a.store.Save(ctx, a.state); err != nil {
		if !a.state.MemoryFallback {
			a.state.MemoryFallback = true
			a.logger.Warn("saving state failed; changes are kept in memory only", zap.Error(err))
		}
	}
}

// State exposes the current snapshot for read-only use.
func (a *App) State() *model.State { return a.state }

func (a *App) MemoryFallback() bool { return a.state.MemoryFallback }

func (a *App) Now() time.Time { return a.clock.Now() }

func (a *App) today() string { return engine.DayKey(a.clock.Now()) }

// feedingFallback is the ration used for dogs without a usable weight.
func (a *App) feedingFallback() float64 {
	if a.state.Settings.FeedingPercent > 0 {
		return a.state.Settings.FeedingPercent
	}
	return a.feeding
}

func (a *App) activeDog() (*model.Dog, error) {
	dog := a.state.ActiveDog()
	if dog == nil {
		return nil, engine.ErrNoActiveDog
	}
	return dog, nil
}

// Reset discards every dog, log, order and the account and starts over
// from the default state.
func (a *App) Reset(ctx context.Context) error {
	state, err := DefaultState(a.clock.Now())
	if err != nil {
		return err
	}
	a.attach(state)
	a.save(ctx)
	a.logger.Info("state reset to defaults")
	return nil
}
