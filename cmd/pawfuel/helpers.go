package pawfuel

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saadjs/pawfuel-cli/internal/app"
	"github.com/saadjs/pawfuel-cli/internal/catalog"
	"github.com/saadjs/pawfuel-cli/internal/config"
	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/i18n"
	"github.com/saadjs/pawfuel-cli/internal/logging"
	"github.com/saadjs/pawfuel-cli/internal/model"
	"github.com/saadjs/pawfuel-cli/internal/service"
	"github.com/saadjs/pawfuel-cli/internal/store"
)

// runtime bundles what a command needs once the database is open.
type runtime struct {
	ctx    context.Context
	cfg    *config.Config
	logger *zap.Logger
	store  *store.SQLiteStore
	app    *service.App
	tr     i18n.Translator
}

func resolveDBPath(cfg *config.Config) (string, error) {
	return app.ResolveDBPath(dbPath, cfg.DBPath)
}

func withStore(cmd *cobra.Command, run func(context.Context, *store.SQLiteStore, *config.Config, *zap.Logger) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Environment: cfg.Environment})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	path, err := resolveDBPath(cfg)
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.OpenSQLite(ctx, path, logger)
	if err != nil {
		return err
	}
	defer st.Close()
	return run(ctx, st, cfg, logger)
}

// withApp opens the database, applies stored config overrides and builds
// the application controller around it.
func withApp(cmd *cobra.Command, run func(*runtime) error) error {
	return withStore(cmd, func(ctx context.Context, st *store.SQLiteStore, cfg *config.Config, logger *zap.Logger) error {
		if err := applyStoredConfig(ctx, st, cfg); err != nil {
			return err
		}
		a, err := service.New(ctx, service.Options{
			Store:                 st,
			Catalog:               catalogProvider(cfg),
			Clock:                 engine.SystemClock{},
			Rand:                  engine.NewRand(cfg.Seed),
			Logger:                logger,
			DefaultFeedingPercent: cfg.Feeding.DefaultPercent,
			BranchPhones: map[string]string{
				"lebanon": cfg.Orders.PhoneLebanon,
				"cyprus":  cfg.Orders.PhoneCyprus,
			},
		})
		if err != nil {
			return err
		}
		rt := &runtime{ctx: ctx, cfg: cfg, logger: logger, store: st, app: a, tr: i18n.New(a.Settings().Language)}
		if a.CheckProExpiry(ctx) {
			fmt.Fprintln(cmd.ErrOrStderr(), rt.tr.T("pro.expired"))
		}
		err = run(rt)
		if a.MemoryFallback() {
			fmt.Fprintln(cmd.ErrOrStderr(), rt.tr.T("storage.memory"))
		}
		return err
	})
}

func catalogProvider(cfg *config.Config) catalog.Provider {
	if strings.EqualFold(strings.TrimSpace(cfg.Catalog.Source), "embedded") || strings.TrimSpace(cfg.Catalog.Source) == "" {
		return nil
	}
	return catalog.Resolve(cfg.Catalog.Source, cfg.Catalog.Timeout)
}

// applyStoredConfig lets values saved with `pawfuel config set` override the
// file and environment.
func applyStoredConfig(ctx context.Context, st *store.SQLiteStore, cfg *config.Config) error {
	values, err := st.ListConfig(ctx)
	if err != nil {
		return err
	}
	if v := values[store.ConfigCatalogSource]; v != "" {
		cfg.Catalog.Source = v
	}
	if v := values[store.ConfigPhoneLebanon]; v != "" {
		cfg.Orders.PhoneLebanon = v
	}
	if v := values[store.ConfigPhoneCyprus]; v != "" {
		cfg.Orders.PhoneCyprus = v
	}
	if v := values[store.ConfigFeedingPercent]; v != "" {
		pct, err := strconv.ParseFloat(v, 64)
		if err != nil || pct <= 0 || pct > 0.1 {
			return fmt.Errorf("stored %s %q must be in (0, 0.1]", store.ConfigFeedingPercent, v)
		}
		cfg.Feeding.DefaultPercent = pct
	}
	return nil
}

func parsePositiveFloatArg(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

// parseItems reads repeated id=qty pairs.
func parseItems(raw []string) ([]model.RecurringItem, error) {
	out := make([]model.RecurringItem, 0, len(raw))
	for _, r := range raw {
		id, qty, ok := strings.Cut(r, "=")
		if !ok || strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("invalid --item %q (expected product=qty)", r)
		}
		n, err := strconv.Atoi(strings.TrimSpace(qty))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid quantity in --item %q", r)
		}
		out = append(out, model.RecurringItem{ProductID: strings.TrimSpace(id), Qty: n})
	}
	return out, nil
}

func productName(a *service.App, id string) string {
	if p := a.State().Product(id); p != nil && p.Name != "" {
		return p.Name
	}
	return id
}

func formatItems(a *service.App, items []model.MealItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, fmt.Sprintf("%s\t%.0f g", productName(a, it.ProductID), it.Grams))
	}
	return out
}

func pct(v float64) float64 { return v * 100 }
