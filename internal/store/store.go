package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/saadjs/pawfuel-cli/internal/db"
	"github.com/saadjs/pawfuel-cli/internal/model"
)

// Store persists the full application state as one snapshot.
type Store interface {
	// Load returns nil with no error when nothing has been saved yet.
	Load(ctx context.Context) (*model.State, error)
	Save(ctx context.Context, state *model.State) error
}

const (
	keySavedAt           = "saved_at"
	keyActiveDogID       = "active_dog_id"
	keyLastBrothDay      = "last_broth_day"
	keyOnboardingDone    = "onboarding_done"
	keyConsentGiven      = "consent_given"
	keyProExpiry         = "pro_expiry"
	keyProExpiryNotified = "pro_expiry_notified"
	keyBannerDismissed   = "banner_dismissed"
	keySettings          = "settings"
)

// snapshotTables are cleared before each save, children first.
var snapshotTables = []string{
	"meal_items", "meals", "inventory_events", "dogs", "products",
	"rotation_days", "stool_logs", "orders", "recurring_orders", "account", "app_state",
}

type SQLiteStore struct {
	db     *sqlx.DB
	path   string
	logger *zap.Logger
}

// OpenSQLite opens (creating if needed) the database at path and applies
// migrations.
func OpenSQLite(ctx context.Context, path string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sqldb, err := db.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := db.ApplyMigrations(ctx, sqldb); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	return &SQLiteStore{db: sqldb, path: path, logger: logger.Named("store")}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) DB() *sqlx.DB {
	return s.db
}

func (s *SQLiteStore) Save(ctx context.Context, state *model.State) error {
	if state == nil {
		return fmt.Errorf("state is required")
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	if err := writeSnapshot(ctx, tx, state); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save tx: %w", err)
	}
	s.logger.Debug("state saved",
		zap.Int("dogs", len(state.Dogs)),
		zap.Int("products", len(state.Products)),
		zap.Int("events", len(state.InventoryEvents)),
		zap.Int("meals", len(state.Meals)),
	)
	return nil
}

func writeSnapshot(ctx context.Context, tx *sqlx.Tx, state *model.State) error {
	for _, table := range snapshotTables {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, d := range state.Dogs {
		if _, err := tx.NamedExecContext(ctx, `
INSERT INTO dogs(id, position, name, breed, sex, weight_kg, age_years, energy, body_condition, allergies, created_at, updated_at)
VALUES(:id, :position, :name, :breed, :sex, :weight_kg, :age_years, :energy, :body_condition, :allergies, :created_at, :updated_at)
`, toDogRow(i, d)); err != nil {
			return fmt.Errorf("insert dog %s: %w", d.ID, err)
		}
	}

	for i, p := range state.Products {
		if _, err := tx.NamedExecContext(ctx, `
INSERT INTO products(id, position, name, brand, grams_per_pack, category, protein, muscle, organ, bone, pantry, ingredients, custom, price, currency)
VALUES(:id, :position, :name, :brand, :grams_per_pack, :category, :protein, :muscle, :organ, :bone, :pantry, :ingredients, :custom, :price, :currency)
`, toProductRow(i, p)); err != nil {
			return fmt.Errorf("insert product %s: %w", p.ID, err)
		}
	}

	for _, ev := range state.InventoryEvents {
		row := eventRow{ID: ev.ID, ProductID: ev.ProductID, Type: string(ev.Type), Packs: ev.Packs, At: formatTime(ev.At)}
		if _, err := tx.NamedExecContext(ctx, `
INSERT INTO inventory_events(id, product_id, type, packs, at)
VALUES(:id, :product_id, :type, :packs, :at)
`, row); err != nil {
			return fmt.Errorf("insert inventory event %s: %w", ev.ID, err)
		}
	}

	for _, m := range state.Meals {
		row := mealRow{ID: m.ID, DogID: m.DogID, Date: m.Date, Muscle: m.Macros.Muscle, Organ: m.Macros.Organ, Bone: m.Macros.Bone}
		if _, err := tx.NamedExecContext(ctx, `
INSERT INTO meals(id, dog_id, date, muscle, organ, bone)
VALUES(:id, :dog_id, :date, :muscle, :organ, :bone)
`, row); err != nil {
			return fmt.Errorf("insert meal %s: %w", m.ID, err)
		}
		for pos, it := range m.Items {
			item := mealItemRow{MealID: m.ID, Position: pos, ProductID: it.ProductID, Grams: it.Grams}
			if _, err := tx.NamedExecContext(ctx, `
INSERT INTO meal_items(meal_id, position, product_id, grams)
VALUES(:meal_id, :position, :product_id, :grams)
`, item); err != nil {
				return fmt.Errorf("insert meal item %s/%d: %w", m.ID, pos, err)
			}
		}
	}

	for _, day := range state.Rotation {
		items, err := marshalJSON(day.Items)
		if err != nil {
			return err
		}
		snacks, err := marshalJSON(day.Snacks)
		if err != nil {
			return err
		}
		row := rotationRow{Day: day.Day, ItemsJSON: items, SnacksJSON: snacks, Muscle: day.Macros.Muscle, Organ: day.Macros.Organ, Bone: day.Macros.Bone}
		if _, err := tx.NamedExecContext(ctx, `
INSERT INTO rotation_days(day, items_json, snacks_json, muscle, organ, bone)
VALUES(:day, :items_json, :snacks_json, :muscle, :organ, :bone)
`, row); err != nil {
			return fmt.Errorf("insert rotation day %d: %w", day.Day, err)
		}
	}

	for _, l := range state.StoolLogs {
		row := stoolRow{ID: l.ID, DogID: l.DogID, Date: l.Date, Result: string(l.Result), Brightness: l.Brightness, ImagePath: l.ImagePath}
		if _, err := tx.NamedExecContext(ctx, `
INSERT INTO stool_logs(id, dog_id, date, result, brightness, image_path)
VALUES(:id, :dog_id, :date, :result, :brightness, :image_path)
`, row); err != nil {
			return fmt.Errorf("insert stool log %s: %w", l.ID, err)
		}
	}

	for _, o := range state.OrderHistory {
		items, err := marshalJSON(o.Items)
		if err != nil {
			return err
		}
		row := orderRow{ID: o.ID, At: formatTime(o.At), Branch: o.Branch, ItemsJSON: items, Address: o.Address, Notes: o.Notes, Recurring: o.Recurring}
		if _, err := tx.NamedExecContext(ctx, `
INSERT INTO orders(id, at, branch, items_json, address, notes, recurring)
VALUES(:id, :at, :branch, :items_json, :address, :notes, :recurring)
`, row); err != nil {
			return fmt.Errorf("insert order %s: %w", o.ID, err)
		}
	}

	for _, r := range state.RecurringOrders {
		items, err := marshalJSON(r.Items)
		if err != nil {
			return err
		}
		row := recurringRow{ID: r.ID, Weekday: int(r.Weekday), Time: r.Time, ItemsJSON: items, Address: r.Address, Notes: r.Notes}
		if _, err := tx.NamedExecContext(ctx, `
INSERT INTO recurring_orders(id, weekday, time, items_json, address, notes)
VALUES(:id, :weekday, :time, :items_json, :address, :notes)
`, row); err != nil {
			return fmt.Errorf("insert recurring order %s: %w", r.ID, err)
		}
	}

	if a := state.Account; a != nil {
		row := accountRow{
			Email:             a.Email,
			PasswordHash:      a.PasswordHash,
			CreatedAt:         formatTime(a.CreatedAt),
			LoggedIn:          a.LoggedIn,
			TrialStart:        formatOptionalTime(a.TrialStart),
			SubscriptionStart: formatOptionalTime(a.SubscriptionStart),
			OnboardingDone:    a.OnboardingDone,
		}
		if _, err := tx.NamedExecContext(ctx, `
INSERT INTO account(id, email, password_hash, created_at, logged_in, trial_start, subscription_start, onboarding_done)
VALUES(1, :email, :password_hash, :created_at, :logged_in, :trial_start, :subscription_start, :onboarding_done)
`, row); err != nil {
			return fmt.Errorf("insert account: %w", err)
		}
	}

	settings, err := marshalJSON(state.Settings)
	if err != nil {
		return err
	}
	values := map[string]string{
		keySavedAt:           formatTime(time.Now()),
		keyActiveDogID:       state.ActiveDogID,
		keyLastBrothDay:      state.LastBrothDay,
		keyOnboardingDone:    strconv.FormatBool(state.OnboardingDone),
		keyConsentGiven:      strconv.FormatBool(state.ConsentGiven),
		keyProExpiry:         formatTime(state.ProExpiry),
		keyProExpiryNotified: strconv.FormatBool(state.ProExpiryNotified),
		keyBannerDismissed:   strconv.FormatBool(state.BannerDismissed),
		keySettings:          settings,
	}
	for k, v := range values {
		if _, err := tx.ExecContext(ctx, `INSERT INTO app_state(key, value) VALUES(?, ?)`, k, v); err != nil {
			return fmt.Errorf("insert state key %s: %w", k, err)
		}
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*model.State, error) {
	var kv []struct {
		Key   string `db:"key"`
		Value string `db:"value"`
	}
	if err := s.db.SelectContext(ctx, &kv, `SELECT key, value FROM app_state`); err != nil {
		return nil, fmt.Errorf("load app state: %w", err)
	}
	values := make(map[string]string, len(kv))
	for _, row := range kv {
		values[row.Key] = row.Value
	}
	if _, ok := values[keySavedAt]; !ok {
		return nil, nil
	}

	state := &model.State{
		ActiveDogID:       values[keyActiveDogID],
		LastBrothDay:      values[keyLastBrothDay],
		OnboardingDone:    values[keyOnboardingDone] == "true",
		ConsentGiven:      values[keyConsentGiven] == "true",
		ProExpiryNotified: values[keyProExpiryNotified] == "true",
		BannerDismissed:   values[keyBannerDismissed] == "true",
		Settings:          model.DefaultSettings(),
	}
	var err error
	if state.ProExpiry, err = parseTime(values[keyProExpiry]); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(values[keySettings], &state.Settings); err != nil {
		return nil, err
	}

	loaders := []func(context.Context, *model.State) error{
		s.loadDogs, s.loadProducts, s.loadEvents, s.loadMeals,
		s.loadRotation, s.loadStoolLogs, s.loadOrders, s.loadRecurring, s.loadAccount,
	}
	for _, load := range loaders {
		if err := load(ctx, state); err != nil {
			return nil, err
		}
	}
	return state, nil
}

func (s *SQLiteStore) loadDogs(ctx context.Context, state *model.State) error {
	var rows []dogRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM dogs ORDER BY position ASC`); err != nil {
		return fmt.Errorf("load dogs: %w", err)
	}
	state.Dogs = make([]model.Dog, 0, len(rows))
	for _, r := range rows {
		d, err := r.model()
		if err != nil {
			return fmt.Errorf("load dog %s: %w", r.ID, err)
		}
		state.Dogs = append(state.Dogs, d)
	}
	return nil
}

func (s *SQLiteStore) loadProducts(ctx context.Context, state *model.State) error {
	var rows []productRow
	if err := s.db.SelectContext(ctx, &rows, `
SELECT id, position, name, brand, grams_per_pack, category, protein, muscle, organ, bone, pantry, ingredients, custom, price, currency
FROM products ORDER BY position ASC`); err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	state.Products = make([]model.Product, 0, len(rows))
	for _, r := range rows {
		p, err := r.model()
		if err != nil {
			return err
		}
		state.Products = append(state.Products, p)
	}
	return nil
}

func (s *SQLiteStore) loadEvents(ctx context.Context, state *model.State) error {
	var rows []eventRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, product_id, type, packs, at FROM inventory_events ORDER BY seq ASC`); err != nil {
		return fmt.Errorf("load inventory events: %w", err)
	}
	state.InventoryEvents = make([]model.InventoryEvent, 0, len(rows))
	for _, r := range rows {
		at, err := parseTime(r.At)
		if err != nil {
			return fmt.Errorf("load inventory event %s: %w", r.ID, err)
		}
		state.InventoryEvents = append(state.InventoryEvents, model.InventoryEvent{
			ID: r.ID, ProductID: r.ProductID, Type: model.EventType(r.Type), Packs: r.Packs, At: at,
		})
	}
	return nil
}

func (s *SQLiteStore) loadMeals(ctx context.Context, state *model.State) error {
	var rows []mealRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, dog_id, date, muscle, organ, bone FROM meals ORDER BY seq ASC`); err != nil {
		return fmt.Errorf("load meals: %w", err)
	}
	var items []mealItemRow
	if err := s.db.SelectContext(ctx, &items, `SELECT meal_id, position, product_id, grams FROM meal_items ORDER BY meal_id, position ASC`); err != nil {
		return fmt.Errorf("load meal items: %w", err)
	}
	byMeal := make(map[string][]model.MealItem, len(rows))
	for _, it := range items {
		byMeal[it.MealID] = append(byMeal[it.MealID], model.MealItem{ProductID: it.ProductID, Grams: it.Grams})
	}
	state.Meals = make([]model.MealLog, 0, len(rows))
	for _, r := range rows {
		mealItems := byMeal[r.ID]
		if mealItems == nil {
			mealItems = []model.MealItem{}
		}
		state.Meals = append(state.Meals, model.MealLog{
			ID:     r.ID,
			DogID:  r.DogID,
			Date:   r.Date,
			Items:  mealItems,
			Macros: model.Macros{Muscle: r.Muscle, Organ: r.Organ, Bone: r.Bone},
		})
	}
	return nil
}

func (s *SQLiteStore) loadRotation(ctx context.Context, state *model.State) error {
	var rows []rotationRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT day, items_json, snacks_json, muscle, organ, bone FROM rotation_days ORDER BY day ASC`); err != nil {
		return fmt.Errorf("load rotation: %w", err)
	}
	state.Rotation = make([]model.RotationDay, 0, len(rows))
	for _, r := range rows {
		day := model.RotationDay{
			Day:    r.Day,
			Items:  []model.MealItem{},
			Snacks: []model.TreatSuggestion{},
			Macros: model.Macros{Muscle: r.Muscle, Organ: r.Organ, Bone: r.Bone},
		}
		if err := unmarshalJSON(r.ItemsJSON, &day.Items); err != nil {
			return fmt.Errorf("load rotation day %d: %w", r.Day, err)
		}
		if err := unmarshalJSON(r.SnacksJSON, &day.Snacks); err != nil {
			return fmt.Errorf("load rotation day %d: %w", r.Day, err)
		}
		state.Rotation = append(state.Rotation, day)
	}
	return nil
}

func (s *SQLiteStore) loadStoolLogs(ctx context.Context, state *model.State) error {
	var rows []stoolRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, dog_id, date, result, brightness, image_path FROM stool_logs ORDER BY seq ASC`); err != nil {
		return fmt.Errorf("load stool logs: %w", err)
	}
	state.StoolLogs = make([]model.StoolLog, 0, len(rows))
	for _, r := range rows {
		state.StoolLogs = append(state.StoolLogs, model.StoolLog{
			ID: r.ID, DogID: r.DogID, Date: r.Date, Result: model.StoolResult(r.Result), Brightness: r.Brightness, ImagePath: r.ImagePath,
		})
	}
	return nil
}

func (s *SQLiteStore) loadOrders(ctx context.Context, state *model.State) error {
	var rows []orderRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, at, branch, items_json, address, notes, recurring FROM orders ORDER BY seq ASC`); err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	state.OrderHistory = make([]model.Order, 0, len(rows))
	for _, r := range rows {
		at, err := parseTime(r.At)
		if err != nil {
			return fmt.Errorf("load order %s: %w", r.ID, err)
		}
		o := model.Order{ID: r.ID, At: at, Branch: r.Branch, Items: []model.OrderLine{}, Address: r.Address, Notes: r.Notes, Recurring: r.Recurring}
		if err := unmarshalJSON(r.ItemsJSON, &o.Items); err != nil {
			return fmt.Errorf("load order %s: %w", r.ID, err)
		}
		state.OrderHistory = append(state.OrderHistory, o)
	}
	return nil
}

func (s *SQLiteStore) loadRecurring(ctx context.Context, state *model.State) error {
	var rows []recurringRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, weekday, time, items_json, address, notes FROM recurring_orders ORDER BY seq ASC`); err != nil {
		return fmt.Errorf("load recurring orders: %w", err)
	}
	state.RecurringOrders = make([]model.RecurringOrder, 0, len(rows))
	for _, r := range rows {
		o := model.RecurringOrder{ID: r.ID, Weekday: time.Weekday(r.Weekday), Time: r.Time, Items: []model.RecurringItem{}, Address: r.Address, Notes: r.Notes}
		if err := unmarshalJSON(r.ItemsJSON, &o.Items); err != nil {
			return fmt.Errorf("load recurring order %s: %w", r.ID, err)
		}
		state.RecurringOrders = append(state.RecurringOrders, o)
	}
	return nil
}

func (s *SQLiteStore) loadAccount(ctx context.Context, state *model.State) error {
	var row accountRow
	err := s.db.GetContext(ctx, &row, `
SELECT email, password_hash, created_at, logged_in, trial_start, subscription_start, onboarding_done
FROM account WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}
	created, err := parseTime(row.CreatedAt)
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}
	trial, err := parseOptionalTime(row.TrialStart)
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}
	sub, err := parseOptionalTime(row.SubscriptionStart)
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}
	state.Account = &model.Account{
		Email:             row.Email,
		PasswordHash:      row.PasswordHash,
		CreatedAt:         created,
		LoggedIn:          row.LoggedIn,
		TrialStart:        trial,
		SubscriptionStart: sub,
		OnboardingDone:    row.OnboardingDone,
	}
	return nil
}

// IntegrityCheck runs SQLite's own consistency check.
func (s *SQLiteStore) IntegrityCheck(ctx context.Context) (string, error) {
	var result string
	if err := s.db.GetContext(ctx, &result, `PRAGMA integrity_check`); err != nil {
		return "", fmt.Errorf("integrity check: %w", err)
	}
	return result, nil
}
