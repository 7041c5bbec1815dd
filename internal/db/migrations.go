package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS dogs (
  id TEXT PRIMARY KEY,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  breed TEXT NOT NULL DEFAULT '',
  sex TEXT NOT NULL DEFAULT '',
  weight_kg REAL NOT NULL CHECK(weight_kg >= 0),
  age_years REAL NOT NULL CHECK(age_years >= 0),
  energy TEXT NOT NULL DEFAULT 'normal',
  body_condition TEXT NOT NULL DEFAULT 'ideal',
  allergies TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  brand TEXT NOT NULL DEFAULT '',
  grams_per_pack REAL NOT NULL CHECK(grams_per_pack >= 0),
  category TEXT NOT NULL,
  protein TEXT NOT NULL DEFAULT 'none',
  muscle REAL NOT NULL DEFAULT 0 CHECK(muscle >= 0),
  organ REAL NOT NULL DEFAULT 0 CHECK(organ >= 0),
  bone REAL NOT NULL DEFAULT 0 CHECK(bone >= 0),
  pantry INTEGER NOT NULL DEFAULT 0,
  ingredients TEXT NOT NULL DEFAULT '',
  custom INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS inventory_events (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  product_id TEXT NOT NULL,
  type TEXT NOT NULL CHECK(type IN ('receive', 'consume')),
  packs REAL NOT NULL CHECK(packs >= 0),
  at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_inventory_events_product_id ON inventory_events(product_id);

CREATE TABLE IF NOT EXISTS meals (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  dog_id TEXT NOT NULL,
  date TEXT NOT NULL,
  muscle REAL NOT NULL DEFAULT 0,
  organ REAL NOT NULL DEFAULT 0,
  bone REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_meals_dog_id ON meals(dog_id);

CREATE TABLE IF NOT EXISTS meal_items (
  meal_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  product_id TEXT NOT NULL,
  grams REAL NOT NULL CHECK(grams >= 0),
  PRIMARY KEY(meal_id, position),
  FOREIGN KEY(meal_id) REFERENCES meals(id) ON DELETE CASCADE
);
`,
	},
	{
		version: 2,
		name:    "rotation_and_stool",
		sql: `
CREATE TABLE IF NOT EXISTS rotation_days (
  day INTEGER PRIMARY KEY CHECK(day BETWEEN 1 AND 7),
  items_json TEXT NOT NULL DEFAULT '[]',
  snacks_json TEXT NOT NULL DEFAULT '[]',
  muscle REAL NOT NULL DEFAULT 0,
  organ REAL NOT NULL DEFAULT 0,
  bone REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS stool_logs (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  dog_id TEXT NOT NULL,
  date TEXT NOT NULL,
  result TEXT NOT NULL CHECK(result IN ('healthy', 'watch', 'vet')),
  brightness REAL NOT NULL DEFAULT 0,
  image_path TEXT NOT NULL DEFAULT ''
);
`,
	},
	{
		version: 3,
		name:    "orders",
		sql: `
ALTER TABLE products ADD COLUMN price TEXT NOT NULL DEFAULT '';
ALTER TABLE products ADD COLUMN currency TEXT NOT NULL DEFAULT '';

CREATE TABLE IF NOT EXISTS orders (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  at TEXT NOT NULL,
  branch TEXT NOT NULL,
  items_json TEXT NOT NULL DEFAULT '[]',
  address TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  recurring INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS recurring_orders (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  weekday INTEGER NOT NULL CHECK(weekday BETWEEN 0 AND 6),
  time TEXT NOT NULL,
  items_json TEXT NOT NULL DEFAULT '[]',
  address TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT ''
);
`,
	},
	{
		version: 4,
		name:    "account_and_state",
		sql: `
CREATE TABLE IF NOT EXISTS account (
  id INTEGER PRIMARY KEY CHECK(id = 1),
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT NOT NULL,
  logged_in INTEGER NOT NULL DEFAULT 0,
  trial_start TEXT NOT NULL DEFAULT '',
  subscription_start TEXT NOT NULL DEFAULT '',
  onboarding_done INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS app_state (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`,
	},
	{
		version: 5,
		name:    "app_config",
		sql: `
CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
}

func ApplyMigrations(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.GetContext(ctx, &exists, `SELECT 1 FROM schema_migrations WHERE version = ?`, m.version)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}
	return nil
}

// SchemaVersion reports the highest applied migration.
func SchemaVersion(ctx context.Context, db *sqlx.DB) (int, error) {
	var v sql.NullInt64
	if err := db.GetContext(ctx, &v, `SELECT MAX(version) FROM schema_migrations`); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return int(v.Int64), nil
}
