package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Persistent overrides for the runtime configuration.
const (
	ConfigCatalogSource  = "catalog_source"
	ConfigFeedingPercent = "default_feeding_percent"
	ConfigPhoneLebanon   = "phone_lebanon"
	ConfigPhoneCyprus    = "phone_cyprus"
)

var knownConfigKeys = map[string]struct{}{
	ConfigCatalogSource:  {},
	ConfigFeedingPercent: {},
	ConfigPhoneLebanon:   {},
	ConfigPhoneCyprus:    {},
}

func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", fmt.Errorf("config key is required")
	}
	if _, ok := knownConfigKeys[key]; !ok {
		return "", fmt.Errorf("unknown config key %q", key)
	}
	return key, nil
}

func (s *SQLiteStore) SetConfig(ctx context.Context, key, value string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) GetConfig(ctx context.Context, key string) (string, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return "", false, err
	}
	var value string
	err = s.db.GetContext(ctx, &value, `SELECT value FROM app_config WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) UnsetConfig(ctx context.Context, key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM app_config WHERE key = ?`, key); err != nil {
		return fmt.Errorf("unset config %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) ListConfig(ctx context.Context) (map[string]string, error) {
	var rows []struct {
		Key   string `db:"key"`
		Value string `db:"value"`
	}
	if err := s.db.SelectContext(ctx, &rows, `SELECT key, value FROM app_config ORDER BY key ASC`); err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}
