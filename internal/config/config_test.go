package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/pawfuel-cli/internal/config"
)

// Not parallel: these tests mutate process environment.

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "embedded", cfg.Catalog.Source)
	assert.Equal(t, 12*time.Second, cfg.Catalog.Timeout)
	assert.InDelta(t, 0.03, cfg.Feeding.DefaultPercent, 1e-9)
	assert.Equal(t, "lebanon", cfg.Orders.Branch)
	assert.Equal(t, "96181678131", cfg.Orders.Phone("lebanon"))
	assert.Equal(t, "35700000000", cfg.Orders.Phone("Cyprus"))
	assert.Zero(t, cfg.Seed)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
catalog:
  source: /srv/catalog.yaml
feeding:
  default_percent: 0.025
orders:
  branch: cyprus
seed: 42
`), 0o644))
	t.Setenv("PAWFUEL_LOG_LEVEL", "ERROR")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "/srv/catalog.yaml", cfg.Catalog.Source)
	assert.InDelta(t, 0.025, cfg.Feeding.DefaultPercent, 1e-9)
	assert.Equal(t, "cyprus", cfg.Orders.Branch)
	assert.Equal(t, uint64(42), cfg.Seed)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PAWFUEL_BRANCH=cyprus\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("PAWFUEL_BRANCH") })

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "cyprus", cfg.Orders.Branch)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PAWFUEL_BRANCH", "mars")
	_, err := config.Load("")
	require.ErrorContains(t, err, "orders.branch")

	t.Setenv("PAWFUEL_BRANCH", "lebanon")
	t.Setenv("PAWFUEL_DEFAULT_FEEDING_PERCENT", "0.5")
	_, err = config.Load("")
	require.ErrorContains(t, err, "default_percent")
}
