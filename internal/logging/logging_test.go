package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/pawfuel-cli/internal/logging"
)

func TestProductionLoggerWritesJSON(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "log.json")
	logger, err := logging.New(logging.Options{Level: "info", Environment: "production", Paths: []string{path}})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Named("store").Info("saved")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "saved", entry["msg"])
	assert.Equal(t, "store", entry["logger"])
	assert.Equal(t, logging.ServiceName, entry["service"])
	assert.Equal(t, "production", entry["environment"])
	assert.Contains(t, entry, "timestamp")
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()
	logger, err := logging.New(logging.Options{Level: "chatty", Environment: "development", Paths: []string{filepath.Join(t.TempDir(), "log")}})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(0))
	assert.False(t, logger.Core().Enabled(-1))
}
