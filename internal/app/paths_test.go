package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDBPath(t *testing.T) {
	t.Parallel()
	got, err := ResolveDBPath("", "  ", "/tmp/x.db", "/tmp/y.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", got)
}

func TestEnsureDBDirAndBackupDir(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "dir", "pawfuel.db")
	require.NoError(t, EnsureDBDir(path))
	assert.DirExists(t, filepath.Dir(path))
	assert.Equal(t, filepath.Join(filepath.Dir(path), "backups"), BackupDir(path))
}
