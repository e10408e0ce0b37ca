package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.ThankCount, cfg.ThankCount)
	assert.Equal(t, def.DefaultLevel, cfg.DefaultLevel)
	assert.Equal(t, def.Trailer, cfg.Trailer)
	assert.NotEmpty(t, cfg.Database)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database: /tmp/custom.db
thank_count: 5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.db", cfg.Database)
	assert.Equal(t, 5, cfg.ThankCount)
	// Untouched keys keep their defaults.
	assert.Equal(t, Default().DefaultLevel, cfg.DefaultLevel)
	assert.Equal(t, Default().Trailer, cfg.Trailer)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("thank_count: [not a number"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsNonPositiveThankCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("thank_count: -1"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnsureParentDir(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "sponcom.db")
	require.NoError(t, EnsureParentDir(dbPath))

	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
