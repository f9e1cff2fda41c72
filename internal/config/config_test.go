package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, Exists())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	monthly := 1500.0
	cfg := DefaultConfig()
	cfg.General.Currency = "EUR"
	cfg.Budget.Monthly = &monthly
	cfg.Appearance.Theme = "catppuccin-mocha"

	require.NoError(t, Save(cfg))
	require.True(t, Exists())

	info, err := os.Stat(filepath.Join(dir, "xpense", "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "EUR", got.General.Currency)
	require.NotNil(t, got.Budget.Monthly)
	assert.Equal(t, 1500.0, *got.Budget.Monthly)
	assert.Equal(t, "catppuccin-mocha", got.Appearance.Theme)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := DefaultConfig()
	cfg.Rates.APIKey = "from-file"
	require.NoError(t, Save(cfg))

	t.Setenv("XPENSE_RATES_API_KEY", "from-env")
	t.Setenv("XPENSE_DB_PATH", "/tmp/x.db")
	t.Setenv("XPENSE_CURRENCY", "gbp")

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", got.Rates.APIKey)
	assert.Equal(t, "/tmp/x.db", got.DBPath())
	assert.Equal(t, "GBP", got.General.Currency)
}

func TestLoadRejectsBadTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "xpense"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "xpense", "config.toml"), []byte("[general\n"), 0o600))

	_, err := Load()
	assert.Error(t, err)
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "(not set)", MaskKey(""))
	assert.Equal(t, "****", MaskKey("abc"))
	assert.Equal(t, "****wxyz", MaskKey("abcdwxyz"))
}
