package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"FOODIE_API_URL", "FOODIE_TIMEOUT", "FOODIE_CURRENCY", "FOODIE_DECIMAL_SEP",
	"FOODIE_THOUSANDS_SEP", "FOODIE_FAVORITE_ROLLBACK", "FOODIE_LOG_FILE",
	"FOODIE_LOG_LEVEL", "FOODIE_ADDR", "FOODIE_DB",
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range keys {
		// godotenv never overrides a variable that exists, even empty
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3333", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "R$", cfg.Price.Symbol)
	assert.False(t, cfg.Favorite.Rollback)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "foodie.log", filepath.Base(cfg.Log.File))
	assert.Equal(t, ":3333", cfg.Backend.Addr)
	assert.Equal(t, "db.json", cfg.Backend.DBPath)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"FOODIE_API_URL=http://api.test\nFOODIE_TIMEOUT=3s\nFOODIE_FAVORITE_ROLLBACK=true\nFOODIE_CURRENCY=$\n"), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "http://api.test", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.True(t, cfg.Favorite.Rollback)
	assert.Equal(t, "$", cfg.Price.Symbol)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("FOODIE_TIMEOUT", "soon")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)

	t.Setenv("FOODIE_TIMEOUT", "")
	t.Setenv("FOODIE_FAVORITE_ROLLBACK", "maybe")
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestNewLogger_WritesToFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	cfg.Log.File = filepath.Join(t.TempDir(), "logs", "foodie.log")

	log, err := cfg.NewLogger(true)
	require.NoError(t, err)
	log.Info("hello")
	_ = log.Sync()

	b, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
}
