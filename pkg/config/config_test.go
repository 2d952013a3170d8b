package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "127.0.0.1", cfg.ServerHost)
	assert.Equal(t, 4310, cfg.ServerPort)
	assert.Equal(t, "./tmp/catalog.sqlite", cfg.DatabaseFilePath)
	assert.False(t, cfg.DatabaseDebug)
	assert.Equal(t, 5, cfg.DatabaseMaxRetries)
	assert.NotEmpty(t, cfg.Hostname)
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("CATALOG_SERVER_PORT", "9090")
	t.Setenv("CATALOG_DATABASE_PATH", "/tmp/override.sqlite")
	t.Setenv("CATALOG_DATABASE_DEBUG", "true")
	t.Setenv("CATALOG_DATABASE_MAX_RETRIES", "9")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "/tmp/override.sqlite", cfg.DatabaseFilePath)
	assert.True(t, cfg.DatabaseDebug)
	assert.Equal(t, 9, cfg.DatabaseMaxRetries)
}

func TestNew_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	contents := []byte("server:\n  port: 8123\ndatabase:\n  path: /tmp/from-file.sqlite\n")
	require.NoError(t, os.WriteFile(path, contents, 0o600))

	t.Setenv("CATALOG_CONFIG_FILE", path)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 8123, cfg.ServerPort)
	assert.Equal(t, "/tmp/from-file.sqlite", cfg.DatabaseFilePath)
}

func TestNew_EnvBeatsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8123\n"), 0o600))

	t.Setenv("CATALOG_CONFIG_FILE", path)
	t.Setenv("CATALOG_SERVER_PORT", "9090")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
}

func TestNew_TestEnvironmentUsesMemoryDatabase(t *testing.T) {
	t.Setenv("CATALOG_ENVIRONMENT", "test")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, ":memory:", cfg.DatabaseFilePath)
	assert.Equal(t, 0, cfg.ServerPort)
}

func TestNew_MissingConfigFileFails(t *testing.T) {
	t.Setenv("CATALOG_CONFIG_FILE", "/nonexistent/catalog.yaml")

	_, err := New()
	require.Error(t, err)
}
