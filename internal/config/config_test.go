package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "todos", cfg.Storage.Key)
	assert.Equal(t, filepath.Join(dir, "storage.json"), cfg.StoragePath())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Metrics.Textfile)
}

func TestNew_ReadsYAML(t *testing.T) {
	dir := t.TempDir()
	yml := `
storage:
  backend: postgres
  dsn: postgres://localhost/todos
  key: my-todos
log:
  level: debug
export:
  list: Inbox
metrics:
  textfile: /tmp/todos.prom
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(yml), 0600))

	cfg, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.Storage.Backend)
	assert.Equal(t, "postgres://localhost/todos", cfg.Storage.DSN)
	assert.Equal(t, "my-todos", cfg.Storage.Key)
	assert.Equal(t, "storage.json", cfg.Storage.File, "unset fields keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "Inbox", cfg.Export.List)
	assert.Equal(t, "/tmp/todos.prom", cfg.Metrics.Textfile)
}

func TestNew_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TODOS_STORAGE_BACKEND", "memory")
	t.Setenv("TODOS_LOG_LEVEL", "warn")

	cfg, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestNew_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("storage: [oops"), 0600))

	_, err := New(dir)
	assert.ErrorContains(t, err, "invalid config.yaml")
}

func TestValidate(t *testing.T) {
	cfg := Defaults(t.TempDir())
	cfg.Storage.Backend = "redis"
	assert.EqualError(t, cfg.Validate(), "unknown storage backend: redis")

	cfg.Storage.Backend = "MySQL"
	assert.EqualError(t, cfg.Validate(), "storage backend mysql requires a dsn")

	cfg.Storage.DSN = "root@tcp(localhost)/todos"
	assert.NoError(t, cfg.Validate())

	cfg.Storage.Key = " "
	assert.EqualError(t, cfg.Validate(), "storage key must not be empty")
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", AppName), DefaultConfigDir())
}

func TestStoragePath_Absolute(t *testing.T) {
	cfg := Defaults("/cfg")
	cfg.Storage.File = "/data/todos.json"
	assert.Equal(t, "/data/todos.json", cfg.StoragePath())
}
