package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todos/internal/config"
	"todos/internal/storage"
	"todos/internal/task"
)

func TestOpen_FileBackendPersists(t *testing.T) {
	ctx := context.Background()
	cfg := config.Defaults(t.TempDir())

	a, err := storage.Open(ctx, cfg, nil)
	require.NoError(t, err)
	want := task.Collection{{ID: "1", Title: "Buy milk", Content: "2%"}}
	require.NoError(t, a.Save(ctx, want))
	require.NoError(t, a.Close())

	again, err := storage.Open(ctx, cfg, nil)
	require.NoError(t, err)
	got, err := again.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOpen_MemoryBackend(t *testing.T) {
	cfg := config.Defaults(t.TempDir())
	cfg.Storage.Backend = config.BackendMemory

	a, err := storage.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	c, err := a.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, c)
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := config.Defaults(t.TempDir())
	cfg.Storage.Backend = "etcd"

	_, err := storage.Open(context.Background(), cfg, nil)
	assert.EqualError(t, err, "unknown storage backend: etcd")
}
