package filekv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_MissingFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "nested", "storage.json"), nil)
	require.NoError(t, err)

	_, ok, err := s.Get(context.Background(), "todos")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSet_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "storage.json")

	s, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "todos", `[{"id":"1"}]`))
	require.NoError(t, s.Set(ctx, "other", "x"))

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, "todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, v)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestOpen_TruncatedFileStartsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")
	truncated := []byte(`{"todos": "[]"`)
	require.NoError(t, os.WriteFile(path, truncated, 0o600))

	logger, hook := test.NewNullLogger()
	s, err := Open(path, logrus.NewEntry(logger))
	require.NoError(t, err)

	_, ok, err := s.Get(ctx, "todos")
	require.NoError(t, err)
	assert.False(t, ok)

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, path+CorruptSuffix, hook.LastEntry().Data["moved_to"])

	kept, err := os.ReadFile(path + CorruptSuffix)
	require.NoError(t, err)
	assert.Equal(t, truncated, kept)

	require.NoError(t, s.Set(ctx, "todos", "[]"))
	reopened, err := Open(path, nil)
	require.NoError(t, err)
	v, ok, _ := reopened.Get(ctx, "todos")
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestOpen_WrongShapeStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("[1,2]"), 0o600))

	s, err := Open(path, nil)
	require.NoError(t, err)
	_, ok, _ := s.Get(context.Background(), "todos")
	assert.False(t, ok)
}

func TestOpen_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	s, err := Open(path, nil)
	require.NoError(t, err)
	_, ok, _ := s.Get(context.Background(), "todos")
	assert.False(t, ok)
}

func TestSet_FailureKeepsPreviousValue(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	// The parent "directory" is a regular file, so the write cannot happen.
	s := &Store{path: filepath.Join(blocker, "storage.json"), values: map[string]string{"todos": "old"}}
	require.Error(t, s.Set(ctx, "todos", "new"))

	v, _, _ := s.Get(ctx, "todos")
	assert.Equal(t, "old", v)
}
