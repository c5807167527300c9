package store_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todos/internal/metrics"
	"todos/internal/storage"
	"todos/internal/storage/memkv"
	"todos/internal/store"
	"todos/internal/task"
	fakes "todos/internal/testutil"
)

func openStore(t *testing.T, p storage.Persistence, opts ...store.Option) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), p, opts...)
	require.NoError(t, err)
	return s
}

func TestOpen_LoadsInitialCollection(t *testing.T) {
	p := fakes.NewFakePersistence(task.Task{ID: "1", Title: "Buy milk"})
	s := openStore(t, p)

	assert.Equal(t, task.Collection{{ID: "1", Title: "Buy milk"}}, s.Tasks())
	assert.Empty(t, p.Saves(), "opening must not write")
}

func TestOpen_LoadError(t *testing.T) {
	p := fakes.NewFakePersistence()
	p.LoadErr = errors.New("boom")

	_, err := store.Open(context.Background(), p)
	assert.EqualError(t, err, "load tasks: boom")
}

func TestDispatch_SavesExactlyOncePerAction(t *testing.T) {
	ctx := context.Background()
	p := fakes.NewFakePersistence(task.Task{ID: "a", Title: "first"})
	s := openStore(t, p)

	created := task.Task{ID: "b", Title: "second"}
	next, err := s.Dispatch(ctx, task.Create{Task: created})
	require.NoError(t, err)
	require.Len(t, next, 2)
	assert.Equal(t, created, next[1])

	saves := p.Saves()
	require.Len(t, saves, 1)
	assert.Equal(t, next, saves[0])

	for _, a := range []task.Action{
		task.Update{Task: task.Task{ID: "a", Title: "renamed"}},
		task.ToggleCompleted{ID: "b"},
		task.Delete{ID: "a"},
		task.Delete{ID: "missing"},
	} {
		_, err := s.Dispatch(ctx, a)
		require.NoError(t, err)
	}
	assert.Len(t, p.Saves(), 5)
	assert.Equal(t, task.Collection{{ID: "b", Title: "second", IsCompleted: true}}, p.Stored())
}

func TestDispatch_SaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	p := fakes.NewFakePersistence(task.Task{ID: "a"})
	s := openStore(t, p)

	p.SaveErr = errors.New("disk full")
	_, err := s.Dispatch(ctx, task.Delete{ID: "a"})
	assert.EqualError(t, err, "save tasks: disk full")
	assert.Equal(t, task.Collection{{ID: "a"}}, s.Tasks())
}

func TestDispatch_NilActionPanicsWithoutSaving(t *testing.T) {
	p := fakes.NewFakePersistence()
	s := openStore(t, p)

	assert.Panics(t, func() {
		_, _ = s.Dispatch(context.Background(), nil)
	})
	assert.Empty(t, p.Saves())
}

func TestTasks_ReturnsCopy(t *testing.T) {
	s := openStore(t, fakes.NewFakePersistence(task.Task{ID: "a", Title: "x"}))
	got := s.Tasks()
	got[0].Title = "changed"
	assert.Equal(t, "x", s.Tasks()[0].Title)
}

func TestScenario_BuyMilk(t *testing.T) {
	ctx := context.Background()
	kv := memkv.New()
	s := openStore(t, storage.NewAdapter(kv, "todos", nil))

	_, err := s.Dispatch(ctx, task.Create{Task: task.Task{ID: "1", Title: "Buy milk", Content: "2%"}})
	require.NoError(t, err)
	assert.Equal(t, task.Collection{{ID: "1", Title: "Buy milk", Content: "2%"}}, s.Tasks())

	require.NoError(t, s.ToggleCompleted(ctx, "1"))
	assert.True(t, s.Tasks()[0].IsCompleted)

	require.NoError(t, s.Delete(ctx, "1"))
	assert.Empty(t, s.Tasks())

	raw, ok, err := kv.Get(ctx, "todos")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)

	// A second store over the same storage starts from the persisted state.
	again := openStore(t, storage.NewAdapter(kv, "todos", nil))
	assert.Empty(t, again.Tasks())
}

func TestCreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	p := fakes.NewFakePersistence()
	s := openStore(t, p)

	created, err := s.Create(ctx, "Write report", "due friday")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.IsCompleted)

	created.Title = "Write final report"
	require.NoError(t, s.Update(ctx, created))

	got, ok := s.Tasks().Find(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Write final report", got.Title)
}

func TestDispatch_ReportsMetrics(t *testing.T) {
	ctx := context.Background()
	m := metrics.New()
	s := openStore(t, fakes.NewFakePersistence(), store.WithObserver(m))

	_, err := s.Create(ctx, "a", "")
	require.NoError(t, err)
	_, err = s.Create(ctx, "b", "")
	require.NoError(t, err)

	expected := `
# HELP todos_actions_total Actions applied to the task collection
# TYPE todos_actions_total counter
todos_actions_total{kind="TODO_CREATE"} 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "todos_actions_total"))
}
