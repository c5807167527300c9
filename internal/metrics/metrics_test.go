package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveDispatch(t *testing.T) {
	m := New()
	m.ObserveDispatch("TODO_CREATE", time.Millisecond, 1)
	m.ObserveDispatch("TODO_CREATE", time.Millisecond, 2)
	m.ObserveDispatch("TODO_DELETE", time.Millisecond, 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.actions.WithLabelValues("TODO_CREATE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.actions.WithLabelValues("TODO_DELETE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tasks))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveLoad(3)

	path := filepath.Join(t.TempDir(), "todos.prom")
	require.NoError(t, m.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "todos_tasks 3")
}
