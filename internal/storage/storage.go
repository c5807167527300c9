// Package storage persists the task collection through a key-value store.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"todos/internal/task"
)

// DefaultKey is the key the collection is stored under.
const DefaultKey = "todos"

// Persistence loads and saves the whole task collection.
type Persistence interface {
	// Load returns the stored collection, or an empty one if nothing is stored.
	Load(ctx context.Context) (task.Collection, error)

	// Save overwrites the stored collection with c.
	Save(ctx context.Context, c task.Collection) error
}

// KV is a string key-value store.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	Close() error
}

// Adapter implements Persistence on a KV under a single fixed key.
type Adapter struct {
	kv  KV
	key string
	log *logrus.Entry
}

// NewAdapter returns an Adapter storing under key (DefaultKey if empty).
// log may be nil.
func NewAdapter(kv KV, key string, log *logrus.Entry) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	return &Adapter{kv: kv, key: key, log: log.WithField("key", key)}
}

// Key returns the storage key in use.
func (a *Adapter) Key() string { return a.key }

// Load implements Persistence.
// A value that does not parse as a collection is treated as empty; the next
// Save overwrites it.
func (a *Adapter) Load(ctx context.Context) (task.Collection, error) {
	raw, ok, err := a.kv.Get(ctx, a.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", a.key, err)
	}
	if !ok {
		return task.Collection{}, nil
	}

	var c task.Collection
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		a.log.WithError(err).Warn("stored tasks are unreadable, starting empty")
		return task.Collection{}, nil
	}
	if c == nil {
		c = task.Collection{}
	}
	a.log.WithField("tasks", len(c)).Debug("loaded tasks")
	return c, nil
}

// Save implements Persistence.
func (a *Adapter) Save(ctx context.Context, c task.Collection) error {
	if c == nil {
		c = task.Collection{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := a.kv.Set(ctx, a.key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", a.key, err)
	}
	return nil
}

// Close closes the underlying KV.
func (a *Adapter) Close() error {
	return a.kv.Close()
}
