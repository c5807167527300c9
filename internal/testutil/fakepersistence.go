package testutil

import (
	"context"
	"sync"

	"todos/internal/task"
)

// FakePersistence is an in-memory storage.Persistence that records every save.
type FakePersistence struct {
	mu      sync.Mutex
	stored  task.Collection
	saves   []task.Collection
	LoadErr error
	SaveErr error
}

// NewFakePersistence returns a FakePersistence holding initial.
func NewFakePersistence(initial ...task.Task) *FakePersistence {
	return &FakePersistence{stored: task.Collection(initial).Clone()}
}

// Load implements storage.Persistence.
func (f *FakePersistence) Load(ctx context.Context) (task.Collection, error) {
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stored.Clone(), nil
}

// Save implements storage.Persistence.
func (f *FakePersistence) Save(ctx context.Context, c task.Collection) error {
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored = c.Clone()
	f.saves = append(f.saves, c.Clone())
	return nil
}

// Saves returns every collection passed to Save, oldest first.
func (f *FakePersistence) Saves() []task.Collection {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]task.Collection, len(f.saves))
	copy(out, f.saves)
	return out
}

// Stored returns the last saved collection.
func (f *FakePersistence) Stored() task.Collection {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stored.Clone()
}
