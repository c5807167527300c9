// Package store owns the current task collection and writes every change
// through to persistence.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"todos/internal/logger"
	"todos/internal/storage"
	"todos/internal/task"
)

// Observer receives one call per applied action.
type Observer interface {
	ObserveDispatch(kind string, save time.Duration, tasks int)
	ObserveLoad(tasks int)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(log *logrus.Entry) Option {
	return func(s *Store) { s.log = log }
}

// WithObserver sets the metrics observer.
func WithObserver(o Observer) Option {
	return func(s *Store) { s.obs = o }
}

// Store holds the current collection. It is not safe for concurrent use;
// callers serialize actions.
type Store struct {
	p       storage.Persistence
	current task.Collection
	log     *logrus.Entry
	obs     Observer
}

// Open loads the initial collection from p.
func Open(ctx context.Context, p storage.Persistence, opts ...Option) (*Store, error) {
	s := &Store{p: p, log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}

	c, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if c == nil {
		c = task.Collection{}
	}
	s.current = c
	if s.obs != nil {
		s.obs.ObserveLoad(len(c))
	}
	return s, nil
}

// Tasks returns a copy of the current collection.
func (s *Store) Tasks() task.Collection {
	return s.current.Clone()
}

// Dispatch applies a, saves the result, and makes it current.
// If the save fails the current collection is unchanged.
func (s *Store) Dispatch(ctx context.Context, a task.Action) (task.Collection, error) {
	next := task.Reduce(s.current, a)

	start := time.Now()
	if err := s.p.Save(ctx, next); err != nil {
		return s.Tasks(), fmt.Errorf("save tasks: %w", err)
	}
	elapsed := time.Since(start)

	s.current = next
	s.log.WithFields(logrus.Fields{
		"action": a.Kind(),
		"tasks":  len(next),
	}).Debug("applied action")
	if s.obs != nil {
		s.obs.ObserveDispatch(string(a.Kind()), elapsed, len(next))
	}
	return next.Clone(), nil
}

// Create adds a new open task and returns it.
func (s *Store) Create(ctx context.Context, title, content string) (task.Task, error) {
	t := task.New(title, content)
	if _, err := s.Dispatch(ctx, task.Create{Task: t}); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// Update replaces the task with t.ID.
func (s *Store) Update(ctx context.Context, t task.Task) error {
	_, err := s.Dispatch(ctx, task.Update{Task: t})
	return err
}

// Delete removes the task with id.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.Dispatch(ctx, task.Delete{ID: id})
	return err
}

// ToggleCompleted flips the completion flag of the task with id.
func (s *Store) ToggleCompleted(ctx context.Context, id string) error {
	_, err := s.Dispatch(ctx, task.ToggleCompleted{ID: id})
	return err
}
