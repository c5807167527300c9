// Package service defines the backend-agnostic interface for the remote task
// list that the local collection is exported to.
package service

import (
	"context"
	"errors"
)

var (
	// ErrListNotFound is returned by ResolveList when no list has the name.
	ErrListNotFound = errors.New("list not found")

	// ErrAmbiguousList is returned by ResolveList when several lists match.
	ErrAmbiguousList = errors.New("ambiguous list name")
)

// Service defines the remote operations used by export.
// Commands never import the Google SDK directly.
type Service interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// CreateList creates a new task list and returns it.
	CreateList(ctx context.Context, name string) (TaskList, error)

	// InsertTask adds a task to the top of a list.
	InsertTask(ctx context.Context, listID string, t Task) error
}
