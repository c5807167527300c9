package service

import "todos/internal/task"

// Remote task statuses.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// Task is a task as the remote backend stores it.
type Task struct {
	ID     string
	Title  string
	Notes  string
	Status string
}

// TaskList represents a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}

// FromLocal converts a local task for export.
func FromLocal(t task.Task) Task {
	status := StatusNeedsAction
	if t.IsCompleted {
		status = StatusCompleted
	}
	return Task{
		Title:  t.Title,
		Notes:  t.Content,
		Status: status,
	}
}
