// Package task defines the task record, the collection it lives in, and the
// actions that transition one collection into the next.
package task

import "github.com/google/uuid"

// Task represents a single to-do item.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsCompleted bool   `json:"isCompleted"`
}

// New returns an open task with a freshly generated id.
func New(title, content string) Task {
	return Task{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
	}
}

// Collection is the ordered set of tasks and the unit of persistence.
type Collection []Task

// Clone returns a copy that shares no backing array with c.
// A nil collection clones to an empty, non-nil one.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Index returns the position of the task with the given id, or -1.
func (c Collection) Index(id string) int {
	for i, t := range c {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the task with the given id.
func (c Collection) Find(id string) (Task, bool) {
	if i := c.Index(id); i >= 0 {
		return c[i], true
	}
	return Task{}, false
}

// Completed returns the number of completed tasks.
func (c Collection) Completed() int {
	n := 0
	for _, t := range c {
		if t.IsCompleted {
			n++
		}
	}
	return n
}
