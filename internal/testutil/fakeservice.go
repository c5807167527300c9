// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"todos/internal/service"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.RWMutex
	lists []service.TaskList
	tasks map[string][]service.Task // listID -> tasks

	// Error injection for testing
	DefaultListErr error
	ResolveListErr error
	CreateListErr  error
	InsertTaskErr  error
}

// NewFakeService creates a new FakeService with a default list.
func NewFakeService() *FakeService {
	fs := &FakeService{
		tasks: make(map[string][]service.Task),
	}
	fs.lists = []service.TaskList{
		{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
	}
	return fs
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
}

// Lists returns a copy of all lists.
func (f *FakeService) Lists() []service.TaskList {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.TaskList, len(f.lists))
	copy(out, f.lists)
	return out
}

// Tasks returns a copy of the tasks in a list, top first.
func (f *FakeService) Tasks(listID string) []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks[listID]))
	copy(out, f.tasks[listID])
	return out
}

// DefaultList implements service.Service.
func (f *FakeService) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, errors.New("no default list")
}

// ResolveList implements service.Service.
func (f *FakeService) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	nameLower := strings.ToLower(strings.TrimSpace(name))

	var matches []service.TaskList
	for _, l := range f.lists {
		if strings.ToLower(strings.TrimSpace(l.Title)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, fmt.Errorf("%w: %s", service.ErrListNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, fmt.Errorf("%w: %s", service.ErrAmbiguousList, name)
	}
}

// CreateList implements service.Service.
func (f *FakeService) CreateList(ctx context.Context, name string) (service.TaskList, error) {
	if f.CreateListErr != nil {
		return service.TaskList{}, f.CreateListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	id := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	l := service.TaskList{ID: id, Title: name}
	f.lists = append(f.lists, l)
	return l, nil
}

// InsertTask implements service.Service.
func (f *FakeService) InsertTask(ctx context.Context, listID string, t service.Task) error {
	if f.InsertTaskErr != nil {
		return f.InsertTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	known := false
	for _, l := range f.lists {
		if l.ID == listID {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("not found: %s", listID)
	}

	// Like Google Tasks, a new task goes to the top of the list.
	t.ID = fmt.Sprintf("%s-%d", listID, len(f.tasks[listID])+1)
	f.tasks[listID] = append([]service.Task{t}, f.tasks[listID]...)
	return nil
}
