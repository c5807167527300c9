package task

import (
	"fmt"
	"strings"
)

// Filter selects which tasks are displayed. It never changes stored state.
type Filter int

const (
	ShowAll Filter = iota
	ShowCompleted
	ShowActive
)

func (f Filter) String() string {
	switch f {
	case ShowCompleted:
		return "completed"
	case ShowActive:
		return "active"
	default:
		return "all"
	}
}

// ParseFilter converts a filter name. Empty means ShowAll.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ShowAll, nil
	case "completed", "done":
		return ShowCompleted, nil
	case "active", "open", "incomplete":
		return ShowActive, nil
	default:
		return ShowAll, fmt.Errorf("invalid filter: %s", s)
	}
}

// Match reports whether t passes the filter.
func (f Filter) Match(t Task) bool {
	switch f {
	case ShowCompleted:
		return t.IsCompleted
	case ShowActive:
		return !t.IsCompleted
	default:
		return true
	}
}

// Apply returns the tasks of c that pass the filter, in order.
func (f Filter) Apply(c Collection) Collection {
	out := make(Collection, 0, len(c))
	for _, t := range c {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
