package commands

import (
	"fmt"
	"io"
	"strings"

	"todos/internal/task"
)

// lookupTask resolves ref against c. An exact id wins over a position,
// and a position wins over a prefix match.
func lookupTask(c task.Collection, ref TaskRef) (task.Task, error) {
	if ref.ID != "" {
		if t, ok := c.Find(ref.ID); ok {
			return t, nil
		}
	}
	if ref.ID == "" || isAllDigits(ref.ID) {
		if ref.Position < 1 || ref.Position > len(c) {
			return task.Task{}, fmt.Errorf("task number out of range: %d", ref.Position)
		}
		return c[ref.Position-1], nil
	}
	if len(ref.ID) < MinIDPrefix {
		return task.Task{}, fmt.Errorf("%w: %s", ErrNoMatch, ref.ID)
	}

	var found []task.Task
	for _, t := range c {
		if strings.HasPrefix(t.ID, ref.ID) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return task.Task{}, fmt.Errorf("%w: %s", ErrNoMatch, ref.ID)
	case 1:
		return found[0], nil
	default:
		return task.Task{}, fmt.Errorf("%w: %s", ErrAmbiguousRef, ref.ID)
	}
}

// resolveTask parses args as a task reference and looks it up in the store,
// reporting failures to errOut.
func resolveTask(env *Env, args []string, errOut io.Writer) (task.Task, bool) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, false
	}
	t, err := lookupTask(env.Store.Tasks(), ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, false
	}
	return t, true
}
