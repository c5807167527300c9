package task

import "fmt"

// Reduce returns the collection that results from applying a to c.
// c is never modified. Update, Delete and ToggleCompleted apply to every task
// carrying the id; against an id that is not present they return an
// unchanged copy.
//
// Reduce panics if a is not one of the known actions (in practice, a nil
// Action); that is a programming error, not a user error.
func Reduce(c Collection, a Action) Collection {
	switch a := a.(type) {
	case Create:
		next := make(Collection, 0, len(c)+1)
		next = append(next, c...)
		return append(next, a.Task)

	case Update:
		next := c.Clone()
		for i := range next {
			if next[i].ID == a.Task.ID {
				next[i] = a.Task
			}
		}
		return next

	case Delete:
		next := make(Collection, 0, len(c))
		for _, t := range c {
			if t.ID != a.ID {
				next = append(next, t)
			}
		}
		return next

	case ToggleCompleted:
		next := c.Clone()
		for i := range next {
			if next[i].ID == a.ID {
				next[i].IsCompleted = !next[i].IsCompleted
			}
		}
		return next

	default:
		panic(fmt.Errorf("%w: %T", ErrUnknownAction, a))
	}
}
