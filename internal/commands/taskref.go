package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// MinIDPrefix is the shortest id prefix accepted as a task reference.
const MinIDPrefix = 4

var (
	// ErrTaskRefRequired indicates no task reference was provided.
	ErrTaskRefRequired = errors.New("task reference required")

	// ErrNoMatch indicates no task has the referenced id.
	ErrNoMatch = errors.New("no matching task")

	// ErrAmbiguousRef indicates an id prefix matched several tasks.
	ErrAmbiguousRef = errors.New("ambiguous task reference")
)

// TaskRef is a parsed task reference: a 1-based position in the collection,
// or an id (or id prefix). A numeric reference sets both; an exact id match
// takes precedence over the position.
type TaskRef struct {
	Position int
	ID       string
}

// ParseTaskRef parses a task reference from the first argument.
// All digits means a position (or an id that is exactly those digits);
// anything else is an id or id prefix.
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("unexpected argument: %s", args[1])
	}

	ref := strings.TrimSpace(args[0])
	if isAllDigits(ref) {
		n, err := strconv.Atoi(ref)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
		}
		return TaskRef{Position: n, ID: ref}, nil
	}
	return TaskRef{ID: ref}, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
