// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todos/internal/task"
)

// FormatTask formats a task line for the list command.
// Format: "{N:>4}  [{x| }] {TITLE}\n"
func FormatTask(w io.Writer, num int, t task.Task) {
	fmt.Fprintf(w, "%4d  [%s] %s\n", num, Mark(t), NormalizeTitle(t.Title))
}

// FormatDetail formats every field of a task for the show command.
func FormatDetail(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "id:      %s\n", t.ID)
	fmt.Fprintf(w, "title:   %s\n", NormalizeTitle(t.Title))
	fmt.Fprintf(w, "status:  %s\n", Status(t))
	if strings.TrimSpace(t.Content) != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.TrimRight(t.Content, "\n"))
	}
}

// Mark returns "x" for a completed task and a space otherwise.
func Mark(t task.Task) string {
	if t.IsCompleted {
		return "x"
	}
	return " "
}

// Status returns "done" or "open".
func Status(t task.Task) string {
	if t.IsCompleted {
		return "done"
	}
	return "open"
}

// NormalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
