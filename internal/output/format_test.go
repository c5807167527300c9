package output

import (
	"bytes"
	"testing"

	"todos/internal/task"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Buy milk", "Buy milk"},
		{"", "(untitled)"},
		{"   ", "(untitled)"},
		{"line one\nline two", "line one line two"},
		{"a\r\nb", "a  b"},
	}
	for _, tt := range tests {
		if got := NormalizeTitle(tt.in); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTask(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, 12, task.Task{Title: "Walk dog", IsCompleted: true})
	if got, want := buf.String(), "  12  [x] Walk dog\n"; got != want {
		t.Errorf("FormatTask = %q, want %q", got, want)
	}
}

func TestFormatDetail_NoContent(t *testing.T) {
	var buf bytes.Buffer
	FormatDetail(&buf, task.Task{ID: "abc", Title: "Walk dog", Content: "  \n"})
	want := "id:      abc\ntitle:   Walk dog\nstatus:  open\n"
	if got := buf.String(); got != want {
		t.Errorf("FormatDetail = %q, want %q", got, want)
	}
}
