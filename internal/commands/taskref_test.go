package commands

import (
	"errors"
	"testing"

	"todos/internal/task"
)

func TestParseTaskRef_Position(t *testing.T) {
	ref, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Position != 5 || ref.ID != "5" {
		t.Errorf("unexpected ref: %#v", ref)
	}
}

func TestParseTaskRef_ID(t *testing.T) {
	ref, err := ParseTaskRef([]string{" 3f2a9c "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "3f2a9c" || ref.Position != 0 {
		t.Errorf("unexpected ref: %#v", ref)
	}
}

func TestParseTaskRef_NoArgs_Error(t *testing.T) {
	for _, args := range [][]string{nil, {}, {"  "}} {
		_, err := ParseTaskRef(args)
		if err != ErrTaskRefRequired {
			t.Errorf("args %q: expected ErrTaskRefRequired, got %v", args, err)
		}
	}
}

func TestParseTaskRef_ExtraArg_Error(t *testing.T) {
	_, err := ParseTaskRef([]string{"1", "2"})
	if err == nil {
		t.Fatal("expected error for extra argument")
	}
	expectedMsg := "unexpected argument: 2"
	if err.Error() != expectedMsg {
		t.Errorf("expected %q, got %q", expectedMsg, err.Error())
	}
}

func TestParseTaskRef_NonASCIIDigits(t *testing.T) {
	// Arabic-Indic digits are not positions.
	ref, err := ParseTaskRef([]string{"٣"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "٣" {
		t.Errorf("expected id reference, got %#v", ref)
	}
}

func TestLookupTask_NumericIDBeatsPosition(t *testing.T) {
	c := task.Collection{{ID: "2"}, {ID: "1"}}

	ref, err := ParseTaskRef([]string{"1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := lookupTask(c, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "1" {
		t.Errorf("expected id 1, got %s", got.ID)
	}

	ref, _ = ParseTaskRef([]string{"3"})
	if _, err := lookupTask(c, ref); err == nil || err.Error() != "task number out of range: 3" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLookupTask(t *testing.T) {
	c := task.Collection{
		{ID: "abcd"},
		{ID: "abcd-1234"},
		{ID: "ffff-0000"},
	}

	tests := []struct {
		name    string
		ref     TaskRef
		wantID  string
		wantErr error
	}{
		{"first position", TaskRef{Position: 1}, "abcd", nil},
		{"last position", TaskRef{Position: 3}, "ffff-0000", nil},
		{"exact id beats prefix", TaskRef{ID: "abcd"}, "abcd", nil},
		{"unique prefix", TaskRef{ID: "ffff"}, "ffff-0000", nil},
		{"longer prefix", TaskRef{ID: "abcd-"}, "abcd-1234", nil},
		{"no match", TaskRef{ID: "eeee"}, "", ErrNoMatch},
		{"short prefix", TaskRef{ID: "ff"}, "", ErrNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lookupTask(c, tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != tt.wantID {
				t.Errorf("expected %s, got %s", tt.wantID, got.ID)
			}
		})
	}
}

func TestLookupTask_Ambiguous(t *testing.T) {
	c := task.Collection{{ID: "abcd-1"}, {ID: "abcd-2"}}
	_, err := lookupTask(c, TaskRef{ID: "abcd"})
	if !errors.Is(err, ErrAmbiguousRef) {
		t.Fatalf("expected ErrAmbiguousRef, got %v", err)
	}
}

func TestLookupTask_OutOfRange(t *testing.T) {
	_, err := lookupTask(task.Collection{}, TaskRef{Position: 1})
	if err == nil || err.Error() != "task number out of range: 1" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRegistry_RejectsDuplicateAlias(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&AddCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&AddCmd{}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	cmd, ok := r.Find("create")
	if !ok || cmd.Name() != "add" {
		t.Errorf("expected alias create to resolve to add")
	}
	if n := len(r.All()); n != 1 {
		t.Errorf("expected 1 command, got %d", n)
	}
}
