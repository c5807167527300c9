package task

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind is the wire name of an action.
type Kind string

const (
	KindCreate    Kind = "TODO_CREATE"
	KindUpdate    Kind = "TODO_UPDATE"
	KindDelete    Kind = "TODO_DELETE"
	KindCompleted Kind = "TODO_COMPLETED"
)

// ErrUnknownAction is reported for any action kind outside the four known ones.
var ErrUnknownAction = errors.New("unknown action")

// Action is a request to transition a Collection.
// The set of implementations is closed: Create, Update, Delete, ToggleCompleted.
type Action interface {
	Kind() Kind
	action()
}

// Create appends Task to the collection.
type Create struct{ Task Task }

// Update replaces the task with the same id.
type Update struct{ Task Task }

// Delete removes the task with ID.
type Delete struct{ ID string }

// ToggleCompleted flips the completion flag of the task with ID.
type ToggleCompleted struct{ ID string }

func (Create) Kind() Kind          { return KindCreate }
func (Update) Kind() Kind          { return KindUpdate }
func (Delete) Kind() Kind          { return KindDelete }
func (ToggleCompleted) Kind() Kind { return KindCompleted }

func (Create) action()          {}
func (Update) action()          {}
func (Delete) action()          {}
func (ToggleCompleted) action() {}

// envelope is the JSON form of an action: {"type": ..., "payload": ...}.
type envelope struct {
	Type    Kind            `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// taskFields lists the keys every task payload must carry.
var taskFields = []string{"id", "title", "content", "isCompleted"}

// DecodeAction parses a JSON action envelope.
// Task payloads must carry all four task fields.
// An unrecognised type yields an error wrapping ErrUnknownAction.
func DecodeAction(data []byte) (Action, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("invalid action: %w", err)
	}

	switch env.Type {
	case KindCreate, KindUpdate:
		var fields map[string]json.RawMessage
		if err := decodePayload(env, &fields); err != nil {
			return nil, err
		}
		for _, name := range taskFields {
			if _, ok := fields[name]; !ok {
				return nil, fmt.Errorf("invalid %s payload: missing %s", env.Type, name)
			}
		}
		var t Task
		if err := decodePayload(env, &t); err != nil {
			return nil, err
		}
		if t.ID == "" {
			return nil, fmt.Errorf("invalid %s payload: missing id", env.Type)
		}
		if env.Type == KindCreate {
			return Create{Task: t}, nil
		}
		return Update{Task: t}, nil
	case KindDelete, KindCompleted:
		var id string
		if err := decodePayload(env, &id); err != nil {
			return nil, err
		}
		if env.Type == KindDelete {
			return Delete{ID: id}, nil
		}
		return ToggleCompleted{ID: id}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Type)
	}
}

func decodePayload(env envelope, v any) error {
	if len(env.Payload) == 0 {
		return fmt.Errorf("invalid %s payload: missing", env.Type)
	}
	if err := json.Unmarshal(env.Payload, v); err != nil {
		return fmt.Errorf("invalid %s payload: %w", env.Type, err)
	}
	return nil
}

// EncodeAction renders a as a JSON action envelope.
func EncodeAction(a Action) ([]byte, error) {
	var payload any
	switch a := a.(type) {
	case Create:
		payload = a.Task
	case Update:
		payload = a.Task
	case Delete:
		payload = a.ID
	case ToggleCompleted:
		payload = a.ID
	default:
		return nil, ErrUnknownAction
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Type: a.Kind(), Payload: raw})
}
