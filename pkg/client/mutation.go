package client

import (
	"bytes"
	"encoding/json"

	"tableflip.dev/daybook/pkg/entry"
)

// Shape classifies the body returned by the toggle endpoints, which do not
// agree on a single response contract.
type Shape int

const (
	// ShapeUnknown is any body that is not a JSON object, or an object that
	// claims to be a task but does not decode as one.
	ShapeUnknown Shape = iota
	// ShapeEntity is a full task carrying its identifier.
	ShapeEntity
	// ShapeReminderAck is an object without an identifier that reports the
	// new reminder_enabled value.
	ShapeReminderAck
	// ShapeAck is an empty body or an object with neither of the above.
	ShapeAck
)

func (s Shape) String() string {
	switch s {
	case ShapeEntity:
		return "entity"
	case ShapeReminderAck:
		return "reminder-ack"
	case ShapeAck:
		return "ack"
	default:
		return "unknown"
	}
}

// Mutation is the decoded result of a toggle request. Task is set only for
// ShapeEntity and ReminderEnabled only for ShapeReminderAck.
type Mutation struct {
	Shape           Shape
	Task            *entry.Task
	ReminderEnabled *bool
}

// classifyMutation inspects a 2xx body. It never fails: bodies it cannot make
// sense of are reported as ShapeUnknown.
func classifyMutation(body []byte) Mutation {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Mutation{Shape: ShapeAck}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return Mutation{Shape: ShapeUnknown}
	}
	if wrapped, ok := fields["task"]; ok && hasID(wrapped) {
		return decodeEntity(wrapped)
	}
	if raw, ok := fields["id"]; ok && !isNull(raw) {
		return decodeEntity(trimmed)
	}
	if raw, ok := fields["reminder_enabled"]; ok {
		var enabled bool
		if err := json.Unmarshal(raw, &enabled); err == nil {
			return Mutation{Shape: ShapeReminderAck, ReminderEnabled: &enabled}
		}
		return Mutation{Shape: ShapeUnknown}
	}
	return Mutation{Shape: ShapeAck}
}

func decodeEntity(raw []byte) Mutation {
	var t entry.Task
	if err := json.Unmarshal(raw, &t); err != nil || t.ID == "" {
		return Mutation{Shape: ShapeUnknown}
	}
	return Mutation{Shape: ShapeEntity, Task: &t}
}

func hasID(raw json.RawMessage) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	id, ok := fields["id"]
	return ok && !isNull(id)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
