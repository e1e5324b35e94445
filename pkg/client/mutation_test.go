package client

import "testing"

func TestClassifyMutation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		shape   Shape
		enabled *bool
	}{
		{name: "empty", body: "", shape: ShapeAck},
		{name: "null", body: "null", shape: ShapeAck},
		{name: "entity", body: `{"id":5,"title":"x","reminder_enabled":true}`, shape: ShapeEntity},
		{name: "null id", body: `{"id":null,"message":"ok"}`, shape: ShapeAck},
		{name: "reminder ack", body: `{"reminder_enabled":true}`, shape: ShapeReminderAck, enabled: boolPtr(true)},
		{name: "reminder ack with extras", body: `{"ok":true,"reminder_enabled":false}`, shape: ShapeReminderAck, enabled: boolPtr(false)},
		{name: "bad reminder value", body: `{"reminder_enabled":"yes"}`, shape: ShapeUnknown},
		{name: "array", body: `[1,2]`, shape: ShapeUnknown},
		{name: "garbage", body: `<html>`, shape: ShapeUnknown},
		{name: "entity that does not decode", body: `{"id":"1","tags":"nope"}`, shape: ShapeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := classifyMutation([]byte(tt.body))
			if m.Shape != tt.shape {
				t.Fatalf("shape = %v, want %v", m.Shape, tt.shape)
			}
			if (m.Task != nil) != (tt.shape == ShapeEntity) {
				t.Fatalf("task presence mismatch: %+v", m)
			}
			if tt.enabled != nil {
				if m.ReminderEnabled == nil || *m.ReminderEnabled != *tt.enabled {
					t.Fatalf("reminder_enabled = %v, want %v", m.ReminderEnabled, *tt.enabled)
				}
			}
		})
	}
}

func boolPtr(b bool) *bool { return &b }
