package event

import (
	"testing"
	"time"
)

func TestType_IsValid(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		want      bool
	}{
		{"submitted", TypeBillSubmitted, true},
		{"accepted", TypeBillAccepted, true},
		{"refused", TypeBillRefused, true},
		{"unknown", Type("bill.deleted"), false},
		{"empty", Type(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.eventType.IsValid(); got != tt.want {
				t.Errorf("Type.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewEvent(t *testing.T) {
	before := time.Now()
	evt := NewEvent(TypeBillAccepted, "bill-1", map[string]interface{}{KeyActor: "admin@test.tld"})

	if evt.ID == "" {
		t.Error("NewEvent() should generate an ID")
	}
	if evt.BillID != "bill-1" {
		t.Errorf("BillID = %v, want bill-1", evt.BillID)
	}
	if evt.Timestamp.Before(before) {
		t.Error("Timestamp should be set to the creation time")
	}
	if got := evt.GetPayloadString(KeyActor); got != "admin@test.tld" {
		t.Errorf("GetPayloadString(actor) = %v, want admin@test.tld", got)
	}

	other := NewEvent(TypeBillAccepted, "bill-1", nil)
	if other.ID == evt.ID {
		t.Error("event IDs should be unique")
	}
	if other.Payload == nil {
		t.Error("nil payload should be replaced by an empty map")
	}
}

func TestEvent_WithPayloadDoesNotMutateOriginal(t *testing.T) {
	original := NewEvent(TypeBillRefused, "bill-2", map[string]interface{}{KeyNewStatus: "refused"})

	updated := original.WithPayload(KeyComment, "missing receipt")

	if original.GetPayloadString(KeyComment) != "" {
		t.Error("WithPayload() should not modify the original event")
	}
	if updated.GetPayloadString(KeyComment) != "missing receipt" {
		t.Error("WithPayload() should add the key to the copy")
	}
	if updated.GetPayloadString(KeyNewStatus) != "refused" {
		t.Error("WithPayload() should keep existing keys")
	}
	if updated.ID != original.ID {
		t.Error("WithPayload() should keep the event identity")
	}
}

func TestEvent_GetPayloadStringWrongType(t *testing.T) {
	evt := NewEvent(TypeBillSubmitted, "bill-3", map[string]interface{}{"count": 3})

	if got := evt.GetPayloadString("count"); got != "" {
		t.Errorf("GetPayloadString() = %q, want empty for non-string value", got)
	}
}
