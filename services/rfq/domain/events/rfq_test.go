package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/beanbridge/services/rfq/domain/events"
)

func TestRFQSubmittedEvent_JSONRoundTrip(t *testing.T) {
	original := events.RFQSubmittedEvent{
		EventID:     uuid.MustParse("550e8400-e29b-41d4-a716-446655440001"),
		Version:     1,
		RFQID:       uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		RFQNumber:   "RFQ-20240315-143005",
		CompanyName: "Roast & Co GmbH",
		Email:       "jane@roastco.example",
		Priority:    "HIGH",
		OccurredAt:  time.Date(2024, 3, 15, 14, 30, 5, 0, time.UTC),
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var decoded events.RFQSubmittedEvent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}

	if decoded.EventID != original.EventID || decoded.RFQID != original.RFQID {
		t.Errorf("ids changed in round trip: %+v", decoded)
	}
	if decoded.RFQNumber != original.RFQNumber {
		t.Errorf("RFQNumber: got %q, want %q", decoded.RFQNumber, original.RFQNumber)
	}
	if !decoded.OccurredAt.Equal(original.OccurredAt) {
		t.Errorf("OccurredAt: got %v, want %v", decoded.OccurredAt, original.OccurredAt)
	}
}

func TestRFQStatusChangedEvent_JSONFieldNames(t *testing.T) {
	evt := events.RFQStatusChangedEvent{
		EventID:        uuid.New(),
		Version:        1,
		RFQID:          uuid.New(),
		RFQNumber:      "RFQ-20240315-143005",
		PreviousStatus: "submitted",
		NewStatus:      "under_review",
		Significant:    true,
		OccurredAt:     time.Now().UTC(),
	}

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}

	for _, field := range []string{"event_id", "version", "rfq_id", "rfq_number",
		"previous_status", "new_status", "significant", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
}

func TestTopics(t *testing.T) {
	if events.TopicRFQSubmitted != "rfq.submitted" {
		t.Errorf("TopicRFQSubmitted = %q", events.TopicRFQSubmitted)
	}
	if events.TopicRFQStatusChanged != "rfq.status_changed" {
		t.Errorf("TopicRFQStatusChanged = %q", events.TopicRFQStatusChanged)
	}
}
