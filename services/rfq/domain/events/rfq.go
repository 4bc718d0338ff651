package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the RFQ context.
const (
	// TopicRFQSubmitted is published after a new RFQ is persisted.
	TopicRFQSubmitted = "rfq.submitted"

	// TopicRFQStatusChanged is published after any status update, significant
	// or not. Consumers that only care about notified edges can check the
	// Significant flag.
	TopicRFQStatusChanged = "rfq.status_changed"
)

// RFQSubmittedEvent is published transactionally with the RFQ insert.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicRFQSubmitted).
type RFQSubmittedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	RFQID       uuid.UUID `json:"rfq_id"`
	RFQNumber   string    `json:"rfq_number"`
	CompanyName string    `json:"company_name"`
	Email       string    `json:"email"`
	Priority    string    `json:"priority"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// RFQStatusChangedEvent is published transactionally with the status write.
type RFQStatusChangedEvent struct {
	EventID        uuid.UUID `json:"event_id"`
	Version        int       `json:"version"`
	RFQID          uuid.UUID `json:"rfq_id"`
	RFQNumber      string    `json:"rfq_number"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Significant    bool      `json:"significant"`
	OccurredAt     time.Time `json:"occurred_at"`
}
