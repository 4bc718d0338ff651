package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewRFQNumber(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{
			name: "utc instant",
			at:   time.Date(2024, 3, 15, 14, 30, 5, 0, time.UTC),
			want: "RFQ-20240315-143005",
		},
		{
			name: "non-utc instants normalize to utc",
			at:   time.Date(2024, 3, 15, 15, 30, 5, 0, time.FixedZone("CET", 3600)),
			want: "RFQ-20240315-143005",
		},
		{
			name: "midnight rollover",
			at:   time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
			want: "RFQ-20241231-235959",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewRFQNumber(tt.at).String(); got != tt.want {
				t.Fatalf("NewRFQNumber(%v) = %q, want %q", tt.at, got, tt.want)
			}
		})
	}
}

func TestPriorityFromUrgency(t *testing.T) {
	tests := []struct {
		urgency string
		want    Priority
	}{
		{"high", PriorityHigh},
		{"medium", PriorityMedium},
		{"low", PriorityLow},
		{"", PriorityLow},
		{"HIGH", PriorityLow}, // urgency arrives normalized lowercase; anything else is unknown
		{"urgent", PriorityLow},
	}

	for _, tt := range tests {
		if got := PriorityFromUrgency(tt.urgency); got != tt.want {
			t.Errorf("PriorityFromUrgency(%q) = %q, want %q", tt.urgency, got, tt.want)
		}
	}
}

func TestNewRFQ(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 5, 0, time.UTC)
	sub := &Submission{
		ProductTypes:  []string{"green_beans"},
		Quantity:      500,
		QuantityUnit:  "kg",
		DeliveryTerms: "FOB",
		Country:       "Germany",
		CompanyName:   "Roast & Co GmbH",
		ContactPerson: "Jane Doe",
		Email:         "jane@roastco.example",
		Phone:         "+49 30 1234567",
		Urgency:       "high",
		Locale:        "de",
	}

	rfq := NewRFQ(sub, now)

	if rfq.ID == uuid.Nil {
		t.Error("expected a generated id")
	}
	if got := rfq.Number.String(); got != "RFQ-20240315-143005" {
		t.Errorf("Number = %q", got)
	}
	if rfq.Status != StatusSubmitted {
		t.Errorf("Status = %q, want %q", rfq.Status, StatusSubmitted)
	}
	if rfq.Priority != PriorityHigh {
		t.Errorf("Priority = %q, want %q", rfq.Priority, PriorityHigh)
	}
	if rfq.Delivery.Country != "Germany" || rfq.Company.Country != "Germany" {
		t.Error("country must populate both delivery and company info")
	}
	for name, ts := range map[string]time.Time{
		"SubmittedAt":    rfq.SubmittedAt,
		"LastActivityAt": rfq.LastActivityAt,
		"CreatedAt":      rfq.CreatedAt,
		"UpdatedAt":      rfq.UpdatedAt,
	} {
		if !ts.Equal(now) {
			t.Errorf("%s = %v, want %v", name, ts, now)
		}
	}
}
