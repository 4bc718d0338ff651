package models

import "time"

// RFQNumber is the human-readable identifier quoted in buyer correspondence.
// Format: RFQ-YYYYMMDD-HHMMSS, derived from the submission instant in UTC.
// Second granularity means concurrent submissions can collide; the store
// enforces uniqueness and the service retries with a bumped timestamp.
type RFQNumber string

const rfqNumberLayout = "RFQ-20060102-150405"

// NewRFQNumber derives the number from the given submission instant.
func NewRFQNumber(t time.Time) RFQNumber {
	return RFQNumber(t.UTC().Format(rfqNumberLayout))
}

// String returns the underlying string value.
func (n RFQNumber) String() string {
	return string(n)
}
