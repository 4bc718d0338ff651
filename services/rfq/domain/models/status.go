package models

import "fmt"

// Status is the canonical RFQ lifecycle state.
//
// submitted → under_review → quoted → accepted | rejected
// submitted and under_review may also move to expired when a buyer goes quiet.
// accepted, rejected, and expired are terminal.
type Status string

const (
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusQuoted      Status = "quoted"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
	StatusExpired     Status = "expired"
)

// AllStatuses lists the canonical enumeration in lifecycle order.
var AllStatuses = []Status{
	StatusSubmitted,
	StatusUnderReview,
	StatusQuoted,
	StatusAccepted,
	StatusRejected,
	StatusExpired,
}

// ParseStatus validates s against the canonical enumeration.
func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Terminal reports whether no further transitions leave this status.
func (s Status) Terminal() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// transition is a directed (from → to) status edge.
type transition struct {
	from, to Status
}

// significantTransitions is the allow-list of edges that fire an external
// status-change notification. Every other edge updates the record silently.
var significantTransitions = map[transition]struct{}{
	{StatusSubmitted, StatusUnderReview}: {},
	{StatusUnderReview, StatusQuoted}:    {},
	{StatusQuoted, StatusAccepted}:       {},
	{StatusQuoted, StatusRejected}:       {},
	{StatusSubmitted, StatusExpired}:     {},
	{StatusUnderReview, StatusExpired}:   {},
}

// IsSignificantTransition reports whether the (from → to) edge is on the
// notification allow-list.
func IsSignificantTransition(from, to Status) bool {
	_, ok := significantTransitions[transition{from, to}]
	return ok
}
