package models

// Priority is the handling priority assigned to an RFQ at creation.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// PriorityFromUrgency maps the buyer-supplied urgency signal to a Priority.
// Unknown or absent urgency defaults to LOW.
func PriorityFromUrgency(urgency string) Priority {
	switch urgency {
	case "high":
		return PriorityHigh
	case "medium":
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Valid reports whether p belongs to the priority enumeration.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
