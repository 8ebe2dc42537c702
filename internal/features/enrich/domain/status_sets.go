package domain

import "strings"

// MatchMode selects how a status keyword set is tested against a carrier
// status string.
type MatchMode int

const (
	// MatchExact tests set membership of the whole normalized status.
	MatchExact MatchMode = iota
	// MatchContains tests whether any keyword is a substring of the status.
	MatchContains
)

// StatusSets holds a courier's closed keyword lists, one per outcome.
// Evaluation order is Delivered, InTransit, Returned, Lost; the first set
// that matches wins, anything else is Other.
type StatusSets struct {
	Mode      MatchMode
	Delivered []string
	InTransit []string
	Returned  []string
	Lost      []string
}

// NormalizeStatus prepares a raw carrier status for matching: trimmed,
// inner whitespace collapsed, upper-cased.
func NormalizeStatus(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), " "))
}

// Classify maps a normalized status onto a delivery outcome.
func (s StatusSets) Classify(statusUpper string) DeliveryStatus {
	ordered := []struct {
		keywords []string
		status   DeliveryStatus
	}{
		{s.Delivered, StatusDelivered},
		{s.InTransit, StatusInTransit},
		{s.Returned, StatusReturned},
		{s.Lost, StatusLost},
	}

	for _, set := range ordered {
		if s.matches(statusUpper, set.keywords) {
			return set.status
		}
	}
	return StatusOther
}

func (s StatusSets) matches(statusUpper string, keywords []string) bool {
	for _, keyword := range keywords {
		switch s.Mode {
		case MatchContains:
			if strings.Contains(statusUpper, keyword) {
				return true
			}
		default:
			if statusUpper == keyword {
				return true
			}
		}
	}
	return false
}
