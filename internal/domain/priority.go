package domain

import "strings"

// Priority orders tasks; higher values sort first in priority-descending views.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
	PriorityUrgent Priority = 4
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityHigh:
		return "HIGH"
	case PriorityUrgent:
		return "URGENT"
	default:
		return "UNKNOWN"
	}
}

// IsValid reports whether p is one of the defined priorities.
func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityUrgent
}

// ParsePriority resolves a priority by name or display name, ignoring case.
func ParsePriority(s string) (Priority, bool) {
	s = strings.TrimSpace(s)
	for _, p := range Priorities {
		if strings.EqualFold(s, p.String()) || strings.EqualFold(s, PriorityDisplay(p).DisplayName) {
			return p, true
		}
	}
	return PriorityMedium, false
}

// PriorityFromName behaves like ParsePriority but falls back to MEDIUM.
func PriorityFromName(s string) Priority {
	p, _ := ParsePriority(s)
	return p
}
