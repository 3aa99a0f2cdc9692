package domain

import (
	"fmt"
	"strings"
)

// Filter names a predicate and ordering over the task collection.
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
	FilterArchived
	FilterDueToday
	FilterOverdue
)

var Filters = []Filter{FilterAll, FilterActive, FilterCompleted, FilterArchived, FilterDueToday, FilterOverdue}

func (f Filter) String() string {
	switch f {
	case FilterAll:
		return "ALL"
	case FilterActive:
		return "ACTIVE"
	case FilterCompleted:
		return "COMPLETED"
	case FilterArchived:
		return "ARCHIVED"
	case FilterDueToday:
		return "DUE_TODAY"
	case FilterOverdue:
		return "OVERDUE"
	default:
		return fmt.Sprintf("Filter(%d)", int(f))
	}
}

// ParseFilter accepts "due-today", "due_today" and "DUE_TODAY" alike.
func ParseFilter(s string) (Filter, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	if normalized == "" {
		return FilterAll, nil
	}
	for _, f := range Filters {
		if f.String() == normalized {
			return f, nil
		}
	}
	return FilterAll, fmt.Errorf("unknown filter %q", s)
}
