package domain

import (
	"fmt"
	"strings"
)

// Priority is a closed, totally-ordered enum. The zero value is PriorityNone.
type Priority uint8

const (
	PriorityNone Priority = iota
	PriorityUrgent
	PriorityHigh
	PriorityMedium
	PriorityLow
)

func (p Priority) String() string {
	switch p {
	case PriorityNone:
		return "none"
	case PriorityUrgent:
		return "urgent"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return fmt.Sprintf("priority(%d)", uint8(p))
	}
}

// ParsePriority accepts the case-insensitive name or the numeric value
// (0..=4).
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "0":
		return PriorityNone, nil
	case "urgent", "1":
		return PriorityUrgent, nil
	case "high", "2":
		return PriorityHigh, nil
	case "medium", "3":
		return PriorityMedium, nil
	case "low", "4":
		return PriorityLow, nil
	default:
		return 0, fmt.Errorf("%w: invalid priority %q (want one of none, urgent, high, medium, low, or 0-4)", ErrValidation, s)
	}
}
