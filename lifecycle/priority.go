package lifecycle

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

const (
	mediumAfter = 15 * time.Minute
	highAfter   = 30 * time.Minute
)

// PriorityOf grades how long an order has been waiting. It is derived on
// read and never stored.
func PriorityOf(createdAt, now time.Time) Priority {
	elapsed := now.Sub(createdAt)
	switch {
	case elapsed > highAfter:
		return PriorityHigh
	case elapsed > mediumAfter:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
