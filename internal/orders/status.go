package orders

import (
	"time"

	"studyseat/internal/timeslot"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the order status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status admits no further automatic transition.
// The reconciler never re-examines terminal orders.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanBeCancelled checks if an order with this status can be user-cancelled
func (s Status) CanBeCancelled() bool {
	return s == StatusActive
}

// StatusForTime is the canonical time-driven transition function. Both the
// initial assignment at booking and the reconciliation sweep go through here,
// so the rules cannot drift between call sites.
//
//	now > end                      -> completed
//	now >= start - admission lead  -> active
//	otherwise                      -> pending
func StatusForTime(now, start, end time.Time) Status {
	switch {
	case now.After(end):
		return StatusCompleted
	case !now.Before(timeslot.AdmissionInstant(start)):
		return StatusActive
	default:
		return StatusPending
	}
}
