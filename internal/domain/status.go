package domain

import "fmt"

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusAssigned   BookingStatus = "assigned" // medic reserved by auto-match, awaiting confirmation
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusAssigned, StatusConfirmed, StatusCancelled},
	StatusAssigned:   {StatusPending, StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ParseBookingStatus converts a raw value into a known status
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// IsValid reports whether the status is one of the known values
func (s BookingStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s BookingStatus) IsTerminal() bool {
	next, ok := allowedTransitions[s]
	return ok && len(next) == 0
}

// RequiresMedic returns true if a booking in this status must have a medic
func (s BookingStatus) RequiresMedic() bool {
	return s == StatusAssigned || s == StatusConfirmed || s == StatusInProgress
}

// Occupies returns true if the status blocks the medic's day for other bookings
func (s BookingStatus) Occupies() bool {
	return s == StatusConfirmed || s == StatusInProgress
}

// CanTransitionTo reports whether moving from s to next is allowed
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateTransition returns ErrInvalidTransition if from -> to is not allowed
func ValidateTransition(from, to BookingStatus) error {
	if !from.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, from)
	}
	if !to.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// OccupyingStatuses statuses counted for same-day exclusivity and utilization
var OccupyingStatuses = []BookingStatus{
	StatusConfirmed,
	StatusInProgress,
}

// ReservedStatuses statuses re-checked under the assignment lock.
// An assigned booking is not yet occupying, but a second assignment on
// the same day would still collide with it.
var ReservedStatuses = []BookingStatus{
	StatusAssigned,
	StatusConfirmed,
	StatusInProgress,
}

// WorkedStatuses statuses counted towards weekly working hours
var WorkedStatuses = []BookingStatus{
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}

// RestStatuses statuses considered when looking for the previous shift
var RestStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
}

// StatusIn reports whether s is one of statuses
func StatusIn(s BookingStatus, statuses []BookingStatus) bool {
	for _, candidate := range statuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// StatusStrings converts statuses for SQL filters
func StatusStrings(statuses []BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
