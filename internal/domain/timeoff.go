package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
)

// TimeOffStatus approval state of a time-off request
type TimeOffStatus string

const (
	TimeOffPending  TimeOffStatus = "pending"
	TimeOffApproved TimeOffStatus = "approved"
	TimeOffRejected TimeOffStatus = "rejected"
)

// TimeOff a period (optionally recurring) when a medic cannot work
type TimeOff struct {
	ID        uuid.UUID
	MedicID   uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Status    TimeOffStatus
	RRule     string // RFC 5545 rule, e.g. FREQ=WEEKLY;BYDAY=SU
	Reason    string
}

// Covers reports whether approved time-off applies to the given date.
// Without a recurrence rule every day in [StartDate, EndDate] is covered;
// with one, only the rule's occurrences inside that range are.
func (t *TimeOff) Covers(date time.Time) (bool, error) {
	if t.Status != TimeOffApproved {
		return false, nil
	}

	day := DateOnly(date)
	start := DateOnly(t.StartDate)
	end := DateOnly(t.EndDate)
	if day.Before(start) || day.After(end) {
		return false, nil
	}

	if t.RRule == "" {
		return true, nil
	}

	rule, err := rrule.StrToRRule(t.RRule)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidRRule, err)
	}
	rule.DTStart(start)

	occurrences := rule.Between(day, day.AddDate(0, 0, 1).Add(-time.Nanosecond), true)
	for _, occurrence := range occurrences {
		if SameDate(occurrence, day) {
			return true, nil
		}
	}
	return false, nil
}
