package compliance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/pkg/types"
)

func shift(day int, start, end string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:        uuid.New(),
		ShiftDate: time.Date(2026, 6, day, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    status,
	}
}

// June 2026: Monday 8th .. Sunday 14th
func TestCheckOvertime_UnderCap(t *testing.T) {
	history := []*domain.Booking{
		shift(8, "08:00", "18:00", domain.StatusConfirmed),
		shift(9, "08:00", "18:00", domain.StatusCompleted),
		shift(10, "08:00", "18:00", domain.StatusInProgress),
	}
	proposed := shift(11, "08:00", "16:00", domain.StatusPending)

	res := CheckOvertime(history, proposed, DefaultRules())

	assert.True(t, res.Compliant)
	assert.Equal(t, 38.0, res.WeeklyHours)
	assert.Equal(t, time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC), res.WeekStart)
}

func TestCheckOvertime_ExceedsCap(t *testing.T) {
	history := []*domain.Booking{
		shift(8, "07:00", "19:00", domain.StatusConfirmed),
		shift(9, "07:00", "19:00", domain.StatusConfirmed),
		shift(10, "07:00", "19:00", domain.StatusConfirmed),
		shift(11, "07:00", "19:00", domain.StatusConfirmed),
	}
	proposed := shift(12, "08:00", "10:00", domain.StatusPending)

	res := CheckOvertime(history, proposed, DefaultRules())

	assert.False(t, res.Compliant)
	assert.Equal(t, ViolationWeeklyHoursExceeded, res.Violation)
	assert.Equal(t, 50.0, res.WeeklyHours)
}

func TestCheckOvertime_IgnoresOtherWeeksAndInactiveStatuses(t *testing.T) {
	history := []*domain.Booking{
		shift(7, "00:00", "23:00", domain.StatusConfirmed),  // previous week (Sunday)
		shift(15, "00:00", "23:00", domain.StatusConfirmed), // next week
		shift(9, "00:00", "23:00", domain.StatusCancelled),
		shift(10, "00:00", "23:00", domain.StatusPending),
	}
	proposed := shift(11, "08:00", "16:00", domain.StatusPending)

	res := CheckOvertime(history, proposed, DefaultRules())

	assert.True(t, res.Compliant)
	assert.Equal(t, 8.0, res.WeeklyHours)
}

func TestCheckOvertime_DoesNotCountProposedTwice(t *testing.T) {
	proposed := shift(11, "08:00", "16:00", domain.StatusConfirmed)

	res := CheckOvertime([]*domain.Booking{proposed}, proposed, DefaultRules())

	assert.Equal(t, 8.0, res.WeeklyHours)
}

func TestCheckRest(t *testing.T) {
	previous := shift(10, "08:00", "20:00", domain.StatusConfirmed) // ends 10 Jun 20:00

	tests := []struct {
		name      string
		proposed  *domain.Booking
		compliant bool
		restHours float64
	}{
		{
			name:      "ten hours after previous shift",
			proposed:  shift(11, "06:00", "14:00", domain.StatusPending),
			compliant: false,
			restHours: 10,
		},
		{
			name:      "twelve hours after previous shift",
			proposed:  shift(11, "08:00", "16:00", domain.StatusPending),
			compliant: true,
			restHours: 12,
		},
		{
			name:      "exactly eleven hours",
			proposed:  shift(11, "07:00", "15:00", domain.StatusPending),
			compliant: true,
			restHours: 11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CheckRest([]*domain.Booking{previous}, tt.proposed, DefaultRules())

			assert.Equal(t, tt.compliant, res.Compliant)
			assert.InDelta(t, tt.restHours, res.RestHours, 0.0001)
			assert.Equal(t, previous.ID, res.PreviousShiftID)
			if !tt.compliant {
				assert.Equal(t, ViolationInsufficientRest, res.Violation)
			}
		})
	}
}

func TestCheckRest_NoPriorShiftPasses(t *testing.T) {
	later := shift(12, "08:00", "16:00", domain.StatusConfirmed)
	proposed := shift(11, "06:00", "14:00", domain.StatusPending)

	res := CheckRest([]*domain.Booking{later}, proposed, DefaultRules())

	assert.True(t, res.Compliant)
	assert.Equal(t, uuid.Nil, res.PreviousShiftID)
}

func TestCheckRest_PicksMostRecentAndSkipsInProgress(t *testing.T) {
	older := shift(9, "08:00", "16:00", domain.StatusCompleted)
	recent := shift(10, "22:00", "02:00", domain.StatusConfirmed) // overnight, ends 11 Jun 02:00
	inProgress := shift(10, "23:00", "05:00", domain.StatusInProgress)
	proposed := shift(11, "10:00", "18:00", domain.StatusPending)

	res := CheckRest([]*domain.Booking{older, recent, inProgress}, proposed, DefaultRules())

	assert.False(t, res.Compliant)
	assert.Equal(t, recent.ID, res.PreviousShiftID)
	assert.InDelta(t, 8.0, res.RestHours, 0.0001)
}
