package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBookingStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		allowed  bool
	}{
		{StatusPending, StatusAssigned, true},
		{StatusPending, StatusConfirmed, true},
		{StatusAssigned, StatusPending, true},
		{StatusAssigned, StatusConfirmed, true},
		{StatusConfirmed, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusInProgress, StatusCancelled, false},
		{StatusPending, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, s)

	_, err = ParseBookingStatus("cancelled_by_user")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	assert.True(t, StatusCompleted.IsTerminal())
	assert.False(t, StatusAssigned.IsTerminal())
}

func TestBooking_TransitionRequiresMedic(t *testing.T) {
	b := &Booking{Status: StatusPending, StartTime: "08:00", EndTime: "16:00"}

	err := b.TransitionTo(StatusConfirmed)
	assert.ErrorIs(t, err, ErrMedicRequired)
	assert.Equal(t, StatusPending, b.Status)

	b.MedicID = uuid.NullUUID{UUID: uuid.New(), Valid: true}
	require.NoError(t, b.TransitionTo(StatusConfirmed))
	assert.Equal(t, StatusConfirmed, b.Status)
	assert.NoError(t, b.Validate())
}

func TestBooking_ValidateRejectsConfirmedWithoutMedic(t *testing.T) {
	b := &Booking{Status: StatusInProgress, StartTime: "08:00", EndTime: "16:00"}
	assert.ErrorIs(t, b.Validate(), ErrMedicRequired)
}

func TestBooking_IsAssignable(t *testing.T) {
	medic := uuid.NullUUID{UUID: uuid.New(), Valid: true}

	assert.True(t, (&Booking{Status: StatusPending}).IsAssignable())
	assert.False(t, (&Booking{Status: StatusPending, MedicID: medic}).IsAssignable())
	assert.False(t, (&Booking{Status: StatusAssigned}).IsAssignable())
	assert.False(t, (&Booking{Status: StatusConfirmed}).IsAssignable())
	assert.False(t, (&Booking{Status: BookingStatus("archived")}).IsAssignable())
}

func TestBooking_WindowOvernight(t *testing.T) {
	b := &Booking{ShiftDate: date(2026, 3, 10), StartTime: "22:00", EndTime: "06:00"}

	w := b.Window(time.UTC)

	assert.Equal(t, time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 3, 11, 6, 0, 0, 0, time.UTC), w.End)
	assert.Equal(t, 8.0, w.Hours())
}

func TestShiftWindow_Overlaps(t *testing.T) {
	base := date(2026, 3, 10)
	a := ShiftWindow{Start: base.Add(8 * time.Hour), End: base.Add(12 * time.Hour)}
	b := ShiftWindow{Start: base.Add(12 * time.Hour), End: base.Add(16 * time.Hour)}
	c := ShiftWindow{Start: base.Add(11 * time.Hour), End: base.Add(13 * time.Hour)}

	assert.False(t, a.Overlaps(b))
	assert.True(t, a.Overlaps(c))
	assert.True(t, c.Overlaps(b))
}

func TestMedic_MissingCertifications(t *testing.T) {
	m := &Medic{HasTraumaCert: true}

	both := &Booking{ConfinedSpaceRequired: true, TraumaSpecialistRequired: true}
	traumaOnly := &Booking{TraumaSpecialistRequired: true}

	assert.Equal(t, []Certification{CertConfinedSpace, CertTraumaSpecialist}, both.RequiredCertifications())
	assert.Equal(t, []Certification{CertConfinedSpace}, m.MissingCertifications(both))
	assert.Empty(t, m.MissingCertifications(traumaOnly))
	assert.Empty(t, m.MissingCertifications(&Booking{}))
}

func TestMedic_IsUnavailableOn(t *testing.T) {
	until := date(2026, 5, 4)
	m := &Medic{UnavailableUntil: &until}

	assert.True(t, m.IsUnavailableOn(date(2026, 5, 4)))
	assert.True(t, m.IsUnavailableOn(date(2026, 5, 1)))
	assert.False(t, m.IsUnavailableOn(date(2026, 5, 5)))
	assert.False(t, (&Medic{}).IsUnavailableOn(date(2026, 5, 5)))
}

func TestPostcodeSectorKey(t *testing.T) {
	assert.Equal(t, "SW1A", PostcodeSectorKey("sw1a 1aa"))
	assert.Equal(t, "E1 6", PostcodeSectorKey(" e1 6an"))
	assert.Equal(t, "N1", PostcodeSectorKey("n1"))
}

func TestTerritory_RoleOf(t *testing.T) {
	primary, secondary := uuid.New(), uuid.New()
	tr := &Territory{
		PrimaryMedicID:   uuid.NullUUID{UUID: primary, Valid: true},
		SecondaryMedicID: uuid.NullUUID{UUID: secondary, Valid: true},
	}

	assert.Equal(t, TerritoryRolePrimary, tr.RoleOf(primary))
	assert.Equal(t, TerritoryRoleSecondary, tr.RoleOf(secondary))
	assert.Equal(t, TerritoryRoleNone, tr.RoleOf(uuid.New()))

	var missing *Territory
	assert.Equal(t, TerritoryRoleNone, missing.RoleOf(primary))
}

func TestTimeOff_Covers(t *testing.T) {
	plain := &TimeOff{Status: TimeOffApproved, StartDate: date(2026, 8, 3), EndDate: date(2026, 8, 7)}
	covered, err := plain.Covers(date(2026, 8, 5))
	require.NoError(t, err)
	assert.True(t, covered)

	covered, err = plain.Covers(date(2026, 8, 8))
	require.NoError(t, err)
	assert.False(t, covered)

	pending := *plain
	pending.Status = TimeOffPending
	covered, err = pending.Covers(date(2026, 8, 5))
	require.NoError(t, err)
	assert.False(t, covered)
}

func TestTimeOff_CoversRecurring(t *testing.T) {
	// Sundays off for the whole of August 2026
	sundays := &TimeOff{
		Status:    TimeOffApproved,
		StartDate: date(2026, 8, 1),
		EndDate:   date(2026, 8, 31),
		RRule:     "FREQ=WEEKLY;BYDAY=SU",
	}

	covered, err := sundays.Covers(date(2026, 8, 9))
	require.NoError(t, err)
	assert.True(t, covered, "9 Aug 2026 is a Sunday")

	covered, err = sundays.Covers(date(2026, 8, 10))
	require.NoError(t, err)
	assert.False(t, covered)

	broken := *sundays
	broken.RRule = "FREQ=SOMETIMES"
	_, err = broken.Covers(date(2026, 8, 9))
	assert.ErrorIs(t, err, ErrInvalidRRule)
}

func TestNewConflictReport(t *testing.T) {
	empty := NewConflictReport(nil)
	assert.True(t, empty.CanAssign)
	assert.Equal(t, "Safe to assign", empty.Recommendation)
	assert.NotNil(t, empty.Conflicts)

	warn := NewConflictReport([]Conflict{
		NewConflict(ConflictTravelTimeInfeasible, "late", nil),
		NewConflict(ConflictGoogleCalendar, "busy", nil),
	})
	assert.True(t, warn.CanAssign)
	assert.Equal(t, 2, warn.Warnings)
	assert.Equal(t, "Can assign with 2 warning(s)", warn.Recommendation)
	assert.True(t, warn.HasOnlyOverridable())

	blocked := NewConflictReport([]Conflict{
		NewConflict(ConflictDoubleBooking, "busy", nil),
		NewConflict(ConflictGoogleCalendar, "busy", nil),
	})
	assert.False(t, blocked.CanAssign)
	assert.Equal(t, 1, blocked.CriticalConflicts)
	assert.Equal(t, 2, blocked.TotalConflicts)
	assert.Equal(t, "Cannot assign - 1 critical conflict(s)", blocked.Recommendation)
}

func TestConflictType_Overridable(t *testing.T) {
	hard := []ConflictType{
		ConflictDoubleBooking, ConflictQualificationMismatch, ConflictOvertimeViolation,
		ConflictInsufficientRest, ConflictTimeOff,
	}
	for _, ct := range hard {
		c := NewConflict(ct, "", nil)
		assert.False(t, c.CanOverride, ct)
		assert.Equal(t, SeverityCritical, c.Severity, ct)
	}

	for _, ct := range []ConflictType{ConflictTravelTimeInfeasible, ConflictGoogleCalendar} {
		c := NewConflict(ct, "", nil)
		assert.True(t, c.CanOverride, ct)
		assert.Equal(t, SeverityWarning, c.Severity, ct)
	}
}

func TestWeekBounds(t *testing.T) {
	monday, sunday := WeekBounds(date(2026, 10, 18)) // Sunday
	assert.Equal(t, date(2026, 10, 12), monday)
	assert.Equal(t, date(2026, 10, 18), sunday)

	monday, _ = WeekBounds(date(2026, 10, 12))
	assert.Equal(t, date(2026, 10, 12), monday)

	assert.True(t, InWeek(date(2026, 10, 18), date(2026, 10, 12)))
	assert.False(t, InWeek(date(2026, 10, 19), date(2026, 10, 12)))
}

func TestMatchCriteria_ScanValue(t *testing.T) {
	medicID := uuid.New()
	in := &MatchCriteria{
		Threshold: 50,
		Candidates: []CandidateSnapshot{
			{MedicID: medicID, Score: 93, Breakdown: ScoreBreakdown{Distance: 30, Total: 93}},
		},
	}

	raw, err := in.Value()
	require.NoError(t, err)

	var out MatchCriteria
	require.NoError(t, out.Scan(raw))
	assert.Equal(t, medicID, out.Candidates[0].MedicID)
	assert.Equal(t, 93.0, out.Candidates[0].Score)
}
