package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/pkg/types"
)

// Booking represents a scheduled medic shift at a site
type Booking struct {
	ID           uuid.UUID
	SitePostcode string
	SiteAddress  string
	ShiftDate    time.Time // date only, wall-clock day of the shift start
	StartTime    types.TimeString
	EndTime      types.TimeString // EndTime <= StartTime means the shift ends the next day

	ConfinedSpaceRequired    bool
	TraumaSpecialistRequired bool

	Status  BookingStatus
	MedicID uuid.NullUUID

	// Auto-match metadata
	AutoMatched            bool
	MatchScore             *float64
	MatchCriteria          *MatchCriteria
	RequiresManualApproval bool
	ManualApprovalReason   *string

	Version   int64 // optimistic concurrency counter, bumped on every assignment write
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShiftWindow absolute start and end of a shift
type ShiftWindow struct {
	Start time.Time
	End   time.Time
}

// Hours returns the shift length in hours
func (w ShiftWindow) Hours() float64 {
	return w.End.Sub(w.Start).Hours()
}

// Overlaps reports whether two windows share any instant
func (w ShiftWindow) Overlaps(other ShiftWindow) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// Window resolves the wall-clock shift into absolute times in loc.
// Overnight shifts (end not after start) finish on the following day.
func (b *Booking) Window(loc *time.Location) ShiftWindow {
	start := b.StartTime.On(b.ShiftDate, loc)
	end := b.EndTime.On(b.ShiftDate, loc)
	if !end.After(start) {
		end = b.EndTime.On(b.ShiftDate.AddDate(0, 0, 1), loc)
	}
	return ShiftWindow{Start: start, End: end}
}

// IsOccupying returns true if the booking blocks its medic's day
func (b *Booking) IsOccupying() bool {
	return b.Status.Occupies()
}

// IsAssignable returns true if auto-assignment may pick a medic for the booking:
// no medic yet and the status allows moving to assigned.
func (b *Booking) IsAssignable() bool {
	return !b.MedicID.Valid && b.Status.CanTransitionTo(StatusAssigned)
}

// HasMedic reports whether the booking is assigned to the given medic
func (b *Booking) HasMedic(medicID uuid.UUID) bool {
	return b.MedicID.Valid && b.MedicID.UUID == medicID
}

// Validate checks the booking invariants
func (b *Booking) Validate() error {
	if !b.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, b.Status)
	}
	if b.Status.RequiresMedic() && !b.MedicID.Valid {
		return fmt.Errorf("%w: status %s", ErrMedicRequired, b.Status)
	}
	if err := b.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidShift, err)
	}
	if err := b.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidShift, err)
	}
	if b.StartTime == b.EndTime {
		return fmt.Errorf("%w: start equals end", ErrInvalidShift)
	}
	return nil
}

// TransitionTo moves the booking to a new status enforcing the transition table
func (b *Booking) TransitionTo(next BookingStatus) error {
	if err := ValidateTransition(b.Status, next); err != nil {
		return err
	}
	if next.RequiresMedic() && !b.MedicID.Valid {
		return fmt.Errorf("%w: status %s", ErrMedicRequired, next)
	}
	b.Status = next
	return nil
}

// RequiredCertifications lists certifications the booking demands
func (b *Booking) RequiredCertifications() []Certification {
	var certs []Certification
	if b.ConfinedSpaceRequired {
		certs = append(certs, CertConfinedSpace)
	}
	if b.TraumaSpecialistRequired {
		certs = append(certs, CertTraumaSpecialist)
	}
	return certs
}

// MatchCriteria snapshot of an auto-match run stored with the booking (JSONB)
type MatchCriteria struct {
	Threshold   float64             `json:"threshold"`
	Candidates  []CandidateSnapshot `json:"candidates"`
	EvaluatedAt time.Time           `json:"evaluated_at"`
}

// CandidateSnapshot persisted view of one ranked candidate
type CandidateSnapshot struct {
	MedicID           uuid.UUID      `json:"medic_id"`
	Score             float64        `json:"score"`
	Breakdown         ScoreBreakdown `json:"breakdown"`
	TravelTimeMinutes int            `json:"travel_time_minutes"`
	DistanceMiles     float64        `json:"distance_miles"`
	TravelFallback    bool           `json:"travel_fallback,omitempty"`
}

// Value implements driver.Valuer
func (m *MatchCriteria) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (m *MatchCriteria) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("match criteria: unsupported type %T", src)
	}
	return json.Unmarshal(data, m)
}

// BookingFilter filters bookings by medic, date range and status
type BookingFilter struct {
	MedicID   *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Statuses  []BookingStatus
	ExcludeID *uuid.UUID
}

// AutoMatchUpdate outcome of an auto-match run written back to the booking
type AutoMatchUpdate struct {
	BookingID              uuid.UUID
	ExpectedVersion        int64
	MedicID                uuid.NullUUID
	Status                 BookingStatus
	MatchScore             *float64
	Criteria               *MatchCriteria
	RequiresManualApproval bool
	ManualApprovalReason   *string
}

// AssignmentUpdate manual assignment of a medic to a booking
type AssignmentUpdate struct {
	BookingID       uuid.UUID
	ExpectedVersion int64
	MedicID         uuid.UUID
	Status          BookingStatus
}
