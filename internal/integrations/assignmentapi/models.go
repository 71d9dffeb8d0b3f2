package assignmentapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/pkg/types"
)

// Week расписание недели в доменных типах
type Week struct {
	Monday   time.Time
	Medics   []*domain.Medic
	Bookings []*domain.Booking
}

// ConflictCheck параметры проверки конфликтов
type ConflictCheck struct {
	BookingID                uuid.UUID `json:"booking_id"`
	MedicID                  uuid.UUID `json:"medic_id"`
	ShiftDate                string    `json:"shift_date"`
	ShiftStartTime           string    `json:"shift_start_time"`
	ShiftEndTime             string    `json:"shift_end_time"`
	ConfinedSpaceRequired    *bool     `json:"confined_space_required,omitempty"`
	TraumaSpecialistRequired *bool     `json:"trauma_specialist_required,omitempty"`
}

// NewConflictCheck проверка назначения медика на смену бронирования
func NewConflictCheck(b *domain.Booking, medicID uuid.UUID) ConflictCheck {
	return ConflictCheck{
		BookingID:      b.ID,
		MedicID:        medicID,
		ShiftDate:      b.ShiftDate.Format(domain.DateFormat),
		ShiftStartTime: b.StartTime.String(),
		ShiftEndTime:   b.EndTime.String(),
	}
}

// Assignment результат ручного назначения
type Assignment struct {
	BookingID uuid.UUID
	MedicID   uuid.UUID
	Status    domain.BookingStatus
	Version   int64
	Report    *domain.ConflictReport
}

// AutoAssignResult итог автоназначения
type AutoAssignResult struct {
	BookingID              string              `json:"booking_id" yaml:"booking_id"`
	AssignedMedicID        *string             `json:"assigned_medic_id" yaml:"assigned_medic_id"`
	MatchScore             *float64            `json:"match_score" yaml:"match_score"`
	Candidates             []CandidateResponse `json:"candidates" yaml:"candidates"`
	RequiresManualApproval bool                `json:"requires_manual_approval" yaml:"requires_manual_approval"`
	Reason                 *string             `json:"reason" yaml:"reason"`
	Status                 string              `json:"status" yaml:"status"`
}

// CandidateResponse кандидат из ответа автоназначения
type CandidateResponse struct {
	MedicID           string                `json:"medic_id" yaml:"medic_id"`
	MedicName         string                `json:"medic_name" yaml:"medic_name"`
	Score             float64               `json:"score" yaml:"score"`
	Breakdown         domain.ScoreBreakdown `json:"breakdown" yaml:"breakdown"`
	TravelTimeMinutes int                   `json:"travel_time_minutes" yaml:"travel_time_minutes"`
	DistanceMiles     float64               `json:"distance_miles" yaml:"distance_miles"`
}

// ErrorResponse модель ошибки от сервиса
type ErrorResponse struct {
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details,omitempty"`
}

type assignRequest struct {
	MedicID          uuid.UUID `json:"medic_id"`
	OverrideWarnings bool      `json:"override_warnings"`
	Version          *int64    `json:"version,omitempty"`
}

type assignResponse struct {
	BookingID uuid.UUID       `json:"booking_id"`
	MedicID   uuid.UUID       `json:"medic_id"`
	Status    string          `json:"status"`
	Version   int64           `json:"version"`
	Conflicts *conflictReport `json:"conflicts"`
}

type conflictReport struct {
	CanAssign         bool       `json:"can_assign"`
	TotalConflicts    int        `json:"total_conflicts"`
	CriticalConflicts int        `json:"critical_conflicts"`
	Warnings          int        `json:"warnings"`
	Conflicts         []conflict `json:"conflicts"`
	Recommendation    string     `json:"recommendation"`
}

type conflict struct {
	Type        string                 `json:"type"`
	Severity    string                 `json:"severity"`
	Message     string                 `json:"message"`
	Details     map[string]interface{} `json:"details,omitempty"`
	CanOverride bool                   `json:"can_override"`
}

func (r *conflictReport) toDomain() *domain.ConflictReport {
	if r == nil {
		return nil
	}
	report := &domain.ConflictReport{
		Conflicts:         make([]domain.Conflict, 0, len(r.Conflicts)),
		TotalConflicts:    r.TotalConflicts,
		CriticalConflicts: r.CriticalConflicts,
		Warnings:          r.Warnings,
		CanAssign:         r.CanAssign,
		Recommendation:    r.Recommendation,
	}
	for _, c := range r.Conflicts {
		report.Conflicts = append(report.Conflicts, domain.Conflict{
			Type:        domain.ConflictType(c.Type),
			Severity:    domain.Severity(c.Severity),
			Message:     c.Message,
			Details:     c.Details,
			CanOverride: c.CanOverride,
		})
	}
	return report
}

type weekResponse struct {
	WeekStart string    `json:"week_start"`
	Medics    []medic   `json:"medics"`
	Bookings  []booking `json:"bookings"`
}

type medic struct {
	ID                   uuid.UUID `json:"id"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	HomePostcode         string    `json:"home_postcode"`
	HasConfinedSpaceCert bool      `json:"has_confined_space_cert"`
	HasTraumaCert        bool      `json:"has_trauma_cert"`
	StarRating           float64   `json:"star_rating"`
	AvailableForWork     bool      `json:"available_for_work"`
	UnavailableUntil     *string   `json:"unavailable_until"`
}

type booking struct {
	ID                       uuid.UUID  `json:"id"`
	SitePostcode             string     `json:"site_postcode"`
	SiteAddress              string     `json:"site_address"`
	ShiftDate                string     `json:"shift_date"`
	ShiftStartTime           string     `json:"shift_start_time"`
	ShiftEndTime             string     `json:"shift_end_time"`
	ConfinedSpaceRequired    bool       `json:"confined_space_required"`
	TraumaSpecialistRequired bool       `json:"trauma_specialist_required"`
	Status                   string     `json:"status"`
	MedicID                  *uuid.UUID `json:"medic_id"`
	AutoMatched              bool       `json:"auto_matched"`
	MatchScore               *float64   `json:"match_score"`
	RequiresManualApproval   bool       `json:"requires_manual_approval"`
	ManualApprovalReason     *string    `json:"manual_approval_reason"`
	Version                  int64      `json:"version"`
}

func (w *weekResponse) toDomain() (*Week, error) {
	monday, err := time.Parse(domain.DateFormat, w.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("week_start: %w", err)
	}

	week := &Week{
		Monday:   monday,
		Medics:   make([]*domain.Medic, 0, len(w.Medics)),
		Bookings: make([]*domain.Booking, 0, len(w.Bookings)),
	}

	for _, m := range w.Medics {
		dm := &domain.Medic{
			ID:                   m.ID,
			FirstName:            m.FirstName,
			LastName:             m.LastName,
			HomePostcode:         m.HomePostcode,
			HasConfinedSpaceCert: m.HasConfinedSpaceCert,
			HasTraumaCert:        m.HasTraumaCert,
			StarRating:           m.StarRating,
			AvailableForWork:     m.AvailableForWork,
		}
		if m.UnavailableUntil != nil {
			until, err := time.Parse(domain.DateFormat, *m.UnavailableUntil)
			if err != nil {
				return nil, fmt.Errorf("medic %s unavailable_until: %w", m.ID, err)
			}
			dm.UnavailableUntil = &until
		}
		week.Medics = append(week.Medics, dm)
	}

	for _, b := range w.Bookings {
		db, err := b.toDomain()
		if err != nil {
			return nil, fmt.Errorf("booking %s: %w", b.ID, err)
		}
		week.Bookings = append(week.Bookings, db)
	}

	return week, nil
}

func (b *booking) toDomain() (*domain.Booking, error) {
	shiftDate, err := time.Parse(domain.DateFormat, b.ShiftDate)
	if err != nil {
		return nil, fmt.Errorf("shift_date: %w", err)
	}
	start, err := types.NewTimeStringFromString(b.ShiftStartTime)
	if err != nil {
		return nil, fmt.Errorf("shift_start_time: %w", err)
	}
	end, err := types.NewTimeStringFromString(b.ShiftEndTime)
	if err != nil {
		return nil, fmt.Errorf("shift_end_time: %w", err)
	}
	status, err := domain.ParseBookingStatus(b.Status)
	if err != nil {
		return nil, err
	}

	db := &domain.Booking{
		ID:                       b.ID,
		SitePostcode:             b.SitePostcode,
		SiteAddress:              b.SiteAddress,
		ShiftDate:                shiftDate,
		StartTime:                start,
		EndTime:                  end,
		ConfinedSpaceRequired:    b.ConfinedSpaceRequired,
		TraumaSpecialistRequired: b.TraumaSpecialistRequired,
		Status:                   status,
		AutoMatched:              b.AutoMatched,
		MatchScore:               b.MatchScore,
		RequiresManualApproval:   b.RequiresManualApproval,
		ManualApprovalReason:     b.ManualApprovalReason,
		Version:                  b.Version,
	}
	if b.MedicID != nil {
		db.MedicID = uuid.NullUUID{UUID: *b.MedicID, Valid: true}
	}
	return db, nil
}
