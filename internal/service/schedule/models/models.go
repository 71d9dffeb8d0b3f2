package models

import (
	"time"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

// WeekResponse расписание одной ISO недели: пул медиков и все смены недели
type WeekResponse struct {
	WeekStart string             `json:"week_start"` // понедельник, YYYY-MM-DD
	WeekEnd   string             `json:"week_end"`   // воскресенье
	Medics    []*MedicResponse   `json:"medics"`
	Bookings  []*BookingResponse `json:"bookings"`
}

// MedicResponse медик без OAuth токенов календаря
type MedicResponse struct {
	ID                   string  `json:"id"`
	FirstName            string  `json:"first_name"`
	LastName             string  `json:"last_name"`
	HomePostcode         string  `json:"home_postcode"`
	HasConfinedSpaceCert bool    `json:"has_confined_space_cert"`
	HasTraumaCert        bool    `json:"has_trauma_cert"`
	StarRating           float64 `json:"star_rating"`
	AvailableForWork     bool    `json:"available_for_work"`
	UnavailableUntil     *string `json:"unavailable_until,omitempty"`
	CalendarConnected    bool    `json:"calendar_connected"`
}

// BookingResponse смена в расписании
type BookingResponse struct {
	ID                       string   `json:"id"`
	SitePostcode             string   `json:"site_postcode"`
	SiteAddress              string   `json:"site_address"`
	ShiftDate                string   `json:"shift_date"`
	ShiftStartTime           string   `json:"shift_start_time"`
	ShiftEndTime             string   `json:"shift_end_time"`
	ConfinedSpaceRequired    bool     `json:"confined_space_required"`
	TraumaSpecialistRequired bool     `json:"trauma_specialist_required"`
	Status                   string   `json:"status"`
	MedicID                  *string  `json:"medic_id"`
	AutoMatched              bool     `json:"auto_matched"`
	MatchScore               *float64 `json:"match_score,omitempty"`
	RequiresManualApproval   bool     `json:"requires_manual_approval"`
	ManualApprovalReason     *string  `json:"manual_approval_reason,omitempty"`
	Version                  int64    `json:"version"`
}

// FromDomainMedic конвертирует доменную модель медика
func FromDomainMedic(m *domain.Medic) *MedicResponse {
	resp := &MedicResponse{
		ID:                   m.ID.String(),
		FirstName:            m.FirstName,
		LastName:             m.LastName,
		HomePostcode:         m.HomePostcode,
		HasConfinedSpaceCert: m.HasConfinedSpaceCert,
		HasTraumaCert:        m.HasTraumaCert,
		StarRating:           m.StarRating,
		AvailableForWork:     m.AvailableForWork,
		CalendarConnected:    m.Calendar.Connected(),
	}
	if m.UnavailableUntil != nil {
		until := m.UnavailableUntil.Format(domain.DateFormat)
		resp.UnavailableUntil = &until
	}
	return resp
}

// FromDomainBooking конвертирует доменную модель бронирования
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:                       b.ID.String(),
		SitePostcode:             b.SitePostcode,
		SiteAddress:              b.SiteAddress,
		ShiftDate:                b.ShiftDate.Format(domain.DateFormat),
		ShiftStartTime:           b.StartTime.String(),
		ShiftEndTime:             b.EndTime.String(),
		ConfinedSpaceRequired:    b.ConfinedSpaceRequired,
		TraumaSpecialistRequired: b.TraumaSpecialistRequired,
		Status:                   string(b.Status),
		AutoMatched:              b.AutoMatched,
		MatchScore:               b.MatchScore,
		RequiresManualApproval:   b.RequiresManualApproval,
		ManualApprovalReason:     b.ManualApprovalReason,
		Version:                  b.Version,
	}
	if b.MedicID.Valid {
		id := b.MedicID.UUID.String()
		resp.MedicID = &id
	}
	return resp
}

// NewWeekResponse собирает ответ для недели, начинающейся с monday
func NewWeekResponse(monday time.Time, medics []*domain.Medic, bookings []*domain.Booking) *WeekResponse {
	resp := &WeekResponse{
		WeekStart: monday.Format(domain.DateFormat),
		WeekEnd:   monday.AddDate(0, 0, 6).Format(domain.DateFormat),
		Medics:    make([]*MedicResponse, 0, len(medics)),
		Bookings:  make([]*BookingResponse, 0, len(bookings)),
	}
	for _, m := range medics {
		resp.Medics = append(resp.Medics, FromDomainMedic(m))
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, FromDomainBooking(b))
	}
	return resp
}
