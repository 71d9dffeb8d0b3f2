package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Certification a medic qualification a booking may require
type Certification string

const (
	CertConfinedSpace    Certification = "confined_space"
	CertTraumaSpecialist Certification = "trauma_specialist"
)

// Medic represents a certified on-site paramedic
type Medic struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	HomePostcode string

	HasConfinedSpaceCert bool
	HasTraumaCert        bool

	StarRating       float64 // 0 means unrated
	AvailableForWork bool
	UnavailableUntil *time.Time

	Calendar *CalendarConnection
}

// CalendarConnection external calendar OAuth credentials of a medic
type CalendarConnection struct {
	CalendarID    string
	AccessToken   string
	RefreshToken  string
	TokenExpiry   time.Time
	AccessGranted bool
}

// Connected returns true if the medic linked a calendar and allowed free/busy reads
func (c *CalendarConnection) Connected() bool {
	return c != nil && c.AccessGranted && c.RefreshToken != ""
}

// NeedsRefresh reports whether the access token expires within window of now
func (c *CalendarConnection) NeedsRefresh(now time.Time, window time.Duration) bool {
	return c.AccessToken == "" || !c.TokenExpiry.After(now.Add(window))
}

// FullName returns "First Last"
func (m *Medic) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// IsRated returns true if the medic has a star rating
func (m *Medic) IsRated() bool {
	return m.StarRating > 0
}

// Holds reports whether the medic holds the certification
func (m *Medic) Holds(cert Certification) bool {
	switch cert {
	case CertConfinedSpace:
		return m.HasConfinedSpaceCert
	case CertTraumaSpecialist:
		return m.HasTraumaCert
	default:
		return false
	}
}

// MissingCertifications lists the booking's required certifications the medic lacks
func (m *Medic) MissingCertifications(b *Booking) []Certification {
	var missing []Certification
	for _, cert := range b.RequiredCertifications() {
		if !m.Holds(cert) {
			missing = append(missing, cert)
		}
	}
	return missing
}

// IsUnavailableOn returns true if time-off ends on or after the given date
func (m *Medic) IsUnavailableOn(date time.Time) bool {
	if m.UnavailableUntil == nil {
		return false
	}
	return !DateOnly(*m.UnavailableUntil).Before(DateOnly(date))
}
