package scheduleboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

// Preview результат проверки перетаскивания медика на смену.
// Degraded - сервис недоступен, отчёт построен локально только по
// двойному бронированию и квалификации.
type Preview struct {
	BookingID uuid.UUID
	MedicID   uuid.UUID
	Report    *domain.ConflictReport
	Degraded  bool
}

// Snapshot копия состояния доски
type Snapshot struct {
	Monday   time.Time
	Medics   []*domain.Medic
	Bookings []*domain.Booking
	LoadedAt time.Time
}

// BookingsOf смены медика в снимке
func (s *Snapshot) BookingsOf(medicID uuid.UUID) []*domain.Booking {
	var out []*domain.Booking
	for _, b := range s.Bookings {
		if b.HasMedic(medicID) {
			out = append(out, b)
		}
	}
	return out
}

// Unassigned смены без медика, ожидающие назначения
func (s *Snapshot) Unassigned() []*domain.Booking {
	var out []*domain.Booking
	for _, b := range s.Bookings {
		if !b.MedicID.Valid && b.Status == domain.StatusPending {
			out = append(out, b)
		}
	}
	return out
}
