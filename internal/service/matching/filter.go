package matching

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

// FilterCandidates сужает пул медиков до допустимых для бронирования.
// Шаги применяются последовательно:
//  1. медик не готов к работе;
//  2. отпуск заканчивается в день смены или позже;
//  3. нет сертификата confined space, если он требуется;
//  4. нет сертификата trauma specialist, если он требуется;
//  5. у медика уже есть confirmed/in_progress бронирование в этот день.
//
// Пятый шаг сравнивает только даты, без пересечения интервалов.
func FilterCandidates(medics []*domain.Medic, booking *domain.Booking, occupied map[uuid.UUID]struct{}) []*domain.Medic {
	result := make([]*domain.Medic, 0, len(medics))

	for _, m := range medics {
		if !m.AvailableForWork {
			continue
		}
		if m.IsUnavailableOn(booking.ShiftDate) {
			continue
		}
		if booking.ConfinedSpaceRequired && !m.HasConfinedSpaceCert {
			continue
		}
		if booking.TraumaSpecialistRequired && !m.HasTraumaCert {
			continue
		}
		if _, busy := occupied[m.ID]; busy {
			continue
		}
		result = append(result, m)
	}

	return result
}
