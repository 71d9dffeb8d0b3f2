package matching

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

// Service загружает пул медиков и занятость для фильтра кандидатов
type Service struct {
	medicRepo   MedicRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса подбора
func NewService(medicRepo MedicRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		medicRepo:   medicRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// EligibleMedics возвращает медиков, прошедших фильтр для бронирования.
// При недоступности хранилища возвращает пустой набор: оркестратор
// трактует это как "кандидатов нет".
func (s *Service) EligibleMedics(ctx context.Context, booking *domain.Booking) []*domain.Medic {
	medics, err := s.medicRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("EligibleMedics: booking=%s failed to load medics: %v", booking.ID, err)
		return []*domain.Medic{}
	}

	bookedIDs, err := s.bookingRepo.MedicIDsBookedOn(ctx, booking.ShiftDate, domain.OccupyingStatuses)
	if err != nil {
		s.logger.Error("EligibleMedics: booking=%s failed to load same-day bookings: %v", booking.ID, err)
		return []*domain.Medic{}
	}

	occupied := make(map[uuid.UUID]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		occupied[id] = struct{}{}
	}

	eligible := FilterCandidates(medics, booking, occupied)
	s.logger.Info("EligibleMedics: booking=%s pool=%d occupied=%d eligible=%d",
		booking.ID, len(medics), len(occupied), len(eligible))

	return eligible
}
