package schedule

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/internal/service/schedule/models"
)

// Service сервис недельного расписания для доски назначений
type Service struct {
	bookingRepo BookingRepository
	medicRepo   MedicRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	bookingRepo BookingRepository,
	medicRepo MedicRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		medicRepo:   medicRepo,
		logger:      logger,
	}
}

// GetWeek возвращает медиков и смены ISO недели, в которую попадает date.
// Отменённые смены тоже возвращаются: доска показывает их отдельно.
func (s *Service) GetWeek(ctx context.Context, date time.Time) (*models.WeekResponse, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: week date is required", ErrInvalidInput)
	}

	monday, sunday := domain.WeekBounds(date)
	s.logger.Info("GetWeek: fetching schedule for week %s..%s",
		monday.Format(domain.DateFormat), sunday.Format(domain.DateFormat))

	var (
		medics   []*domain.Medic
		bookings []*domain.Booking
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		medics, err = s.medicRepo.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("list medics: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		bookings, err = s.bookingRepo.List(gctx, domain.BookingFilter{
			StartDate: &monday,
			EndDate:   &sunday,
		})
		if err != nil {
			return fmt.Errorf("list bookings: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("GetWeek: repository error for week %s: %v", monday.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWeek: week %s has %d medics, %d bookings",
		monday.Format(domain.DateFormat), len(medics), len(bookings))

	return models.NewWeekResponse(monday, medics, bookings), nil
}
