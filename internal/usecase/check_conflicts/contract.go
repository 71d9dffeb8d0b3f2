package check_conflicts

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/internal/integrations/googlecalendar"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// MedicRepository интерфейс репозитория медиков
type MedicRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Medic, error)
}

// TimeOffRepository интерфейс репозитория отгулов
type TimeOffRepository interface {
	ListApprovedForMedic(ctx context.Context, medicID uuid.UUID, date time.Time) ([]*domain.TimeOff, error)
}

// TravelEstimator оценка времени в пути (с кешем)
type TravelEstimator interface {
	Estimate(ctx context.Context, origin, destination string) (*domain.TravelEstimate, error)
}

// CalendarChecker проверка внешнего календаря медика, никогда не возвращает ошибку
type CalendarChecker interface {
	FreeBusy(ctx context.Context, medic *domain.Medic, window domain.ShiftWindow) googlecalendar.Result
}

// MetricsRecorder учёт обнаруженных конфликтов
type MetricsRecorder interface {
	ConflictDetected(conflictType, severity string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
