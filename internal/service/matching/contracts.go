package matching

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

// MedicRepository интерфейс репозитория медиков
type MedicRepository interface {
	ListAll(ctx context.Context) ([]*domain.Medic, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	MedicIDsBookedOn(ctx context.Context, date time.Time, statuses []domain.BookingStatus) ([]uuid.UUID, error)
	CountBookedDays(ctx context.Context, medicID uuid.UUID, from, to time.Time, statuses []domain.BookingStatus) (int, error)
}

// TerritoryRepository интерфейс репозитория территорий
type TerritoryRepository interface {
	GetBySector(ctx context.Context, sector string) (*domain.Territory, error)
}

// TravelEstimator оценка времени в пути между двумя почтовыми индексами
type TravelEstimator interface {
	Estimate(ctx context.Context, origin, destination string) (*domain.TravelEstimate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
