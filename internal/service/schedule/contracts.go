package schedule

import (
	"context"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// MedicRepository интерфейс репозитория медиков
type MedicRepository interface {
	ListAll(ctx context.Context) ([]*domain.Medic, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
