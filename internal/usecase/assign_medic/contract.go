package assign_medic

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/internal/usecase/check_conflicts"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	LockMedicDay(ctx context.Context, medicID uuid.UUID, date time.Time) error
	AssignMedic(ctx context.Context, update domain.AssignmentUpdate) error
}

// ConflictChecker детектор конфликтов
type ConflictChecker interface {
	Execute(ctx context.Context, req *check_conflicts.Request) (*domain.ConflictReport, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
