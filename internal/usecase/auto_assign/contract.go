package auto_assign

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	LockMedicDay(ctx context.Context, medicID uuid.UUID, date time.Time) error
	UpdateAutoMatch(ctx context.Context, update domain.AutoMatchUpdate) error
}

// CandidateFinder фильтр кандидатов (пул медиков минус неподходящие)
type CandidateFinder interface {
	EligibleMedics(ctx context.Context, booking *domain.Booking) []*domain.Medic
}

// CandidateScorer оценка кандидатов
type CandidateScorer interface {
	Score(ctx context.Context, booking *domain.Booking, medics []*domain.Medic) []*domain.Candidate
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder учёт исходов автоназначения
type MetricsRecorder interface {
	AutoAssignOutcome(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
