package auto_assign

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

type mockBookingRepository struct {
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListFunc            func(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	LockMedicDayFunc    func(ctx context.Context, medicID uuid.UUID, date time.Time) error
	UpdateAutoMatchFunc func(ctx context.Context, update domain.AutoMatchUpdate) error
}

func (m *mockBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockBookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	if m.ListFunc == nil {
		return []*domain.Booking{}, nil
	}
	return m.ListFunc(ctx, filter)
}

func (m *mockBookingRepository) LockMedicDay(ctx context.Context, medicID uuid.UUID, date time.Time) error {
	if m.LockMedicDayFunc == nil {
		return nil
	}
	return m.LockMedicDayFunc(ctx, medicID, date)
}

func (m *mockBookingRepository) UpdateAutoMatch(ctx context.Context, update domain.AutoMatchUpdate) error {
	return m.UpdateAutoMatchFunc(ctx, update)
}

type mockFinder struct {
	EligibleMedicsFunc func(ctx context.Context, booking *domain.Booking) []*domain.Medic
}

func (m *mockFinder) EligibleMedics(ctx context.Context, booking *domain.Booking) []*domain.Medic {
	return m.EligibleMedicsFunc(ctx, booking)
}

type mockScorer struct {
	ScoreFunc func(ctx context.Context, booking *domain.Booking, medics []*domain.Medic) []*domain.Candidate
}

func (m *mockScorer) Score(ctx context.Context, booking *domain.Booking, medics []*domain.Medic) []*domain.Candidate {
	return m.ScoreFunc(ctx, booking, medics)
}

// passThroughTx выполняет fn без реальной транзакции
type passThroughTx struct {
	calls int
}

func (m *passThroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type recordingMetrics struct {
	outcomes []string
}

func (r *recordingMetrics) AutoAssignOutcome(outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
