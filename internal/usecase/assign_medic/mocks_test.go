package assign_medic

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/internal/usecase/check_conflicts"
)

type mockBookingRepository struct {
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListFunc         func(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	LockMedicDayFunc func(ctx context.Context, medicID uuid.UUID, date time.Time) error
	AssignMedicFunc  func(ctx context.Context, update domain.AssignmentUpdate) error
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

func (m *mockBookingRepository) AssignMedic(ctx context.Context, update domain.AssignmentUpdate) error {
	return m.AssignMedicFunc(ctx, update)
}

type mockChecker struct {
	ExecuteFunc func(ctx context.Context, req *check_conflicts.Request) (*domain.ConflictReport, error)
}

func (m *mockChecker) Execute(ctx context.Context, req *check_conflicts.Request) (*domain.ConflictReport, error) {
	return m.ExecuteFunc(ctx, req)
}

type passThroughTx struct{}

func (passThroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
