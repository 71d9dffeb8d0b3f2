package check_conflicts

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/internal/integrations/googlecalendar"
)

type mockBookingRepository struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListFunc    func(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
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

type mockMedicRepository struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Medic, error)
}

func (m *mockMedicRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Medic, error) {
	return m.GetByIDFunc(ctx, id)
}

type mockTimeOffRepository struct {
	ListApprovedForMedicFunc func(ctx context.Context, medicID uuid.UUID, date time.Time) ([]*domain.TimeOff, error)
}

func (m *mockTimeOffRepository) ListApprovedForMedic(ctx context.Context, medicID uuid.UUID, date time.Time) ([]*domain.TimeOff, error) {
	if m.ListApprovedForMedicFunc == nil {
		return []*domain.TimeOff{}, nil
	}
	return m.ListApprovedForMedicFunc(ctx, medicID, date)
}

type mockEstimator struct {
	EstimateFunc func(ctx context.Context, origin, destination string) (*domain.TravelEstimate, error)
}

func (m *mockEstimator) Estimate(ctx context.Context, origin, destination string) (*domain.TravelEstimate, error) {
	return m.EstimateFunc(ctx, origin, destination)
}

type mockCalendar struct {
	FreeBusyFunc func(ctx context.Context, medic *domain.Medic, window domain.ShiftWindow) googlecalendar.Result
}

func (m *mockCalendar) FreeBusy(ctx context.Context, medic *domain.Medic, window domain.ShiftWindow) googlecalendar.Result {
	return m.FreeBusyFunc(ctx, medic, window)
}

type recordingMetrics struct {
	mu       sync.Mutex
	detected []string
}

func (r *recordingMetrics) ConflictDetected(conflictType, severity string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detected = append(r.detected, conflictType+":"+severity)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
