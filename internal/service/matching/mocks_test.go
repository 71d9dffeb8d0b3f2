package matching

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

type mockMedicRepo struct {
	ListAllFunc func(ctx context.Context) ([]*domain.Medic, error)
}

func (m *mockMedicRepo) ListAll(ctx context.Context) ([]*domain.Medic, error) {
	return m.ListAllFunc(ctx)
}

type mockBookingRepo struct {
	MedicIDsBookedOnFunc func(ctx context.Context, date time.Time, statuses []domain.BookingStatus) ([]uuid.UUID, error)
	CountBookedDaysFunc  func(ctx context.Context, medicID uuid.UUID, from, to time.Time, statuses []domain.BookingStatus) (int, error)
}

func (m *mockBookingRepo) MedicIDsBookedOn(ctx context.Context, date time.Time, statuses []domain.BookingStatus) ([]uuid.UUID, error) {
	if m.MedicIDsBookedOnFunc == nil {
		return nil, nil
	}
	return m.MedicIDsBookedOnFunc(ctx, date, statuses)
}

func (m *mockBookingRepo) CountBookedDays(ctx context.Context, medicID uuid.UUID, from, to time.Time, statuses []domain.BookingStatus) (int, error) {
	if m.CountBookedDaysFunc == nil {
		return 0, nil
	}
	return m.CountBookedDaysFunc(ctx, medicID, from, to, statuses)
}

type mockTerritoryRepo struct {
	GetBySectorFunc func(ctx context.Context, sector string) (*domain.Territory, error)
}

func (m *mockTerritoryRepo) GetBySector(ctx context.Context, sector string) (*domain.Territory, error) {
	if m.GetBySectorFunc == nil {
		return nil, nil
	}
	return m.GetBySectorFunc(ctx, sector)
}

type mockEstimator struct {
	EstimateFunc func(ctx context.Context, origin, destination string) (*domain.TravelEstimate, error)
}

func (m *mockEstimator) Estimate(ctx context.Context, origin, destination string) (*domain.TravelEstimate, error) {
	return m.EstimateFunc(ctx, origin, destination)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
