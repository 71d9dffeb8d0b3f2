package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

type mockBookingRepo struct {
	ListFunc func(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

func (m *mockBookingRepo) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	return m.ListFunc(ctx, filter)
}

type mockMedicRepo struct {
	ListAllFunc func(ctx context.Context) ([]*domain.Medic, error)
}

func (m *mockMedicRepo) ListAll(ctx context.Context) ([]*domain.Medic, error) {
	return m.ListAllFunc(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestService_GetWeek(t *testing.T) {
	medicID := uuid.New()
	until := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)

	var gotFilter domain.BookingFilter
	bookings := &mockBookingRepo{ListFunc: func(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
		gotFilter = filter
		return []*domain.Booking{{
			ID:        uuid.New(),
			ShiftDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			StartTime: "07:00",
			EndTime:   "19:00",
			Status:    domain.StatusConfirmed,
			MedicID:   uuid.NullUUID{UUID: medicID, Valid: true},
			Version:   4,
		}}, nil
	}}
	medics := &mockMedicRepo{ListAllFunc: func(context.Context) ([]*domain.Medic, error) {
		return []*domain.Medic{{
			ID:               medicID,
			FirstName:        "Ada",
			LastName:         "Okafor",
			UnavailableUntil: &until,
			Calendar:         &domain.CalendarConnection{RefreshToken: "r", AccessGranted: true},
		}}, nil
	}}

	svc := NewService(bookings, medics, nopLogger{})

	// среда -> неделя с понедельника 8 июня
	week, err := svc.GetWeek(context.Background(), time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "2026-06-08", week.WeekStart)
	assert.Equal(t, "2026-06-14", week.WeekEnd)
	assert.Equal(t, "2026-06-08", gotFilter.StartDate.Format(domain.DateFormat))
	assert.Equal(t, "2026-06-14", gotFilter.EndDate.Format(domain.DateFormat))
	assert.Empty(t, gotFilter.Statuses)

	require.Len(t, week.Medics, 1)
	assert.True(t, week.Medics[0].CalendarConnected)
	assert.Equal(t, "2026-06-12", *week.Medics[0].UnavailableUntil)

	require.Len(t, week.Bookings, 1)
	b := week.Bookings[0]
	assert.Equal(t, "2026-06-10", b.ShiftDate)
	assert.Equal(t, "07:00", b.ShiftStartTime)
	assert.Equal(t, medicID.String(), *b.MedicID)
	assert.Equal(t, int64(4), b.Version)
}

func TestService_GetWeek_RepositoryError(t *testing.T) {
	svc := NewService(
		&mockBookingRepo{ListFunc: func(context.Context, domain.BookingFilter) ([]*domain.Booking, error) {
			return nil, errors.New("connection refused")
		}},
		&mockMedicRepo{ListAllFunc: func(context.Context) ([]*domain.Medic, error) { return nil, nil }},
		nopLogger{},
	)

	_, err := svc.GetWeek(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.GetWeek(context.Background(), time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
