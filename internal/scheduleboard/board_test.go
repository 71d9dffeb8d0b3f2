package scheduleboard

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/internal/infra/events/bookingfeed"
	"github.com/m04kA/SMC-AssignmentService/internal/integrations/assignmentapi"
)

type mockBackend struct {
	GetWeekFunc        func(ctx context.Context, date time.Time) (*assignmentapi.Week, error)
	CheckConflictsFunc func(ctx context.Context, check assignmentapi.ConflictCheck) (*domain.ConflictReport, error)
	AssignFunc         func(ctx context.Context, bookingID, medicID uuid.UUID, override bool, version *int64) (*assignmentapi.Assignment, error)

	mu        sync.Mutex
	weekCalls int
}

func (m *mockBackend) GetWeek(ctx context.Context, date time.Time) (*assignmentapi.Week, error) {
	m.mu.Lock()
	m.weekCalls++
	m.mu.Unlock()
	return m.GetWeekFunc(ctx, date)
}

func (m *mockBackend) CheckConflicts(ctx context.Context, check assignmentapi.ConflictCheck) (*domain.ConflictReport, error) {
	return m.CheckConflictsFunc(ctx, check)
}

func (m *mockBackend) Assign(ctx context.Context, bookingID, medicID uuid.UUID, override bool, version *int64) (*assignmentapi.Assignment, error) {
	return m.AssignFunc(ctx, bookingID, medicID, override, version)
}

func (m *mockBackend) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.weekCalls
}

type fakeFeed struct {
	events []bookingfeed.Event
}

func (f *fakeFeed) Run(_ context.Context, handle func(bookingfeed.Event)) error {
	for _, e := range f.events {
		handle(e)
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var monday = time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)

type world struct {
	medic     *domain.Medic
	busy      *domain.Booking // confirmed shift of medic on Wednesday
	open      *domain.Booking // pending shift on Wednesday, trauma required
	thursday  *domain.Booking // pending shift on Thursday
	backend   *mockBackend
	weekDates []time.Time
}

func newWorld() *world {
	w := &world{
		medic: &domain.Medic{ID: uuid.New(), FirstName: "Ada", LastName: "Okafor", AvailableForWork: true},
	}
	w.busy = &domain.Booking{
		ID: uuid.New(), SitePostcode: "E14 5AB", ShiftDate: monday.AddDate(0, 0, 2),
		StartTime: "07:00", EndTime: "15:00", Status: domain.StatusConfirmed,
		MedicID: uuid.NullUUID{UUID: w.medic.ID, Valid: true}, Version: 4,
	}
	w.open = &domain.Booking{
		ID: uuid.New(), ShiftDate: monday.AddDate(0, 0, 2), StartTime: "18:00", EndTime: "23:00",
		Status: domain.StatusPending, TraumaSpecialistRequired: true, Version: 1,
	}
	w.thursday = &domain.Booking{
		ID: uuid.New(), ShiftDate: monday.AddDate(0, 0, 3), StartTime: "08:00", EndTime: "16:00",
		Status: domain.StatusPending, Version: 2,
	}

	w.backend = &mockBackend{
		GetWeekFunc: func(_ context.Context, date time.Time) (*assignmentapi.Week, error) {
			w.weekDates = append(w.weekDates, date)
			medic, busy, open, thu := *w.medic, *w.busy, *w.open, *w.thursday
			return &assignmentapi.Week{
				Monday:   monday,
				Medics:   []*domain.Medic{&medic},
				Bookings: []*domain.Booking{&thu, &open, &busy},
			}, nil
		},
	}
	return w
}

func (w *world) board(t *testing.T) *Board {
	t.Helper()
	b := New(w.backend, nopLogger{})
	require.NoError(t, b.Load(context.Background(), monday.AddDate(0, 0, 2)))
	return b
}

func TestBoard_LoadAndSnapshot(t *testing.T) {
	w := newWorld()
	b := w.board(t)

	snap := b.Snapshot()
	assert.Equal(t, monday, snap.Monday)
	require.Len(t, snap.Bookings, 3)
	assert.Equal(t, w.busy.ID, snap.Bookings[0].ID)
	assert.Equal(t, w.open.ID, snap.Bookings[1].ID)
	assert.Equal(t, w.thursday.ID, snap.Bookings[2].ID)

	assert.Len(t, snap.BookingsOf(w.medic.ID), 1)
	assert.Len(t, snap.Unassigned(), 2)

	// снимок не разделяет память с доской
	snap.Bookings[0].Status = domain.StatusCancelled
	assert.Equal(t, domain.StatusConfirmed, b.Snapshot().Bookings[0].Status)
}

func TestBoard_RefreshRequiresLoad(t *testing.T) {
	b := New(newWorld().backend, nopLogger{})
	assert.ErrorIs(t, b.Refresh(context.Background()), ErrNotLoaded)

	_, err := b.Preview(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestBoard_PreviewUsesRemoteReport(t *testing.T) {
	w := newWorld()
	remote := domain.NewConflictReport(nil)
	w.backend.CheckConflictsFunc = func(_ context.Context, check assignmentapi.ConflictCheck) (*domain.ConflictReport, error) {
		assert.Equal(t, w.thursday.ID, check.BookingID)
		assert.Equal(t, "2026-06-11", check.ShiftDate)
		return remote, nil
	}
	b := w.board(t)

	preview, err := b.Preview(context.Background(), w.thursday.ID, w.medic.ID)
	require.NoError(t, err)
	assert.False(t, preview.Degraded)
	assert.Same(t, remote, preview.Report)
}

func TestBoard_PreviewDegradesWhenServiceUnavailable(t *testing.T) {
	w := newWorld()
	w.backend.CheckConflictsFunc = func(context.Context, assignmentapi.ConflictCheck) (*domain.ConflictReport, error) {
		return nil, fmt.Errorf("%w: connection refused", assignmentapi.ErrServiceUnavailable)
	}
	b := w.board(t)

	preview, err := b.Preview(context.Background(), w.open.ID, w.medic.ID)
	require.NoError(t, err)
	assert.True(t, preview.Degraded)

	report := preview.Report
	assert.False(t, report.CanAssign)
	require.Len(t, report.Conflicts, 2)
	assert.Equal(t, domain.ConflictDoubleBooking, report.Conflicts[0].Type)
	assert.Equal(t, domain.ConflictQualificationMismatch, report.Conflicts[1].Type)

	preview, err = b.Preview(context.Background(), w.thursday.ID, w.medic.ID)
	require.NoError(t, err)
	assert.True(t, preview.Degraded)
	assert.True(t, preview.Report.CanAssign)
}

func TestBoard_PreviewOtherErrorsPropagate(t *testing.T) {
	w := newWorld()
	w.backend.CheckConflictsFunc = func(context.Context, assignmentapi.ConflictCheck) (*domain.ConflictReport, error) {
		return nil, assignmentapi.ErrNotFound
	}
	b := w.board(t)

	_, err := b.Preview(context.Background(), w.thursday.ID, w.medic.ID)
	assert.ErrorIs(t, err, assignmentapi.ErrNotFound)

	_, err = b.Preview(context.Background(), w.thursday.ID, uuid.New())
	assert.ErrorIs(t, err, ErrMedicNotOnBoard)
}

func TestBoard_AssignOptimistic(t *testing.T) {
	w := newWorld()
	w.backend.AssignFunc = func(_ context.Context, bookingID, medicID uuid.UUID, override bool, version *int64) (*assignmentapi.Assignment, error) {
		assert.Equal(t, w.thursday.ID, bookingID)
		assert.True(t, override)
		require.NotNil(t, version)
		assert.Equal(t, int64(2), *version)
		return &assignmentapi.Assignment{BookingID: bookingID, MedicID: medicID, Status: domain.StatusConfirmed, Version: 3}, nil
	}
	b := w.board(t)

	res, err := b.Assign(context.Background(), w.thursday.ID, w.medic.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Version)

	var assigned *domain.Booking
	for _, bk := range b.Snapshot().Bookings {
		if bk.ID == w.thursday.ID {
			assigned = bk
		}
	}
	require.NotNil(t, assigned)
	assert.True(t, assigned.HasMedic(w.medic.ID))
	assert.Equal(t, domain.StatusConfirmed, assigned.Status)
	assert.Equal(t, int64(3), assigned.Version)
	assert.Equal(t, 1, w.backend.calls())
}

func TestBoard_AssignFailureResyncs(t *testing.T) {
	w := newWorld()
	w.backend.AssignFunc = func(context.Context, uuid.UUID, uuid.UUID, bool, *int64) (*assignmentapi.Assignment, error) {
		return nil, &assignmentapi.RejectedError{Message: "medic already booked"}
	}
	b := w.board(t)

	_, err := b.Assign(context.Background(), w.thursday.ID, w.medic.ID, false)
	require.ErrorIs(t, err, assignmentapi.ErrConflict)

	// оптимистичное изменение откатано перечитыванием недели
	assert.Equal(t, 2, w.backend.calls())
	for _, bk := range b.Snapshot().Bookings {
		if bk.ID == w.thursday.ID {
			assert.False(t, bk.MedicID.Valid)
			assert.Equal(t, domain.StatusPending, bk.Status)
		}
	}

	_, err = b.Assign(context.Background(), uuid.New(), w.medic.ID, false)
	assert.ErrorIs(t, err, ErrBookingNotOnBoard)
}

func TestBoard_WatchRefetchesVisibleWeekOnly(t *testing.T) {
	w := newWorld()
	b := w.board(t)

	feed := &fakeFeed{events: []bookingfeed.Event{
		{BookingID: uuid.New(), ShiftDate: monday.AddDate(0, 0, 9)},
		{BookingID: w.thursday.ID, ShiftDate: monday.AddDate(0, 0, 3)},
		{Resync: true},
	}}

	require.NoError(t, b.Watch(context.Background(), feed))
	assert.Equal(t, 3, w.backend.calls())
	for _, d := range w.weekDates[1:] {
		assert.Equal(t, monday, d)
	}
}
