package scheduleboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/internal/infra/events/bookingfeed"
	"github.com/m04kA/SMC-AssignmentService/internal/integrations/assignmentapi"
)

// Board состояние доски назначений для одной ISO недели.
// Все изменения идут через сервис; локальное состояние только кэш последней загрузки.
type Board struct {
	backend Backend
	log     Logger
	now     func() time.Time

	mu       sync.RWMutex
	loaded   bool
	monday   time.Time
	medics   []*domain.Medic
	bookings map[uuid.UUID]*domain.Booking
	loadedAt time.Time
}

// New создает пустую доску
func New(backend Backend, log Logger) *Board {
	return &Board{
		backend:  backend,
		log:      log,
		now:      time.Now,
		bookings: make(map[uuid.UUID]*domain.Booking),
	}
}

// Load загружает неделю, содержащую date
func (b *Board) Load(ctx context.Context, date time.Time) error {
	week, err := b.backend.GetWeek(ctx, date)
	if err != nil {
		return fmt.Errorf("load week %s: %w", date.Format(domain.DateFormat), err)
	}
	b.replace(week)
	b.log.Info("Board: loaded week %s (%d medics, %d bookings)",
		week.Monday.Format(domain.DateFormat), len(week.Medics), len(week.Bookings))
	return nil
}

// Refresh перечитывает текущую неделю целиком
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.RLock()
	loaded, monday := b.loaded, b.monday
	b.mu.RUnlock()

	if !loaded {
		return ErrNotLoaded
	}
	return b.Load(ctx, monday)
}

func (b *Board) replace(week *assignmentapi.Week) {
	bookings := make(map[uuid.UUID]*domain.Booking, len(week.Bookings))
	for _, bk := range week.Bookings {
		bookings[bk.ID] = bk
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.loaded = true
	b.monday = domain.DateOnly(week.Monday)
	b.medics = week.Medics
	b.bookings = bookings
	b.loadedAt = b.now()
}

// Snapshot возвращает копию состояния; смены отсортированы по дате и времени начала
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	snap := Snapshot{
		Monday:   b.monday,
		Medics:   make([]*domain.Medic, 0, len(b.medics)),
		Bookings: make([]*domain.Booking, 0, len(b.bookings)),
		LoadedAt: b.loadedAt,
	}
	for _, m := range b.medics {
		copied := *m
		snap.Medics = append(snap.Medics, &copied)
	}
	for _, bk := range b.bookings {
		copied := *bk
		snap.Bookings = append(snap.Bookings, &copied)
	}

	sort.SliceStable(snap.Bookings, func(i, j int) bool {
		bi, bj := snap.Bookings[i], snap.Bookings[j]
		if !bi.ShiftDate.Equal(bj.ShiftDate) {
			return bi.ShiftDate.Before(bj.ShiftDate)
		}
		return bi.StartTime.IsBefore(bj.StartTime)
	})

	return snap
}

// Preview проверяет назначение медика на смену до сохранения.
// При недоступности сервиса строит деградированный отчёт по данным доски.
func (b *Board) Preview(ctx context.Context, bookingID, medicID uuid.UUID) (*Preview, error) {
	booking, medic, err := b.lookup(bookingID, medicID)
	if err != nil {
		return nil, err
	}

	report, err := b.backend.CheckConflicts(ctx, assignmentapi.NewConflictCheck(booking, medicID))
	if err == nil {
		return &Preview{BookingID: bookingID, MedicID: medicID, Report: report}, nil
	}
	if !errors.Is(err, assignmentapi.ErrServiceUnavailable) {
		return nil, err
	}

	b.log.Warn("Board: conflict service unavailable, local check for booking=%s, medic=%s: %v", bookingID, medicID, err)

	return &Preview{
		BookingID: bookingID,
		MedicID:   medicID,
		Report:    b.localReport(booking, medic),
		Degraded:  true,
	}, nil
}

// localReport двойное бронирование и квалификация по данным доски
func (b *Board) localReport(booking *domain.Booking, medic *domain.Medic) *domain.ConflictReport {
	var conflicts []domain.Conflict

	b.mu.RLock()
	for _, other := range b.bookings {
		if other.ID == booking.ID || !other.HasMedic(medic.ID) || !other.IsOccupying() {
			continue
		}
		if !domain.SameDate(other.ShiftDate, booking.ShiftDate) {
			continue
		}
		conflicts = append(conflicts, domain.NewConflict(domain.ConflictDoubleBooking,
			fmt.Sprintf("Medic is already booked on %s (%s, %s-%s)",
				other.ShiftDate.Format(domain.DateFormat), other.SitePostcode, other.StartTime, other.EndTime),
			map[string]interface{}{"conflicting_booking_id": other.ID.String(), "status": string(other.Status)}))
		break
	}
	b.mu.RUnlock()

	if missing := medic.MissingCertifications(booking); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, cert := range missing {
			names[i] = string(cert)
		}
		conflicts = append(conflicts, domain.NewConflict(domain.ConflictQualificationMismatch,
			fmt.Sprintf("Medic lacks required certification(s): %s", strings.Join(names, ", ")),
			map[string]interface{}{"missing_certifications": names}))
	}

	return domain.NewConflictReport(conflicts)
}

// Assign оптимистично применяет назначение на доске и сохраняет его.
// Любая ошибка сохранения приводит к полной пересинхронизации недели.
func (b *Board) Assign(ctx context.Context, bookingID, medicID uuid.UUID, overrideWarnings bool) (*assignmentapi.Assignment, error) {
	b.mu.Lock()
	booking, ok := b.bookings[bookingID]
	if !ok {
		b.mu.Unlock()
		return nil, ErrBookingNotOnBoard
	}
	version := booking.Version
	booking.MedicID = uuid.NullUUID{UUID: medicID, Valid: true}
	booking.Status = domain.StatusConfirmed
	b.mu.Unlock()

	res, err := b.backend.Assign(ctx, bookingID, medicID, overrideWarnings, &version)
	if err != nil {
		b.log.Warn("Board: assign booking=%s to medic=%s failed, resyncing: %v", bookingID, medicID, err)
		if rerr := b.Refresh(ctx); rerr != nil {
			b.log.Error("Board: resync after failed assign: %v", rerr)
		}
		return nil, err
	}

	b.mu.Lock()
	if bk, ok := b.bookings[bookingID]; ok {
		bk.Version = res.Version
		bk.Status = res.Status
	}
	b.mu.Unlock()

	b.log.Info("Board: booking=%s assigned to medic=%s, version=%d", bookingID, medicID, res.Version)
	return res, nil
}

// Watch перечитывает неделю при каждом изменении, которое её касается, до отмены ctx
func (b *Board) Watch(ctx context.Context, feed ChangeFeed) error {
	return feed.Run(ctx, func(e bookingfeed.Event) {
		b.mu.RLock()
		loaded, monday := b.loaded, b.monday
		b.mu.RUnlock()

		if !loaded || !e.Touches(monday) {
			return
		}
		if err := b.Refresh(ctx); err != nil {
			b.log.Error("Board: refresh after change of booking=%s failed: %v", e.BookingID, err)
		}
	})
}

func (b *Board) lookup(bookingID, medicID uuid.UUID) (*domain.Booking, *domain.Medic, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.loaded {
		return nil, nil, ErrNotLoaded
	}

	booking, ok := b.bookings[bookingID]
	if !ok {
		return nil, nil, ErrBookingNotOnBoard
	}

	for _, m := range b.medics {
		if m.ID == medicID {
			copiedBooking, copiedMedic := *booking, *m
			return &copiedBooking, &copiedMedic, nil
		}
	}
	return nil, nil, ErrMedicNotOnBoard
}
