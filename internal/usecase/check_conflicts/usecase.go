package check_conflicts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AssignmentService/internal/infra/storage/booking"
	medicRepo "github.com/m04kA/SMC-AssignmentService/internal/infra/storage/medic"
	"github.com/m04kA/SMC-AssignmentService/internal/service/compliance"
)

// restLookbackDays сколько дней до начала недели загружать для проверки отдыха
const restLookbackDays = 2

// historyStatuses статусы смен медика, нужные хотя бы одной из проверок
var historyStatuses = []domain.BookingStatus{
	domain.StatusAssigned,
	domain.StatusConfirmed,
	domain.StatusInProgress,
	domain.StatusCompleted,
}

// UseCase детектор конфликтов для пары (медик, бронирование)
type UseCase struct {
	bookingRepo BookingRepository
	medicRepo   MedicRepository
	timeOffRepo TimeOffRepository
	estimator   TravelEstimator
	calendar    CalendarChecker
	metrics     MetricsRecorder
	rules       compliance.Rules
	logger      Logger
}

// NewUseCase создает новый экземпляр use case.
// calendar и metrics могут быть nil: проверка календаря тогда пропускается.
func NewUseCase(
	bookingRepo BookingRepository,
	medicRepo MedicRepository,
	timeOffRepo TimeOffRepository,
	estimator TravelEstimator,
	calendar CalendarChecker,
	metrics MetricsRecorder,
	rules compliance.Rules,
	logger Logger,
) *UseCase {
	if rules.Location == nil {
		rules.Location = time.UTC
	}
	return &UseCase{
		bookingRepo: bookingRepo,
		medicRepo:   medicRepo,
		timeOffRepo: timeOffRepo,
		estimator:   estimator,
		calendar:    calendar,
		metrics:     metrics,
		rules:       rules,
		logger:      logger,
	}
}

// checkInput данные, общие для всех проверок
type checkInput struct {
	medic    *domain.Medic
	proposed *domain.Booking
	window   domain.ShiftWindow
	history  []*domain.Booking
}

type check func(ctx context.Context, in *checkInput) (*domain.Conflict, error)

// Execute запускает семь проверок параллельно и агрегирует результат.
// Ошибка обязательной проверки (данные недоступны) - ErrInternal: считать
// назначение безопасным без данных нельзя. Проверка календаря ошибок не даёт.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.ConflictReport, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckConflicts: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CheckConflicts: booking=%s, medic=%s, date=%s, time=%s-%s",
		req.BookingID, req.MedicID, req.ShiftDate.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 2. Загружаем медика и бронирование
	in, err := uc.load(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Проверки независимы: каждая пишет только в свой слот
	checks := []check{
		uc.checkDoubleBooking,
		uc.checkQualifications,
		uc.checkOvertime,
		uc.checkRest,
		uc.checkTravelTime,
		uc.checkTimeOff,
		uc.checkCalendar,
	}
	found := make([]*domain.Conflict, len(checks))

	g, gctx := errgroup.WithContext(ctx)
	for i, run := range checks {
		g.Go(func() error {
			conflict, err := run(gctx, in)
			if err != nil {
				return err
			}
			found[i] = conflict
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uc.logger.Error("CheckConflicts: booking=%s, medic=%s check failed: %v", req.BookingID, req.MedicID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Агрегация в фиксированном порядке проверок
	conflicts := make([]domain.Conflict, 0, len(found))
	for _, c := range found {
		if c == nil {
			continue
		}
		conflicts = append(conflicts, *c)
		if uc.metrics != nil {
			uc.metrics.ConflictDetected(string(c.Type), string(c.Severity))
		}
	}

	report := domain.NewConflictReport(conflicts)
	uc.logger.Info("CheckConflicts: booking=%s, medic=%s total=%d critical=%d warnings=%d",
		req.BookingID, req.MedicID, report.TotalConflicts, report.CriticalConflicts, report.Warnings)

	return report, nil
}

func (uc *UseCase) load(ctx context.Context, req *Request) (*checkInput, error) {
	medic, err := uc.medicRepo.GetByID(ctx, req.MedicID)
	if err != nil {
		if errors.Is(err, medicRepo.ErrMedicNotFound) {
			uc.logger.Warn("CheckConflicts: medic=%s not found", req.MedicID)
			return nil, ErrMedicNotFound
		}
		uc.logger.Error("CheckConflicts: failed to get medic=%s: %v", req.MedicID, err)
		return nil, fmt.Errorf("%w: failed to get medic: %v", ErrInternal, err)
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CheckConflicts: booking=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CheckConflicts: failed to get booking=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// Предлагаемая смена: бронирование с временем и требованиями из запроса
	proposed := *booking
	proposed.ShiftDate = domain.DateOnly(req.ShiftDate)
	proposed.StartTime = req.StartTime
	proposed.EndTime = req.EndTime
	if req.ConfinedSpaceRequired != nil {
		proposed.ConfinedSpaceRequired = *req.ConfinedSpaceRequired
	}
	if req.TraumaSpecialistRequired != nil {
		proposed.TraumaSpecialistRequired = *req.TraumaSpecialistRequired
	}

	// История медика: неделя смены плюс restLookbackDays до её начала.
	// Ночная смена субботы заканчивается в воскресенье и важна для отдыха перед понедельником.
	monday, sunday := domain.WeekBounds(proposed.ShiftDate)
	from := monday.AddDate(0, 0, -restLookbackDays)
	history, err := uc.bookingRepo.List(ctx, domain.BookingFilter{
		MedicID:   &medic.ID,
		StartDate: &from,
		EndDate:   &sunday,
		Statuses:  historyStatuses,
		ExcludeID: &booking.ID,
	})
	if err != nil {
		uc.logger.Error("CheckConflicts: failed to load history for medic=%s: %v", medic.ID, err)
		return nil, fmt.Errorf("%w: failed to load medic bookings: %v", ErrInternal, err)
	}

	return &checkInput{
		medic:    medic,
		proposed: &proposed,
		window:   proposed.Window(uc.rules.Location),
		history:  history,
	}, nil
}

// checkDoubleBooking другая подтверждённая или идущая смена медика в ту же дату
func (uc *UseCase) checkDoubleBooking(_ context.Context, in *checkInput) (*domain.Conflict, error) {
	for _, b := range in.history {
		if !b.IsOccupying() || !domain.SameDate(b.ShiftDate, in.proposed.ShiftDate) {
			continue
		}
		c := domain.NewConflict(domain.ConflictDoubleBooking,
			fmt.Sprintf("Medic is already booked on %s (%s, %s-%s)",
				b.ShiftDate.Format(domain.DateFormat), b.SitePostcode, b.StartTime, b.EndTime),
			map[string]interface{}{
				"conflicting_booking_id": b.ID.String(),
				"status":                 string(b.Status),
			})
		return &c, nil
	}
	return nil, nil
}

// checkQualifications сертификаты, которых не хватает медику
func (uc *UseCase) checkQualifications(_ context.Context, in *checkInput) (*domain.Conflict, error) {
	missing := in.medic.MissingCertifications(in.proposed)
	if len(missing) == 0 {
		return nil, nil
	}

	names := make([]string, len(missing))
	for i, cert := range missing {
		names[i] = string(cert)
	}

	c := domain.NewConflict(domain.ConflictQualificationMismatch,
		fmt.Sprintf("Medic lacks required certification(s): %s", strings.Join(names, ", ")),
		map[string]interface{}{"missing_certifications": names})
	return &c, nil
}

func (uc *UseCase) checkOvertime(_ context.Context, in *checkInput) (*domain.Conflict, error) {
	result := compliance.CheckOvertime(in.history, in.proposed, uc.rules)
	if result.Compliant {
		return nil, nil
	}

	c := domain.NewConflict(domain.ConflictOvertimeViolation,
		fmt.Sprintf("Assignment would bring weekly hours to %.1f (limit %.0f)", result.WeeklyHours, result.MaxWeeklyHours),
		map[string]interface{}{
			"weekly_hours":     result.WeeklyHours,
			"max_weekly_hours": result.MaxWeeklyHours,
			"week_start":       result.WeekStart.Format(domain.DateFormat),
		})
	return &c, nil
}

func (uc *UseCase) checkRest(_ context.Context, in *checkInput) (*domain.Conflict, error) {
	result := compliance.CheckRest(in.history, in.proposed, uc.rules)
	if result.Compliant {
		return nil, nil
	}

	c := domain.NewConflict(domain.ConflictInsufficientRest,
		fmt.Sprintf("Only %.1f hours rest since previous shift (minimum %.0f)", result.RestHours, result.MinRestHours),
		map[string]interface{}{
			"rest_hours":         result.RestHours,
			"min_rest_hours":     result.MinRestHours,
			"previous_shift_id":  result.PreviousShiftID.String(),
			"previous_shift_end": result.PreviousEnd.Format(time.RFC3339),
		})
	return &c, nil
}

// checkTravelTime для каждой другой смены в тот же день проверяет, что
// положительного промежутка хватает на дорогу. Ошибка оценки пропускает пару.
func (uc *UseCase) checkTravelTime(ctx context.Context, in *checkInput) (*domain.Conflict, error) {
	for _, other := range in.history {
		if !domain.StatusIn(other.Status, domain.ReservedStatuses) || !domain.SameDate(other.ShiftDate, in.proposed.ShiftDate) {
			continue
		}

		otherWindow := other.Window(uc.rules.Location)

		var gap time.Duration
		var origin, destination string
		switch {
		case !otherWindow.End.After(in.window.Start):
			gap = in.window.Start.Sub(otherWindow.End)
			origin, destination = other.SitePostcode, in.proposed.SitePostcode
		case !in.window.End.After(otherWindow.Start):
			gap = otherWindow.Start.Sub(in.window.End)
			origin, destination = in.proposed.SitePostcode, other.SitePostcode
		default:
			// пересекающиеся смены - зона проверки двойного бронирования
			continue
		}

		if gap <= 0 {
			continue
		}

		estimate, err := uc.estimator.Estimate(ctx, origin, destination)
		if err != nil {
			uc.logger.Warn("CheckConflicts: travel estimate %s -> %s unavailable, skipping pair: %v", origin, destination, err)
			continue
		}

		travel := time.Duration(estimate.Minutes) * time.Minute
		if gap >= travel {
			continue
		}
		gapMinutes := int(gap / time.Minute)

		c := domain.NewConflict(domain.ConflictTravelTimeInfeasible,
			fmt.Sprintf("Only %d minutes between shifts but travel takes %d minutes", gapMinutes, estimate.Minutes),
			map[string]interface{}{
				"other_booking_id":    other.ID.String(),
				"gap_minutes":         gapMinutes,
				"travel_time_minutes": estimate.Minutes,
				"distance_miles":      estimate.Miles,
			})
		return &c, nil
	}
	return nil, nil
}

// checkTimeOff одобренный отгул (в том числе повторяющийся) или недоступность медика
func (uc *UseCase) checkTimeOff(ctx context.Context, in *checkInput) (*domain.Conflict, error) {
	date := in.proposed.ShiftDate

	if in.medic.IsUnavailableOn(date) {
		c := domain.NewConflict(domain.ConflictTimeOff,
			fmt.Sprintf("Medic is unavailable until %s", in.medic.UnavailableUntil.Format(domain.DateFormat)),
			map[string]interface{}{"unavailable_until": in.medic.UnavailableUntil.Format(domain.DateFormat)})
		return &c, nil
	}

	records, err := uc.timeOffRepo.ListApprovedForMedic(ctx, in.medic.ID, date)
	if err != nil {
		return nil, fmt.Errorf("load time off: %w", err)
	}

	for _, record := range records {
		covered, err := record.Covers(date)
		if err != nil {
			return nil, fmt.Errorf("time off %s: %w", record.ID, err)
		}
		if !covered {
			continue
		}

		details := map[string]interface{}{
			"time_off_id": record.ID.String(),
			"start_date":  record.StartDate.Format(domain.DateFormat),
			"end_date":    record.EndDate.Format(domain.DateFormat),
		}
		if record.RRule != "" {
			details["rrule"] = record.RRule
		}

		c := domain.NewConflict(domain.ConflictTimeOff,
			fmt.Sprintf("Medic has approved time off on %s", date.Format(domain.DateFormat)),
			details)
		return &c, nil
	}
	return nil, nil
}

// checkCalendar best-effort: недоступность календаря только логируется
func (uc *UseCase) checkCalendar(ctx context.Context, in *checkInput) (*domain.Conflict, error) {
	if uc.calendar == nil || !in.medic.Calendar.Connected() {
		return nil, nil
	}

	result := uc.calendar.FreeBusy(ctx, in.medic, in.window)
	if !result.Checked() {
		uc.logger.Info("CheckConflicts: calendar of medic=%s not checked: %s", in.medic.ID, result.Reason)
		return nil, nil
	}

	busy := result.Overlapping(in.window)
	if len(busy) == 0 {
		return nil, nil
	}

	periods := make([]string, len(busy))
	for i, b := range busy {
		periods[i] = b.Start.Format(time.RFC3339) + "/" + b.End.Format(time.RFC3339)
	}

	c := domain.NewConflict(domain.ConflictGoogleCalendar,
		fmt.Sprintf("Medic's calendar shows %d busy period(s) during the shift", len(busy)),
		map[string]interface{}{"busy_periods": periods})
	return &c, nil
}
