package assign_medic

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AssignmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AssignmentService/internal/usecase/check_conflicts"
)

// UseCase ручное назначение медика администратором
type UseCase struct {
	bookingRepo BookingRepository
	checker     ConflictChecker
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	checker ConflictChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		checker:     checker,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute назначает медика и подтверждает бронирование.
// Критические конфликты запрещают назначение, предупреждения - только с override_warnings.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AssignMedic: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("AssignMedic: booking=%s, medic=%s, override=%t", req.BookingID, req.MedicID, req.OverrideWarnings)

	// 2. Загружаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("AssignMedic: booking=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("AssignMedic: failed to get booking=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Клиент работал с устаревшей версией
	if req.ExpectedVersion != nil && *req.ExpectedVersion != booking.Version {
		uc.logger.Warn("AssignMedic: booking=%s version mismatch: expected=%d, actual=%d",
			booking.ID, *req.ExpectedVersion, booking.Version)
		return nil, ErrConcurrentUpdate
	}

	// 4. Подтвердить можно только ожидающее или автоназначенное бронирование
	confirmed := *booking
	confirmed.MedicID = uuid.NullUUID{UUID: req.MedicID, Valid: true}
	if err := confirmed.TransitionTo(domain.StatusConfirmed); err != nil {
		uc.logger.Warn("AssignMedic: booking=%s not assignable: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrBookingNotAssignable, err)
	}

	// 5. Проверка конфликтов вне транзакции (проверки идут параллельно)
	report, err := uc.checker.Execute(ctx, &check_conflicts.Request{
		BookingID: booking.ID,
		MedicID:   req.MedicID,
		ShiftDate: booking.ShiftDate,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, check_conflicts.ErrMedicNotFound):
			return nil, ErrMedicNotFound
		case errors.Is(err, check_conflicts.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		default:
			uc.logger.Error("AssignMedic: conflict check failed for booking=%s, medic=%s: %v", booking.ID, req.MedicID, err)
			return nil, fmt.Errorf("%w: conflict check: %v", ErrInternal, err)
		}
	}

	if !report.CanAssign {
		uc.logger.Warn("AssignMedic: booking=%s, medic=%s blocked: %s", booking.ID, req.MedicID, report.Recommendation)
		return nil, &ConflictsError{Reason: ErrBlockingConflicts, Report: report}
	}
	if report.Warnings > 0 && !req.OverrideWarnings {
		uc.logger.Warn("AssignMedic: booking=%s, medic=%s has %d warning(s) without override",
			booking.ID, req.MedicID, report.Warnings)
		return nil, &ConflictsError{Reason: ErrWarningsNotOverridden, Report: report}
	}

	// 6. Запись под блокировкой (медик, дата) с проверкой версии
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.LockMedicDay(txCtx, req.MedicID, booking.ShiftDate); err != nil {
			return fmt.Errorf("lock medic day: %w", err)
		}

		taken, err := uc.sameDayBookings(txCtx, req.MedicID, booking)
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return ErrMedicUnavailable
		}

		return uc.bookingRepo.AssignMedic(txCtx, domain.AssignmentUpdate{
			BookingID:       booking.ID,
			ExpectedVersion: booking.Version,
			MedicID:         req.MedicID,
			Status:          confirmed.Status,
		})
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrMedicUnavailable):
			uc.logger.Warn("AssignMedic: medic=%s already booked on %s", req.MedicID, booking.ShiftDate.Format(domain.DateFormat))
			return nil, ErrMedicUnavailable
		case errors.Is(err, bookingRepo.ErrPreconditionFailed):
			uc.logger.Warn("AssignMedic: booking=%s changed during assignment, version=%d", booking.ID, booking.Version)
			return nil, ErrConcurrentUpdate
		default:
			uc.logger.Error("AssignMedic: failed to assign medic=%s to booking=%s: %v", req.MedicID, booking.ID, err)
			return nil, fmt.Errorf("%w: failed to assign: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("AssignMedic: booking=%s confirmed with medic=%s", booking.ID, req.MedicID)

	return &Response{
		BookingID: booking.ID,
		MedicID:   req.MedicID,
		Status:    domain.StatusConfirmed,
		Version:   booking.Version + 1,
		Report:    report,
	}, nil
}

// sameDayBookings перечитывает занятость медика на дату смены уже под блокировкой
func (uc *UseCase) sameDayBookings(ctx context.Context, medicID uuid.UUID, booking *domain.Booking) ([]*domain.Booking, error) {
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingFilter{
		MedicID:   &medicID,
		StartDate: &booking.ShiftDate,
		EndDate:   &booking.ShiftDate,
		Statuses:  domain.ReservedStatuses,
		ExcludeID: &booking.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("recheck medic day: %w", err)
	}
	return bookings, nil
}
