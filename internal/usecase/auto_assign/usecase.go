package auto_assign

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AssignmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AssignmentService/internal/service/matching"
	"github.com/m04kA/SMC-AssignmentService/pkg/ptr"
)

// UseCase оркестратор автоназначения медика на бронирование
type UseCase struct {
	bookingRepo  BookingRepository
	finder       CandidateFinder
	scorer       CandidateScorer
	txManager    TransactionManager
	metrics      MetricsRecorder
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	finder CandidateFinder,
	scorer CandidateScorer,
	txManager TransactionManager,
	metrics MetricsRecorder,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		finder:       finder,
		scorer:       scorer,
		txManager:    txManager,
		metrics:      metrics,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// decision итог подбора до записи в БД
type decision struct {
	medicID uuid.NullUUID
	reason  string
	outcome string
}

// Execute подбирает медика для бронирования и записывает результат.
// Всегда возвращает однозначный исход: назначен медик или нужна ручная проверка с причиной.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AutoAssign: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("AutoAssign: booking=%s", req.BookingID)

	// 2. Загружаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("AutoAssign: booking=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("AutoAssign: failed to get booking=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Подбор только для бронирований, ожидающих медика
	if !booking.IsAssignable() {
		uc.logger.Warn("AutoAssign: booking=%s not assignable: status=%s, has_medic=%t",
			booking.ID, booking.Status, booking.MedicID.Valid)
		return nil, fmt.Errorf("%w: status %s", ErrBookingNotAssignable, booking.Status)
	}

	// 4. Фильтр кандидатов; ошибка хранилища даёт пустой набор
	medics := uc.finder.EligibleMedics(ctx, booking)

	// 5. Оценка и ранжирование
	var ranked []*domain.Candidate
	if len(medics) > 0 {
		ranked = matching.Rank(uc.scorer.Score(ctx, booking, medics))
	}
	top := matching.Top(ranked, uc.settings.TopCandidates)

	// 6. Решение по лучшему кандидату
	d := uc.decide(ranked)

	// 7. Запись результата под блокировкой (медик, дата) с проверкой версии
	criteria := &domain.MatchCriteria{
		Threshold:   uc.settings.Threshold,
		Candidates:  make([]domain.CandidateSnapshot, 0, len(top)),
		EvaluatedAt: uc.timeProvider.Now().UTC(),
	}
	for _, c := range top {
		criteria.Candidates = append(criteria.Candidates, c.Snapshot())
	}

	var matchScore *float64
	if len(ranked) > 0 {
		matchScore = ptr.Ptr(ranked[0].Score.Total)
	}

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if d.medicID.Valid {
			taken, err := uc.medicTaken(txCtx, d.medicID.UUID, booking)
			if err != nil {
				return err
			}
			if taken {
				uc.logger.Warn("AutoAssign: booking=%s top medic=%s was taken by a concurrent assignment",
					booking.ID, d.medicID.UUID)
				d = decision{reason: domain.ReasonCandidateTakenInRun, outcome: OutcomeCandidateTaken}
			}
		}

		update := domain.AutoMatchUpdate{
			BookingID:              booking.ID,
			ExpectedVersion:        booking.Version,
			MedicID:                d.medicID,
			Status:                 domain.StatusPending,
			MatchScore:             matchScore,
			Criteria:               criteria,
			RequiresManualApproval: !d.medicID.Valid,
		}
		if d.medicID.Valid {
			assigned := *booking
			assigned.MedicID = d.medicID
			if err := assigned.TransitionTo(domain.StatusAssigned); err != nil {
				return fmt.Errorf("%w: %v", ErrBookingNotAssignable, err)
			}
			update.Status = assigned.Status
		} else {
			update.ManualApprovalReason = ptr.Ptr(d.reason)
		}

		return uc.bookingRepo.UpdateAutoMatch(txCtx, update)
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrPreconditionFailed) {
			uc.logger.Warn("AutoAssign: booking=%s changed during assignment, version=%d", booking.ID, booking.Version)
			return nil, ErrConcurrentUpdate
		}
		if errors.Is(err, ErrBookingNotAssignable) {
			uc.logger.Warn("AutoAssign: booking=%s rejected by status machine: %v", booking.ID, err)
			return nil, err
		}
		uc.logger.Error("AutoAssign: failed to persist outcome for booking=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to persist outcome: %v", ErrInternal, err)
	}

	if uc.metrics != nil {
		uc.metrics.AutoAssignOutcome(d.outcome)
	}

	// 8. Формируем ответ
	resp := &Response{
		BookingID:              booking.ID,
		MatchScore:             matchScore,
		Candidates:             top,
		RequiresManualApproval: !d.medicID.Valid,
		Status:                 domain.StatusPending,
		Outcome:                d.outcome,
	}
	if d.medicID.Valid {
		resp.AssignedMedicID = ptr.Ptr(d.medicID.UUID)
		resp.Status = domain.StatusAssigned
		uc.logger.Info("AutoAssign: booking=%s assigned to medic=%s, score=%.1f", booking.ID, d.medicID.UUID, *matchScore)
	} else {
		resp.Reason = ptr.Ptr(d.reason)
		uc.logger.Info("AutoAssign: booking=%s requires manual approval: %s", booking.ID, d.reason)
	}

	return resp, nil
}

// decide сравнивает с порогом только лучшего кандидата
func (uc *UseCase) decide(ranked []*domain.Candidate) decision {
	if len(ranked) == 0 {
		return decision{reason: domain.ReasonNoCandidates, outcome: OutcomeNoCandidates}
	}

	best := ranked[0]
	if best.Score.Total < uc.settings.Threshold {
		return decision{reason: domain.ReasonLowScore, outcome: OutcomeLowScore}
	}

	return decision{
		medicID: uuid.NullUUID{UUID: best.Medic.ID, Valid: true},
		outcome: OutcomeAssigned,
	}
}

// medicTaken берёт блокировку (медик, дата) и перепроверяет, что день медика свободен
func (uc *UseCase) medicTaken(ctx context.Context, medicID uuid.UUID, booking *domain.Booking) (bool, error) {
	if err := uc.bookingRepo.LockMedicDay(ctx, medicID, booking.ShiftDate); err != nil {
		return false, fmt.Errorf("lock medic day: %w", err)
	}

	sameDay, err := uc.bookingRepo.List(ctx, domain.BookingFilter{
		MedicID:   &medicID,
		StartDate: &booking.ShiftDate,
		EndDate:   &booking.ShiftDate,
		Statuses:  domain.ReservedStatuses,
		ExcludeID: &booking.ID,
	})
	if err != nil {
		return false, fmt.Errorf("recheck medic day: %w", err)
	}

	return len(sameDay) > 0, nil
}
