package matching

import (
	"context"
	"errors"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	territoryRepo "github.com/m04kA/SMC-AssignmentService/internal/infra/storage/territory"
)

const defaultScoringWorkers = 8

// Scorer считает оценку пригодности каждого кандидата
type Scorer struct {
	bookingRepo   BookingRepository
	territoryRepo TerritoryRepository
	estimator     TravelEstimator
	weights       Weights
	fallback      TravelFallback
	workers       int
	logger        Logger
}

// ScorerOption настройка Scorer
type ScorerOption func(*Scorer)

// WithWeights заменяет веса по умолчанию
func WithWeights(w Weights) ScorerOption {
	return func(s *Scorer) { s.weights = w }
}

// WithTravelFallback заменяет оценку пути при сбое сервиса
func WithTravelFallback(f TravelFallback) ScorerOption {
	return func(s *Scorer) { s.fallback = f }
}

// WithWorkers ограничивает число параллельно оцениваемых кандидатов
func WithWorkers(n int) ScorerOption {
	return func(s *Scorer) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewScorer создает новый экземпляр Scorer
func NewScorer(
	bookingRepo BookingRepository,
	territoryRepo TerritoryRepository,
	estimator TravelEstimator,
	logger Logger,
	opts ...ScorerOption,
) *Scorer {
	s := &Scorer{
		bookingRepo:   bookingRepo,
		territoryRepo: territoryRepo,
		estimator:     estimator,
		weights:       DefaultWeights(),
		fallback:      DefaultTravelFallback(),
		workers:       defaultScoringWorkers,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score оценивает кандидатов для бронирования. Результат в порядке входа.
// Сбой внешних вызовов по одному кандидату не прерывает пакет:
// путь подменяется fallback-оценкой, загрузка и территория считаются нулевыми.
func (s *Scorer) Score(ctx context.Context, booking *domain.Booking, medics []*domain.Medic) []*domain.Candidate {
	territory := s.lookupTerritory(ctx, booking)
	monday, sunday := domain.WeekBounds(booking.ShiftDate)

	candidates := make([]*domain.Candidate, len(medics))

	var g errgroup.Group
	g.SetLimit(s.workers)

	for i, medic := range medics {
		g.Go(func() error {
			candidates[i] = s.scoreOne(ctx, booking, medic, territory, monday, sunday)
			return nil
		})
	}
	_ = g.Wait()

	return candidates
}

func (s *Scorer) scoreOne(
	ctx context.Context,
	booking *domain.Booking,
	medic *domain.Medic,
	territory *domain.Territory,
	monday, sunday time.Time,
) *domain.Candidate {
	candidate := &domain.Candidate{Medic: medic}

	// Время в пути: при ошибке - консервативная оценка
	estimate, err := s.estimator.Estimate(ctx, medic.HomePostcode, booking.SitePostcode)
	if err != nil || estimate == nil {
		s.logger.Warn("Score: booking=%s medic=%s travel estimate failed, using fallback %dmin/%.0fmi: %v",
			booking.ID, medic.ID, s.fallback.Minutes, s.fallback.Miles, err)
		candidate.TravelMinutes = s.fallback.Minutes
		candidate.DistanceMiles = s.fallback.Miles
		candidate.TravelFallback = true
	} else {
		candidate.TravelMinutes = estimate.Minutes
		candidate.DistanceMiles = estimate.Miles
	}

	// Загрузка за ISO-неделю смены
	bookedDays, err := s.bookingRepo.CountBookedDays(ctx, medic.ID, monday, sunday, domain.OccupyingStatuses)
	if err != nil {
		s.logger.Warn("Score: booking=%s medic=%s failed to count booked days, assuming 0: %v",
			booking.ID, medic.ID, err)
		bookedDays = 0
	}
	candidate.BookedDaysThisWeek = bookedDays

	candidate.Score = domain.ScoreBreakdown{
		Distance:       DistanceScore(candidate.TravelMinutes, s.weights),
		Utilization:    UtilizationScore(bookedDays, s.weights),
		Qualifications: QualificationsScore(medic, s.weights),
		Rating:         RatingScore(medic, s.weights),
		Territory:      TerritoryBonus(territory.RoleOf(medic.ID), s.weights),
	}
	candidate.Score.Total = candidate.Score.Sum()

	return candidate
}

func (s *Scorer) lookupTerritory(ctx context.Context, booking *domain.Booking) *domain.Territory {
	key := domain.PostcodeSectorKey(booking.SitePostcode)
	territory, err := s.territoryRepo.GetBySector(ctx, key)
	if errors.Is(err, territoryRepo.ErrTerritoryNotFound) {
		return nil
	}
	if err != nil {
		s.logger.Warn("Score: booking=%s territory lookup sector=%s failed, bonus disabled: %v", booking.ID, key, err)
		return nil
	}
	return territory
}

// DistanceScore max(0, DistanceMax - minutes/DistanceMinutesPerPoint)
func DistanceScore(minutes int, w Weights) float64 {
	return math.Max(0, w.DistanceMax-float64(minutes)/w.DistanceMinutesPerPoint)
}

// UtilizationScore UtilizationMax * (1 - bookedDays/WorkingDays).
// Не ограничена снизу: больше рабочих дней - отрицательная оценка.
func UtilizationScore(bookedDays int, w Weights) float64 {
	utilizationPct := float64(bookedDays) / float64(w.WorkingDays) * 100
	return w.UtilizationMax * (1 - utilizationPct/100)
}

// QualificationsScore база + бонус за каждый сертификат, независимо от требований бронирования
func QualificationsScore(m *domain.Medic, w Weights) float64 {
	score := w.QualificationsBase
	if m.HasConfinedSpaceCert {
		score += w.QualificationCert
	}
	if m.HasTraumaCert {
		score += w.QualificationCert
	}
	return score
}

// RatingScore звёзды * RatingPerStar, без рейтинга - UnratedRating
func RatingScore(m *domain.Medic, w Weights) float64 {
	if !m.IsRated() {
		return w.UnratedRating
	}
	return m.StarRating * w.RatingPerStar
}

// TerritoryBonus бонус за основную или резервную роль на территории
func TerritoryBonus(role domain.TerritoryRole, w Weights) float64 {
	switch role {
	case domain.TerritoryRolePrimary:
		return w.TerritoryPrimary
	case domain.TerritoryRoleSecondary:
		return w.TerritorySecondary
	default:
		return 0
	}
}
