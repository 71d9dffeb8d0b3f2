package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	territoryRepo "github.com/m04kA/SMC-AssignmentService/internal/infra/storage/territory"
)

var shiftDate = time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC) // Wednesday

func newBooking() *domain.Booking {
	return &domain.Booking{
		ID:           uuid.New(),
		SitePostcode: "SW1A 1AA",
		ShiftDate:    shiftDate,
		StartTime:    "08:00",
		EndTime:      "16:00",
		Status:       domain.StatusPending,
	}
}

func newMedic(name string) *domain.Medic {
	return &domain.Medic{
		ID:               uuid.New(),
		FirstName:        name,
		HomePostcode:     "SE1 7PB",
		AvailableForWork: true,
	}
}

func TestFilterCandidates(t *testing.T) {
	booking := newBooking()
	booking.ConfinedSpaceRequired = true

	ok := newMedic("ok")
	ok.HasConfinedSpaceCert = true

	notWorking := newMedic("not working")
	notWorking.HasConfinedSpaceCert = true
	notWorking.AvailableForWork = false

	onLeave := newMedic("on leave")
	onLeave.HasConfinedSpaceCert = true
	leaveEnd := shiftDate
	onLeave.UnavailableUntil = &leaveEnd

	backFromLeave := newMedic("back from leave")
	backFromLeave.HasConfinedSpaceCert = true
	yesterday := shiftDate.AddDate(0, 0, -1)
	backFromLeave.UnavailableUntil = &yesterday

	noCert := newMedic("no cert")

	busy := newMedic("busy")
	busy.HasConfinedSpaceCert = true

	occupied := map[uuid.UUID]struct{}{busy.ID: {}}

	got := FilterCandidates([]*domain.Medic{ok, notWorking, onLeave, backFromLeave, noCert, busy}, booking, occupied)

	assert.Equal(t, []*domain.Medic{ok, backFromLeave}, got)
}

func TestFilterCandidates_TraumaRequired(t *testing.T) {
	booking := newBooking()
	booking.TraumaSpecialistRequired = true

	trauma := newMedic("trauma")
	trauma.HasTraumaCert = true
	plain := newMedic("plain")

	got := FilterCandidates([]*domain.Medic{plain, trauma}, booking, nil)

	require.Len(t, got, 1)
	assert.Equal(t, trauma.ID, got[0].ID)
}

func TestService_EligibleMedics_StoreFailureYieldsEmptySet(t *testing.T) {
	svc := NewService(
		&mockMedicRepo{ListAllFunc: func(ctx context.Context) ([]*domain.Medic, error) {
			return nil, errors.New("connection reset")
		}},
		&mockBookingRepo{},
		nopLogger{},
	)

	got := svc.EligibleMedics(context.Background(), newBooking())

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestService_EligibleMedics_ExcludesSameDayBookings(t *testing.T) {
	free, busy := newMedic("free"), newMedic("busy")
	var gotStatuses []domain.BookingStatus

	svc := NewService(
		&mockMedicRepo{ListAllFunc: func(ctx context.Context) ([]*domain.Medic, error) {
			return []*domain.Medic{free, busy}, nil
		}},
		&mockBookingRepo{MedicIDsBookedOnFunc: func(ctx context.Context, date time.Time, statuses []domain.BookingStatus) ([]uuid.UUID, error) {
			gotStatuses = statuses
			return []uuid.UUID{busy.ID}, nil
		}},
		nopLogger{},
	)

	got := svc.EligibleMedics(context.Background(), newBooking())

	assert.Equal(t, []*domain.Medic{free}, got)
	assert.Equal(t, domain.OccupyingStatuses, gotStatuses)
}

func TestScorer_ReferenceScenario(t *testing.T) {
	booking := newBooking()
	medic := newMedic("reference")
	medic.HasTraumaCert = true
	medic.HasConfinedSpaceCert = true
	medic.StarRating = 4.5

	var gotSector string
	scorer := NewScorer(
		&mockBookingRepo{},
		&mockTerritoryRepo{GetBySectorFunc: func(ctx context.Context, sector string) (*domain.Territory, error) {
			gotSector = sector
			return &domain.Territory{
				PostcodeSector:   sector,
				PrimaryMedicID:   uuid.NullUUID{UUID: uuid.New(), Valid: true},
				SecondaryMedicID: uuid.NullUUID{UUID: medic.ID, Valid: true},
			}, nil
		}},
		&mockEstimator{EstimateFunc: func(ctx context.Context, origin, destination string) (*domain.TravelEstimate, error) {
			return &domain.TravelEstimate{Minutes: 20, Miles: 8.4}, nil
		}},
		nopLogger{},
	)

	got := scorer.Score(context.Background(), booking, []*domain.Medic{medic})

	require.Len(t, got, 1)
	c := got[0]
	assert.Equal(t, "SW1A", gotSector)
	assert.Equal(t, 30.0, c.Score.Distance)
	assert.Equal(t, 25.0, c.Score.Utilization)
	assert.Equal(t, 15.0, c.Score.Qualifications)
	assert.Equal(t, 18.0, c.Score.Rating)
	assert.Equal(t, 5.0, c.Score.Territory)
	assert.Equal(t, 93.0, c.Score.Total)
	assert.Equal(t, 20, c.TravelMinutes)
	assert.False(t, c.TravelFallback)
}

func TestScorer_PartialFailuresDoNotAbortBatch(t *testing.T) {
	booking := newBooking()
	flaky, steady := newMedic("flaky"), newMedic("steady")

	scorer := NewScorer(
		&mockBookingRepo{CountBookedDaysFunc: func(ctx context.Context, medicID uuid.UUID, from, to time.Time, statuses []domain.BookingStatus) (int, error) {
			if medicID == flaky.ID {
				return 0, errors.New("timeout")
			}
			assert.Equal(t, time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC), from)
			assert.Equal(t, time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC), to)
			return 2, nil
		}},
		&mockTerritoryRepo{GetBySectorFunc: func(ctx context.Context, sector string) (*domain.Territory, error) {
			return nil, errors.New("territory table unavailable")
		}},
		&mockEstimator{EstimateFunc: func(ctx context.Context, origin, destination string) (*domain.TravelEstimate, error) {
			return nil, errors.New("estimator down")
		}},
		nopLogger{},
		WithWorkers(1),
	)

	got := scorer.Score(context.Background(), booking, []*domain.Medic{flaky, steady})

	require.Len(t, got, 2)
	for _, c := range got {
		assert.True(t, c.TravelFallback)
		assert.Equal(t, 60, c.TravelMinutes)
		assert.Equal(t, 30.0, c.DistanceMiles)
		assert.Equal(t, 10.0, c.Score.Distance)
		assert.Equal(t, 0.0, c.Score.Territory)
	}
	assert.Equal(t, flaky.ID, got[0].Medic.ID)
	assert.Equal(t, 25.0, got[0].Score.Utilization)
	assert.InDelta(t, 15.0, got[1].Score.Utilization, 1e-9)
	assert.Equal(t, 2, got[1].BookedDaysThisWeek)
}

func TestScorer_MissingTerritoryIsSilent(t *testing.T) {
	medic := newMedic("m")
	scorer := NewScorer(
		&mockBookingRepo{},
		&mockTerritoryRepo{GetBySectorFunc: func(ctx context.Context, sector string) (*domain.Territory, error) {
			return nil, territoryRepo.ErrTerritoryNotFound
		}},
		&mockEstimator{EstimateFunc: func(ctx context.Context, origin, destination string) (*domain.TravelEstimate, error) {
			return &domain.TravelEstimate{Minutes: 100}, nil
		}},
		nopLogger{},
	)

	got := scorer.Score(context.Background(), newBooking(), []*domain.Medic{medic})

	assert.Equal(t, 0.0, got[0].Score.Territory)
	assert.Equal(t, 0.0, got[0].Score.Distance, "distance score is floored at zero")
}

func TestComponentScores(t *testing.T) {
	w := DefaultWeights()

	assert.Equal(t, 40.0, DistanceScore(0, w))
	assert.Equal(t, 0.0, DistanceScore(95, w))

	assert.Equal(t, 25.0, UtilizationScore(0, w))
	assert.InDelta(t, 0.0, UtilizationScore(5, w), 1e-9)
	assert.InDelta(t, -5.0, UtilizationScore(6, w), 1e-9, "overbooked medics go negative")

	unrated := &domain.Medic{}
	assert.Equal(t, 15.0, RatingScore(unrated, w))
	assert.Equal(t, 20.0, RatingScore(&domain.Medic{StarRating: 5}, w))
	assert.Equal(t, 4.0, RatingScore(&domain.Medic{StarRating: 1}, w))

	assert.Equal(t, 5.0, QualificationsScore(unrated, w))
	assert.Equal(t, 10.0, QualificationsScore(&domain.Medic{HasTraumaCert: true}, w))

	assert.Equal(t, 10.0, TerritoryBonus(domain.TerritoryRolePrimary, w))
	assert.Equal(t, 5.0, TerritoryBonus(domain.TerritoryRoleSecondary, w))
	assert.Equal(t, 0.0, TerritoryBonus(domain.TerritoryRoleNone, w))
}

func candidateWithScore(total float64) *domain.Candidate {
	return &domain.Candidate{Medic: &domain.Medic{ID: uuid.New()}, Score: domain.ScoreBreakdown{Total: total}}
}

func TestRank(t *testing.T) {
	low := candidateWithScore(58.2)
	high := candidateWithScore(61.5)
	tieA := candidateWithScore(40)
	tieB := candidateWithScore(40)

	ranked := Rank([]*domain.Candidate{tieA, low, nil, high, tieB})

	assert.Equal(t, []*domain.Candidate{high, low, tieA, tieB}, ranked)
}

func TestTop(t *testing.T) {
	var ranked []*domain.Candidate
	for i := 0; i < 7; i++ {
		ranked = append(ranked, candidateWithScore(float64(100-i)))
	}

	assert.Len(t, Top(ranked, DefaultTopCandidates), 5)
	assert.Len(t, Top(ranked[:3], DefaultTopCandidates), 3)
}
