package auto_assign

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/internal/service/matching"
)

// Исходы автоназначения (метка метрики)
const (
	OutcomeAssigned       = "assigned"
	OutcomeNoCandidates   = "no_candidates"
	OutcomeLowScore       = "low_score"
	OutcomeCandidateTaken = "candidate_taken"
)

// Settings параметры подбора, внедряются из конфигурации
type Settings struct {
	Threshold     float64 // минимальная оценка лучшего кандидата для автоназначения
	TopCandidates int     // сколько кандидатов попадает в отчёт и match_criteria
}

// DefaultSettings порог 50 баллов, топ-5
func DefaultSettings() Settings {
	return Settings{
		Threshold:     50,
		TopCandidates: matching.DefaultTopCandidates,
	}
}

// Request модель запроса на автоназначение
type Request struct {
	BookingID uuid.UUID
}

// Response итог автоназначения: либо назначенный медик, либо ручное подтверждение с причиной
type Response struct {
	BookingID              uuid.UUID
	AssignedMedicID        *uuid.UUID // nil - требуется ручное подтверждение
	MatchScore             *float64   // оценка лучшего кандидата, nil если кандидатов нет
	Candidates             []*domain.Candidate
	RequiresManualApproval bool
	Reason                 *string
	Status                 domain.BookingStatus
	Outcome                string
}
