package auto_assign

import (
	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	autoAssign "github.com/m04kA/SMC-AssignmentService/internal/usecase/auto_assign"
)

// CandidateResponse кандидат из топа ранжирования
type CandidateResponse struct {
	MedicID           string                `json:"medic_id"`
	MedicName         string                `json:"medic_name"`
	Score             float64               `json:"score"`
	Breakdown         domain.ScoreBreakdown `json:"breakdown"`
	TravelTimeMinutes int                   `json:"travel_time_minutes"`
	DistanceMiles     float64               `json:"distance_miles"`
}

// AutoAssignResponse HTTP response model
type AutoAssignResponse struct {
	BookingID              string              `json:"booking_id"`
	AssignedMedicID        *string             `json:"assigned_medic_id"`
	MatchScore             *float64            `json:"match_score"`
	Candidates             []CandidateResponse `json:"candidates"`
	RequiresManualApproval bool                `json:"requires_manual_approval"`
	Reason                 *string             `json:"reason"`
	Status                 string              `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *autoAssign.Response) *AutoAssignResponse {
	out := &AutoAssignResponse{
		BookingID:              resp.BookingID.String(),
		MatchScore:             resp.MatchScore,
		Candidates:             make([]CandidateResponse, 0, len(resp.Candidates)),
		RequiresManualApproval: resp.RequiresManualApproval,
		Reason:                 resp.Reason,
		Status:                 string(resp.Status),
	}
	if resp.AssignedMedicID != nil {
		id := resp.AssignedMedicID.String()
		out.AssignedMedicID = &id
	}
	for _, c := range resp.Candidates {
		out.Candidates = append(out.Candidates, CandidateResponse{
			MedicID:           c.Medic.ID.String(),
			MedicName:         c.Medic.FullName(),
			Score:             c.Score.Total,
			Breakdown:         c.Score,
			TravelTimeMinutes: c.TravelMinutes,
			DistanceMiles:     c.DistanceMiles,
		})
	}
	return out
}
