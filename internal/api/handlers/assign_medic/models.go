package assign_medic

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/api/handlers"
	assignMedic "github.com/m04kA/SMC-AssignmentService/internal/usecase/assign_medic"
)

// AssignMedicRequest HTTP request model
type AssignMedicRequest struct {
	MedicID          string `json:"medic_id" validate:"required,uuid"`
	OverrideWarnings bool   `json:"override_warnings"`
	Version          *int64 `json:"version,omitempty" validate:"omitempty,min=0"`
}

// AssignMedicResponse HTTP response model
type AssignMedicResponse struct {
	BookingID string                           `json:"booking_id"`
	MedicID   string                           `json:"medic_id"`
	Status    string                           `json:"status"`
	Version   int64                            `json:"version"`
	Conflicts *handlers.ConflictReportResponse `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AssignMedicRequest) ToUseCaseRequest(bookingID uuid.UUID) (*assignMedic.Request, error) {
	medicID, err := uuid.Parse(r.MedicID)
	if err != nil {
		return nil, err
	}

	return &assignMedic.Request{
		BookingID:        bookingID,
		MedicID:          medicID,
		OverrideWarnings: r.OverrideWarnings,
		ExpectedVersion:  r.Version,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *assignMedic.Response) *AssignMedicResponse {
	return &AssignMedicResponse{
		BookingID: resp.BookingID.String(),
		MedicID:   resp.MedicID.String(),
		Status:    string(resp.Status),
		Version:   resp.Version,
		Conflicts: handlers.FromConflictReport(resp.Report),
	}
}
