package assign_medic

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

// Request модель запроса на ручное назначение медика
type Request struct {
	BookingID        uuid.UUID
	MedicID          uuid.UUID
	OverrideWarnings bool   // назначить несмотря на предупреждения
	ExpectedVersion  *int64 // версия, которую видел клиент; nil - не сверять
}

// Response результат ручного назначения
type Response struct {
	BookingID uuid.UUID
	MedicID   uuid.UUID
	Status    domain.BookingStatus
	Version   int64
	Report    *domain.ConflictReport
}
