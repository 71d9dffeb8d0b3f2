package assign_medic

import (
	"context"

	assignMedic "github.com/m04kA/SMC-AssignmentService/internal/usecase/assign_medic"
)

type AssignMedicUseCase interface {
	Execute(ctx context.Context, req *assignMedic.Request) (*assignMedic.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
