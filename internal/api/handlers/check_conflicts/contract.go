package check_conflicts

import (
	"context"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	checkConflicts "github.com/m04kA/SMC-AssignmentService/internal/usecase/check_conflicts"
)

type CheckConflictsUseCase interface {
	Execute(ctx context.Context, req *checkConflicts.Request) (*domain.ConflictReport, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
