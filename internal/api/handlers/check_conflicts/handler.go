package check_conflicts

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AssignmentService/internal/api/handlers"
	checkConflicts "github.com/m04kA/SMC-AssignmentService/internal/usecase/check_conflicts"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры смены"
	msgBookingNotFound    = "бронирование не найдено"
	msgMedicNotFound      = "медик не найден"
	msgDataUnavailable    = "не удалось получить данные для проверки конфликтов"
)

type Handler struct {
	useCase CheckConflictsUseCase
	logger  Logger
}

func NewHandler(useCase CheckConflictsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/conflicts/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckConflictsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /conflicts/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /conflicts/check - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	report, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkConflicts.ErrInvalidInput):
			h.logger.Warn("POST /conflicts/check - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, checkConflicts.ErrBookingNotFound):
			h.logger.Warn("POST /conflicts/check - Booking not found: booking_id=%s", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, checkConflicts.ErrMedicNotFound):
			h.logger.Warn("POST /conflicts/check - Medic not found: medic_id=%s", req.MedicID)
			handlers.RespondNotFound(w, msgMedicNotFound)

		default:
			// Без данных нельзя считать назначение безопасным
			h.logger.Error("POST /conflicts/check - Failed: booking_id=%s, medic_id=%s, error=%v",
				req.BookingID, req.MedicID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgDataUnavailable)
		}
		return
	}

	h.logger.Info("POST /conflicts/check - booking_id=%s, medic_id=%s, can_assign=%t, conflicts=%d",
		req.BookingID, req.MedicID, report.CanAssign, report.TotalConflicts)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromConflictReport(report))
}
