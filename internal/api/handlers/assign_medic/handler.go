package assign_medic

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AssignmentService/internal/api/handlers"
	assignMedic "github.com/m04kA/SMC-AssignmentService/internal/usecase/assign_medic"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgMedicNotFound      = "медик не найден"
	msgNotAssignable      = "бронирование нельзя подтвердить в текущем статусе"
	msgBlockingConflicts  = "назначение невозможно: есть критические конфликты"
	msgWarnings           = "есть предупреждения, требуется override_warnings"
	msgMedicUnavailable   = "медик уже занят в этот день"
	msgConcurrentUpdate   = "бронирование было изменено, обновите данные"
)

type Handler struct {
	useCase AssignMedicUseCase
	logger  Logger
}

func NewHandler(useCase AssignMedicUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/assign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/assign - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req AssignMedicRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/assign - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/assign - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictsErr *assignMedic.ConflictsError

		switch {
		case errors.As(err, &conflictsErr):
			msg := msgWarnings
			if errors.Is(err, assignMedic.ErrBlockingConflicts) {
				msg = msgBlockingConflicts
			}
			h.logger.Warn("POST /bookings/{id}/assign - Rejected: booking_id=%s, medic_id=%s, %s",
				bookingID, req.MedicID, conflictsErr.Report.Recommendation)
			handlers.RespondErrorWithDetails(w, http.StatusConflict, msg, handlers.FromConflictReport(conflictsErr.Report))

		case errors.Is(err, assignMedic.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, assignMedic.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/assign - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, assignMedic.ErrMedicNotFound):
			h.logger.Warn("POST /bookings/{id}/assign - Medic not found: medic_id=%s", req.MedicID)
			handlers.RespondNotFound(w, msgMedicNotFound)

		case errors.Is(err, assignMedic.ErrBookingNotAssignable):
			handlers.RespondConflict(w, msgNotAssignable)

		case errors.Is(err, assignMedic.ErrMedicUnavailable):
			handlers.RespondConflict(w, msgMedicUnavailable)

		case errors.Is(err, assignMedic.ErrConcurrentUpdate):
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("POST /bookings/{id}/assign - Failed: booking_id=%s, medic_id=%s, error=%v",
				bookingID, req.MedicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/assign - Assigned: booking_id=%s, medic_id=%s, warnings=%d",
		bookingID, req.MedicID, result.Report.Warnings)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
