package auto_assign

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AssignmentService/internal/api/handlers"
	autoAssign "github.com/m04kA/SMC-AssignmentService/internal/usecase/auto_assign"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgBookingNotFound  = "бронирование не найдено"
	msgNotAssignable    = "бронирование не ожидает назначения медика"
	msgConcurrentUpdate = "бронирование было изменено, повторите запрос"
)

type Handler struct {
	useCase AutoAssignUseCase
	logger  Logger
}

func NewHandler(useCase AutoAssignUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/auto-assign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/auto-assign - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &autoAssign.Request{BookingID: bookingID})
	if err != nil {
		switch {
		case errors.Is(err, autoAssign.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/auto-assign - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, autoAssign.ErrBookingNotAssignable):
			h.logger.Warn("POST /bookings/{id}/auto-assign - Not assignable: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgNotAssignable)

		case errors.Is(err, autoAssign.ErrConcurrentUpdate):
			h.logger.Warn("POST /bookings/{id}/auto-assign - Concurrent update: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, autoAssign.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("POST /bookings/{id}/auto-assign - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/auto-assign - Done: booking_id=%s, outcome=%s", bookingID, result.Outcome)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
