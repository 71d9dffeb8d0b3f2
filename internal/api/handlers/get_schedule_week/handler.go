package get_schedule_week

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AssignmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/internal/service/schedule"
)

const msgInvalidWeek = "некорректный параметр week, ожидается YYYY-MM-DD"

type Handler struct {
	service ScheduleService
	logger  Logger
	now     func() time.Time
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// Handle GET /api/v1/schedule-board?week=YYYY-MM-DD
// Без параметра week возвращается текущая неделя.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := h.now()
	if raw := r.URL.Query().Get("week"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /schedule-board - Invalid week: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidWeek)
			return
		}
		date = parsed
	}

	week, err := h.service.GetWeek(r.Context(), date)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidWeek)
			return
		}
		h.logger.Error("GET /schedule-board - Failed to get week: date=%s, error=%v", date.Format(domain.DateFormat), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule-board - week=%s, bookings=%d", week.WeekStart, len(week.Bookings))
	handlers.RespondJSON(w, http.StatusOK, week)
}
