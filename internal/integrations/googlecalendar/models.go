package googlecalendar

import (
	"time"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

// Status итог обращения к календарю
type Status string

const (
	// StatusChecked календарь прочитан, Busy содержит занятые интервалы
	StatusChecked Status = "checked"
	// StatusUnavailable проверка не выполнена, причина в Reason
	StatusUnavailable Status = "unavailable"
)

// BusyInterval занятый интервал из free/busy ответа
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Result результат проверки календаря медика. Ошибок клиент не возвращает:
// любая проблема (нет подключения, токен, таймаут, ответ API) даёт StatusUnavailable.
type Result struct {
	Status Status
	Busy   []BusyInterval
	Reason string
}

// Checked true, если календарь удалось прочитать
func (r Result) Checked() bool {
	return r.Status == StatusChecked
}

func unavailable(reason string) Result {
	return Result{Status: StatusUnavailable, Reason: reason}
}

// Overlapping возвращает занятые интервалы, пересекающиеся с окном смены
func (r Result) Overlapping(window domain.ShiftWindow) []BusyInterval {
	var overlapping []BusyInterval
	for _, busy := range r.Busy {
		if window.Overlaps(domain.ShiftWindow{Start: busy.Start, End: busy.End}) {
			overlapping = append(overlapping, busy)
		}
	}
	return overlapping
}
