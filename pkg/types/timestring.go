package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

const timeLayout = "15:04"

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString время суток в формате HH:MM (локальные "настенные часы" смены)
type TimeString string

// NewTimeString собирает TimeString из часов и минут
func NewTimeString(hour, minute int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", hour, minute))
}

// NewTimeStringFromString парсит строку HH:MM (секунды HH:MM:SS отбрасываются)
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(normalize(s))
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет формат HH:MM
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// AddMinutes сдвигает время, оборачиваясь через полночь
func (t TimeString) AddMinutes(minutes int) TimeString {
	total := (t.Minutes() + minutes) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}
	return NewTimeString(total/60, total%60)
}

// On возвращает момент времени на указанную дату в заданной зоне
func (t TimeString) On(date time.Time, loc *time.Location) time.Time {
	m := t.Minutes()
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, loc)
}

func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) String() string {
	return string(t)
}

// Scan реализует sql.Scanner (колонки TIME приходят как "HH:MM:SS")
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		*t = TimeString(normalize(v))
	case []byte:
		*t = TimeString(normalize(string(v)))
	case time.Time:
		*t = NewTimeString(v.Hour(), v.Minute())
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
	return t.Validate()
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

func normalize(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > len(timeLayout) && strings.Count(s, ":") == 2 {
		s = s[:strings.LastIndex(s, ":")]
	}
	return s
}
