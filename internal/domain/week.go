package domain

import "time"

// DateOnly strips the clock, keeping the calendar date in UTC
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate compares calendar dates ignoring clock and zone
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// WeekBounds returns Monday and Sunday of the ISO week containing date
func WeekBounds(date time.Time) (monday, sunday time.Time) {
	day := DateOnly(date)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	monday = day.AddDate(0, 0, -offset)
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// InWeek reports whether date falls into the ISO week starting at monday
func InWeek(date, monday time.Time) bool {
	d := DateOnly(date)
	m := DateOnly(monday)
	return !d.Before(m) && d.Before(m.AddDate(0, 0, 7))
}
