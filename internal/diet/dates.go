package diet

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date used for record keys.
const DateLayout = "2006-01-02"

// DateKey returns the calendar date of t in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string into midnight UTC of that date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return d, nil
}

// CalendarDay returns midnight UTC of t's calendar date as seen in t's
// location. All day arithmetic runs on these values so DST never shifts a day.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays moves a calendar day by n days, rolling months and years.
func AddDays(day time.Time, n int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, time.UTC)
}

// Yesterday returns the date key of the day before t's calendar date.
func Yesterday(t time.Time) string {
	return DateKey(AddDays(CalendarDay(t), -1))
}

// StartOfWeek returns the most recent day on or before day that falls on
// weekStart.
func StartOfWeek(day time.Time, weekStart time.Weekday) time.Time {
	day = CalendarDay(day)
	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return AddDays(day, -offset)
}

// StartOfMonth returns the first day of day's month.
func StartOfMonth(day time.Time) time.Time {
	y, m, _ := day.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of calendar days in day's month.
func DaysInMonth(day time.Time) int {
	y, m, _ := day.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid weekday %q", s)
}

// ValidClock reports whether s is a 24-hour HH:MM time.
func ValidClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}
