package diet

import (
	"testing"
	"time"
)

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		date      string
		weekStart time.Weekday
		want      string
	}{
		{"2024-01-10", time.Monday, "2024-01-08"}, // Wednesday
		{"2024-01-08", time.Monday, "2024-01-08"},
		{"2024-01-07", time.Monday, "2024-01-01"}, // Sunday
		{"2024-01-07", time.Sunday, "2024-01-07"},
		{"2024-01-03", time.Monday, "2024-01-01"},
		{"2024-01-01", time.Saturday, "2023-12-30"},
	}
	for _, tt := range tests {
		got := DateKey(StartOfWeek(day(t, tt.date), tt.weekStart))
		if got != tt.want {
			t.Errorf("StartOfWeek(%s, %s) = %s, want %s", tt.date, tt.weekStart, got, tt.want)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := map[string]int{
		"2024-02-10": 29,
		"2023-02-01": 28,
		"2024-04-30": 30,
		"2024-12-31": 31,
	}
	for date, want := range tests {
		if got := DaysInMonth(day(t, date)); got != want {
			t.Errorf("DaysInMonth(%s) = %d, want %d", date, got, want)
		}
	}
}

func TestYesterday(t *testing.T) {
	if got := Yesterday(day(t, "2024-03-01")); got != "2024-02-29" {
		t.Errorf("Yesterday(2024-03-01) = %s", got)
	}
	if got := Yesterday(day(t, "2024-01-01")); got != "2023-12-31" {
		t.Errorf("Yesterday(2024-01-01) = %s", got)
	}
}

func TestParseWeekday(t *testing.T) {
	for in, want := range map[string]time.Weekday{"monday": time.Monday, "Sun": time.Sunday, " SAT ": time.Saturday} {
		got, err := ParseWeekday(in)
		if err != nil || got != want {
			t.Errorf("ParseWeekday(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseWeekday("someday"); err == nil {
		t.Error("ParseWeekday(someday) expected error")
	}
}

func TestValidClock(t *testing.T) {
	for s, want := range map[string]bool{"08:00": true, "20:30": true, "8:00": false, "24:00": false, "aa:bb": false} {
		if got := ValidClock(s); got != want {
			t.Errorf("ValidClock(%q) = %v, want %v", s, got, want)
		}
	}
}
