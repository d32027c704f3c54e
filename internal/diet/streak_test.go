package diet

import (
	"testing"
	"time"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q) error = %v", s, err)
	}
	return d
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name     string
		start    StreakRecord
		today    string
		complete bool
		want     StreakRecord
	}{
		{
			name:     "continues from yesterday",
			start:    StreakRecord{CurrentStreak: 3, BestStreak: 3, LastActiveDate: "2024-01-05"},
			today:    "2024-01-06",
			complete: true,
			want:     StreakRecord{CurrentStreak: 4, BestStreak: 4, LastActiveDate: "2024-01-06"},
		},
		{
			name:     "gap resets to one",
			start:    StreakRecord{CurrentStreak: 3, BestStreak: 5, LastActiveDate: "2024-01-05"},
			today:    "2024-01-08",
			complete: true,
			want:     StreakRecord{CurrentStreak: 1, BestStreak: 5, LastActiveDate: "2024-01-08"},
		},
		{
			name:     "fresh start",
			start:    StreakRecord{},
			today:    "2024-01-08",
			complete: true,
			want:     StreakRecord{CurrentStreak: 1, BestStreak: 1, LastActiveDate: "2024-01-08"},
		},
		{
			name:     "re-confirming today is idempotent",
			start:    StreakRecord{CurrentStreak: 4, BestStreak: 4, LastActiveDate: "2024-01-06"},
			today:    "2024-01-06",
			complete: true,
			want:     StreakRecord{CurrentStreak: 4, BestStreak: 4, LastActiveDate: "2024-01-06"},
		},
		{
			name:     "incomplete after gap breaks streak",
			start:    StreakRecord{CurrentStreak: 3, BestStreak: 3, LastActiveDate: "2024-01-05"},
			today:    "2024-01-08",
			complete: false,
			want:     StreakRecord{CurrentStreak: 0, BestStreak: 3, LastActiveDate: "2024-01-05"},
		},
		{
			name:     "incomplete the day after is a grace period",
			start:    StreakRecord{CurrentStreak: 3, BestStreak: 3, LastActiveDate: "2024-01-05"},
			today:    "2024-01-06",
			complete: false,
			want:     StreakRecord{CurrentStreak: 3, BestStreak: 3, LastActiveDate: "2024-01-05"},
		},
		{
			name:     "un-completing today keeps the count",
			start:    StreakRecord{CurrentStreak: 2, BestStreak: 2, LastActiveDate: "2024-01-06"},
			today:    "2024-01-06",
			complete: false,
			want:     StreakRecord{CurrentStreak: 2, BestStreak: 2, LastActiveDate: "2024-01-06"},
		},
		{
			name:     "incomplete with no history",
			start:    StreakRecord{},
			today:    "2024-01-06",
			complete: false,
			want:     StreakRecord{},
		},
		{
			name:     "month boundary",
			start:    StreakRecord{CurrentStreak: 1, BestStreak: 1, LastActiveDate: "2024-01-31"},
			today:    "2024-02-01",
			complete: true,
			want:     StreakRecord{CurrentStreak: 2, BestStreak: 2, LastActiveDate: "2024-02-01"},
		},
		{
			name:     "year boundary",
			start:    StreakRecord{CurrentStreak: 7, BestStreak: 9, LastActiveDate: "2023-12-31"},
			today:    "2024-01-01",
			complete: true,
			want:     StreakRecord{CurrentStreak: 8, BestStreak: 9, LastActiveDate: "2024-01-01"},
		},
		{
			name:     "leap day",
			start:    StreakRecord{CurrentStreak: 1, BestStreak: 1, LastActiveDate: "2024-02-28"},
			today:    "2024-02-29",
			complete: true,
			want:     StreakRecord{CurrentStreak: 2, BestStreak: 2, LastActiveDate: "2024-02-29"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advance(tt.start, day(t, tt.today), tt.complete)
			if got != tt.want {
				t.Errorf("Advance() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAdvance_MonthBoundaryConsecutiveDays(t *testing.T) {
	s := StreakRecord{}
	s = Advance(s, day(t, "2024-01-31"), true)
	s = Advance(s, day(t, "2024-02-01"), true)
	if s.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", s.CurrentStreak)
	}
}

func TestAdvance_LocalTimeAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// 2024-03-10 is 23 hours long in New York.
	s := StreakRecord{CurrentStreak: 1, BestStreak: 1, LastActiveDate: "2024-03-10"}
	got := Advance(s, time.Date(2024, 3, 11, 0, 30, 0, 0, loc), true)
	if got.CurrentStreak != 2 || got.LastActiveDate != "2024-03-11" {
		t.Errorf("Advance() = %+v, want streak 2 on 2024-03-11", got)
	}
}

func TestAdvance_BestStreakNeverDecreases(t *testing.T) {
	steps := []struct {
		date     string
		complete bool
	}{
		{"2024-01-01", true},
		{"2024-01-02", true},
		{"2024-01-03", true},
		{"2024-01-04", false},
		{"2024-01-06", false},
		{"2024-01-07", true},
		{"2024-01-07", false},
		{"2024-01-08", true},
		{"2024-01-20", false},
		{"2024-01-21", true},
	}

	s := StreakRecord{}
	best := 0
	for _, step := range steps {
		s = Advance(s, day(t, step.date), step.complete)
		if s.BestStreak < best {
			t.Fatalf("BestStreak decreased to %d after %s", s.BestStreak, step.date)
		}
		if s.BestStreak < s.CurrentStreak {
			t.Fatalf("BestStreak %d < CurrentStreak %d after %s", s.BestStreak, s.CurrentStreak, step.date)
		}
		best = s.BestStreak
	}
	if best != 3 {
		t.Errorf("final BestStreak = %d, want 3", best)
	}
}
