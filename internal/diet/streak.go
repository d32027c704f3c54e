package diet

import "time"

// Advance applies one day's completion state to the streak.
//
// today is interpreted as a calendar date. A completed day extends a streak
// whose last active day was yesterday, starts a new one after a gap, and is
// idempotent when today was already counted. An incomplete day only matters
// once the last active day is older than yesterday: the streak drops to zero
// and LastActiveDate is kept.
func Advance(s StreakRecord, today time.Time, complete bool) StreakRecord {
	todayKey := DateKey(CalendarDay(today))
	yesterdayKey := Yesterday(today)
	last := s.LastActiveDate

	if !complete {
		if last != "" && last != todayKey && last != yesterdayKey {
			s.CurrentStreak = 0
		}
		return s
	}

	switch last {
	case yesterdayKey:
		s.CurrentStreak++
	case todayKey:
		// already counted
	default:
		s.CurrentStreak = 1
	}
	s.LastActiveDate = todayKey
	if s.CurrentStreak > s.BestStreak {
		s.BestStreak = s.CurrentStreak
	}
	return s
}
