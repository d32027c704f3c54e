package tracker

import (
	"sort"
	"strings"
	"time"

	"dietstreak/internal/diet"
)

// HistoryEntry summarizes one stored day.
type HistoryEntry struct {
	Date         string      `json:"date"`
	Status       diet.Status `json:"status"`
	Completed    int         `json:"completed"`
	Total        int         `json:"total"`
	WaterGlasses int         `json:"waterGlasses"`
	WaterGoal    int         `json:"waterGoal"`
	PerfectDay   bool        `json:"perfectDay"`
}

// History lists the stored records of month's calendar month in date order.
func (s *Service) History(month time.Time) ([]HistoryEntry, error) {
	records, err := s.store.LoadRecords()
	if err != nil {
		return nil, err
	}

	prefix := diet.StartOfMonth(diet.CalendarDay(month)).Format("2006-01-")
	entries := []HistoryEntry{}
	for date, r := range records {
		if !strings.HasPrefix(date, prefix) {
			continue
		}
		completed, total := r.Counts()
		entries = append(entries, HistoryEntry{
			Date:         date,
			Status:       r.Status(),
			Completed:    completed,
			Total:        total,
			WaterGlasses: r.WaterGlasses,
			WaterGoal:    r.WaterGoal,
			PerfectDay:   r.IsPerfectDay(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
	return entries, nil
}

// MissedItem is an incomplete item whose scheduled time has passed.
type MissedItem struct {
	Item diet.DietItem
	Due  time.Time
}

// MissedItems returns today's incomplete items scheduled more than grace
// before now, in checklist order.
func (s *Service) MissedItems(grace time.Duration) ([]MissedItem, error) {
	r, err := s.Today()
	if err != nil {
		return nil, err
	}

	now := s.Now()
	y, m, d := now.Date()
	var missed []MissedItem
	for _, it := range r.Items {
		if it.Completed {
			continue
		}
		clock, err := time.Parse("15:04", it.Time)
		if err != nil {
			continue
		}
		due := time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, now.Location())
		if now.Sub(due) > grace {
			missed = append(missed, MissedItem{Item: it, Due: due})
		}
	}
	return missed, nil
}
