// Package tracker runs the day-to-day operations: it loads state through
// the storage repository, applies the pure functions from package diet and
// persists the result.
//
// Mutations return the updated record even when persisting it fails, so a
// caller can keep showing what the user did. The error still reports the
// failed write.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"dietstreak/internal/diet"
	"dietstreak/internal/logger"
	"dietstreak/internal/storage"
)

// Service is the tracker's entry point. It is not safe for concurrent use;
// each operation is one read-modify-write against the store.
type Service struct {
	store *storage.Storage
	now   func() time.Time
}

// New returns a Service backed by store.
func New(store *storage.Storage) *Service {
	return &Service{store: store, now: time.Now}
}

// SetNowFunc overrides the clock. Passing nil resets it to time.Now.
func (s *Service) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Now returns the current time according to the service clock.
func (s *Service) Now() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// TodayKey returns today's date key in local time.
func (s *Service) TodayKey() string {
	return diet.DateKey(s.Now())
}

// Storage exposes the repository for read-only consumers such as reports.
func (s *Service) Storage() *storage.Storage {
	return s.store
}

// EnsureDefaultPlan seeds the default plan when the registry is empty and
// points the active id at a plan when it is unset. Safe to call every start.
func (s *Service) EnsureDefaultPlan() error {
	plans, err := s.store.LoadPlans()
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		plans = []diet.DietPlan{diet.DefaultPlan()}
		if err := s.store.SavePlans(plans); err != nil {
			return err
		}
		logger.Info("seeded default plan", "id", diet.DefaultPlanID)
	}

	active, err := s.store.CurrentPlanID()
	if err != nil {
		return err
	}
	if active == "" {
		return s.store.SetCurrentPlanID(plans[0].ID)
	}
	return nil
}

// ActivePlan resolves the current plan, falling back to the first one.
func (s *Service) ActivePlan() (diet.DietPlan, error) {
	plans, err := s.store.LoadPlans()
	if err != nil {
		return diet.DietPlan{}, err
	}
	active, err := s.store.CurrentPlanID()
	if err != nil {
		return diet.DietPlan{}, err
	}
	return diet.ResolvePlan(plans, active)
}

// Record returns the stored record for date without creating one.
func (s *Service) Record(date string) (diet.DailyRecord, bool, error) {
	return s.store.GetRecord(date)
}

// GetOrCreate returns the record for date, instantiating it from the active
// plan and persisting it when absent.
func (s *Service) GetOrCreate(date string) (diet.DailyRecord, error) {
	if _, err := diet.ParseDate(date); err != nil {
		return diet.DailyRecord{}, invalid("date", "%v", err)
	}

	r, ok, err := s.store.GetRecord(date)
	if err != nil {
		return diet.DailyRecord{}, err
	}
	if ok {
		return r, nil
	}

	plan, err := s.ActivePlan()
	if err != nil {
		return diet.DailyRecord{}, err
	}
	r = diet.Instantiate(plan, date)
	logger.Debug("created record", "date", date, "plan", plan.ID, "items", len(r.Items))
	return r, s.store.PutRecord(r)
}

// Today returns today's record, creating it if needed.
func (s *Service) Today() (diet.DailyRecord, error) {
	return s.GetOrCreate(s.TodayKey())
}

// editable loads the record a mutation applies to. Today's record is
// created on demand; past dates must already exist.
func (s *Service) editable(date string) (diet.DailyRecord, error) {
	if date == "" || date == s.TodayKey() {
		return s.Today()
	}
	r, ok, err := s.store.GetRecord(date)
	if err != nil {
		return diet.DailyRecord{}, err
	}
	if !ok {
		return diet.DailyRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, date)
	}
	return r, nil
}

// Toggle flips item itemID of date's record. When date is today the streak
// is re-evaluated against the new completion state.
func (s *Service) Toggle(date, itemID string) (diet.DailyRecord, error) {
	r, err := s.editable(date)
	if err != nil {
		return r, err
	}
	if r.Item(itemID) < 0 {
		return r, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	now := s.Now()
	updated := diet.ToggleItem(r, itemID, now)
	saveErr := s.store.PutRecord(updated)

	if updated.Date != diet.DateKey(now) {
		return updated, saveErr
	}
	_, streakErr := s.advanceStreak(now, updated.IsComplete())
	return updated, errors.Join(saveErr, streakErr)
}

// ToggleIndex toggles the item at 1-based position n of date's record.
func (s *Service) ToggleIndex(date string, n int) (diet.DailyRecord, error) {
	r, err := s.editable(date)
	if err != nil {
		return r, err
	}
	if n < 1 || n > len(r.Items) {
		return r, invalid("item", "must be between 1 and %d", len(r.Items))
	}
	return s.Toggle(r.Date, r.Items[n-1].ID)
}

// AddWater logs one glass on date's record.
func (s *Service) AddWater(date string) (diet.DailyRecord, error) {
	r, err := s.editable(date)
	if err != nil {
		return r, err
	}
	updated := diet.AddWater(r)
	if updated.WaterGlasses == r.WaterGlasses {
		logger.Debug("water already at cap", "date", r.Date, "glasses", r.WaterGlasses)
		return updated, nil
	}
	return updated, s.store.PutRecord(updated)
}

// SetNotes replaces the notes of an item. Blank text clears them.
func (s *Service) SetNotes(date, itemID, text string) (diet.DailyRecord, error) {
	r, err := s.editable(date)
	if err != nil {
		return r, err
	}
	if r.Item(itemID) < 0 {
		return r, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	if len([]rune(text)) > maxNotesLen {
		return r, invalid("notes", "must be at most %d characters", maxNotesLen)
	}
	updated := diet.SetNotes(r, itemID, text)
	return updated, s.store.PutRecord(updated)
}

// SetMood records the day's mood check-in.
func (s *Service) SetMood(date string, mood diet.Mood) (diet.DailyRecord, error) {
	if !mood.Valid() {
		return diet.DailyRecord{}, invalid("mood", "unknown value in %+v", mood)
	}
	r, err := s.editable(date)
	if err != nil {
		return r, err
	}
	updated := diet.SetMood(r, mood)
	return updated, s.store.PutRecord(updated)
}

// Streak returns the stored streak.
func (s *Service) Streak() (diet.StreakRecord, error) {
	return s.store.LoadStreak()
}

func (s *Service) advanceStreak(day time.Time, complete bool) (diet.StreakRecord, error) {
	st, err := s.store.LoadStreak()
	if err != nil {
		return st, err
	}
	next := diet.Advance(st, day, complete)
	if next == st {
		return st, nil
	}
	logger.Debug("streak advanced", "day", diet.DateKey(day), "complete", complete,
		"current", next.CurrentStreak, "best", next.BestStreak)
	return next, s.store.SaveStreak(next)
}

// CheckAndResetDaily handles a date change since the last run. The day in
// the rollover marker is finalized first, with its own date as "today", so
// a completed final day is credited to the day it happened. Today's fresh
// record is then evaluated, which breaks the streak after a gap of
// inactive days. It reports whether a rollover happened.
func (s *Service) CheckAndResetDaily() (bool, error) {
	now := s.Now()
	today := diet.DateKey(now)

	last, err := s.store.LastResetDate()
	if err != nil {
		return false, err
	}
	if last == today {
		return false, nil
	}

	if last != "" {
		if err := s.finalize(last); err != nil {
			return false, err
		}
	}

	r, err := s.GetOrCreate(today)
	if err != nil {
		return false, err
	}
	if _, err := s.advanceStreak(now, r.IsComplete()); err != nil {
		return false, err
	}
	if err := s.store.SetLastResetDate(today); err != nil {
		return false, err
	}
	logger.Info("daily rollover", "from", last, "to", today)
	return true, nil
}

func (s *Service) finalize(date string) error {
	day, err := diet.ParseDate(date)
	if err != nil {
		logger.Warn("ignoring malformed rollover marker", "value", date)
		return nil
	}
	r, ok, err := s.store.RefreshRecord(date)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	_, err = s.advanceStreak(day, r.IsComplete())
	return err
}
