// Package storage maps the tracker's state onto the key-value gateway.
//
// Every value is a JSON document under a fixed key. Documents that fail to
// decode are logged and treated as absent so a damaged entry never blocks
// the app; I/O errors from the gateway are returned to the caller.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"

	"dietstreak/internal/diet"
	"dietstreak/internal/kv"
	"dietstreak/internal/logger"
)

// Keys of the persisted documents.
const (
	KeyDailyDiets    = "daily_diets"
	KeyStreak        = "streak_data"
	KeyPlans         = "diet_plans"
	KeyCurrentPlanID = "current_plan_id"
	KeyLastResetDate = "last_reset_date"
)

// Keys lists every key the repository writes.
var Keys = []string{KeyDailyDiets, KeyStreak, KeyPlans, KeyCurrentPlanID, KeyLastResetDate}

// Storage is a typed view over a kv.Store.
type Storage struct {
	kv kv.Store
}

// New wraps store.
func New(store kv.Store) *Storage {
	return &Storage{kv: store}
}

// Close closes the underlying store.
func (s *Storage) Close() error {
	return s.kv.Close()
}

// load decodes the document under key. ok is false when the key is absent
// or its document is malformed.
func load[T any](s *Storage, key string) (v T, ok bool, err error) {
	data, ok, err := s.kv.Load(key)
	if err != nil {
		logger.Error("load failed", "key", key, "error", err)
		return v, false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return v, false, nil
	}
	var decoded T
	if err := json.Unmarshal(data, &decoded); err != nil {
		logger.Warn("ignoring malformed stored data", "key", key, "error", err)
		return v, false, nil
	}
	return decoded, true, nil
}

func (s *Storage) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Save(key, data); err != nil {
		logger.Error("save failed", "key", key, "error", err)
		return fmt.Errorf("save %s: %w", key, err)
	}
	logger.Debug("saved", "key", key, "bytes", len(data))
	return nil
}

// LoadRecords returns every stored daily record keyed by date.
func (s *Storage) LoadRecords() (map[string]diet.DailyRecord, error) {
	raw, _, err := load[map[string]diet.DailyRecord](s, KeyDailyDiets)
	if err != nil {
		return map[string]diet.DailyRecord{}, err
	}
	if raw == nil {
		raw = map[string]diet.DailyRecord{}
	}
	for date, r := range raw {
		if r.Date == "" {
			r.Date = date
		}
		raw[date] = r.Normalize()
	}
	return raw, nil
}

// SaveRecords replaces the whole records table.
func (s *Storage) SaveRecords(records map[string]diet.DailyRecord) error {
	if records == nil {
		records = map[string]diet.DailyRecord{}
	}
	return s.save(KeyDailyDiets, records)
}

// GetRecord returns the record for date, if one exists.
func (s *Storage) GetRecord(date string) (diet.DailyRecord, bool, error) {
	records, err := s.LoadRecords()
	if err != nil {
		return diet.DailyRecord{}, false, err
	}
	r, ok := records[date]
	return r, ok, nil
}

// RefreshRecord returns the record for date with perfectDay recomputed and
// writes it back when the stored flag was stale.
func (s *Storage) RefreshRecord(date string) (diet.DailyRecord, bool, error) {
	raw, _, err := load[map[string]diet.DailyRecord](s, KeyDailyDiets)
	if err != nil {
		return diet.DailyRecord{}, false, err
	}
	r, ok := raw[date]
	if !ok {
		return diet.DailyRecord{}, false, nil
	}
	stored := r.PerfectDay
	if r.Date == "" {
		r.Date = date
	}
	r = r.Normalize()
	if r.PerfectDay == stored {
		return r, true, nil
	}
	logger.Debug("refreshed perfect day", "date", date, "perfect", r.PerfectDay)
	return r, true, s.PutRecord(r)
}

// PutRecord stores r under its date, keeping every other record.
func (s *Storage) PutRecord(r diet.DailyRecord) error {
	records, err := s.LoadRecords()
	if err != nil {
		return err
	}
	records[r.Date] = r
	return s.SaveRecords(records)
}

// RecordDates returns the stored dates in ascending order.
func (s *Storage) RecordDates() ([]string, error) {
	records, err := s.LoadRecords()
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(records))
	for d := range records {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates, nil
}

// LoadStreak returns the streak singleton, zero when absent.
func (s *Storage) LoadStreak() (diet.StreakRecord, error) {
	st, ok, err := load[diet.StreakRecord](s, KeyStreak)
	if err != nil || !ok {
		return diet.StreakRecord{}, err
	}
	if st.CurrentStreak < 0 {
		st.CurrentStreak = 0
	}
	if st.BestStreak < st.CurrentStreak {
		st.BestStreak = st.CurrentStreak
	}
	return st, nil
}

// SaveStreak stores the streak singleton.
func (s *Storage) SaveStreak(st diet.StreakRecord) error {
	return s.save(KeyStreak, st)
}

// LoadPlans returns the plan registry in stored order.
func (s *Storage) LoadPlans() ([]diet.DietPlan, error) {
	plans, ok, err := load[[]diet.DietPlan](s, KeyPlans)
	if err != nil || !ok {
		return []diet.DietPlan{}, err
	}
	if plans == nil {
		plans = []diet.DietPlan{}
	}
	return plans, nil
}

// SavePlans replaces the plan registry.
func (s *Storage) SavePlans(plans []diet.DietPlan) error {
	if plans == nil {
		plans = []diet.DietPlan{}
	}
	return s.save(KeyPlans, plans)
}

// CurrentPlanID returns the active plan id, empty when unset.
func (s *Storage) CurrentPlanID() (string, error) {
	return s.loadString(KeyCurrentPlanID)
}

// SetCurrentPlanID stores the active plan id.
func (s *Storage) SetCurrentPlanID(id string) error {
	return s.save(KeyCurrentPlanID, id)
}

// LastResetDate returns the rollover marker, empty when unset.
func (s *Storage) LastResetDate() (string, error) {
	return s.loadString(KeyLastResetDate)
}

// SetLastResetDate stores the rollover marker.
func (s *Storage) SetLastResetDate(date string) error {
	return s.save(KeyLastResetDate, date)
}

// loadString decodes a JSON string, accepting the unquoted form older data
// was written in.
func (s *Storage) loadString(key string) (string, error) {
	data, ok, err := s.kv.Load(key)
	if err != nil {
		logger.Error("load failed", "key", key, "error", err)
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return "", nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err == nil {
		return v, nil
	}
	if bare, ok := kv.BareString(data); ok {
		return bare, nil
	}
	logger.Warn("ignoring malformed stored data", "key", key)
	return "", nil
}
