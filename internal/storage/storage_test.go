package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"dietstreak/internal/diet"
	"dietstreak/internal/kv"
)

// createTestStorage returns a Storage over an in-memory gateway.
func createTestStorage(t *testing.T) (*Storage, *kv.MemoryStore) {
	t.Helper()
	mem := kv.NewMemoryStore()
	return New(mem), mem
}

func TestEmptyStoreDefaults(t *testing.T) {
	s, _ := createTestStorage(t)

	records, err := s.LoadRecords()
	if err != nil || len(records) != 0 || records == nil {
		t.Errorf("LoadRecords() = %v, %v; want empty map", records, err)
	}
	streak, err := s.LoadStreak()
	if err != nil || streak != (diet.StreakRecord{}) {
		t.Errorf("LoadStreak() = %+v, %v", streak, err)
	}
	plans, err := s.LoadPlans()
	if err != nil || plans == nil || len(plans) != 0 {
		t.Errorf("LoadPlans() = %v, %v", plans, err)
	}
	if id, err := s.CurrentPlanID(); err != nil || id != "" {
		t.Errorf("CurrentPlanID() = %q, %v", id, err)
	}
	if d, err := s.LastResetDate(); err != nil || d != "" {
		t.Errorf("LastResetDate() = %q, %v", d, err)
	}
}

func TestPutRecordKeepsOthers(t *testing.T) {
	s, _ := createTestStorage(t)

	a := diet.Instantiate(diet.DefaultPlan(), "2024-01-05")
	b := diet.Instantiate(diet.DefaultPlan(), "2024-01-06")
	if err := s.PutRecord(a); err != nil {
		t.Fatalf("PutRecord(a) error = %v", err)
	}
	if err := s.PutRecord(b); err != nil {
		t.Fatalf("PutRecord(b) error = %v", err)
	}

	got, ok, err := s.GetRecord("2024-01-05")
	if err != nil || !ok {
		t.Fatalf("GetRecord() = %v, %v", ok, err)
	}
	if !reflect.DeepEqual(got, a) {
		t.Errorf("GetRecord() = %+v, want %+v", got, a)
	}
	if _, ok, _ := s.GetRecord("2024-01-07"); ok {
		t.Error("GetRecord() found a record that was never stored")
	}

	dates, err := s.RecordDates()
	if err != nil {
		t.Fatalf("RecordDates() error = %v", err)
	}
	if want := []string{"2024-01-05", "2024-01-06"}; !reflect.DeepEqual(dates, want) {
		t.Errorf("RecordDates() = %v, want %v", dates, want)
	}
}

func TestMalformedDataFallsBack(t *testing.T) {
	tests := []struct {
		key   string
		plain bool // unquoted scalars are valid values
		check func(t *testing.T, s *Storage)
	}{
		{KeyDailyDiets, false, func(t *testing.T, s *Storage) {
			if r, err := s.LoadRecords(); err != nil || len(r) != 0 {
				t.Errorf("LoadRecords() = %v, %v", r, err)
			}
		}},
		{KeyStreak, false, func(t *testing.T, s *Storage) {
			if st, err := s.LoadStreak(); err != nil || st != (diet.StreakRecord{}) {
				t.Errorf("LoadStreak() = %+v, %v", st, err)
			}
		}},
		{KeyPlans, false, func(t *testing.T, s *Storage) {
			if p, err := s.LoadPlans(); err != nil || len(p) != 0 {
				t.Errorf("LoadPlans() = %v, %v", p, err)
			}
		}},
		{KeyCurrentPlanID, true, func(t *testing.T, s *Storage) {
			if id, err := s.CurrentPlanID(); err != nil || id != "" {
				t.Errorf("CurrentPlanID() = %q, %v", id, err)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			s, mem := createTestStorage(t)
			mem.Set(tt.key, []byte(`{"broken":`))
			tt.check(t, s)

			if tt.plain {
				return
			}
			s2, mem2 := createTestStorage(t)
			mem2.Set(tt.key, []byte(`42`))
			tt.check(t, s2)
		})
	}
}

func TestUnquotedStrings(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"quoted", `"plan-1700000000000"`, "plan-1700000000000"},
		{"bare", `plan-1700000000000`, "plan-1700000000000"},
		{"bare date", "2024-01-07\n", "2024-01-07"},
		{"bare number", `1700000000000`, "1700000000000"},
		{"array", `["a"]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mem := createTestStorage(t)
			mem.Set(KeyCurrentPlanID, []byte(tt.data))
			mem.Set(KeyLastResetDate, []byte(tt.data))

			if id, err := s.CurrentPlanID(); err != nil || id != tt.want {
				t.Errorf("CurrentPlanID() = %q, %v; want %q", id, err, tt.want)
			}
			if d, err := s.LastResetDate(); err != nil || d != tt.want {
				t.Errorf("LastResetDate() = %q, %v; want %q", d, err, tt.want)
			}
		})
	}
}

func TestUnquotedStringsFromFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		KeyCurrentPlanID: "plan-1700000000000",
		KeyLastResetDate: "2024-01-07",
	}
	for key, v := range files {
		if err := os.WriteFile(filepath.Join(dir, kv.FileName(key)), []byte(v), 0600); err != nil {
			t.Fatal(err)
		}
	}
	store, err := kv.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	s := New(store)

	if id, _ := s.CurrentPlanID(); id != "plan-1700000000000" {
		t.Errorf("CurrentPlanID() = %q", id)
	}
	if d, _ := s.LastResetDate(); d != "2024-01-07" {
		t.Errorf("LastResetDate() = %q", d)
	}
	if matches, _ := filepath.Glob(filepath.Join(dir, "*.corrupt.*")); len(matches) != 0 {
		t.Errorf("unquoted values moved aside: %v", matches)
	}

	// Writing back stores the quoted form.
	if err := s.SetLastResetDate("2024-01-08"); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, kv.FileName(KeyLastResetDate)))
	if string(data) != `"2024-01-08"` {
		t.Errorf("stored = %s", data)
	}
}

func TestRefreshRecord(t *testing.T) {
	s, mem := createTestStorage(t)

	r := diet.Instantiate(diet.DefaultPlan(), "2024-01-07")
	for i := range r.Items {
		r.Items[i].Completed = true
	}
	r.WaterGlasses = r.WaterGoal
	r.PerfectDay = false
	data, err := json.Marshal(map[string]diet.DailyRecord{r.Date: r})
	if err != nil {
		t.Fatal(err)
	}
	mem.Set(KeyDailyDiets, data)

	got, ok, err := s.RefreshRecord(r.Date)
	if err != nil || !ok || !got.PerfectDay {
		t.Fatalf("RefreshRecord() = %v, %v, %v; want perfect day", got.PerfectDay, ok, err)
	}
	raw, _, _ := mem.Load(KeyDailyDiets)
	var stored map[string]diet.DailyRecord
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatal(err)
	}
	if !stored[r.Date].PerfectDay {
		t.Error("stale perfectDay not written back")
	}

	saves := mem.Saves[KeyDailyDiets]
	if _, _, err := s.RefreshRecord(r.Date); err != nil {
		t.Fatal(err)
	}
	if mem.Saves[KeyDailyDiets] != saves {
		t.Error("up to date record was saved again")
	}
	if _, ok, _ := s.RefreshRecord("2024-01-01"); ok {
		t.Error("RefreshRecord() of a missing date reported ok")
	}
}

func TestLoadRecordsRepairsFields(t *testing.T) {
	s, mem := createTestStorage(t)
	mem.Set(KeyDailyDiets, []byte(`{
	  "2024-01-05": {"items": [{"id": "x", "type": "lunch", "name": "Rice", "time": "13:00", "completed": true}],
	                 "waterGlasses": 9, "waterGoal": 0, "perfectDay": false}
	}`))

	records, err := s.LoadRecords()
	if err != nil {
		t.Fatalf("LoadRecords() error = %v", err)
	}
	r := records["2024-01-05"]
	if r.Date != "2024-01-05" {
		t.Errorf("Date = %q, want key date", r.Date)
	}
	if r.WaterGoal != diet.DefaultWaterGoal {
		t.Errorf("WaterGoal = %d, want default", r.WaterGoal)
	}
	if !r.PerfectDay {
		t.Error("PerfectDay not recomputed on load")
	}
}

func TestLoadStreakRepairsBest(t *testing.T) {
	s, mem := createTestStorage(t)
	mem.Set(KeyStreak, []byte(`{"currentStreak": 5, "bestStreak": 2, "lastActiveDate": "2024-01-05"}`))

	st, err := s.LoadStreak()
	if err != nil {
		t.Fatalf("LoadStreak() error = %v", err)
	}
	if st.BestStreak != 5 {
		t.Errorf("BestStreak = %d, want 5", st.BestStreak)
	}
}

func TestSaveErrorIsReturned(t *testing.T) {
	s, mem := createTestStorage(t)
	boom := errors.New("disk full")
	mem.SaveErr = boom

	if err := s.SaveStreak(diet.StreakRecord{CurrentStreak: 1}); !errors.Is(err, boom) {
		t.Errorf("SaveStreak() error = %v, want %v", err, boom)
	}
	if err := s.SetCurrentPlanID("x"); !errors.Is(err, boom) {
		t.Errorf("SetCurrentPlanID() error = %v, want %v", err, boom)
	}
}

func TestScalarsRoundTrip(t *testing.T) {
	s, _ := createTestStorage(t)

	if err := s.SetCurrentPlanID("plan-1"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetLastResetDate("2024-01-05"); err != nil {
		t.Fatal(err)
	}
	plans := []diet.DietPlan{diet.DefaultPlan()}
	if err := s.SavePlans(plans); err != nil {
		t.Fatal(err)
	}

	if id, _ := s.CurrentPlanID(); id != "plan-1" {
		t.Errorf("CurrentPlanID() = %q", id)
	}
	if d, _ := s.LastResetDate(); d != "2024-01-05" {
		t.Errorf("LastResetDate() = %q", d)
	}
	if got, _ := s.LoadPlans(); !reflect.DeepEqual(got, plans) {
		t.Errorf("LoadPlans() = %+v", got)
	}
}

func TestBackendsAgree(t *testing.T) {
	for _, backend := range []string{kv.BackendJSON, kv.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			store, err := kv.Open(backend, filepath.Join(t.TempDir(), "data"))
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			s := New(store)
			defer s.Close()

			r := diet.AddWater(diet.Instantiate(diet.DefaultPlan(), "2024-02-29"))
			if err := s.PutRecord(r); err != nil {
				t.Fatalf("PutRecord() error = %v", err)
			}
			st := diet.StreakRecord{CurrentStreak: 2, BestStreak: 4, LastActiveDate: "2024-02-28"}
			if err := s.SaveStreak(st); err != nil {
				t.Fatalf("SaveStreak() error = %v", err)
			}

			got, ok, err := s.GetRecord("2024-02-29")
			if err != nil || !ok || !reflect.DeepEqual(got, r) {
				t.Errorf("GetRecord() = %+v, %v, %v", got, ok, err)
			}
			if gotSt, _ := s.LoadStreak(); gotSt != st {
				t.Errorf("LoadStreak() = %+v, want %+v", gotSt, st)
			}
		})
	}
}
