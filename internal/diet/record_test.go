package diet

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"
)

func fourItemRecord(completed int) DailyRecord {
	r := Instantiate(DietPlan{
		ID: "p",
		Items: []PlanItem{
			{Type: Breakfast, Name: "Oats", Time: "08:00"},
			{Type: Lunch, Name: "Rice", Time: "13:00"},
			{Type: Snacks, Name: "Nuts", Time: "17:00"},
			{Type: Dinner, Name: "Soup", Time: "20:00"},
		},
	}, "2024-01-05")
	for i := 0; i < completed; i++ {
		r.Items[i].Completed = true
	}
	return r
}

func TestInstantiate(t *testing.T) {
	plan := DefaultPlan()
	r := Instantiate(plan, "2024-01-05")

	if r.Date != "2024-01-05" {
		t.Errorf("Date = %q, want 2024-01-05", r.Date)
	}
	if len(r.Items) != len(plan.Items) {
		t.Fatalf("len(Items) = %d, want %d", len(r.Items), len(plan.Items))
	}
	if r.WaterGoal != DefaultWaterGoal || r.WaterGlasses != 0 || r.PerfectDay {
		t.Errorf("water/perfect = %d/%d/%v, want 0/%d/false", r.WaterGlasses, r.WaterGoal, r.PerfectDay, DefaultWaterGoal)
	}

	seen := map[string]bool{}
	for i, it := range r.Items {
		if it.Completed || it.CompletedAt != nil {
			t.Errorf("item %d starts completed", i)
		}
		if it.Name != plan.Items[i].Name || it.Type != plan.Items[i].Type {
			t.Errorf("item %d = %s/%s, want order preserved", i, it.Type, it.Name)
		}
		if seen[it.ID] {
			t.Errorf("duplicate id %q", it.ID)
		}
		seen[it.ID] = true
	}
	if r.Items[1].ID != "2024-01-05-snacks-1" {
		t.Errorf("Items[1].ID = %q, want 2024-01-05-snacks-1", r.Items[1].ID)
	}
}

func TestInstantiate_StableIDs(t *testing.T) {
	a := Instantiate(DefaultPlan(), "2024-03-01")
	b := Instantiate(DefaultPlan(), "2024-03-01")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("two instantiations differ:\n%+v\n%+v", a, b)
	}
}

func TestInstantiate_PlanWaterGoal(t *testing.T) {
	plan := DefaultPlan()
	plan.WaterGoal = 10
	if got := Instantiate(plan, "2024-01-01").WaterGoal; got != 10 {
		t.Errorf("WaterGoal = %d, want 10", got)
	}
}

func TestResolvePlan(t *testing.T) {
	if _, err := ResolvePlan(nil, "x"); err != ErrNoPlan {
		t.Fatalf("ResolvePlan(nil) error = %v, want ErrNoPlan", err)
	}

	plans := []DietPlan{{ID: "a"}, {ID: "b"}}
	if p, _ := ResolvePlan(plans, "b"); p.ID != "b" {
		t.Errorf("ResolvePlan(b) = %q", p.ID)
	}
	if p, _ := ResolvePlan(plans, "missing"); p.ID != "a" {
		t.Errorf("ResolvePlan(missing) = %q, want fallback to first plan", p.ID)
	}
}

func TestIsPerfectDay(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		water     int
		items     bool
		want      bool
	}{
		{name: "all done and water met", completed: 4, water: 8, items: true, want: true},
		{name: "water over goal", completed: 4, water: 12, items: true, want: true},
		{name: "water short", completed: 4, water: 7, items: true, want: false},
		{name: "one item open", completed: 3, water: 8, items: true, want: false},
		{name: "no items", water: 8, items: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := fourItemRecord(tt.completed)
			if !tt.items {
				r.Items = nil
			}
			r.WaterGlasses = tt.water
			if got := r.IsPerfectDay(); got != tt.want {
				t.Errorf("IsPerfectDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToggleItem(t *testing.T) {
	r := fourItemRecord(3)
	r.WaterGlasses = 8
	now := time.Date(2024, 1, 5, 20, 15, 0, 0, time.UTC)
	id := r.Items[3].ID

	done := ToggleItem(r, id, now)
	if !done.Items[3].Completed {
		t.Fatal("item not completed after toggle")
	}
	if done.Items[3].CompletedAt == nil || !done.Items[3].CompletedAt.Equal(now) {
		t.Errorf("CompletedAt = %v, want %v", done.Items[3].CompletedAt, now)
	}
	if !done.PerfectDay {
		t.Error("PerfectDay = false after completing last item with water met")
	}
	if r.Items[3].Completed {
		t.Error("ToggleItem mutated its input")
	}

	undone := ToggleItem(done, id, now.Add(time.Minute))
	if undone.Items[3].Completed || undone.Items[3].CompletedAt != nil {
		t.Errorf("after second toggle item = %+v, want incomplete with no CompletedAt", undone.Items[3])
	}
	if undone.PerfectDay {
		t.Error("PerfectDay still true after un-completing")
	}
}

func TestToggleItem_UnknownID(t *testing.T) {
	r := fourItemRecord(1)
	got := ToggleItem(r, "nope", time.Now())
	if !reflect.DeepEqual(got, r) {
		t.Errorf("ToggleItem(unknown) changed the record:\n%+v\n%+v", got, r)
	}
}

func TestAddWater_Clamp(t *testing.T) {
	r := fourItemRecord(4)
	for i := 0; i < 40; i++ {
		r = AddWater(r)
		if r.WaterGlasses > 16 {
			t.Fatalf("WaterGlasses = %d after %d taps, want <= 16", r.WaterGlasses, i+1)
		}
	}
	if r.WaterGlasses != 16 {
		t.Errorf("WaterGlasses = %d, want 16", r.WaterGlasses)
	}
	if !r.PerfectDay {
		t.Error("PerfectDay = false with all items done and water met")
	}
}

func TestSetNotes(t *testing.T) {
	r := fourItemRecord(0)
	id := r.Items[0].ID

	withNotes := SetNotes(r, id, "  add honey ")
	if withNotes.Items[0].Notes == nil || *withNotes.Items[0].Notes != "add honey" {
		t.Fatalf("Notes = %v, want \"add honey\"", withNotes.Items[0].Notes)
	}
	if r.Items[0].Notes != nil {
		t.Error("SetNotes mutated its input")
	}

	cleared := SetNotes(withNotes, id, "   ")
	if cleared.Items[0].Notes != nil {
		t.Errorf("Notes = %q, want cleared", *cleared.Items[0].Notes)
	}
}

func TestSetMood(t *testing.T) {
	r := fourItemRecord(0)
	m := Mood{Energy: EnergyHigh, SleepQuality: SleepGood, StressLevel: StressLow}
	got := SetMood(r, m)
	if got.Mood == nil || *got.Mood != m {
		t.Errorf("Mood = %v, want %v", got.Mood, m)
	}
	if r.Mood != nil {
		t.Error("SetMood mutated its input")
	}
	if (Mood{Energy: "wired", SleepQuality: SleepGood, StressLevel: StressLow}).Valid() {
		t.Error("Valid() accepted an unknown energy level")
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		completed int
		want      Status
	}{
		{0, StatusMissed},
		{2, StatusPartial},
		{4, StatusComplete},
	}
	for _, tt := range tests {
		if got := fourItemRecord(tt.completed).Status(); got != tt.want {
			t.Errorf("Status() with %d done = %s, want %s", tt.completed, got, tt.want)
		}
	}
	if got := (DailyRecord{}).Status(); got != StatusMissed {
		t.Errorf("empty record Status() = %s, want missed", got)
	}
}

func TestDailyRecord_LegacyJSON(t *testing.T) {
	raw := `{
	  "date": "2024-01-05",
	  "items": [
	    {"id": "2024-01-05-breakfast-0", "type": "breakfast", "name": "Oats + Banana", "time": "08:00",
	     "completed": true, "completedAt": "2024-01-05T08:12:45.123Z", "notes": "with honey"},
	    {"id": "2024-01-05-snacks-1", "type": "snacks", "name": "Fruits", "time": "11:00", "completed": false}
	  ],
	  "waterGlasses": 5,
	  "waterGoal": 8,
	  "mood": {"energy": "high", "sleepQuality": "excellent", "stressLevel": "low"},
	  "perfectDay": false
	}`

	var r DailyRecord
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if r.Items[0].CompletedAt == nil || r.Items[0].CompletedAt.Minute() != 12 {
		t.Errorf("CompletedAt = %v", r.Items[0].CompletedAt)
	}
	if r.Items[1].Notes != nil || r.Items[1].CompletedAt != nil {
		t.Error("absent optional fields should decode as nil")
	}
	if r.Mood == nil || r.Mood.SleepQuality != SleepExcellent {
		t.Errorf("Mood = %+v", r.Mood)
	}

	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, field := range []string{`"waterGlasses":5`, `"perfectDay":false`, `"sleepQuality":"excellent"`} {
		if !strings.Contains(string(out), field) {
			t.Errorf("marshalled record missing %s: %s", field, out)
		}
	}
	if strings.Contains(string(out), `"notes":null`) {
		t.Errorf("absent notes should be omitted: %s", out)
	}
}

func TestNormalize(t *testing.T) {
	r := DailyRecord{Date: "2024-01-01", WaterGoal: 0, WaterGlasses: -2, PerfectDay: true}
	got := r.Normalize()
	if got.Items == nil || got.WaterGoal != DefaultWaterGoal || got.WaterGlasses != 0 || got.PerfectDay {
		t.Errorf("Normalize() = %+v", got)
	}
}
