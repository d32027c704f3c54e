// Package diet holds the diet tracker's data model and the pure functions
// over it: plan instantiation, record mutation and the streak engine.
package diet

import "time"

// MealType is the slot a checklist item belongs to.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Snacks    MealType = "snacks"
	Dinner    MealType = "dinner"
)

// MealTypes lists every meal type in display order.
var MealTypes = []MealType{Breakfast, Lunch, Snacks, Dinner}

// Valid reports whether m is one of the known meal types.
func (m MealType) Valid() bool {
	switch m {
	case Breakfast, Lunch, Snacks, Dinner:
		return true
	}
	return false
}

// DefaultWaterGoal is the glasses-per-day goal for plans that don't set one.
const DefaultWaterGoal = 8

// DietItem is one checklist entry of a day.
type DietItem struct {
	ID          string     `json:"id"`
	Type        MealType   `json:"type"`
	Name        string     `json:"name"`
	Time        string     `json:"time"` // HH:MM, wall clock
	Notes       *string    `json:"notes,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Energy level reported in a mood check-in.
type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"
)

// SleepQuality reported in a mood check-in.
type SleepQuality string

const (
	SleepPoor      SleepQuality = "poor"
	SleepFair      SleepQuality = "fair"
	SleepGood      SleepQuality = "good"
	SleepExcellent SleepQuality = "excellent"
)

// StressLevel reported in a mood check-in.
type StressLevel string

const (
	StressLow    StressLevel = "low"
	StressMedium StressLevel = "medium"
	StressHigh   StressLevel = "high"
)

// Mood is the optional daily check-in.
type Mood struct {
	Energy       Energy       `json:"energy"`
	SleepQuality SleepQuality `json:"sleepQuality"`
	StressLevel  StressLevel  `json:"stressLevel"`
}

// Valid reports whether every field holds a known value.
func (m Mood) Valid() bool {
	switch m.Energy {
	case EnergyLow, EnergyMedium, EnergyHigh:
	default:
		return false
	}
	switch m.SleepQuality {
	case SleepPoor, SleepFair, SleepGood, SleepExcellent:
	default:
		return false
	}
	switch m.StressLevel {
	case StressLow, StressMedium, StressHigh:
	default:
		return false
	}
	return true
}

// DailyRecord is everything tracked for one calendar date.
//
// PerfectDay is a cache. Use IsPerfectDay on the record instead of trusting it.
type DailyRecord struct {
	Date         string     `json:"date"` // YYYY-MM-DD
	Items        []DietItem `json:"items"`
	WaterGlasses int        `json:"waterGlasses"`
	WaterGoal    int        `json:"waterGoal"`
	Mood         *Mood      `json:"mood,omitempty"`
	PerfectDay   bool       `json:"perfectDay"`
}

// StreakRecord is the global streak state.
type StreakRecord struct {
	CurrentStreak  int    `json:"currentStreak"`
	BestStreak     int    `json:"bestStreak"`
	LastActiveDate string `json:"lastActiveDate"` // YYYY-MM-DD or empty
}

// PlanItem is a meal slot template. Ids and completion are assigned when a
// plan is instantiated for a date.
type PlanItem struct {
	Type  MealType `json:"type"`
	Name  string   `json:"name"`
	Time  string   `json:"time"`
	Notes *string  `json:"notes,omitempty"`
}

// DietPlan is a named template of meal slots.
type DietPlan struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Items       []PlanItem `json:"items"`
	WaterGoal   int        `json:"waterGoal,omitempty"` // 0 means DefaultWaterGoal
}
