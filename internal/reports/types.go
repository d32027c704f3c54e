// Package reports rolls daily records up into weekly and monthly reports.
// Reports are derived on every request and never stored.
package reports

import (
	"time"

	"dietstreak/internal/diet"
)

// WeeklyReport aggregates the days of one week that have items.
type WeeklyReport struct {
	WeekStart           string                `json:"weekStart"`
	WeekEnd             string                `json:"weekEnd"`
	DietFollowedPercent float64               `json:"dietFollowedPercent"`
	TotalMeals          int                   `json:"totalMeals"`
	CompletedMeals      int                   `json:"completedMeals"`
	MissedMealsByType   map[diet.MealType]int `json:"missedMealsByType"`
	BestDay             string                `json:"bestDay"`
	WorstDay            string                `json:"worstDay"`
	TotalWater          int                   `json:"totalWater"`
	PerfectDays         int                   `json:"perfectDays"`
	DaysWithData        int                   `json:"daysWithData"`
	Days                []DaySummary          `json:"days"`
	GeneratedAt         time.Time             `json:"generatedAt"`
}

// MonthlyReport aggregates every stored day of one calendar month.
type MonthlyReport struct {
	Month               string    `json:"month"` // YYYY-MM
	DietFollowedPercent float64   `json:"dietFollowedPercent"`
	TotalMeals          int       `json:"totalMeals"`
	CompletedMeals      int       `json:"completedMeals"`
	AverageWaterIntake  float64   `json:"averageWaterIntake"`
	TotalWater          int       `json:"totalWater"`
	PerfectDays         int       `json:"perfectDays"`
	StreakDays          int       `json:"streakDays"`
	DaysInMonth         int       `json:"daysInMonth"`
	DaysWithData        int       `json:"daysWithData"`
	GeneratedAt         time.Time `json:"generatedAt"`
}

// DaySummary is one day of a weekly breakdown. Days without a record have
// HasRecord false and zero counts.
type DaySummary struct {
	Date         string  `json:"date"`
	DayOfWeek    string  `json:"dayOfWeek"`
	HasRecord    bool    `json:"hasRecord"`
	Completed    int     `json:"completed"`
	Total        int     `json:"total"`
	Percent      float64 `json:"percent"`
	WaterGlasses int     `json:"waterGlasses"`
	PerfectDay   bool    `json:"perfectDay"`
}
