package reports

import (
	"math"
	"time"

	"dietstreak/internal/diet"
)

// RecordSource supplies the stored records keyed by date.
type RecordSource interface {
	LoadRecords() (map[string]diet.DailyRecord, error)
}

// Generator creates reports from stored records.
type Generator struct {
	src       RecordSource
	weekStart time.Weekday
	now       func() time.Time
}

// NewGenerator creates a report generator whose weeks begin on weekStart.
func NewGenerator(src RecordSource, weekStart time.Weekday) *Generator {
	return &Generator{src: src, weekStart: weekStart, now: time.Now}
}

// SetNowFunc overrides the clock stamped into GeneratedAt. Passing nil
// resets it to time.Now.
func (g *Generator) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	g.now = now
}

// WeekStart returns the configured first day of the week.
func (g *Generator) WeekStart() time.Weekday {
	return g.weekStart
}

// round1 rounds half up to one decimal place.
func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

func percent(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(100 * float64(completed) / float64(total))
}

// Weekly builds the report for the week containing day.
//
// Days without a record and days whose record has no items are skipped.
// The best and worst days are the highest and lowest completion ratios;
// the earliest day wins a tie.
func (g *Generator) Weekly(day time.Time) (*WeeklyReport, error) {
	records, err := g.src.LoadRecords()
	if err != nil {
		return nil, err
	}

	start := diet.StartOfWeek(day, g.weekStart)
	end := diet.AddDays(start, 6)

	report := &WeeklyReport{
		WeekStart:         diet.DateKey(start),
		WeekEnd:           diet.DateKey(end),
		MissedMealsByType: make(map[diet.MealType]int, len(diet.MealTypes)),
		Days:              make([]DaySummary, 0, 7),
		GeneratedAt:       g.now(),
	}
	for _, t := range diet.MealTypes {
		report.MissedMealsByType[t] = 0
	}

	bestRatio, worstRatio := -1.0, 2.0
	for i := 0; i < 7; i++ {
		d := diet.AddDays(start, i)
		key := diet.DateKey(d)
		summary := DaySummary{Date: key, DayOfWeek: d.Format("Mon")}

		r, ok := records[key]
		if ok {
			summary.HasRecord = true
			summary.Completed, summary.Total = r.Counts()
			summary.Percent = percent(summary.Completed, summary.Total)
			summary.WaterGlasses = r.WaterGlasses
			summary.PerfectDay = r.IsPerfectDay()
		}
		report.Days = append(report.Days, summary)

		if !ok || summary.Total == 0 {
			continue
		}

		report.DaysWithData++
		report.TotalMeals += summary.Total
		report.CompletedMeals += summary.Completed
		report.TotalWater += r.WaterGlasses
		if summary.PerfectDay {
			report.PerfectDays++
		}
		for _, it := range r.Items {
			if !it.Completed {
				report.MissedMealsByType[it.Type]++
			}
		}

		ratio := float64(summary.Completed) / float64(summary.Total)
		if ratio > bestRatio {
			bestRatio = ratio
			report.BestDay = key
		}
		if ratio < worstRatio {
			worstRatio = ratio
			report.WorstDay = key
		}
	}

	report.DietFollowedPercent = percent(report.CompletedMeals, report.TotalMeals)
	return report, nil
}

// Monthly builds the report for the calendar month containing day.
//
// Every stored record counts, including records without items. The average
// water intake divides by the number of days in the month, not by the days
// that have data.
func (g *Generator) Monthly(day time.Time) (*MonthlyReport, error) {
	records, err := g.src.LoadRecords()
	if err != nil {
		return nil, err
	}

	start := diet.StartOfMonth(diet.CalendarDay(day))
	days := diet.DaysInMonth(start)
	report := &MonthlyReport{
		Month:       start.Format("2006-01"),
		DaysInMonth: days,
		GeneratedAt: g.now(),
	}

	for i := 0; i < days; i++ {
		r, ok := records[diet.DateKey(diet.AddDays(start, i))]
		if !ok {
			continue
		}
		completed, total := r.Counts()
		report.DaysWithData++
		report.TotalMeals += total
		report.CompletedMeals += completed
		report.TotalWater += r.WaterGlasses
		if r.IsPerfectDay() {
			report.PerfectDays++
		}
		if r.IsComplete() {
			report.StreakDays++
		}
	}

	report.DietFollowedPercent = percent(report.CompletedMeals, report.TotalMeals)
	report.AverageWaterIntake = round1(float64(report.TotalWater) / float64(days))
	return report, nil
}
