package reports

import (
	"fmt"
	"strings"

	"dietstreak/internal/diet"
)

// FormatWeeklyMarkdown renders a weekly report as a Markdown document.
func FormatWeeklyMarkdown(r *WeeklyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Week %s to %s\n\n", r.WeekStart, r.WeekEnd)
	fmt.Fprintf(&b, "- Diet followed: **%.1f%%** (%d/%d meals)\n", r.DietFollowedPercent, r.CompletedMeals, r.TotalMeals)
	fmt.Fprintf(&b, "- Perfect days: %d\n", r.PerfectDays)
	fmt.Fprintf(&b, "- Water: %d glasses\n", r.TotalWater)
	if r.BestDay != "" {
		fmt.Fprintf(&b, "- Best day: %s\n", r.BestDay)
		fmt.Fprintf(&b, "- Worst day: %s\n", r.WorstDay)
	}

	b.WriteString("\n## Missed meals\n\n")
	for _, t := range diet.MealTypes {
		fmt.Fprintf(&b, "- %s: %d\n", t, r.MissedMealsByType[t])
	}

	b.WriteString("\n## Days\n\n")
	b.WriteString("| Day | Date | Meals | Water | Perfect |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, d := range r.Days {
		if !d.HasRecord {
			fmt.Fprintf(&b, "| %s | %s | - | - | |\n", d.DayOfWeek, d.Date)
			continue
		}
		perfect := ""
		if d.PerfectDay {
			perfect = "yes"
		}
		fmt.Fprintf(&b, "| %s | %s | %d/%d | %d | %s |\n", d.DayOfWeek, d.Date, d.Completed, d.Total, d.WaterGlasses, perfect)
	}
	return b.String()
}

// FormatMonthlyMarkdown renders a monthly report as a Markdown document.
func FormatMonthlyMarkdown(r *MonthlyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Month %s\n\n", r.Month)
	fmt.Fprintf(&b, "- Diet followed: **%.1f%%** (%d/%d meals)\n", r.DietFollowedPercent, r.CompletedMeals, r.TotalMeals)
	fmt.Fprintf(&b, "- Average water: %.1f glasses/day\n", r.AverageWaterIntake)
	fmt.Fprintf(&b, "- Perfect days: %d\n", r.PerfectDays)
	fmt.Fprintf(&b, "- Fully completed days: %d\n", r.StreakDays)
	fmt.Fprintf(&b, "- Days tracked: %d of %d\n", r.DaysWithData, r.DaysInMonth)
	return b.String()
}
