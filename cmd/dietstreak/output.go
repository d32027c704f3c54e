package main

import (
	"fmt"
	"io"
	"strings"

	"dietstreak/internal/diet"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	missedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
)

// printRecord writes a numbered checklist for r.
func printRecord(w io.Writer, r diet.DailyRecord) {
	fmt.Fprintln(w, headerStyle.Render(r.Date))
	if len(r.Items) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  (no items)"))
	}
	for i, it := range r.Items {
		box := "[ ]"
		if it.Completed {
			box = doneStyle.Render("[✓]")
		}
		fmt.Fprintf(w, "%2d. %s %s %-9s %s\n", i+1, box, mutedStyle.Render(it.Time), it.Type, it.Name)
		if it.Notes != nil && *it.Notes != "" {
			fmt.Fprintf(w, "       %s\n", mutedStyle.Render(*it.Notes))
		}
	}

	completed, total := r.Counts()
	fmt.Fprintf(w, "\nMeals %d/%d  Water %d/%d", completed, total, r.WaterGlasses, r.WaterGoal)
	if r.Mood != nil {
		fmt.Fprintf(w, "  Mood energy=%s sleep=%s stress=%s", r.Mood.Energy, r.Mood.SleepQuality, r.Mood.StressLevel)
	}
	fmt.Fprintln(w)
	if r.IsPerfectDay() {
		fmt.Fprintln(w, successStyle.Render("★ Perfect day"))
	}
}

func statusStyle(s diet.Status) lipgloss.Style {
	switch s {
	case diet.StatusComplete:
		return doneStyle
	case diet.StatusPartial:
		return warnStyle
	default:
		return missedStyle
	}
}

// padRight pads s to width runes.
func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
