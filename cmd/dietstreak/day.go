package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dietstreak/internal/diet"
	"dietstreak/internal/tracker"
)

// loadDay returns today's record, creating it, or a stored past record.
func loadDay(svc *tracker.Service, date string) (diet.DailyRecord, bool, error) {
	if date == "" || date == svc.TodayKey() {
		r, err := svc.Today()
		return r, err == nil, err
	}
	return svc.Record(date)
}

// resolveItem turns a 1-based position or an item id into an item id of
// date's record.
func resolveItem(svc *tracker.Service, date, ref string) (string, error) {
	r, ok, err := loadDay(svc, date)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", tracker.ErrRecordNotFound, date)
	}

	if n, convErr := strconv.Atoi(ref); convErr == nil {
		if n < 1 || n > len(r.Items) {
			return "", fmt.Errorf("item %d out of range (1-%d)", n, len(r.Items))
		}
		return r.Items[n-1].ID, nil
	}
	if r.Item(ref) < 0 {
		return "", fmt.Errorf("%w: %s", tracker.ErrItemNotFound, ref)
	}
	return ref, nil
}

type TodayCmd struct {
	Date string `help:"Show this date (YYYY-MM-DD) instead of today."`
}

func (c *TodayCmd) Run(app *appContext) error {
	svc, err := app.service()
	if err != nil {
		return err
	}

	r, ok, err := loadDay(svc, c.Date)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(app.out, "No record for %s.\n", c.Date)
		return nil
	}
	printRecord(app.out, r)
	return nil
}

type ToggleCmd struct {
	Item string `arg:"" help:"Item number as listed by 'today', or item id."`
	Date string `help:"Toggle on a past date (YYYY-MM-DD). The streak is not affected."`
}

func (c *ToggleCmd) Run(app *appContext) error {
	svc, err := app.service()
	if err != nil {
		return err
	}
	id, err := resolveItem(svc, c.Date, c.Item)
	if err != nil {
		return err
	}

	r, err := svc.Toggle(c.Date, id)
	if r.Date != "" {
		if i := r.Item(id); i >= 0 {
			state := "not done"
			if r.Items[i].Completed {
				state = doneStyle.Render("done")
			}
			fmt.Fprintf(app.out, "%s: %s\n", r.Items[i].Name, state)
		}
		if r.IsPerfectDay() {
			fmt.Fprintln(app.out, successStyle.Render("★ Perfect day"))
		}
	}
	return err
}

type WaterCmd struct {
	Glasses int    `help:"Number of glasses to log." default:"1"`
	Date    string `help:"Log on a past date (YYYY-MM-DD)."`
}

func (c *WaterCmd) Run(app *appContext) error {
	if c.Glasses < 1 {
		return fmt.Errorf("--glasses must be at least 1")
	}
	svc, err := app.service()
	if err != nil {
		return err
	}

	var r diet.DailyRecord
	for i := 0; i < c.Glasses; i++ {
		r, err = svc.AddWater(c.Date)
		if err != nil {
			return err
		}
		if r.WaterGlasses >= diet.MaxWaterGlasses(r.WaterGoal) {
			break
		}
	}
	fmt.Fprintf(app.out, "Water: %d/%d glasses\n", r.WaterGlasses, r.WaterGoal)
	if r.WaterGlasses >= diet.MaxWaterGlasses(r.WaterGoal) {
		fmt.Fprintln(app.out, warnStyle.Render("Daily cap reached."))
	}
	return nil
}

type NotesCmd struct {
	Item string `arg:"" help:"Item number or id."`
	Text string `arg:"" optional:"" help:"Notes text. Omit to clear."`
	Date string `help:"Edit a past date (YYYY-MM-DD)."`
}

func (c *NotesCmd) Run(app *appContext) error {
	svc, err := app.service()
	if err != nil {
		return err
	}
	id, err := resolveItem(svc, c.Date, c.Item)
	if err != nil {
		return err
	}
	r, err := svc.SetNotes(c.Date, id, c.Text)
	if err != nil {
		return err
	}
	if strings.TrimSpace(c.Text) == "" {
		fmt.Fprintf(app.out, "Cleared notes on %s\n", r.Items[r.Item(id)].Name)
	} else {
		fmt.Fprintf(app.out, "Saved notes on %s\n", r.Items[r.Item(id)].Name)
	}
	return nil
}

type MoodCmd struct {
	Energy string `help:"Energy level." enum:"low,medium,high" required:""`
	Sleep  string `help:"Sleep quality." enum:"poor,fair,good,excellent" required:""`
	Stress string `help:"Stress level." enum:"low,medium,high" required:""`
	Date   string `help:"Record for a past date (YYYY-MM-DD)."`
}

func (c *MoodCmd) Run(app *appContext) error {
	svc, err := app.service()
	if err != nil {
		return err
	}
	mood := diet.Mood{
		Energy:       diet.Energy(c.Energy),
		SleepQuality: diet.SleepQuality(c.Sleep),
		StressLevel:  diet.StressLevel(c.Stress),
	}
	r, err := svc.SetMood(c.Date, mood)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "Mood saved for %s\n", r.Date)
	return nil
}

type StreakCmd struct{}

func (c *StreakCmd) Run(app *appContext) error {
	svc, err := app.service()
	if err != nil {
		return err
	}
	st, err := svc.Streak()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.out, "Current streak: %s\n", headerStyle.Render(strconv.Itoa(st.CurrentStreak)))
	fmt.Fprintf(app.out, "Best streak:    %d\n", st.BestStreak)
	if st.LastActiveDate != "" {
		fmt.Fprintf(app.out, "Last complete:  %s\n", st.LastActiveDate)
	}
	return nil
}

type HistoryCmd struct {
	Month string `arg:"" optional:"" help:"Month as YYYY-MM. Defaults to the current month."`
}

func (c *HistoryCmd) Run(app *appContext) error {
	svc, err := app.service()
	if err != nil {
		return err
	}
	month, err := parseMonth(c.Month, svc.Now())
	if err != nil {
		return err
	}

	entries, err := svc.History(month)
	if err != nil {
		return err
	}
	fmt.Fprintln(app.out, headerStyle.Render(month.Format("January 2006")))
	if len(entries) == 0 {
		fmt.Fprintln(app.out, mutedStyle.Render("No tracked days."))
		return nil
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %s %d/%d  water %d/%d",
			e.Date, statusStyle(e.Status).Render(padRight(string(e.Status), 8)),
			e.Completed, e.Total, e.WaterGlasses, e.WaterGoal)
		if e.PerfectDay {
			line += "  ★"
		}
		fmt.Fprintln(app.out, line)
	}
	return nil
}

// parseMonth parses YYYY-MM in local time. Empty means the month of now.
func parseMonth(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return diet.StartOfMonth(diet.CalendarDay(now)), nil
	}
	t, err := time.ParseInLocation("2006-01", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, want YYYY-MM", s)
	}
	return t, nil
}
