// Package ui is the interactive checklist for today's diet record.
package ui

import (
	"fmt"
	"strings"
	"time"

	"dietstreak/internal/config"
	"dietstreak/internal/diet"
	"dietstreak/internal/tracker"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	statusDuration = 3 * time.Second
	tickInterval   = time.Second
)

// App is the checklist model.
type App struct {
	svc    *tracker.Service
	styles *Styles
	keys   KeyMap
	help   help.Model

	record  diet.DailyRecord
	streak  diet.StreakRecord
	loaded  bool
	loading bool
	cursor  int

	width       int
	height      int
	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool
}

// NewApp creates the checklist. Loading is deferred to Init.
func NewApp(svc *tracker.Service, styles *Styles, keys *config.KeysConfig) *App {
	h := help.New()
	h.Styles = styles.Help
	return &App{
		svc:    svc,
		styles: styles,
		keys:   NewKeyMap(keys),
		help:   h,
	}
}

// Init loads today's record.
func (a *App) Init() tea.Cmd {
	a.loading = true
	return tea.Batch(loadDayCmd(a.svc), tickCmd(tickInterval))
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dayLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.SetStatus("Load: "+msg.err.Error(), true)
			return a, nil
		}
		a.setRecord(msg.record)
		a.streak = msg.streak
		if msg.rollover && a.loaded {
			a.SetStatus("New day: "+msg.record.Date, false)
		}
		a.loaded = true
		return a, nil

	case itemToggledMsg:
		if msg.record.Date != "" {
			a.setRecord(msg.record)
			a.streak = msg.streak
		}
		if msg.err != nil {
			a.SetStatus("Toggle: "+msg.err.Error(), true)
			return a, nil
		}
		switch {
		case a.record.IsPerfectDay():
			a.SetStatus("Perfect day!", false)
		case a.record.IsComplete():
			a.SetStatus("All meals done", false)
		default:
			a.SetStatus("Updated "+msg.name, false)
		}
		return a, nil

	case waterAddedMsg:
		if msg.record.Date != "" {
			a.setRecord(msg.record)
		}
		if msg.err != nil {
			a.SetStatus("Water: "+msg.err.Error(), true)
		}
		return a, nil

	case tickMsg:
		now := time.Time(msg)
		if a.status != "" && !a.statusUntil.IsZero() && now.After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		cmds := []tea.Cmd{tickCmd(tickInterval)}
		// Retry a failed first load; past midnight the open record belongs
		// to yesterday.
		if !a.loading && (!a.loaded || a.record.Date != a.svc.TodayKey()) {
			a.loading = true
			cmds = append(cmds, loadDayCmd(a.svc))
		}
		return a, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil
	}

	if !a.loaded {
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.record.Items)-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Toggle):
		if len(a.record.Items) == 0 {
			a.SetStatus("No items today", true)
			return a, nil
		}
		return a, toggleItemCmd(a.svc, a.record.Date, a.record.Items[a.cursor].ID)
	case key.Matches(msg, a.keys.Water):
		if a.record.WaterGlasses >= diet.MaxWaterGlasses(a.record.WaterGoal) {
			a.SetStatus("Water already at the daily cap", true)
			return a, nil
		}
		return a, addWaterCmd(a.svc, a.record.Date)
	}
	return a, nil
}

func (a *App) setRecord(r diet.DailyRecord) {
	a.record = r
	if a.cursor >= len(r.Items) {
		a.cursor = max(0, len(r.Items)-1)
	}
}

// SetStatus shows msg in the footer for a few seconds.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	a.statusUntil = a.svc.Now().Add(statusDuration)
}

// View renders the checklist.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(a.styles.TitleStyle.Render("dietstreak"))
	if a.record.Date != "" {
		b.WriteString(" " + a.styles.DateStyle.Render(formatDate(a.record.Date)))
	}
	b.WriteString("\n\n")

	if !a.loaded {
		b.WriteString(a.styles.StatLabelStyle.Render("Loading..."))
	} else {
		b.WriteString(a.styles.PaneStyle.Render(a.renderItems()))
		b.WriteString("\n")
		b.WriteString(a.renderStats())
	}
	b.WriteString("\n")

	if a.status != "" {
		style := a.styles.StatusStyle
		if a.statusErr {
			style = a.styles.ErrorStyle
		}
		b.WriteString(style.Render(a.status))
		b.WriteString("\n")
	}
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

func (a *App) renderItems() string {
	if len(a.record.Items) == 0 {
		return a.styles.StatLabelStyle.Render("The active plan has no items.")
	}

	lines := make([]string, 0, len(a.record.Items))
	for i, it := range a.record.Items {
		box := a.styles.CheckboxPending
		nameStyle := a.styles.ItemPendingStyle
		if it.Completed {
			box = a.styles.CheckboxDone
			nameStyle = a.styles.ItemDoneStyle
		}
		cursor := "  "
		if i == a.cursor {
			cursor = "> "
			if !it.Completed {
				nameStyle = a.styles.ItemSelectedStyle
			}
		}
		lines = append(lines, cursor+box+" "+
			a.styles.ItemTimeStyle.Render(it.Time)+" "+
			a.styles.MealTypeStyle.Render(string(it.Type))+
			nameStyle.Render(it.Name))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderStats() string {
	completed, total := a.record.Counts()
	parts := []string{
		a.styles.StatLabelStyle.Render("Meals ") + a.styles.StatValueStyle.Render(fmt.Sprintf("%d/%d", completed, total)),
		a.styles.StatLabelStyle.Render("Water ") + a.styles.WaterStyle.Render(fmt.Sprintf("%d/%d", a.record.WaterGlasses, a.record.WaterGoal)),
		a.styles.StatLabelStyle.Render("Streak ") + a.styles.StreakStyle.Render(fmt.Sprintf("%d", a.streak.CurrentStreak)) +
			a.styles.StatLabelStyle.Render(fmt.Sprintf(" (best %d)", a.streak.BestStreak)),
	}
	line := strings.Join(parts, "  ")
	if a.record.IsPerfectDay() {
		line += "  " + a.styles.PerfectStyle.Render("★ Perfect day")
	}
	return lipgloss.NewStyle().PaddingLeft(1).Render(line)
}

func formatDate(date string) string {
	d, err := diet.ParseDate(date)
	if err != nil {
		return date
	}
	return d.Format("Monday, Jan 2")
}

// Run starts the checklist on the alternate screen and blocks until quit.
func Run(svc *tracker.Service, cfg *config.Config) error {
	app := NewApp(svc, NewStyles(cfg), &cfg.Keys)
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
