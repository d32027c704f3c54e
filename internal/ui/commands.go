// This file contains tea.Cmd factories wrapping tracker operations so they
// run off the Bubble Tea event loop.

package ui

import (
	"errors"
	"time"

	"dietstreak/internal/tracker"

	tea "github.com/charmbracelet/bubbletea"
)

// tickCmd returns a command that sends a tick every interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadDayCmd rolls the day over when needed and loads today's record.
func loadDayCmd(svc *tracker.Service) tea.Cmd {
	return func() tea.Msg {
		rolled, err := svc.CheckAndResetDaily()
		if err != nil {
			return dayLoadedMsg{err: err}
		}
		record, err := svc.Today()
		if err != nil {
			return dayLoadedMsg{err: err}
		}
		streak, err := svc.Streak()
		return dayLoadedMsg{record: record, streak: streak, rollover: rolled, err: err}
	}
}

// toggleItemCmd flips item id on date's record. The returned record is the
// updated one even when saving failed.
func toggleItemCmd(svc *tracker.Service, date, id string) tea.Cmd {
	return func() tea.Msg {
		record, err := svc.Toggle(date, id)
		var name string
		if i := record.Item(id); i >= 0 {
			name = record.Items[i].Name
		}
		streak, streakErr := svc.Streak()
		return itemToggledMsg{record: record, streak: streak, name: name, err: errors.Join(err, streakErr)}
	}
}

// addWaterCmd logs one glass on date's record.
func addWaterCmd(svc *tracker.Service, date string) tea.Cmd {
	return func() tea.Msg {
		record, err := svc.AddWater(date)
		return waterAddedMsg{record: record, err: err}
	}
}
