package ui

import (
	"dietstreak/internal/config"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the checklist styles derived from the theme.
type Styles struct {
	ColorPrimary lipgloss.Color
	ColorAccent  lipgloss.Color
	ColorMuted   lipgloss.Color
	ColorDanger  lipgloss.Color
	ColorWarning lipgloss.Color
	ColorText    lipgloss.Color

	TitleStyle lipgloss.Style
	DateStyle  lipgloss.Style
	PaneStyle  lipgloss.Style

	ItemDoneStyle     lipgloss.Style
	ItemPendingStyle  lipgloss.Style
	ItemSelectedStyle lipgloss.Style
	ItemTimeStyle     lipgloss.Style
	CheckboxDone      string
	CheckboxPending   string

	MealTypeStyle lipgloss.Style
	StreakStyle   lipgloss.Style
	WaterStyle    lipgloss.Style
	PerfectStyle  lipgloss.Style

	StatLabelStyle lipgloss.Style
	StatValueStyle lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style

	Help help.Styles
}

// NewStyles creates styles from cfg's theme.
func NewStyles(cfg *config.Config) *Styles {
	return NewStylesFromTheme(&cfg.Theme)
}

// NewStylesFromTheme creates styles from theme. Empty colours use the
// defaults.
func NewStylesFromTheme(theme *config.ThemeConfig) *Styles {
	s := &Styles{
		ColorPrimary: colorOrDefault(theme.Primary, "#7C3AED"),
		ColorAccent:  colorOrDefault(theme.Accent, "#10B981"),
		ColorMuted:   colorOrDefault(theme.Muted, "#6B7280"),
		ColorDanger:  lipgloss.Color("#EF4444"),
		ColorWarning: lipgloss.Color("#F59E0B"),
		ColorText:    lipgloss.Color("#F9FAFB"),
	}
	s.initComponentStyles()
	return s
}

func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

func (s *Styles) initComponentStyles() {
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorPrimary).
		Padding(0, 1)

	s.DateStyle = lipgloss.NewStyle().Foreground(s.ColorMuted)

	s.PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorPrimary).
		Padding(0, 1)

	s.ItemDoneStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted).
		Strikethrough(true)
	s.ItemPendingStyle = lipgloss.NewStyle().Foreground(s.ColorText)
	s.ItemSelectedStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)
	s.ItemTimeStyle = lipgloss.NewStyle().Foreground(s.ColorMuted)

	s.CheckboxDone = lipgloss.NewStyle().Foreground(s.ColorAccent).Render("[✓]")
	s.CheckboxPending = lipgloss.NewStyle().Foreground(s.ColorMuted).Render("[ ]")

	s.MealTypeStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Width(10)
	s.StreakStyle = lipgloss.NewStyle().
		Foreground(s.ColorWarning).
		Bold(true)
	s.WaterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
	s.PerfectStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	s.StatLabelStyle = lipgloss.NewStyle().Foreground(s.ColorMuted)
	s.StatValueStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Bold(true)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Italic(true)
	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	s.Help = help.Styles{
		ShortKey:       lipgloss.NewStyle().Foreground(s.ColorAccent).Bold(true),
		ShortDesc:      lipgloss.NewStyle().Foreground(s.ColorMuted),
		ShortSeparator: lipgloss.NewStyle().Foreground(s.ColorMuted),
		FullKey:        lipgloss.NewStyle().Foreground(s.ColorAccent).Bold(true),
		FullDesc:       lipgloss.NewStyle().Foreground(s.ColorMuted),
		FullSeparator:  lipgloss.NewStyle().Foreground(s.ColorMuted),
		Ellipsis:       lipgloss.NewStyle().Foreground(s.ColorMuted),
	}
}
