// Package main is the dietstreak command: a daily diet checklist with
// streaks and reports.
package main

import (
	"fmt"
	"os"

	"dietstreak/internal/config"
	"dietstreak/internal/logger"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Version information, set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var CLI struct {
	Version kong.VersionFlag `help:"Show version information."`
	Debug   bool             `help:"Log at debug level and mirror logs to stderr."`
	NoColor bool             `help:"Disable colored output." name:"no-color"`
	DataDir string           `help:"Override the data directory." name:"data-dir" type:"path"`

	Tui     TuiCmd     `cmd:"" help:"Open the interactive checklist." default:"1"`
	Today   TodayCmd   `cmd:"" help:"Show today's checklist."`
	Toggle  ToggleCmd  `cmd:"" help:"Toggle an item's completion."`
	Water   WaterCmd   `cmd:"" help:"Log glasses of water."`
	Notes   NotesCmd   `cmd:"" help:"Set or clear an item's notes."`
	Mood    MoodCmd    `cmd:"" help:"Record the day's mood check-in."`
	Streak  StreakCmd  `cmd:"" help:"Show the current and best streak."`
	History HistoryCmd `cmd:"" help:"Show the status of each tracked day in a month."`
	Remind  RemindCmd  `cmd:"" help:"Notify about meals missed today."`
	Report  struct {
		Week  ReportWeekCmd  `cmd:"" help:"Weekly report." default:"1"`
		Month ReportMonthCmd `cmd:"" help:"Monthly report."`
	} `cmd:"" help:"Generate reports."`
	Plan struct {
		List   PlanListCmd   `cmd:"" help:"List diet plans." default:"1"`
		Add    PlanAddCmd    `cmd:"" help:"Add a diet plan."`
		Use    PlanUseCmd    `cmd:"" help:"Make a plan active."`
		Delete PlanDeleteCmd `cmd:"" help:"Delete a plan."`
	} `cmd:"" help:"Manage diet plans."`
	Backup struct {
		Create  BackupCreateCmd  `cmd:"" help:"Create a backup." default:"1"`
		List    BackupListCmd    `cmd:"" help:"List available backups."`
		Restore BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
		Prune   BackupPruneCmd   `cmd:"" help:"Delete old backups."`
	} `cmd:"" help:"Manage backups of the data directory."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("dietstreak"),
		kong.Description("Daily diet checklist with streaks and reports"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)},
	)

	if CLI.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if CLI.DataDir != "" {
		cfg.DataDir = CLI.DataDir
	}
	if CLI.Debug {
		cfg.Log.Debug = true
	}

	app := newAppContext(cfg)
	if err := logger.Init(logger.Config{Debug: cfg.Log.Debug, Dir: app.logDir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	logger.Debug("starting", "command", ctx.Command(), "data_dir", app.dataDir, "backend", cfg.Storage.Backend)

	err = ctx.Run(app)
	if closeErr := app.close(); closeErr != nil {
		logger.Error("closing store failed", "err", closeErr)
	}
	if err != nil {
		logger.Error("command failed", "command", ctx.Command(), "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
