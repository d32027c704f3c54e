package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dietstreak/internal/diet"
	"dietstreak/internal/fsutil"
	"dietstreak/internal/reports"
)

// ReportOptions are shared by the report subcommands.
type ReportOptions struct {
	Date   string `arg:"" optional:"" help:"Any date in the period (YYYY-MM-DD). Defaults to today."`
	Format string `short:"f" help:"Output format." enum:"markdown,md,json" default:"markdown"`
	Output string `short:"o" help:"Write to file instead of stdout." type:"path"`
}

func (f ReportOptions) day(now time.Time) (time.Time, error) {
	if f.Date == "" {
		return diet.CalendarDay(now), nil
	}
	d, err := diet.ParseDate(f.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", f.Date)
	}
	return d, nil
}

// write prints output or writes it atomically to f.Output.
func (f ReportOptions) write(app *appContext, output []byte) error {
	if f.Output == "" {
		_, err := app.out.Write(output)
		return err
	}
	if dir := filepath.Dir(f.Output); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := fsutil.WriteFileAtomic(f.Output, output, 0600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(app.out, "Report written to %s\n", f.Output)
	return nil
}

func (app *appContext) generator() (*reports.Generator, error) {
	svc, err := app.service()
	if err != nil {
		return nil, err
	}
	g := reports.NewGenerator(svc.Storage(), app.cfg.WeekStart())
	g.SetNowFunc(svc.Now)
	return g, nil
}

type ReportWeekCmd struct {
	ReportOptions `embed:""`
}

func (c *ReportWeekCmd) Run(app *appContext) error {
	g, err := app.generator()
	if err != nil {
		return err
	}
	day, err := c.day(app.now())
	if err != nil {
		return err
	}
	report, err := g.Weekly(day)
	if err != nil {
		return fmt.Errorf("weekly report: %w", err)
	}

	var output []byte
	if c.Format == "json" {
		if output, err = reports.FormatWeeklyJSON(report); err != nil {
			return err
		}
		output = append(output, '\n')
	} else {
		output = []byte(reports.FormatWeeklyMarkdown(report))
	}
	return c.write(app, output)
}

type ReportMonthCmd struct {
	ReportOptions `embed:""`
}

func (c *ReportMonthCmd) Run(app *appContext) error {
	g, err := app.generator()
	if err != nil {
		return err
	}
	day, err := c.day(app.now())
	if err != nil {
		return err
	}
	report, err := g.Monthly(day)
	if err != nil {
		return fmt.Errorf("monthly report: %w", err)
	}

	var output []byte
	if c.Format == "json" {
		if output, err = reports.FormatMonthlyJSON(report); err != nil {
			return err
		}
		output = append(output, '\n')
	} else {
		output = []byte(reports.FormatMonthlyMarkdown(report))
	}
	return c.write(app, output)
}
