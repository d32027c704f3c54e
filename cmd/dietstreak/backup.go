package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(app *appContext) error {
	manager := app.backups()
	name, err := manager.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	info, err := manager.GetBackup(name)
	if err != nil {
		return fmt.Errorf("read backup info: %w", err)
	}

	fmt.Fprintf(app.out, "✓ Backup created: %s\n", name)
	fmt.Fprintf(app.out, "  Records: %d, Plans: %d, Best streak: %d\n",
		info.Stats["records"], info.Stats["plans"], info.Stats["best_streak"])
	fmt.Fprintf(app.out, "  Location: %s\n", info.Path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(app *appContext) error {
	manager := app.backups()
	backups, err := manager.List()
	if err != nil {
		return fmt.Errorf("list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Fprintln(app.out, "No backups available.")
		fmt.Fprintln(app.out, "Run 'dietstreak backup create' to create one.")
		return nil
	}

	fmt.Fprintln(app.out, "Available backups:")
	for _, b := range backups {
		fmt.Fprintf(app.out, "  %s  %s  Records: %d, Plans: %d\n",
			b.Name, mutedStyle.Render(padRight("("+formatAge(b.CreatedAt, app.now())+")", 16)),
			b.Stats["records"], b.Stats["plans"])
	}
	fmt.Fprintf(app.out, "\nBackup directory: %s\n", manager.Dir())
	return nil
}

type BackupRestoreCmd struct {
	Name   string `arg:"" optional:"" help:"Backup name as shown by 'backup list'."`
	Latest bool   `help:"Restore the most recent backup."`
	Yes    bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *BackupRestoreCmd) Run(app *appContext) error {
	if c.Name == "" && !c.Latest {
		return fmt.Errorf("give a backup name or --latest")
	}
	manager := app.backups()

	name := c.Name
	if c.Latest {
		backups, err := manager.List()
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			return fmt.Errorf("no backups available")
		}
		name = backups[0].Name
	}
	if _, err := manager.GetBackup(name); err != nil {
		return err
	}

	if !c.Yes {
		fmt.Fprintf(app.out, "%s\n", warnStyle.Render("This replaces your current data with backup "+name+"."))
		fmt.Fprintln(app.out, "A safety backup of the current data is taken first.")
		fmt.Fprint(app.out, "Continue? [y/N]: ")
		response, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(app.out, "Restore cancelled.")
			return nil
		}
	}

	// The sqlite file must not be open while it is replaced.
	if err := app.close(); err != nil {
		return err
	}
	if err := manager.Restore(name); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	fmt.Fprintf(app.out, "✓ Restored from %s\n", name)
	return nil
}

type BackupPruneCmd struct {
	Keep int `help:"Number of recent backups to keep." default:"10"`
}

func (c *BackupPruneCmd) Run(app *appContext) error {
	deleted, err := app.backups().Prune(c.Keep)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "Deleted %d backup(s)\n", deleted)
	return nil
}

// formatAge returns a human-readable age of t relative to now.
func formatAge(t, now time.Time) string {
	d := now.Sub(t)

	plural := func(n int, unit string) string {
		if n == 1 {
			return "1 " + unit + " ago"
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	default:
		return plural(int(d.Hours()/24/7), "week")
	}
}
