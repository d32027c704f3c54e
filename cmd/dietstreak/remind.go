package main

import (
	"fmt"

	"dietstreak/internal/logger"
	"dietstreak/internal/notify"
	"dietstreak/internal/tracker"
)

type RemindCmd struct {
	DryRun bool `help:"Print reminders instead of sending notifications." name:"dry-run"`
}

func (c *RemindCmd) Run(app *appContext) error {
	if !app.cfg.Notifications.Enabled {
		fmt.Fprintln(app.out, "Notifications are disabled in the config.")
		return nil
	}
	svc, err := app.service()
	if err != nil {
		return err
	}
	missed, err := svc.MissedItems(app.cfg.MissedGrace())
	if err != nil {
		return err
	}
	if len(missed) == 0 {
		fmt.Fprintln(app.out, "Nothing missed so far today.")
		return nil
	}

	var n notify.Notifier = &notify.Recorder{}
	if !c.DryRun {
		n = notify.New()
		if !n.IsSupported() {
			logger.Warn("desktop notifications unavailable, printing instead")
			n = &notify.Recorder{}
		}
	}
	return sendReminders(app, n, missed)
}

// sendReminders notifies about each missed item and lists it on app.out.
func sendReminders(app *appContext, n notify.Notifier, missed []tracker.MissedItem) error {
	now := app.now()
	var failed int
	for _, m := range missed {
		msg := notify.MissedMeal(m.Item, m.Due, now, app.cfg.Notifications.Sound)
		if err := n.Send(msg); err != nil {
			logger.Error("notification failed", "item", m.Item.ID, "err", err)
			failed++
		}
		fmt.Fprintf(app.out, "%s: %s\n", warnStyle.Render(msg.Title), msg.Body)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d notifications failed", failed, len(missed))
	}
	return nil
}
