package main

import "dietstreak/internal/ui"

type TuiCmd struct{}

func (c *TuiCmd) Run(app *appContext) error {
	svc, err := app.service()
	if err != nil {
		return err
	}
	return ui.Run(svc, app.cfg)
}
