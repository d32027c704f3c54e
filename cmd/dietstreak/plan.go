package main

import (
	"fmt"
	"strings"

	"dietstreak/internal/diet"
)

type PlanListCmd struct{}

func (c *PlanListCmd) Run(app *appContext) error {
	svc, err := app.service()
	if err != nil {
		return err
	}
	plans, active, err := svc.Plans()
	if err != nil {
		return err
	}

	for _, p := range plans {
		marker := "  "
		if p.ID == active {
			marker = successStyle.Render("* ")
		}
		fmt.Fprintf(app.out, "%s%s  %s\n", marker, headerStyle.Render(p.Name), mutedStyle.Render(p.ID))
		if p.Description != "" {
			fmt.Fprintf(app.out, "    %s\n", p.Description)
		}
		for _, it := range p.Items {
			fmt.Fprintf(app.out, "    %s %-9s %s\n", it.Time, it.Type, it.Name)
		}
		if p.WaterGoal > 0 {
			fmt.Fprintf(app.out, "    water goal: %d\n", p.WaterGoal)
		}
	}
	return nil
}

type PlanAddCmd struct {
	Name        string   `arg:"" help:"Plan name."`
	Description string   `short:"d" help:"Plan description."`
	Item        []string `short:"i" help:"Item as type,HH:MM,name (repeatable)." sep:"none"`
	WaterGoal   int      `help:"Glasses of water per day (0 uses the default)." name:"water-goal"`
	Use         bool     `help:"Make the new plan active."`
}

func (c *PlanAddCmd) Run(app *appContext) error {
	items := make([]diet.PlanItem, 0, len(c.Item))
	for _, raw := range c.Item {
		it, err := parsePlanItem(raw)
		if err != nil {
			return err
		}
		items = append(items, it)
	}

	svc, err := app.service()
	if err != nil {
		return err
	}
	saved, err := svc.SavePlan(diet.DietPlan{
		Name:        c.Name,
		Description: c.Description,
		Items:       items,
		WaterGoal:   c.WaterGoal,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "Added plan %s (%s)\n", saved.Name, saved.ID)

	if c.Use {
		if _, err := svc.SelectPlan(saved.ID); err != nil {
			return err
		}
		fmt.Fprintln(app.out, "Plan is now active. Today's checklist was reset.")
	}
	return nil
}

// parsePlanItem parses "type,HH:MM,name". The name may contain commas.
func parsePlanItem(s string) (diet.PlanItem, error) {
	parts := strings.SplitN(s, ",", 3)
	if len(parts) != 3 {
		return diet.PlanItem{}, fmt.Errorf("invalid item %q, want type,HH:MM,name", s)
	}
	return diet.PlanItem{
		Type: diet.MealType(strings.ToLower(strings.TrimSpace(parts[0]))),
		Time: strings.TrimSpace(parts[1]),
		Name: strings.TrimSpace(parts[2]),
	}, nil
}

type PlanUseCmd struct {
	ID string `arg:"" help:"Plan id."`
}

func (c *PlanUseCmd) Run(app *appContext) error {
	svc, err := app.service()
	if err != nil {
		return err
	}
	r, err := svc.SelectPlan(c.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "Active plan: %s\n\n", c.ID)
	printRecord(app.out, r)
	return nil
}

type PlanDeleteCmd struct {
	ID string `arg:"" help:"Plan id."`
}

func (c *PlanDeleteCmd) Run(app *appContext) error {
	svc, err := app.service()
	if err != nil {
		return err
	}
	if err := svc.DeletePlan(c.ID); err != nil {
		return err
	}
	fmt.Fprintf(app.out, "Deleted plan %s\n", c.ID)
	return nil
}
