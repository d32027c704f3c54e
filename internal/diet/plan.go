package diet

import (
	"errors"
	"fmt"
)

// ErrNoPlan means the plan registry is empty. EnsureDefaultPlan prevents it.
var ErrNoPlan = errors.New("no diet plan configured")

// DefaultPlanID is the id of the seeded plan.
const DefaultPlanID = "default"

// DefaultPlan returns the plan seeded on first run.
func DefaultPlan() DietPlan {
	return DietPlan{
		ID:          DefaultPlanID,
		Name:        "Balanced Diet",
		Description: "A balanced daily meal plan",
		Items: []PlanItem{
			{Type: Breakfast, Name: "Oats + Banana", Time: "08:00"},
			{Type: Snacks, Name: "Fruits", Time: "11:00"},
			{Type: Lunch, Name: "Rice + Dal + Salad", Time: "14:00"},
			{Type: Snacks, Name: "Nuts", Time: "17:00"},
			{Type: Dinner, Name: "Light Dinner", Time: "20:30"},
		},
	}
}

// ItemID is the id of the index-th item of a record for date.
// It is stable for the same plan and date.
func ItemID(date string, t MealType, index int) string {
	return fmt.Sprintf("%s-%s-%d", date, t, index)
}

// ResolvePlan picks the plan with id activeID, falling back to the first
// plan. It fails only when plans is empty.
func ResolvePlan(plans []DietPlan, activeID string) (DietPlan, error) {
	if len(plans) == 0 {
		return DietPlan{}, ErrNoPlan
	}
	for _, p := range plans {
		if p.ID == activeID {
			return p, nil
		}
	}
	return plans[0], nil
}

// Instantiate builds a fresh record for date from plan.
func Instantiate(plan DietPlan, date string) DailyRecord {
	items := make([]DietItem, len(plan.Items))
	for i, tmpl := range plan.Items {
		items[i] = DietItem{
			ID:    ItemID(date, tmpl.Type, i),
			Type:  tmpl.Type,
			Name:  tmpl.Name,
			Time:  tmpl.Time,
			Notes: cloneString(tmpl.Notes),
		}
	}

	goal := plan.WaterGoal
	if goal <= 0 {
		goal = DefaultWaterGoal
	}

	return DailyRecord{
		Date:      date,
		Items:     items,
		WaterGoal: goal,
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
