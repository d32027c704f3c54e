package tracker

import (
	"fmt"
	"strings"

	"dietstreak/internal/diet"
	"dietstreak/internal/logger"

	"github.com/google/uuid"
)

const (
	maxPlanNameLen = 60
	maxPlanDescLen = 200
	maxItemNameLen = 80
	maxNotesLen    = 500
	maxWaterGoal   = 40
)

// Plans returns the registry and the active plan id.
func (s *Service) Plans() ([]diet.DietPlan, string, error) {
	plans, err := s.store.LoadPlans()
	if err != nil {
		return nil, "", err
	}
	active, err := s.store.CurrentPlanID()
	if err != nil {
		return nil, "", err
	}
	return plans, active, nil
}

// ValidatePlan checks a plan before it is stored.
func ValidatePlan(p diet.DietPlan) error {
	name := strings.TrimSpace(p.Name)
	switch {
	case name == "":
		return invalid("name", "plan name is required")
	case len([]rune(name)) > maxPlanNameLen:
		return invalid("name", "must be at most %d characters", maxPlanNameLen)
	case len([]rune(p.Description)) > maxPlanDescLen:
		return invalid("description", "must be at most %d characters", maxPlanDescLen)
	case p.WaterGoal < 0 || p.WaterGoal > maxWaterGoal:
		return invalid("waterGoal", "must be between 0 and %d", maxWaterGoal)
	}

	for i, it := range p.Items {
		if !it.Type.Valid() {
			return invalid("items", "item %d: unknown meal type %q", i+1, it.Type)
		}
		itemName := strings.TrimSpace(it.Name)
		if itemName == "" {
			return invalid("items", "item %d: name is required", i+1)
		}
		if len([]rune(itemName)) > maxItemNameLen {
			return invalid("items", "item %d: name must be at most %d characters", i+1, maxItemNameLen)
		}
		if !diet.ValidClock(it.Time) {
			return invalid("items", "item %d: time %q must be HH:MM", i+1, it.Time)
		}
	}
	return nil
}

// SavePlan validates p and stores it. A plan without an id is added with a
// fresh one; otherwise the plan with the same id is replaced, or p is
// appended when no plan has that id.
func (s *Service) SavePlan(p diet.DietPlan) (diet.DietPlan, error) {
	if err := ValidatePlan(p); err != nil {
		return diet.DietPlan{}, err
	}
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	items := make([]diet.PlanItem, len(p.Items))
	for i, it := range p.Items {
		it.Name = strings.TrimSpace(it.Name)
		items[i] = it
	}
	p.Items = items

	plans, err := s.store.LoadPlans()
	if err != nil {
		return diet.DietPlan{}, err
	}

	if p.ID == "" {
		p.ID = "plan-" + uuid.NewString()
	}
	replaced := false
	for i := range plans {
		if plans[i].ID == p.ID {
			plans[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		plans = append(plans, p)
	}

	if err := s.store.SavePlans(plans); err != nil {
		return p, err
	}
	logger.Info("plan saved", "id", p.ID, "name", p.Name, "replaced", replaced)
	return p, nil
}

// SelectPlan makes plan id active and rebuilds today's record from it.
// Progress already logged for today is discarded.
func (s *Service) SelectPlan(id string) (diet.DailyRecord, error) {
	plans, err := s.store.LoadPlans()
	if err != nil {
		return diet.DailyRecord{}, err
	}
	var plan *diet.DietPlan
	for i := range plans {
		if plans[i].ID == id {
			plan = &plans[i]
			break
		}
	}
	if plan == nil {
		return diet.DailyRecord{}, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}

	if err := s.store.SetCurrentPlanID(id); err != nil {
		return diet.DailyRecord{}, err
	}
	r := diet.Instantiate(*plan, s.TodayKey())
	logger.Info("plan selected", "id", id, "date", r.Date)
	return r, s.store.PutRecord(r)
}

// DeletePlan removes plan id. The active plan cannot be deleted, and an
// unknown id is ignored.
func (s *Service) DeletePlan(id string) error {
	plans, active, err := s.Plans()
	if err != nil {
		return err
	}
	if id == active {
		return invalid("id", "cannot delete the active plan")
	}

	kept := plans[:0]
	for _, p := range plans {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(plans) {
		logger.Debug("delete of unknown plan ignored", "id", id)
		return nil
	}
	if err := s.store.SavePlans(kept); err != nil {
		return err
	}
	logger.Info("plan deleted", "id", id)
	return nil
}
