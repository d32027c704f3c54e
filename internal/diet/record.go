package diet

import (
	"strings"
	"time"
)

// Status is the coarse completion state of a day, as shown in history.
type Status string

const (
	StatusComplete Status = "complete"
	StatusPartial  Status = "partial"
	StatusMissed   Status = "missed"
)

// Clone returns a deep copy of r, so mutators never alias the caller's record.
func (r DailyRecord) Clone() DailyRecord {
	out := r
	out.Items = make([]DietItem, len(r.Items))
	for i, it := range r.Items {
		it.Notes = cloneString(it.Notes)
		if it.CompletedAt != nil {
			at := *it.CompletedAt
			it.CompletedAt = &at
		}
		out.Items[i] = it
	}
	if r.Mood != nil {
		m := *r.Mood
		out.Mood = &m
	}
	return out
}

// Normalize repairs fields that stored data may lack: a missing item list
// and a non-positive water goal.
func (r DailyRecord) Normalize() DailyRecord {
	if r.Items == nil {
		r.Items = []DietItem{}
	}
	if r.WaterGoal <= 0 {
		r.WaterGoal = DefaultWaterGoal
	}
	if r.WaterGlasses < 0 {
		r.WaterGlasses = 0
	}
	r.PerfectDay = r.IsPerfectDay()
	return r
}

// Counts returns the number of completed items and the total.
func (r DailyRecord) Counts() (completed, total int) {
	for _, it := range r.Items {
		if it.Completed {
			completed++
		}
	}
	return completed, len(r.Items)
}

// IsComplete reports whether the record has items and all are completed.
// This is what counts toward a streak.
func (r DailyRecord) IsComplete() bool {
	completed, total := r.Counts()
	return total > 0 && completed == total
}

// IsPerfectDay reports whether every item is done and the water goal is met.
// A day without items is never perfect.
func (r DailyRecord) IsPerfectDay() bool {
	return r.IsComplete() && r.WaterGlasses >= r.WaterGoal
}

// Status classifies the record for history views.
func (r DailyRecord) Status() Status {
	completed, total := r.Counts()
	switch {
	case total == 0 || completed == 0:
		return StatusMissed
	case completed == total:
		return StatusComplete
	default:
		return StatusPartial
	}
}

// Item returns the index of the item with id, or -1.
func (r DailyRecord) Item(id string) int {
	for i := range r.Items {
		if r.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// ToggleItem flips the completion of item id. Completing stamps CompletedAt
// with now and un-completing clears it. An unknown id returns r unchanged.
func ToggleItem(r DailyRecord, id string, now time.Time) DailyRecord {
	i := r.Item(id)
	if i < 0 {
		return r
	}

	out := r.Clone()
	it := &out.Items[i]
	it.Completed = !it.Completed
	if it.Completed {
		at := now
		it.CompletedAt = &at
	} else {
		it.CompletedAt = nil
	}
	out.PerfectDay = out.IsPerfectDay()
	return out
}

// MaxWaterGlasses is the cap AddWater enforces for a goal.
func MaxWaterGlasses(goal int) int {
	return 2 * goal
}

// AddWater logs one glass, never exceeding twice the goal.
func AddWater(r DailyRecord) DailyRecord {
	out := r.Clone()
	out.WaterGlasses = min(out.WaterGlasses+1, MaxWaterGlasses(out.WaterGoal))
	out.PerfectDay = out.IsPerfectDay()
	return out
}

// SetNotes sets the notes of item id. Blank text removes them.
func SetNotes(r DailyRecord, id, text string) DailyRecord {
	i := r.Item(id)
	if i < 0 {
		return r
	}

	out := r.Clone()
	text = strings.TrimSpace(text)
	if text == "" {
		out.Items[i].Notes = nil
	} else {
		out.Items[i].Notes = &text
	}
	return out
}

// SetMood replaces the day's mood check-in.
func SetMood(r DailyRecord, mood Mood) DailyRecord {
	out := r.Clone()
	out.Mood = &mood
	return out
}
