// This file defines the messages returned by the async commands in
// commands.go. Storage work never runs on the event loop.

package ui

import (
	"time"

	"dietstreak/internal/diet"
)

// dayLoadedMsg carries today's record and the streak after a (re)load.
type dayLoadedMsg struct {
	record   diet.DailyRecord
	streak   diet.StreakRecord
	rollover bool
	err      error
}

// itemToggledMsg is sent when an item's completion was flipped.
type itemToggledMsg struct {
	record diet.DailyRecord
	streak diet.StreakRecord
	name   string
	err    error
}

// waterAddedMsg is sent when a glass of water was logged.
type waterAddedMsg struct {
	record diet.DailyRecord
	err    error
}

// tickMsg drives date change detection and status expiry.
type tickMsg time.Time
