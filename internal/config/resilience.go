package config

import (
	"time"

	"sale_counter_bot/internal/retry"
)

// Resilience groups the retry policies for the bot's outbound calls.
type Resilience struct {
	SheetRead retry.Config
	BotAPI    retry.Config
}

// DefaultResilience is the policy the bot runs with. Sheet reads get longer
// per-try budgets than Bot API sends because spreadsheet fetches are slow
// when a sheet is large.
var DefaultResilience = Resilience{
	SheetRead: retry.Config{
		Attempts:  4,
		BaseDelay: 2 * time.Second,
		MaxDelay:  30 * time.Second,
		PerTry:    15 * time.Second,
	},
	BotAPI: retry.Config{
		Attempts:  3,
		BaseDelay: 1 * time.Second,
		MaxDelay:  10 * time.Second,
		PerTry:    10 * time.Second,
	},
}
