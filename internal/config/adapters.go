package config

import (
	"time"

	"github.com/alexanderramin/agenda/internal/rules"
	"github.com/alexanderramin/agenda/internal/scheduler"
	"github.com/alexanderramin/agenda/internal/travel"
)

// SchedulerConfig maps the scheduling and rules sections onto the slot
// search settings.
func (c *Config) SchedulerConfig() scheduler.Config {
	return scheduler.Config{
		WorkDayStartHour: c.Scheduling.WorkDayStartHour,
		WorkDayEndHour:   c.Scheduling.WorkDayEndHour,
		SlotStep:         time.Duration(c.Scheduling.SlotStepMinutes) * time.Minute,
		NearbyTravel:     c.Rules.NearbyTravel,
		MaxSearchDays:    c.Scheduling.MaxSearchDays,
	}
}

func (c *Config) Policy() rules.Policy {
	p := rules.DefaultPolicy()
	p.BreakThreshold = c.Rules.BreakThreshold
	p.BlockGap = c.Rules.BlockGap
	p.BreakDuration = c.Rules.BreakDuration
	p.BalanceThreshold = c.Rules.BalanceThreshold
	p.PostponementWindow = c.Rules.PostponementWindow
	p.PostponementAge = c.Rules.PostponementAge
	p.Expiry = c.Rules.SuggestionExpiry
	return p
}

func (c *Config) TravelConfig() travel.Config {
	return travel.Config{
		Enabled:         c.Travel.Enabled,
		LogCalls:        c.Travel.LogCalls,
		Provider:        c.Travel.Provider,
		APIKey:          c.Travel.APIKey,
		Endpoint:        c.Travel.Endpoint,
		Timeout:         c.Travel.Timeout,
		MaxRetries:      c.Travel.MaxRetries,
		CacheSize:       c.Travel.CacheSize,
		CacheTTL:        c.Travel.CacheTTL,
		BufferThreshold: c.Travel.BufferThreshold,
	}
}
