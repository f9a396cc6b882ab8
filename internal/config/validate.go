package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if err := c.Scheduling.validate(); err != nil {
		return fmt.Errorf("scheduling: %w", err)
	}
	if err := c.Rules.validate(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	if err := c.Travel.validate(); err != nil {
		return fmt.Errorf("travel: %w", err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// Location resolves Timezone. "Local" and "" mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (s SchedulingConfig) validate() error {
	if s.WorkDayStartHour < 0 || s.WorkDayStartHour > 23 {
		return fmt.Errorf("work_day_start_hour must be in [0, 23] (got %d)", s.WorkDayStartHour)
	}
	if s.WorkDayEndHour < 1 || s.WorkDayEndHour > 24 {
		return fmt.Errorf("work_day_end_hour must be in [1, 24] (got %d)", s.WorkDayEndHour)
	}
	if s.WorkDayEndHour <= s.WorkDayStartHour {
		return fmt.Errorf("work_day_end_hour (%d) must be after work_day_start_hour (%d)",
			s.WorkDayEndHour, s.WorkDayStartHour)
	}
	if s.SlotStepMinutes <= 0 {
		return fmt.Errorf("slot_step_minutes must be > 0 (got %d)", s.SlotStepMinutes)
	}
	if s.SearchDays < 0 || s.SearchDays > s.MaxSearchDays {
		return fmt.Errorf("search_days must be in [0, %d] (got %d)", s.MaxSearchDays, s.SearchDays)
	}
	if s.SearchTimeout <= 0 {
		return fmt.Errorf("search_timeout must be > 0 (got %s)", s.SearchTimeout)
	}
	if s.PrefetchWorkers <= 0 {
		return fmt.Errorf("prefetch_workers must be > 0 (got %d)", s.PrefetchWorkers)
	}
	return nil
}

func (r RulesConfig) validate() error {
	if r.BalanceThreshold <= 0 || r.BalanceThreshold > 1 {
		return fmt.Errorf("balance_threshold must be in (0, 1] (got %v)", r.BalanceThreshold)
	}
	durations := []struct {
		name string
		v    time.Duration
	}{
		{"break_threshold", r.BreakThreshold},
		{"break_duration", r.BreakDuration},
		{"postponement_window", r.PostponementWindow},
		{"suggestion_expiry", r.SuggestionExpiry},
	}
	for _, d := range durations {
		if d.v <= 0 {
			return fmt.Errorf("%s must be > 0 (got %s)", d.name, d.v)
		}
	}
	if r.BlockGap < 0 || r.PostponementAge < 0 || r.NearbyTravel < 0 {
		return fmt.Errorf("block_gap, postponement_age and nearby_travel must not be negative")
	}
	return nil
}

func (t TravelConfig) validate() error {
	if t.Enabled && t.APIKey == "" {
		return fmt.Errorf("api_key is required when the provider is enabled")
	}
	if t.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", t.Timeout)
	}
	if t.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0 (got %d)", t.MaxRetries)
	}
	if t.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be > 0 (got %d)", t.CacheSize)
	}
	if t.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative (got %s)", t.CacheTTL)
	}
	return nil
}

// SlogLevel maps Level onto a slog level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown level %q", l.Level)
	}
}
