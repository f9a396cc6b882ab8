package config

import "time"

// Config is the root application configuration.
type Config struct {
	// User is the calendar owner the CLI acts for when --user is not given.
	User       string           `yaml:"user"     env:"AGENDA_USER"     env-default:"me"`
	Timezone   string           `yaml:"timezone" env:"AGENDA_TIMEZONE" env-default:"Local"`
	Database   DatabaseConfig   `yaml:"database"`
	Scheduling SchedulingConfig `yaml:"scheduling"`
	Rules      RulesConfig      `yaml:"rules"`
	Travel     TravelConfig     `yaml:"travel"`
	Log        LogConfig        `yaml:"log"`
}

// DatabaseConfig locates the SQLite store. An empty path means
// ~/.agenda/agenda.db.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"AGENDA_DB"`
}

// SchedulingConfig holds slot search settings.
type SchedulingConfig struct {
	WorkDayStartHour int           `yaml:"work_day_start_hour" env:"AGENDA_WORK_DAY_START_HOUR" env-default:"8"`
	WorkDayEndHour   int           `yaml:"work_day_end_hour"   env:"AGENDA_WORK_DAY_END_HOUR"   env-default:"20"`
	SearchDays       int           `yaml:"search_days"         env:"AGENDA_SEARCH_DAYS"         env-default:"7"`
	MaxSearchDays    int           `yaml:"max_search_days"     env:"AGENDA_MAX_SEARCH_DAYS"     env-default:"90"`
	SlotStepMinutes  int           `yaml:"slot_step_minutes"   env:"AGENDA_SLOT_STEP_MINUTES"   env-default:"15"`
	SearchTimeout    time.Duration `yaml:"search_timeout"      env:"AGENDA_SEARCH_TIMEOUT"      env-default:"2s"`
	PrefetchWorkers  int           `yaml:"prefetch_workers"    env:"AGENDA_PREFETCH_WORKERS"    env-default:"4"`
}

// RulesConfig holds suggestion rule thresholds.
type RulesConfig struct {
	BreakThreshold     time.Duration `yaml:"break_threshold"     env:"AGENDA_BREAK_THRESHOLD"     env-default:"3h"`
	BlockGap           time.Duration `yaml:"block_gap"           env:"AGENDA_BLOCK_GAP"           env-default:"30m"`
	BreakDuration      time.Duration `yaml:"break_duration"      env:"AGENDA_BREAK_DURATION"      env-default:"15m"`
	BalanceThreshold   float64       `yaml:"balance_threshold"   env:"AGENDA_BALANCE_THRESHOLD"   env-default:"0.6"`
	PostponementWindow time.Duration `yaml:"postponement_window" env:"AGENDA_POSTPONEMENT_WINDOW" env-default:"168h"`
	PostponementAge    time.Duration `yaml:"postponement_age"    env:"AGENDA_POSTPONEMENT_AGE"    env-default:"24h"`
	SuggestionExpiry   time.Duration `yaml:"suggestion_expiry"   env:"AGENDA_SUGGESTION_EXPIRY"   env-default:"24h"`
	NearbyTravel       time.Duration `yaml:"nearby_travel"       env:"AGENDA_NEARBY_TRAVEL"       env-default:"30m"`
}

// TravelConfig holds travel estimation settings.
type TravelConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"AGENDA_TRAVEL_ENABLED"          env-default:"false"`
	Provider        string        `yaml:"provider"         env:"AGENDA_TRAVEL_PROVIDER"         env-default:"http"`
	APIKey          string        `yaml:"api_key"          env:"AGENDA_TRAVEL_API_KEY"`
	Endpoint        string        `yaml:"endpoint"         env:"AGENDA_TRAVEL_ENDPOINT"         env-default:"http://localhost:8089"`
	Timeout         time.Duration `yaml:"timeout"          env:"AGENDA_TRAVEL_TIMEOUT"          env-default:"3s"`
	MaxRetries      int           `yaml:"max_retries"      env:"AGENDA_TRAVEL_MAX_RETRIES"      env-default:"1"`
	CacheSize       int           `yaml:"cache_size"       env:"AGENDA_TRAVEL_CACHE_SIZE"       env-default:"1024"`
	CacheTTL        time.Duration `yaml:"cache_ttl"        env:"AGENDA_TRAVEL_CACHE_TTL"        env-default:"0s"`
	BufferThreshold time.Duration `yaml:"buffer_threshold" env:"AGENDA_TRAVEL_BUFFER_THRESHOLD" env-default:"10m"`
	LogCalls        bool          `yaml:"log_calls"        env:"AGENDA_TRAVEL_LOG_CALLS"        env-default:"false"`
}

// LogConfig controls use-case logging to stderr.
type LogConfig struct {
	Level    string `yaml:"level"     env:"AGENDA_LOG_LEVEL"     env-default:"warn"`
	UseCases bool   `yaml:"use_cases" env:"AGENDA_LOG_USE_CASES" env-default:"false"`
}

// Default returns the configuration every env-default tag describes.
func Default() *Config {
	return &Config{
		User:     "me",
		Timezone: "Local",
		Scheduling: SchedulingConfig{
			WorkDayStartHour: 8,
			WorkDayEndHour:   20,
			SearchDays:       7,
			MaxSearchDays:    90,
			SlotStepMinutes:  15,
			SearchTimeout:    2 * time.Second,
			PrefetchWorkers:  4,
		},
		Rules: RulesConfig{
			BreakThreshold:     3 * time.Hour,
			BlockGap:           30 * time.Minute,
			BreakDuration:      15 * time.Minute,
			BalanceThreshold:   0.6,
			PostponementWindow: 7 * 24 * time.Hour,
			PostponementAge:    24 * time.Hour,
			SuggestionExpiry:   24 * time.Hour,
			NearbyTravel:       30 * time.Minute,
		},
		Travel: TravelConfig{
			Provider:        "http",
			Endpoint:        "http://localhost:8089",
			Timeout:         3 * time.Second,
			MaxRetries:      1,
			CacheSize:       1024,
			BufferThreshold: 10 * time.Minute,
		},
		Log: LogConfig{Level: "warn"},
	}
}
