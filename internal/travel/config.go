package travel

import "time"

// ProviderHTTP is the id of the generic JSON duration endpoint.
const ProviderHTTP = "http"

// Config holds all configuration for travel estimation.
type Config struct {
	// Enabled turns on the external provider path. The heuristic is always available.
	Enabled    bool
	LogCalls   bool
	Provider   string
	APIKey     string
	Endpoint   string
	Timeout    time.Duration
	MaxRetries int

	// CacheSize bounds the number of cached pairs. CacheTTL of zero keeps
	// entries until evicted by size or cleared.
	CacheSize int
	CacheTTL  time.Duration

	// BufferThreshold is the default travel time at which a buffer is needed.
	BufferThreshold time.Duration
}

// DefaultConfig returns a Config with the provider disabled.
func DefaultConfig() Config {
	return Config{
		Enabled:         false,
		Provider:        ProviderHTTP,
		Endpoint:        "http://localhost:8089",
		Timeout:         3 * time.Second,
		MaxRetries:      1,
		CacheSize:       1024,
		BufferThreshold: 10 * time.Minute,
	}
}

// ProviderConfigured reports whether a provider call should be attempted.
func (c Config) ProviderConfigured() bool {
	return c.Enabled && c.Provider != "" && c.APIKey != ""
}
