package travel

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Estimator estimates travel time between two free-form locations. It owns
// its cache and, when configured, an external provider it consults before
// the heuristic. Provider failures never surface to callers.
type Estimator struct {
	cfg      Config
	cache    *Cache
	provider Provider
	observer Observer
}

type Option func(*Estimator)

// WithProvider overrides the provider built from the config.
func WithProvider(p Provider) Option {
	return func(e *Estimator) {
		e.provider = p
	}
}

func WithCache(c *Cache) Option {
	return func(e *Estimator) {
		e.cache = c
	}
}

func WithObserver(o Observer) Option {
	return func(e *Estimator) {
		if o != nil {
			e.observer = o
		}
	}
}

func NewEstimator(cfg Config, opts ...Option) *Estimator {
	e := &Estimator{
		cfg:      cfg,
		observer: NoopObserver{},
	}
	if cfg.ProviderConfigured() {
		e.provider = NewProvider(cfg)
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache == nil {
		e.cache = NewCache(cfg.CacheSize, cfg.CacheTTL)
	}
	return e
}

// Estimate returns the travel time from origin to destination. A blank
// location on either side, or two locations that normalize identically,
// means no travel.
func (e *Estimator) Estimate(ctx context.Context, origin, destination string) time.Duration {
	o, d := Normalize(origin), Normalize(destination)
	if o == "" || d == "" || o == d {
		return 0
	}

	key := Key{Origin: o, Destination: d}
	if v, ok := e.cache.Get(key); ok {
		return v
	}

	v, cacheable := e.lookup(ctx, origin, destination, o, d)
	if cacheable {
		e.cache.Put(key, v)
	}
	return v
}

// lookup asks the provider first when one is configured. A heuristic answer
// given in place of a failed provider call is not cached so the provider is
// retried next time.
func (e *Estimator) lookup(ctx context.Context, rawOrigin, rawDestination, o, d string) (time.Duration, bool) {
	if e.provider == nil {
		return Heuristic(o, d), true
	}

	start := time.Now()
	v, err := e.provider.Duration(ctx, rawOrigin, rawDestination)
	event := ProviderCallEvent{
		Provider:  e.provider.Name(),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
		FellBack:  err != nil,
	}
	e.observer.OnProviderCall(event)

	if err != nil {
		return Heuristic(o, d), false
	}
	return v, true
}

// NeedsBuffer reports whether the estimate meets or exceeds threshold. A
// non-positive threshold uses the configured default.
func (e *Estimator) NeedsBuffer(ctx context.Context, origin, destination string, threshold time.Duration) bool {
	if threshold <= 0 {
		threshold = e.cfg.BufferThreshold
	}
	if threshold <= 0 {
		threshold = DefaultConfig().BufferThreshold
	}
	return e.Estimate(ctx, origin, destination) >= threshold
}

// Info is a travel estimate prepared for display.
type Info struct {
	Origin      string
	Destination string
	Duration    time.Duration
	Minutes     int
	NeedsBuffer bool
	Warning     string
}

func (e *Estimator) Describe(ctx context.Context, origin, destination string) Info {
	d := e.Estimate(ctx, origin, destination)
	info := Info{
		Origin:      origin,
		Destination: destination,
		Duration:    d,
		Minutes:     Minutes(d),
		NeedsBuffer: e.NeedsBuffer(ctx, origin, destination, 0),
	}
	if d > 0 {
		info.Warning = fmt.Sprintf("Allow %d minutes to travel from %s to %s", info.Minutes, origin, destination)
	}
	return info
}

// ClearCache drops every cached estimate.
func (e *Estimator) ClearCache() {
	e.cache.Clear()
}

// CacheLen returns the number of cached pairs.
func (e *Estimator) CacheLen() int {
	return e.cache.Len()
}

// Minutes rounds d up to whole minutes.
func Minutes(d time.Duration) int {
	return int(math.Ceil(d.Minutes()))
}
