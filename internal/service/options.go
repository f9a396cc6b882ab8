package service

import (
	"time"
)

type options struct {
	observer UseCaseObserver
	now      func() time.Time
	loc      *time.Location
}

// Option customizes a service.
type Option func(*options)

func WithObserver(o UseCaseObserver) Option {
	return func(opts *options) {
		if o != nil {
			opts.observer = o
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(opts *options) {
		if now != nil {
			opts.now = now
		}
	}
}

// WithLocation sets the zone calendar days are computed in.
func WithLocation(loc *time.Location) Option {
	return func(opts *options) {
		if loc != nil {
			opts.loc = loc
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		observer: NoopUseCaseObserver{},
		now:      time.Now,
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// clock returns the current time in the configured location, truncated to
// the second so it round-trips through RFC3339 storage.
func (o options) clock() time.Time {
	return o.now().In(o.loc).Truncate(time.Second)
}
