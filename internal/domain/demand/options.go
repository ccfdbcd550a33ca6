package demand

import "time"

// Option applies a configuration option to the Tracker.
type Option func(*Tracker)

// WithSeed sets the noise seed. Equal seeds yield equal trends.
func WithSeed(seed int64) Option {
	return func(t *Tracker) {
		t.seed = seed
	}
}

// WithMonths sets how many monthly points each trend covers.
func WithMonths(months int) Option {
	return func(t *Tracker) {
		if months > 0 {
			t.months = months
		}
	}
}

// WithStart sets the first month of the trends. Only year and month are used.
func WithStart(start time.Time) Option {
	return func(t *Tracker) {
		if !start.IsZero() {
			t.start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		}
	}
}
