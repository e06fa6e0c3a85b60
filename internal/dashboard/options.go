package dashboard

import "github.com/okian/warchest/pkg/logger"

// Option applies a configuration option to the Projector.
type Option func(*Projector)

// WithTarget sets the balance target used when the board is fresh.
func WithTarget(target float64) Option {
	return func(p *Projector) {
		if target > 0 {
			p.target = target
		}
	}
}

// WithStartDate sets the start date used when the board is fresh.
func WithStartDate(date string) Option {
	return func(p *Projector) {
		if date != "" {
			p.startDate = date
		}
	}
}

// WithFeedCount sets how many feed entries the snapshot carries.
func WithFeedCount(n int) Option {
	return func(p *Projector) {
		if n > 0 {
			p.feedCount = n
		}
	}
}

// WithLogger sets a custom logger for the projector.
func WithLogger(log logger.Logger) Option {
	return func(p *Projector) {
		if log != nil {
			p.log = log
		}
	}
}
