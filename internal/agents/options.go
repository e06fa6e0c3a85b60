package agents

import "github.com/okian/warchest/pkg/logger"

// Option applies a configuration option to the Registry.
type Option func(*Registry)

// WithTarget sets the balance target seeded into a fresh board.
func WithTarget(target float64) Option {
	return func(r *Registry) {
		if target > 0 {
			r.target = target
		}
	}
}

// WithStartDate sets the start date seeded into a fresh board.
func WithStartDate(date string) Option {
	return func(r *Registry) {
		if date != "" {
			r.startDate = date
		}
	}
}

// WithLogger sets a custom logger for the registry.
func WithLogger(log logger.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}
