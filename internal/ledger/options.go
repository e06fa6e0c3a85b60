package ledger

import "github.com/okian/warchest/pkg/logger"

// Option applies a configuration option to the Ledger.
type Option func(*Ledger)

// WithTarget sets the balance target seeded into a fresh board.
func WithTarget(target float64) Option {
	return func(l *Ledger) {
		if target > 0 {
			l.target = target
		}
	}
}

// WithStartDate sets the start date seeded into a fresh board.
func WithStartDate(date string) Option {
	return func(l *Ledger) {
		if date != "" {
			l.startDate = date
		}
	}
}

// WithLogger sets a custom logger for the ledger.
func WithLogger(log logger.Logger) Option {
	return func(l *Ledger) {
		if log != nil {
			l.log = log
		}
	}
}
