package service

import (
	"time"

	"github.com/okian/warchest/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStateDir sets the directory holding the state documents.
func WithStateDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.stateDir = dir
		}
	}
}

// WithTarget sets the balance target.
func WithTarget(target float64) Option {
	return func(s *Service) {
		if target > 0 {
			s.target = target
		}
	}
}

// WithStartDate sets the start date seeded into a fresh board.
func WithStartDate(date string) Option {
	return func(s *Service) {
		if date != "" {
			s.startDate = date
		}
	}
}

// WithFeedCapacity caps the retained activity feed.
func WithFeedCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.feedCap = n
		}
	}
}

// WithFeedDisplayCount sets how many feed entries the dashboard shows.
func WithFeedDisplayCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.feedCount = n
		}
	}
}

// WithLockTimeout bounds document lock acquisition.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// WithLockRetry sets the lock polling interval.
func WithLockRetry(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.lockRetry = d
		}
	}
}

// WithSeenCacheSize caps the scanner deduplication cache.
func WithSeenCacheSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.seenCacheSize = n
		}
	}
}

// WithMetricsTextfile enables metrics export to path on Stop.
func WithMetricsTextfile(path string) Option {
	return func(s *Service) {
		s.metricsTextfile = path
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}
