package docstore

import (
	"time"

	"github.com/okian/warchest/pkg/logger"
)

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithLockTimeout bounds how long a lock acquisition may wait before
// failing with ErrLockTimeout.
func WithLockTimeout(timeout time.Duration) Option {
	return func(s *Store) {
		if timeout > 0 {
			s.lockTimeout = timeout
		}
	}
}

// WithLockRetry sets the polling interval while waiting for a lock.
func WithLockRetry(retry time.Duration) Option {
	return func(s *Store) {
		if retry > 0 {
			s.lockRetry = retry
		}
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(log logger.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}
