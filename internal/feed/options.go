package feed

import "github.com/okian/warchest/pkg/logger"

// Option applies a configuration option to the Log.
type Option func(*Log)

// WithCapacity caps how many entries the feed retains.
func WithCapacity(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.capacity = n
		}
	}
}

// WithLogger sets a custom logger for the feed.
func WithLogger(log logger.Logger) Option {
	return func(l *Log) {
		if log != nil {
			l.log = log
		}
	}
}
