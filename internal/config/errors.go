package config

import (
	"errors"
)

// Sentinel error kinds for this package, so callers can errors.Is a
// bad config apart from a file/env loading failure.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
