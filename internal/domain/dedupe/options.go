package dedupe

// Option applies a configuration option to the Registry.
type Option func(*Registry)

// WithCacheSize caps how many identifiers the registry retains before
// trimming the oldest.
func WithCacheSize(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.maxSize = n
		}
	}
}
