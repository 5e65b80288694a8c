package resolve

import "time"

// Option configures a Resolver.
type Option func(*Resolver)

// WithFastPath enables or disables resolving named Unicode characters to
// themselves. Enabled by default.
func WithFastPath(on bool) Option {
	return func(r *Resolver) {
		r.fastPath = on
	}
}

// WithTimeout bounds each recognizer call. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d >= 0 {
			r.timeout = d
		}
	}
}

// WithWorkers sets how many recognizer calls may run at once. The default
// is 1; the recognizer must be safe for concurrent use when n > 1.
func WithWorkers(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.workers = n
		}
	}
}
