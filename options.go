package readgate

type options struct {
	maxQueueLength int
	name           string
	prethrowAction func()
	logger         *Logger
	observer       MetricsObserver
}

// Option configures Semaphore constructor behavior.
type Option func(*options)

// WithMaxQueueLength caps the admission wait queue. Requests arriving
// while the queue is full are rejected with a QueueOverloadError.
//
// The default is 100.
func WithMaxQueueLength(n int) Option {
	return func(o *options) {
		o.maxQueueLength = n
	}
}

// WithName sets the identifier embedded in errors raised by the
// semaphore. Useful when several shards each own a semaphore.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithPrethrowAction installs a diagnostic hook invoked before a
// queue-overload rejection is returned. It runs outside the
// semaphore's internal lock, so it may inspect the semaphore.
func WithPrethrowAction(fn func()) Option {
	return func(o *options) {
		o.prethrowAction = fn
	}
}

// WithLogger configures the logger used for eviction, overload and
// timeout events.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithObserver configures the metrics observer notified of admission
// events.
//
// If nil is passed, a no-op observer is used.
func WithObserver(obs MetricsObserver) Option {
	return func(o *options) {
		if obs == nil {
			obs = &NoopMetricsObserver{}
		}
		o.observer = obs
	}
}
