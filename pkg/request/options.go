package request

// Option customizes a Controller.
type Option func(*options)

type options struct {
	log        Logger
	latestOnly bool
	observers  []func()
}

// WithLatestOnly tags every Execute with an increasing sequence number and
// drops state updates from any call that is no longer the latest issued.
func WithLatestOnly() Option {
	return func(o *options) { o.latestOnly = true }
}

// WithObserver registers fn to run after every state change. fn runs on the
// goroutine that called Execute, outside the controller lock.
func WithObserver(fn func()) Option {
	return func(o *options) {
		if fn != nil {
			o.observers = append(o.observers, fn)
		}
	}
}

// WithLogger sets the logger used to report failures.
func WithLogger(log Logger) Option {
	return func(o *options) { o.log = log }
}
