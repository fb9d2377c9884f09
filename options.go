package bitarray

// options collects configuration for persistence operations.
type options struct {
	logger *Logger
}

// Option configures Save/Load behavior.
type Option func(*options)

// WithLogger attaches a structured logger to the operation.
// If nil is passed, the noop logger is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

func applyOptions(optFns []Option) options {
	opts := options{
		logger: NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}
