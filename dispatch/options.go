package dispatch

import "github.com/get-eventually/go-messagebus/logger"

type config struct {
	RecursionLimit int
	Logger         logger.Logger
}

// Option specifies Dispatcher configuration options.
type Option interface {
	apply(*config)
}

type recursionLimitOption int

func (o recursionLimitOption) apply(c *config) {
	c.RecursionLimit = int(o)
}

// WithRecursionLimit specifies how many nested dispatches of the same
// message name are allowed. The limit must be at least 1.
// By default, DefaultRecursionLimit is used.
func WithRecursionLimit(limit int) Option {
	return recursionLimitOption(limit)
}

type loggerOption struct{ logger.Logger }

func (o loggerOption) apply(c *config) {
	c.Logger = o.Logger
}

// WithLogger specifies the logger.Logger the Dispatcher reports its activity to.
// By default, nothing is logged.
func WithLogger(l logger.Logger) Option {
	return loggerOption{l}
}

// newConfig computes a config from the supplied Options.
func newConfig(opts ...Option) config {
	c := config{
		RecursionLimit: DefaultRecursionLimit,
		Logger:         nil,
	}

	for _, opt := range opts {
		opt.apply(&c)
	}

	return c
}
