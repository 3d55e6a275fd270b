package injector

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option configures a Container.
type Option func(*options)

type options struct {
	id           string
	logger       logrus.FieldLogger
	detectCycles bool
}

// WithLogger sets the logger used for debug tracing of registrations and
// constructions. Errors are returned to the caller, never logged.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithID overrides the generated container ID.
func WithID(id string) Option {
	return func(o *options) {
		if id != "" {
			o.id = id
		}
	}
}

// WithoutCycleDetection turns off the resolution chain check. A cyclic
// dependency graph then recurses until the goroutine stack is exhausted.
func WithoutCycleDetection() Option {
	return func(o *options) {
		o.detectCycles = false
	}
}

func defaultOptions() *options {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	return &options{
		logger:       discard,
		detectCycles: true,
	}
}
