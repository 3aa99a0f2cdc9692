package services

import (
	"time"

	"todo-engine/internal/config"
	"todo-engine/internal/validation"

	"go.uber.org/zap"
)

// Option configures a service.
type Option func(*options)

type options struct {
	now       func() time.Time
	logger    *zap.Logger
	validator *validation.TaskValidator
}

func newOptions(opts []Option) options {
	o := options{
		now:       time.Now,
		logger:    zap.NewNop(),
		validator: validation.NewTaskValidator(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithConfig applies configured validation limits.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		if cfg != nil {
			o.validator = validation.NewTaskValidatorWithConfig(cfg)
		}
	}
}
