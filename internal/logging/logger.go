package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "2006/01/02 15:04:05"

// Options select the logger flavour.
type Options struct {
	Development bool
	Level       string
	// OutputPaths defaults to stderr.
	OutputPaths []string
}

// DebugEnabled returns true if debug mode is enabled via TODO_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("TODO_DEBUG") != ""
}

// New builds a zap logger. TODO_DEBUG forces the development encoder at debug level.
func New(opts Options) (*zap.Logger, error) {
	if DebugEnabled() {
		opts.Development = true
		opts.Level = "debug"
	}

	var config zap.Config
	if opts.Development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)

	if opts.Level != "" {
		level, err := zap.ParseAtomicLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		config.Level = level
	}

	if len(opts.OutputPaths) > 0 {
		config.OutputPaths = opts.OutputPaths
	} else {
		config.OutputPaths = []string{"stderr"}
	}

	return config.Build()
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// TaskID is the field used for task identifiers in every log line.
func TaskID(id int64) zap.Field {
	return zap.Int64("task_id", id)
}

// JobKey is the field used for scheduled job keys.
func JobKey(key string) zap.Field {
	return zap.String("job", key)
}
