package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestDebugEnabled(t *testing.T) {
	t.Setenv("TODO_DEBUG", "")
	assert.False(t, DebugEnabled())

	t.Setenv("TODO_DEBUG", "1")
	assert.True(t, DebugEnabled())
}

func TestNew(t *testing.T) {
	tests := []struct {
		name           string
		debugEnv       string
		opts           Options
		expectedLevel  zapcore.Level
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:          "production defaults to info",
			opts:          Options{},
			expectedLevel: zapcore.InfoLevel,
		},
		{
			name:          "development defaults to debug",
			opts:          Options{Development: true},
			expectedLevel: zapcore.DebugLevel,
		},
		{
			name:          "explicit level",
			opts:          Options{Level: "warn"},
			expectedLevel: zapcore.WarnLevel,
		},
		{
			name:          "debug env wins over level",
			debugEnv:      "yes",
			opts:          Options{Level: "error"},
			expectedLevel: zapcore.DebugLevel,
		},
		{
			name: "invalid level",
			opts: Options{Level: "loud"},
			errorAssertion: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TODO_DEBUG", tt.debugEnv)

			logger, err := New(tt.opts)
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.expectedLevel))
			if tt.expectedLevel > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.expectedLevel-1))
			}
		})
	}
}

func TestNew_WritesToOutputPath(t *testing.T) {
	t.Setenv("TODO_DEBUG", "")
	path := filepath.Join(t.TempDir(), "todo.log")

	logger, err := New(Options{OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Info("reminder fired", TaskID(42), JobKey("reminder_42"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"task_id":42`)
	assert.Contains(t, string(data), `"job":"reminder_42"`)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	logger := zap.NewExample()
	assert.Same(t, logger, OrNop(logger))
}
