package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"todo-engine/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_DefaultsAreValid(t *testing.T) {
	cfg := NewConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "todo.db", cfg.Database.Filename)
	assert.Equal(t, 6*time.Hour, cfg.Scheduler.OverdueInterval)
	assert.Equal(t, 24*time.Hour, cfg.Scheduler.AutoArchiveInterval)
	assert.Equal(t, 7*24*time.Hour, cfg.Scheduler.ArchiveRetention)
	assert.Equal(t, 255, cfg.Validation.TitleMaxLength)
	assert.Equal(t, OutputTerminal, cfg.Notifications.Output)
	assert.Equal(t, filepath.Join(cfg.Database.Dir, "todo.db"), cfg.GetDatabasePath())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(c *Config)
		expectedField string
	}{
		{name: "empty dir", mutate: func(c *Config) { c.Database.Dir = "" }, expectedField: "database.dir"},
		{name: "empty filename", mutate: func(c *Config) { c.Database.Filename = "" }, expectedField: "database.filename"},
		{name: "zero overdue interval", mutate: func(c *Config) { c.Scheduler.OverdueInterval = 0 }, expectedField: "scheduler.overdue_interval"},
		{name: "zero sync interval", mutate: func(c *Config) { c.Scheduler.SyncInterval = 0 }, expectedField: "scheduler.sync_interval"},
		{name: "negative retention", mutate: func(c *Config) { c.Scheduler.ArchiveRetention = -time.Hour }, expectedField: "scheduler.archive_retention"},
		{name: "unknown output", mutate: func(c *Config) { c.Notifications.Output = "email" }, expectedField: "notifications.output"},
		{name: "title length", mutate: func(c *Config) { c.Validation.TitleMaxLength = 0 }, expectedField: "validation.title_max_length"},
		{name: "empty time format", mutate: func(c *Config) { c.Display.TimeFormat = "" }, expectedField: "display.time_format"},
		{name: "unknown environment", mutate: func(c *Config) { c.Application.Environment = "staging" }, expectedField: "application.environment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var configErr *ConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, tt.expectedField, configErr.Field)
		})
	}
}

func TestLoader_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TODO_DATABASE_DIR", dir)
	t.Setenv("TODO_SCHEDULER_OVERDUE_INTERVAL", "1h")
	t.Setenv("TODO_NOTIFICATIONS_OUTPUT", "log")
	t.Setenv("TODO_SCHEDULER_BATTERY_LOW", "true")

	cfg, err := NewLoader("").Load()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Database.Dir)
	assert.Equal(t, time.Hour, cfg.Scheduler.OverdueInterval)
	assert.Equal(t, OutputLog, cfg.Notifications.Output)
	assert.True(t, cfg.Scheduler.BatteryLow)
	assert.Equal(t, 24*time.Hour, cfg.Scheduler.AutoArchiveInterval)
}

func TestLoader_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.yaml")
	content := []byte(`
database:
  dir: ` + dir + `
  filename: tasks.db
scheduler:
  job_timeout: 5s
display:
  list_limit: 20
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "tasks.db"), cfg.GetDatabasePath())
	assert.Equal(t, 5*time.Second, cfg.Scheduler.JobTimeout)
	assert.Equal(t, 20, cfg.Display.ListLimit)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name           string
		setup          func(t *testing.T) string
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name: "missing explicit config file",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent.yaml")
			},
			errorAssertion: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to read config file")
			},
		},
		{
			name: "invalid value from environment",
			setup: func(t *testing.T) string {
				t.Setenv("TODO_APPLICATION_ENVIRONMENT", "staging")
				return ""
			},
			errorAssertion: func(t *testing.T, err error) {
				var configErr *ConfigError
				require.ErrorAs(t, err, &configErr)
				assert.Equal(t, "application.environment", configErr.Field)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(tt.setup(t)).Load()
			tt.errorAssertion(t, err)
		})
	}
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	dir := t.TempDir()
	output := OutputLog
	env := EnvTest
	batteryLow := true

	cfg, err := NewLoader("").LoadWithOverrides(&ConfigOverrides{
		DBDir:              &dir,
		NotificationOutput: &output,
		Environment:        &env,
		BatteryLow:         &batteryLow,
	})
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Database.Dir)
	assert.Equal(t, OutputLog, cfg.Notifications.Output)
	assert.Equal(t, EnvTest, cfg.Application.Environment)
	assert.True(t, cfg.Scheduler.BatteryLow)

	invalid := "nowhere"
	_, err = NewLoader("").LoadWithOverrides(&ConfigOverrides{NotificationOutput: &invalid})
	assert.Error(t, err)
}

func TestCreateRepository(t *testing.T) {
	cfg := NewConfig()
	cfg.Database.Dir = filepath.Join(t.TempDir(), "nested")

	repo, err := CreateRepository(cfg)
	require.NoError(t, err)
	defer repo.Close()

	assert.FileExists(t, cfg.GetDatabasePath())

	now := time.Now()
	err = repo.CreateTask(context.Background(), &sqlite.TaskRecord{
		Title: "Test Task", Priority: 2, Category: "PERSONAL", CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	tasks, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestCreateRepository_TestEnvironmentIsInMemory(t *testing.T) {
	cfg := NewConfig()
	cfg.Database.Dir = t.TempDir()
	cfg.Application.Environment = EnvTest

	repo, err := CreateRepository(cfg)
	require.NoError(t, err)
	defer repo.Close()

	assert.NoFileExists(t, cfg.GetDatabasePath())
}
