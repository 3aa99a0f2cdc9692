package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	OutputTerminal = "terminal"
	OutputLog      = "log"
)

// Config is the resolved configuration of the todo binary.
type Config struct {
	Database      DatabaseConfig      `mapstructure:"database"`
	Scheduler     SchedulerConfig     `mapstructure:"scheduler"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Validation    ValidationConfig    `mapstructure:"validation"`
	Display       DisplayConfig       `mapstructure:"display"`
	Application   ApplicationConfig   `mapstructure:"application"`
}

type DatabaseConfig struct {
	Dir            string        `mapstructure:"dir"`
	Filename       string        `mapstructure:"filename"`
	BusyTimeout    time.Duration `mapstructure:"busy_timeout"`
	DirPermissions uint32        `mapstructure:"dir_permissions"`
}

// SchedulerConfig controls the background jobs.
type SchedulerConfig struct {
	OverdueInterval     time.Duration `mapstructure:"overdue_interval"`
	AutoArchiveInterval time.Duration `mapstructure:"auto_archive_interval"`
	ArchiveRetention    time.Duration `mapstructure:"archive_retention"`
	JobTimeout          time.Duration `mapstructure:"job_timeout"`
	// SyncInterval is how often the daemon re-reads preferences and reminders from the store.
	SyncInterval time.Duration `mapstructure:"sync_interval"`
	// BatteryLow simulates a device in low-battery state; constrained jobs skip while it is set.
	BatteryLow bool `mapstructure:"battery_low"`
}

// NotificationsConfig selects where notifications are rendered.
type NotificationsConfig struct {
	Output string `mapstructure:"output"`
}

// ValidationConfig bounds task text fields, counted in runes.
type ValidationConfig struct {
	TitleMaxLength       int `mapstructure:"title_max_length"`
	DescriptionMaxLength int `mapstructure:"description_max_length"`
}

// DisplayConfig controls CLI rendering. ListLimit 0 means unlimited.
type DisplayConfig struct {
	TimeFormat string `mapstructure:"time_format"`
	ListLimit  int    `mapstructure:"list_limit"`
	NoColor    bool   `mapstructure:"no_color"`
}

type ApplicationConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	Environment string        `mapstructure:"environment"`
	Debug       bool          `mapstructure:"debug"`
}

// NewConfig returns the defaults. The store lives in ~/.todo.
func NewConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Database: DatabaseConfig{
			Dir:            filepath.Join(home, ".todo"),
			Filename:       "todo.db",
			BusyTimeout:    5 * time.Second,
			DirPermissions: 0o755,
		},
		Scheduler: SchedulerConfig{
			OverdueInterval:     6 * time.Hour,
			AutoArchiveInterval: 24 * time.Hour,
			ArchiveRetention:    7 * 24 * time.Hour,
			JobTimeout:          30 * time.Second,
			SyncInterval:        time.Minute,
		},
		Notifications: NotificationsConfig{
			Output: OutputTerminal,
		},
		Validation: ValidationConfig{
			TitleMaxLength:       255,
			DescriptionMaxLength: 4000,
		},
		Display: DisplayConfig{
			TimeFormat: "Jan 02, 2006 at 3:04 PM",
		},
		Application: ApplicationConfig{
			Timeout:     30 * time.Second,
			Environment: EnvProduction,
		},
	}
}

// GetDatabasePath joins the database directory and filename.
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// Validate returns a *ConfigError for the first setting that cannot be used.
func (c *Config) Validate() error {
	checks := []struct {
		ok      bool
		field   string
		message string
	}{
		{c.Database.Dir != "", "database.dir", "is empty"},
		{c.Database.Filename != "", "database.filename", "is empty"},
		{c.Database.BusyTimeout >= 0, "database.busy_timeout", "is negative"},
		{c.Scheduler.OverdueInterval > 0, "scheduler.overdue_interval", "must be a positive duration"},
		{c.Scheduler.AutoArchiveInterval > 0, "scheduler.auto_archive_interval", "must be a positive duration"},
		{c.Scheduler.ArchiveRetention > 0, "scheduler.archive_retention", "must be a positive duration"},
		{c.Scheduler.JobTimeout > 0, "scheduler.job_timeout", "must be a positive duration"},
		{c.Scheduler.SyncInterval > 0, "scheduler.sync_interval", "must be a positive duration"},
		{oneOf(c.Notifications.Output, OutputTerminal, OutputLog), "notifications.output", "must be terminal or log"},
		{c.Validation.TitleMaxLength >= 1, "validation.title_max_length", "must be at least 1"},
		{c.Validation.DescriptionMaxLength >= 0, "validation.description_max_length", "is negative"},
		{c.Display.TimeFormat != "", "display.time_format", "is empty"},
		{c.Display.ListLimit >= 0, "display.list_limit", "is negative"},
		{c.Application.Timeout > 0, "application.timeout", "must be a positive duration"},
		{oneOf(c.Application.Environment, EnvDevelopment, EnvProduction, EnvTest), "application.environment", "must be development, production or test"},
	}
	for _, check := range checks {
		if !check.ok {
			return &ConfigError{Field: check.field, Message: check.message}
		}
	}
	return nil
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// IsDevelopment reports whether the development logger should be used.
func (c *Config) IsDevelopment() bool {
	return c.Application.Debug || c.Application.Environment == EnvDevelopment
}

// ConfigError names the offending setting by its file key.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
