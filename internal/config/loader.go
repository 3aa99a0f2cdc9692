package config

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "TODO"

// Loader handles loading configuration from multiple sources
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader creates a new configuration loader. An empty configFile means
// todo.yaml is looked up in the default data directory and the working directory.
func NewLoader(configFile string) *Loader {
	return &Loader{
		v:          viper.New(),
		configFile: configFile,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the config file, when one exists
// 3. Override with TODO_* environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	defaults := NewConfig()
	setDefaults(l.v, defaults)

	l.v.SetEnvPrefix(envPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if err := l.readConfigFile(defaults.Database.Dir); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *Loader) readConfigFile(defaultDir string) error {
	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
		if err := l.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", l.configFile, err)
		}
		return nil
	}

	l.v.SetConfigName("todo")
	l.v.SetConfigType("yaml")
	l.v.AddConfigPath(defaultDir)
	l.v.AddConfigPath(".")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if stderrors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.apply(config)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	DBDir              *string
	DBFilename         *string
	NotificationOutput *string
	BatteryLow         *bool
	Timeout            *time.Duration
	Environment        *string
	Debug              *bool
	NoColor            *bool
}

func (o *ConfigOverrides) apply(config *Config) {
	if o.DBDir != nil {
		config.Database.Dir = *o.DBDir
	}
	if o.DBFilename != nil {
		config.Database.Filename = *o.DBFilename
	}
	if o.NotificationOutput != nil {
		config.Notifications.Output = *o.NotificationOutput
	}
	if o.BatteryLow != nil {
		config.Scheduler.BatteryLow = *o.BatteryLow
	}
	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.Environment != nil {
		config.Application.Environment = *o.Environment
	}
	if o.Debug != nil {
		config.Application.Debug = *o.Debug
	}
	if o.NoColor != nil {
		config.Display.NoColor = *o.NoColor
	}
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("database.dir", c.Database.Dir)
	v.SetDefault("database.filename", c.Database.Filename)
	v.SetDefault("database.busy_timeout", c.Database.BusyTimeout)
	v.SetDefault("database.dir_permissions", c.Database.DirPermissions)

	v.SetDefault("scheduler.overdue_interval", c.Scheduler.OverdueInterval)
	v.SetDefault("scheduler.auto_archive_interval", c.Scheduler.AutoArchiveInterval)
	v.SetDefault("scheduler.archive_retention", c.Scheduler.ArchiveRetention)
	v.SetDefault("scheduler.job_timeout", c.Scheduler.JobTimeout)
	v.SetDefault("scheduler.sync_interval", c.Scheduler.SyncInterval)
	v.SetDefault("scheduler.battery_low", c.Scheduler.BatteryLow)

	v.SetDefault("notifications.output", c.Notifications.Output)

	v.SetDefault("validation.title_max_length", c.Validation.TitleMaxLength)
	v.SetDefault("validation.description_max_length", c.Validation.DescriptionMaxLength)

	v.SetDefault("display.time_format", c.Display.TimeFormat)
	v.SetDefault("display.list_limit", c.Display.ListLimit)
	v.SetDefault("display.no_color", c.Display.NoColor)

	v.SetDefault("application.timeout", c.Application.Timeout)
	v.SetDefault("application.environment", c.Application.Environment)
	v.SetDefault("application.debug", c.Application.Debug)
}
