package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"todo-engine/internal/domain"
	"todo-engine/internal/errors"
	"todo-engine/internal/repository/sqlite"
	"todo-engine/internal/validation"
)

// Preference keys as stored in the settings table.
const (
	KeyNotificationsEnabled = "notifications_enabled"
	KeyDailySummaryEnabled  = "daily_summary_enabled"
	KeyDailySummaryHour     = "daily_summary_hour"
	KeyDailySummaryMinute   = "daily_summary_minute"
	KeyAutoArchiveEnabled   = "auto_archive_enabled"
	KeyDarkMode             = "dark_mode"
	KeyFirstLaunch          = "first_launch"
	KeyWidgetEnabled        = "widget_enabled"
	KeyLastWidgetUpdate     = "last_widget_update"
	KeyCompletionSound      = "task_completion_sound"
)

// SettingKeys lists every preference key in display order.
var SettingKeys = []string{
	KeyNotificationsEnabled,
	KeyDailySummaryEnabled,
	KeyDailySummaryHour,
	KeyDailySummaryMinute,
	KeyAutoArchiveEnabled,
	KeyDarkMode,
	KeyFirstLaunch,
	KeyWidgetEnabled,
	KeyLastWidgetUpdate,
	KeyCompletionSound,
}

type settingsServiceImpl struct {
	repo      sqlite.Repository
	validator *validation.TaskValidator
	now       func() time.Time
}

// NewSettingsService creates a new SettingsService instance
func NewSettingsService(repo sqlite.Repository, opts ...Option) SettingsService {
	o := newOptions(opts)
	return &settingsServiceImpl{repo: repo, validator: o.validator, now: o.now}
}

// Get returns the stored preferences. Missing or unreadable values use their defaults.
func (s *settingsServiceImpl) Get(ctx context.Context) (domain.Settings, error) {
	stored, err := s.repo.ListSettings(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	settings := domain.DefaultSettings()
	for key, value := range stored {
		// Unknown keys and malformed values are ignored in favour of defaults.
		_ = applySetting(&settings, key, value)
	}
	return settings, nil
}

func (s *settingsServiceImpl) Update(ctx context.Context, settings domain.Settings) error {
	if err := s.validator.ValidateSummaryTime(settings.DailySummaryHour, settings.DailySummaryMinute); err != nil {
		return errors.NewValidationError("invalid settings", err)
	}

	for key, value := range encodeSettings(settings) {
		if err := s.repo.SetSetting(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

func (s *settingsServiceImpl) Set(ctx context.Context, key, value string) (domain.Settings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	key = strings.ToLower(strings.TrimSpace(key))
	if err := applySetting(&settings, key, strings.TrimSpace(value)); err != nil {
		return domain.Settings{}, err
	}
	if err := s.validator.ValidateSummaryTime(settings.DailySummaryHour, settings.DailySummaryMinute); err != nil {
		return domain.Settings{}, errors.NewValidationError("invalid settings", err)
	}

	if err := s.repo.SetSetting(ctx, key, encodeSettings(settings)[key]); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

func (s *settingsServiceImpl) DailySummaryTime(ctx context.Context) (int, int, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return 0, 0, err
	}
	return settings.DailySummaryHour, settings.DailySummaryMinute, nil
}

func (s *settingsServiceImpl) MarkFirstLaunchDone(ctx context.Context) error {
	return s.repo.SetSetting(ctx, KeyFirstLaunch, strconv.FormatBool(false))
}

func (s *settingsServiceImpl) RecordWidgetUpdate(ctx context.Context) error {
	return s.repo.SetSetting(ctx, KeyLastWidgetUpdate, strconv.FormatInt(s.now().UnixMilli(), 10))
}

func encodeSettings(s domain.Settings) map[string]string {
	lastUpdate := int64(0)
	if !s.LastWidgetUpdate.IsZero() {
		lastUpdate = s.LastWidgetUpdate.UnixMilli()
	}
	return map[string]string{
		KeyNotificationsEnabled: strconv.FormatBool(s.NotificationsEnabled),
		KeyDailySummaryEnabled:  strconv.FormatBool(s.DailySummaryEnabled),
		KeyDailySummaryHour:     strconv.Itoa(s.DailySummaryHour),
		KeyDailySummaryMinute:   strconv.Itoa(s.DailySummaryMinute),
		KeyAutoArchiveEnabled:   strconv.FormatBool(s.AutoArchiveEnabled),
		KeyDarkMode:             strconv.FormatBool(s.DarkMode),
		KeyFirstLaunch:          strconv.FormatBool(s.FirstLaunch),
		KeyWidgetEnabled:        strconv.FormatBool(s.WidgetEnabled),
		KeyLastWidgetUpdate:     strconv.FormatInt(lastUpdate, 10),
		KeyCompletionSound:      strconv.FormatBool(s.CompletionSound),
	}
}

func applySetting(s *domain.Settings, key, value string) error {
	parseBool := func(target *bool) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.NewInvalidInputError(key, value, "expected true or false")
		}
		*target = b
		return nil
	}
	parseInt := func(target *int) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.NewInvalidInputError(key, value, "expected a whole number")
		}
		*target = n
		return nil
	}

	switch key {
	case KeyNotificationsEnabled:
		return parseBool(&s.NotificationsEnabled)
	case KeyDailySummaryEnabled:
		return parseBool(&s.DailySummaryEnabled)
	case KeyDailySummaryHour:
		return parseInt(&s.DailySummaryHour)
	case KeyDailySummaryMinute:
		return parseInt(&s.DailySummaryMinute)
	case KeyAutoArchiveEnabled:
		return parseBool(&s.AutoArchiveEnabled)
	case KeyDarkMode:
		return parseBool(&s.DarkMode)
	case KeyFirstLaunch:
		return parseBool(&s.FirstLaunch)
	case KeyWidgetEnabled:
		return parseBool(&s.WidgetEnabled)
	case KeyCompletionSound:
		return parseBool(&s.CompletionSound)
	case KeyLastWidgetUpdate:
		millis, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return errors.NewInvalidInputError(key, value, "expected epoch milliseconds")
		}
		if millis == 0 {
			s.LastWidgetUpdate = time.Time{}
		} else {
			s.LastWidgetUpdate = time.UnixMilli(millis)
		}
		return nil
	default:
		return errors.NewInvalidInputError("key", key, "unknown setting")
	}
}
