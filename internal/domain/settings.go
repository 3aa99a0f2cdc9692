package domain

import (
	"fmt"
	"time"
)

// Settings are the user preferences that drive scheduling and presentation.
type Settings struct {
	NotificationsEnabled bool
	DailySummaryEnabled  bool
	DailySummaryHour     int
	DailySummaryMinute   int
	AutoArchiveEnabled   bool
	DarkMode             bool
	FirstLaunch          bool
	WidgetEnabled        bool
	LastWidgetUpdate     time.Time
	CompletionSound      bool
}

// DefaultSettings returns the preferences of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: true,
		DailySummaryEnabled:  false,
		DailySummaryHour:     9,
		DailySummaryMinute:   0,
		AutoArchiveEnabled:   true,
		FirstLaunch:          true,
		CompletionSound:      true,
	}
}

// SummaryTimeLabel formats the daily summary time on a 12-hour clock, e.g. "9:00 AM".
func (s Settings) SummaryTimeLabel() string {
	hour := s.DailySummaryHour % 12
	if hour == 0 {
		hour = 12
	}
	suffix := "AM"
	if s.DailySummaryHour >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, s.DailySummaryMinute, suffix)
}
