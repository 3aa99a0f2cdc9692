package cli

import (
	"context"
	"fmt"
	"strings"

	"todo-engine/internal/errors"
	"todo-engine/internal/services"
)

const summaryTimeKey = "daily_summary_time"

// SettingsCommand shows the preferences or changes one of them:
//
//	todo settings
//	todo settings set notifications_enabled false
//	todo settings set daily_summary_time 08:30
type SettingsCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewSettingsCommand(app *App) *SettingsCommand {
	return &SettingsCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *SettingsCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "show" {
		settings, err := c.app.businessAPI.GetSettings(ctx)
		if err != nil {
			return c.errorHandler.Handle("load settings", err)
		}
		c.app.printSettings(settings)
		return nil
	}

	if args[0] != "set" || len(args) != 3 {
		keys := append(append([]string{}, services.SettingKeys...), summaryTimeKey)
		return errors.NewInvalidInputError("settings", strings.Join(args, " "),
			"usage: settings [show] | settings set KEY VALUE; keys: "+strings.Join(keys, ", "))
	}

	key, value := strings.ToLower(args[1]), args[2]
	if key == summaryTimeKey {
		return c.setSummaryTime(ctx, value)
	}

	if _, err := c.app.businessAPI.UpdateSetting(ctx, key, value); err != nil {
		return c.errorHandler.Handle("update setting", err)
	}
	c.app.printf("%s = %s\n", key, value)
	return nil
}

func (c *SettingsCommand) setSummaryTime(ctx context.Context, value string) error {
	var hour, minute int
	if _, err := fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
		return errors.NewInvalidInputError(summaryTimeKey, value, "expected HH:MM")
	}

	if _, err := c.app.businessAPI.UpdateSetting(ctx, services.KeyDailySummaryHour, fmt.Sprint(hour)); err != nil {
		return c.errorHandler.Handle("update setting", err)
	}
	settings, err := c.app.businessAPI.UpdateSetting(ctx, services.KeyDailySummaryMinute, fmt.Sprint(minute))
	if err != nil {
		return c.errorHandler.Handle("update setting", err)
	}

	c.app.printf("Daily summary at %s\n", settings.SummaryTimeLabel())
	return nil
}
