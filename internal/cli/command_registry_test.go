package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommandRegistry(t *testing.T) {
	app, _, _ := setupTestApp(t, "")

	registry := NewCommandRegistry(app)

	assert.NotNil(t, registry)
	assert.NotNil(t, registry.commands)

	expectedCommands := []string{
		"add", "archive", "archive-completed", "clear-archived", "delete", "done", "edit",
		"list", "run", "search", "settings", "show", "stats", "sweep", "unarchive", "watch", "widget",
	}
	assert.Equal(t, expectedCommands, registry.Names())
}

func TestCommandRegistry_Execute(t *testing.T) {
	app, _, _ := setupTestApp(t, "")
	ctx := context.Background()

	t.Run("handles unknown command", func(t *testing.T) {
		err := app.registry.Execute(ctx, "unknown", []string{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown command")
	})

	t.Run("handles empty command", func(t *testing.T) {
		err := app.registry.Execute(ctx, "", []string{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown command")
	})

	t.Run("rejects unknown flags", func(t *testing.T) {
		err := app.registry.Execute(ctx, "add", []string{"Task", "--colour", "red"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown flag")
	})

	t.Run("propagates command validation errors", func(t *testing.T) {
		err := app.registry.Execute(ctx, "show", []string{"abc"})
		assert.Error(t, err)
	})
}

func TestCommandRegistry_GetUsage(t *testing.T) {
	app, _, _ := setupTestApp(t, "")

	usage := app.registry.GetUsage()
	assert.NotEmpty(t, usage)

	for _, cmd := range []string{"add", "list", "done", "delete", "run", "settings"} {
		assert.Contains(t, usage, cmd)
	}
}
