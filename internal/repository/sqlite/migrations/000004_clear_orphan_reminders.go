package migrations

import (
	"database/sql"
	"fmt"
)

func init() {
	RegisterGoMigration(4, upClearOrphanReminders, downClearOrphanReminders)
}

// upClearOrphanReminders drops reminders from rows that have no due time,
// since a reminder is only meaningful relative to a due date.
func upClearOrphanReminders(tx *sql.Tx) error {
	if _, err := tx.Exec(`
		UPDATE tasks
		SET has_reminder = 0, reminder_at = NULL
		WHERE due_at IS NULL AND (has_reminder = 1 OR reminder_at IS NOT NULL)
	`); err != nil {
		return fmt.Errorf("failed to clear orphan reminders: %w", err)
	}
	return nil
}

// downClearOrphanReminders is a no-op: the cleared values cannot be recovered.
func downClearOrphanReminders(tx *sql.Tx) error {
	return nil
}
