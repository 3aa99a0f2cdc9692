package cli

import (
	"time"

	"github.com/spf13/pflag"

	"todo-engine/internal/domain"
	"todo-engine/internal/errors"
)

// taskFlags are the editable task fields shared by add and edit.
type taskFlags struct {
	fs *pflag.FlagSet

	title       string
	description string
	priority    string
	category    string
	due         string
	remindAt    string
	remind      bool
	clearDue    bool
}

func (f *taskFlags) bind(fs *pflag.FlagSet, withTitle bool) {
	f.fs = fs
	if withTitle {
		fs.StringVarP(&f.title, "title", "t", "", "New title")
	}
	fs.StringVarP(&f.description, "desc", "d", "", "Description")
	fs.StringVarP(&f.priority, "priority", "p", "", "Priority: low, medium, high or urgent")
	fs.StringVarP(&f.category, "category", "c", "", "Category, e.g. work or shopping")
	fs.StringVar(&f.due, "due", "", "Due time: YYYY-MM-DD, \"YYYY-MM-DD HH:MM\", today, tomorrow or an offset like 2h")
	fs.BoolVarP(&f.remind, "remind", "r", false, "Remind at the due time or --remind-at")
	fs.StringVar(&f.remindAt, "remind-at", "", "Reminder time, same formats as --due")
	fs.BoolVar(&f.clearDue, "clear-due", false, "Remove the due date and reminder")
}

func (f *taskFlags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// apply copies the flags that were set onto draft and leaves the rest alone.
func (f *taskFlags) apply(draft *domain.Draft, now time.Time) error {
	if f.changed("title") {
		draft.Title = f.title
	}
	if f.changed("desc") {
		draft.Description = f.description
	}
	if f.changed("priority") {
		p, ok := domain.ParsePriority(f.priority)
		if !ok {
			return errors.NewInvalidInputError("priority", f.priority, "expected low, medium, high or urgent")
		}
		draft.Priority = p
	}
	if f.changed("category") {
		c, ok := domain.ParseCategory(f.category)
		if !ok {
			return errors.NewInvalidInputError("category", f.category, "unknown category")
		}
		draft.Category = c
	}

	if f.clearDue {
		draft.DueAt = nil
		draft.HasReminder = false
		draft.ReminderAt = nil
	}
	if f.changed("due") {
		due, err := parseWhen(f.due, now)
		if err != nil {
			return err
		}
		draft.DueAt = due
	}
	if f.changed("remind") {
		draft.HasReminder = f.remind
		if !f.remind {
			draft.ReminderAt = nil
		}
	}
	if f.changed("remind-at") {
		at, err := parseWhen(f.remindAt, now)
		if err != nil {
			return err
		}
		draft.ReminderAt = at
		draft.HasReminder = at != nil
	}

	if draft.HasReminder && draft.DueAt == nil {
		return errors.NewInvalidInputError("remind", "", "a reminder needs a due date")
	}
	return nil
}
