package notify

import (
	"fmt"
	"strings"

	"todo-engine/internal/domain"
)

const (
	ReminderTitle     = "Task Reminder"
	OverdueTitle      = "Overdue Tasks"
	DailySummaryTitle = "Daily Summary"

	// DueLayout renders due times as "Jan 02, 2006 at 3:04 PM".
	DueLayout = "Jan 02, 2006 at 3:04 PM"

	maxOverdueLines = 5
)

// Message is a rendered notification: a title, a one-line text and optional detail.
type Message struct {
	Title string
	Text  string
	Body  string
	Lines []string
}

// ReminderMessage describes a single task reminder.
func ReminderMessage(task domain.Task, dueLayout string) Message {
	if dueLayout == "" {
		dueLayout = DueLayout
	}

	var body strings.Builder
	body.WriteString(task.Title)
	if strings.TrimSpace(task.Description) != "" {
		body.WriteString("\n\n")
		body.WriteString(task.Description)
	}
	if task.DueAt != nil {
		body.WriteString("\n\nDue: ")
		body.WriteString(task.DueAt.Format(dueLayout))
	}

	return Message{Title: ReminderTitle, Text: task.Title, Body: body.String()}
}

// OverdueMessage lists the first five titles and summarises the rest.
func OverdueMessage(tasks []domain.Task) Message {
	text := fmt.Sprintf("You have %d overdue task", len(tasks))
	if len(tasks) > 1 {
		text += "s"
	}

	lines := make([]string, 0, maxOverdueLines+1)
	for i, task := range tasks {
		if i == maxOverdueLines {
			lines = append(lines, fmt.Sprintf("and %d more...", len(tasks)-maxOverdueLines))
			break
		}
		lines = append(lines, task.Title)
	}

	return Message{Title: OverdueTitle, Text: text, Lines: lines}
}

func DailySummaryMessage(total, completed, dueToday int) Message {
	text := fmt.Sprintf("%d of %d tasks completed", completed, total)
	if dueToday > 0 {
		text += fmt.Sprintf(" • %d due today", dueToday)
	}
	return Message{Title: DailySummaryTitle, Text: text}
}
