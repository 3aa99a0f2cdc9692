package cli

import (
	"fmt"
	"strings"
	"time"

	"todo-engine/internal/domain"
)

func (a *App) formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.In(time.Local).Format(a.timeLayout())
}

// taskLine renders one task as a single list row.
func (a *App) taskLine(task domain.Task, now time.Time) string {
	s := a.styles

	mark := "[ ]"
	title := s.Text.Render(task.Title)
	if task.IsCompleted {
		mark = "[x]"
		title = s.Completed.Render(task.Title)
	}

	var meta []string
	meta = append(meta, s.Priority(task.Priority).Render(domain.PriorityDisplay(task.Priority).DisplayName))
	meta = append(meta, domain.CategoryDisplay(task.Category).DisplayName)
	if task.DueAt != nil {
		due := "due " + a.formatTime(task.DueAt)
		switch {
		case task.IsOverdue(now):
			due = s.Overdue.Render(due + " (overdue)")
		case task.IsDueToday(now):
			due = s.Warning.Render(due)
		default:
			due = s.Muted.Render(due)
		}
		meta = append(meta, due)
	}
	if task.ReminderTime() != nil {
		meta = append(meta, s.Muted.Render("reminder "+a.formatTime(task.ReminderTime())))
	}
	if task.IsArchived {
		meta = append(meta, s.Muted.Render("archived"))
	}

	return fmt.Sprintf("%s #%d %s  %s", mark, task.ID, title, strings.Join(meta, " · "))
}

func (a *App) printTasks(tasks []domain.Task) {
	if len(tasks) == 0 {
		a.println("No tasks found")
		return
	}
	now := timeNow()
	for _, task := range tasks {
		a.println(a.taskLine(task, now))
	}
}

// printTaskDetails shows every field of a task.
func (a *App) printTaskDetails(task domain.Task) {
	s := a.styles
	now := timeNow()

	status := "Active"
	switch {
	case task.IsArchived:
		status = "Archived"
	case task.IsCompleted:
		status = "Completed"
	case task.IsOverdue(now):
		status = "Overdue"
	}

	rows := []string{
		s.Title.Render(fmt.Sprintf("#%d %s", task.ID, task.Title)),
	}
	if task.Description != "" {
		rows = append(rows, s.Text.Render(task.Description))
	}
	rows = append(rows,
		"",
		fmt.Sprintf("Status:   %s", status),
		fmt.Sprintf("Priority: %s", s.Priority(task.Priority).Render(domain.PriorityDisplay(task.Priority).DisplayName)),
		fmt.Sprintf("Category: %s", domain.CategoryDisplay(task.Category).DisplayName),
		fmt.Sprintf("Due:      %s", a.formatTime(task.DueAt)),
		fmt.Sprintf("Reminder: %s", a.formatTime(task.ReminderTime())),
		s.Muted.Render(fmt.Sprintf("Created %s, updated %s", a.formatTime(&task.CreatedAt), a.formatTime(&task.UpdatedAt))),
	)

	a.println(s.Box.Render(strings.Join(rows, "\n")))
}

func (a *App) printStatistics(stats domain.Statistics) {
	s := a.styles
	rows := []string{
		s.Title.Render("Statistics"),
		fmt.Sprintf("Total:     %d", stats.TotalTasks),
		fmt.Sprintf("Active:    %d", stats.ActiveTasks),
		fmt.Sprintf("Completed: %d (%.0f%%)", stats.CompletedTasks, stats.CompletionRate()*100),
		fmt.Sprintf("Overdue:   %s", s.Overdue.Render(fmt.Sprintf("%d", stats.OverdueTasks))),
	}
	a.println(s.Box.Render(strings.Join(rows, "\n")))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (a *App) printSettings(settings domain.Settings) {
	s := a.styles
	rows := []string{
		s.Title.Render("Settings"),
		fmt.Sprintf("notifications_enabled   %s", onOff(settings.NotificationsEnabled)),
		fmt.Sprintf("daily_summary_enabled   %s", onOff(settings.DailySummaryEnabled)),
		fmt.Sprintf("daily_summary_time      %s", settings.SummaryTimeLabel()),
		fmt.Sprintf("auto_archive_enabled    %s", onOff(settings.AutoArchiveEnabled)),
		fmt.Sprintf("dark_mode               %s", onOff(settings.DarkMode)),
		fmt.Sprintf("widget_enabled          %s", onOff(settings.WidgetEnabled)),
		fmt.Sprintf("task_completion_sound   %s", onOff(settings.CompletionSound)),
	}
	a.println(s.Box.Render(strings.Join(rows, "\n")))
}
