package notify

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"todo-engine/internal/domain"
	"todo-engine/internal/errors"
)

// TerminalPresenter draws notifications as boxes on a terminal stream.
type TerminalPresenter struct {
	mu        sync.Mutex
	out       io.Writer
	styles    *Styles
	dueLayout string
}

// NewTerminalPresenter writes to out. An empty dueLayout uses DueLayout.
func NewTerminalPresenter(out io.Writer, styles *Styles, dueLayout string) *TerminalPresenter {
	if styles == nil {
		styles = NewStyles(false)
	}
	if dueLayout == "" {
		dueLayout = DueLayout
	}
	return &TerminalPresenter{out: out, styles: styles, dueLayout: dueLayout}
}

func (p *TerminalPresenter) ShowReminder(ctx context.Context, task domain.Task) error {
	return p.render(ReminderMessage(task, p.dueLayout), p.styles.Title)
}

func (p *TerminalPresenter) ShowOverdueSummary(ctx context.Context, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return p.render(OverdueMessage(tasks), p.styles.Overdue.Bold(true))
}

func (p *TerminalPresenter) ShowDailySummary(ctx context.Context, total, completed, dueToday int) error {
	return p.render(DailySummaryMessage(total, completed, dueToday), p.styles.Title)
}

func (p *TerminalPresenter) render(msg Message, titleStyle lipgloss.Style) error {
	parts := []string{titleStyle.Render(msg.Title)}
	if msg.Body != "" {
		parts = append(parts, p.styles.Text.Render(msg.Body))
	} else {
		parts = append(parts, p.styles.Text.Render(msg.Text))
	}
	if len(msg.Lines) > 0 {
		lines := make([]string, len(msg.Lines))
		for i, line := range msg.Lines {
			lines[i] = p.styles.Muted.Render("• " + line)
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}

	box := p.styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := fmt.Fprintln(p.out, box); err != nil {
		if stderrors.Is(err, os.ErrPermission) {
			return errors.NewPermissionError("notify", "terminal")
		}
		return fmt.Errorf("write notification: %w", err)
	}
	return nil
}
