package notify

import (
	"github.com/charmbracelet/lipgloss"

	"todo-engine/internal/domain"
)

// Theme colours shared by the notification boxes and the CLI lists.
var (
	colorForeground    = lipgloss.Color("#c0caf5")
	colorForegroundDim = lipgloss.Color("#565f89")
	colorPrimary       = lipgloss.Color("#7aa2f7")
	colorWarning       = lipgloss.Color("#e0af68")
	colorError         = lipgloss.Color("#f7768e")
	colorSuccess       = lipgloss.Color("#9ece6a")
	colorBorder        = lipgloss.Color("#3b4261")
)

// Styles holds the pre-computed styles for terminal output.
type Styles struct {
	Box       lipgloss.Style
	Title     lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Warning   lipgloss.Style
	Overdue   lipgloss.Style
	Completed lipgloss.Style

	noColor bool
}

// NewStyles builds the terminal styles. With noColor only layout is kept.
func NewStyles(noColor bool) *Styles {
	s := &Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
		Title:     lipgloss.NewStyle().Bold(true),
		Text:      lipgloss.NewStyle(),
		Muted:     lipgloss.NewStyle(),
		Warning:   lipgloss.NewStyle(),
		Overdue:   lipgloss.NewStyle(),
		Completed: lipgloss.NewStyle().Strikethrough(true),
		noColor:   noColor,
	}
	if noColor {
		return s
	}

	s.Box = s.Box.BorderForeground(colorBorder)
	s.Title = s.Title.Foreground(colorPrimary)
	s.Text = s.Text.Foreground(colorForeground)
	s.Muted = s.Muted.Foreground(colorForegroundDim)
	s.Warning = s.Warning.Foreground(colorWarning)
	s.Overdue = s.Overdue.Foreground(colorError)
	s.Completed = s.Completed.Foreground(colorSuccess)
	return s
}

// Priority returns a style coloured with the priority's display colour.
func (s *Styles) Priority(p domain.Priority) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(p >= domain.PriorityHigh)
	if s.noColor {
		return style
	}
	return style.Foreground(lipgloss.Color(domain.PriorityDisplay(p).HexColor()))
}
