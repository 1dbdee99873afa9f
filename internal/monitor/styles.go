package monitor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/s22625/lazyq/internal/protocol"
)

// Color palette
var (
	colorGreen  = lipgloss.Color("42")
	colorYellow = lipgloss.Color("214")
	colorRed    = lipgloss.Color("196")
	colorBlue   = lipgloss.Color("39")
	colorCyan   = lipgloss.Color("45")
	colorGray   = lipgloss.Color("245")
	colorWhite  = lipgloss.Color("255")
	colorBorder = lipgloss.Color("240")
)

// Styles defines the visual styles for the dashboard.
type Styles struct {
	Box       lipgloss.Style
	Modal     lipgloss.Style
	Title     lipgloss.Style
	GroupLine lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Error     lipgloss.Style
	StatusBar lipgloss.Style
	HelpBar   lipgloss.Style

	StatusQueued  lipgloss.Style
	StatusStashed lipgloss.Style
	StatusRunning lipgloss.Style
	StatusPaused  lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
	StatusLocked  lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite),

		GroupLine: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan),

		Normal: lipgloss.NewStyle().
			Foreground(colorWhite),

		Muted: lipgloss.NewStyle().
			Foreground(colorGray),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("236")).
			Foreground(colorWhite),

		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRed),

		StatusBar: lipgloss.NewStyle().
			Foreground(colorGray).
			Padding(0, 1),

		HelpBar: lipgloss.NewStyle().
			Foreground(colorGray).
			Padding(0, 1),

		StatusQueued:  lipgloss.NewStyle().Foreground(colorGray),
		StatusStashed: lipgloss.NewStyle().Foreground(colorYellow),
		StatusRunning: lipgloss.NewStyle().Foreground(colorGreen),
		StatusPaused:  lipgloss.NewStyle().Foreground(colorYellow),
		StatusSuccess: lipgloss.NewStyle().Foreground(colorBlue),
		StatusFailed:  lipgloss.NewStyle().Foreground(colorRed),
		StatusLocked:  lipgloss.NewStyle().Foreground(colorGray),
	}
}

// StyleTaskStatus renders a task's status cell with its status color.
func (s Styles) StyleTaskStatus(task *protocol.Task) string {
	label := statusLabel(task)
	switch task.Status {
	case protocol.StatusQueued:
		return s.StatusQueued.Render(label)
	case protocol.StatusStashed:
		return s.StatusStashed.Render(label)
	case protocol.StatusRunning:
		return s.StatusRunning.Render(label)
	case protocol.StatusPaused:
		return s.StatusPaused.Render(label)
	case protocol.StatusLocked:
		return s.StatusLocked.Render(label)
	case protocol.StatusDone:
		if task.Result == protocol.ResultSuccess {
			return s.StatusSuccess.Render(label)
		}
		return s.StatusFailed.Render(label)
	default:
		return s.Normal.Render(label)
	}
}

func statusLabel(task *protocol.Task) string {
	if task.Status != protocol.StatusDone {
		return string(task.Status)
	}
	switch task.Result {
	case protocol.ResultSuccess:
		return "success"
	case protocol.ResultFailed:
		return "failed"
	case protocol.ResultFailedToSpawn:
		return "no spawn"
	case protocol.ResultKilled:
		return "killed"
	case protocol.ResultErrored:
		return "errored"
	case protocol.ResultDependencyFailed:
		return "dep failed"
	default:
		return "done"
	}
}
