package monitor

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/s22625/lazyq/internal/session"
)

// Options configures the dashboard behavior.
type Options struct {
	RefreshInterval time.Duration
	FollowInterval  time.Duration
	SettingsDir     string
}

// Dashboard is the bubbletea model wrapping the session controller. It maps
// key events to intents per controller mode and drives periodic refreshes
// from a timer tick. All daemon calls happen synchronously inside Update,
// so at most one request is ever in flight.
type Dashboard struct {
	ctrl *session.Controller

	width  int
	height int

	keymap KeyMap
	styles Styles

	showHelp bool

	refreshInterval time.Duration
	followInterval  time.Duration
	settingsDir     string
}

type tickMsg time.Time

// NewDashboard creates a dashboard model around a controller.
func NewDashboard(ctrl *session.Controller, opts Options) *Dashboard {
	refresh := opts.RefreshInterval
	if refresh <= 0 {
		refresh = defaultRefreshInterval
	}
	follow := opts.FollowInterval
	if follow <= 0 {
		follow = defaultFollowInterval
	}
	return &Dashboard{
		ctrl:            ctrl,
		keymap:          DefaultKeyMap(),
		styles:          DefaultStyles(),
		refreshInterval: refresh,
		followInterval:  follow,
		settingsDir:     opts.SettingsDir,
	}
}

// Run starts the bubbletea program.
func (d *Dashboard) Run() error {
	settings := LoadUISettings(d.settingsDir)
	d.ctrl.RestoreUIState(settings.CollapsedGroups, settings.SelectedGroup)

	program := tea.NewProgram(d, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Init implements tea.Model.
func (d *Dashboard) Init() tea.Cmd {
	d.ctrl.Refresh()
	return d.tickCmd()
}

// tickCmd schedules the next background refresh. Follow mode polls faster
// to approximate a live tail; the daemon offers no push notification.
func (d *Dashboard) tickCmd() tea.Cmd {
	interval := d.refreshInterval
	if d.ctrl.FollowMode() {
		interval = d.followInterval
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		return d, nil
	case tickMsg:
		d.ctrl.Refresh()
		d.ctrl.RefreshLogs()
		return d, d.tickCmd()
	case tea.KeyMsg:
		return d.handleKey(msg)
	default:
		return d, nil
	}
}

func (d *Dashboard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if d.showHelp {
		// Any key dismisses the help overlay.
		d.showHelp = false
		return d, nil
	}

	switch d.ctrl.Mode() {
	case session.ModeInput:
		if intent := inputIntent(msg); intent != session.IntentNone {
			return d.apply(intent)
		}
		return d, d.ctrl.UpdateInput(msg)
	case session.ModeLog:
		return d.apply(logIntent(msg))
	case session.ModeConfirm:
		return d.apply(confirmIntent(msg))
	default:
		if msg.String() == "?" {
			d.showHelp = true
			return d, nil
		}
		return d.apply(normalIntent(msg))
	}
}

func (d *Dashboard) apply(intent session.Intent) (tea.Model, tea.Cmd) {
	if intent == session.IntentNone {
		return d, nil
	}
	d.ctrl.Apply(intent)
	if d.ctrl.Quitting() {
		d.saveSettings()
		return d, tea.Quit
	}
	return d, nil
}

func (d *Dashboard) saveSettings() {
	settings := &UISettings{
		CollapsedGroups: d.ctrl.CollapsedGroups(),
		SelectedGroup:   d.ctrl.Selection().Group,
	}
	if err := SaveUISettings(d.settingsDir, settings); err != nil {
		log.Printf("failed to save UI settings: %v", err)
	}
}

// View implements tea.Model.
func (d *Dashboard) View() string {
	if d.width == 0 {
		return "loading..."
	}
	switch {
	case d.showHelp:
		return d.styles.Box.Render(d.viewHelp())
	case d.ctrl.Mode() == session.ModeLog:
		return d.styles.Box.Render(d.viewLog())
	case d.ctrl.Mode() == session.ModeInput:
		return d.styles.Box.Render(d.viewInput())
	case d.ctrl.Mode() == session.ModeConfirm:
		return d.styles.Box.Render(d.viewConfirm())
	default:
		return d.styles.Box.Render(d.viewTasks())
	}
}

func (d *Dashboard) innerWidth() int {
	w := d.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (d *Dashboard) innerHeight() int {
	h := d.height - 2
	if h < 5 {
		h = 5
	}
	return h
}
