package monitor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/s22625/lazyq/internal/session"
)

// KeyMap documents the shortcuts shown in the help footer and overlay.
type KeyMap struct {
	Navigate string
	TopBot   string
	Expand   string
	Collapse string
	Kill     string
	Pause    string
	TaskRun  string
	Refresh  string
	Restart  string
	Clean    string
	Add      string
	Edit     string
	Remove   string
	Stash    string
	Enqueue  string
	Switch   string
	Parallel string
	Follow   string
	Help     string
	Quit     string
}

// DefaultKeyMap returns the default shortcut mapping.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Navigate: "j/k",
		TopBot:   "g/G",
		Expand:   "l",
		Collapse: "h",
		Kill:     "K",
		Pause:    "p",
		TaskRun:  "space",
		Refresh:  "r",
		Restart:  "R",
		Clean:    "c",
		Add:      "a",
		Edit:     "e",
		Remove:   "d",
		Stash:    "s",
		Enqueue:  "S",
		Switch:   "</>",
		Parallel: "+/-",
		Follow:   "f",
		Help:     "?",
		Quit:     "q",
	}
}

// normalIntent maps a key event to an intent in the normal task view.
func normalIntent(msg tea.KeyMsg) session.Intent {
	if msg.Type == tea.KeyCtrlC {
		return session.IntentQuit
	}
	switch msg.String() {
	case "j", "down":
		return session.IntentNavigateDown
	case "k", "up":
		return session.IntentNavigateUp
	case "g":
		return session.IntentNavigateTop
	case "G":
		return session.IntentNavigateBottom
	case "h", "left":
		return session.IntentCollapse
	case "l", "right", "enter":
		return session.IntentExpand
	case "K":
		return session.IntentKillTask
	case "p":
		return session.IntentTogglePause
	case " ":
		return session.IntentToggleTaskPause
	case "r":
		return session.IntentRefresh
	case "R":
		return session.IntentRestartTask
	case "c":
		return session.IntentCleanFinished
	case "a":
		return session.IntentStartAddTask
	case "e":
		return session.IntentStartEditTask
	case "d", "x":
		return session.IntentRemoveTask
	case "s":
		return session.IntentStashTask
	case "S":
		return session.IntentEnqueueTask
	case "<":
		return session.IntentSwitchUp
	case ">":
		return session.IntentSwitchDown
	case "+", "=":
		return session.IntentIncreaseParallel
	case "-", "_":
		return session.IntentDecreaseParallel
	case "f":
		return session.IntentFollowLogs
	case "q":
		return session.IntentQuit
	}
	return session.IntentNone
}

// logIntent maps a key event to an intent while the log modal is open.
func logIntent(msg tea.KeyMsg) session.Intent {
	if msg.Type == tea.KeyCtrlC {
		return session.IntentQuit
	}
	switch msg.String() {
	case "q", "esc", "enter":
		return session.IntentCloseLogs
	case "j", "down":
		return session.IntentScrollLogDown
	case "k", "up":
		return session.IntentScrollLogUp
	case "ctrl+d", "pgdown":
		return session.IntentScrollLogPageDown
	case "ctrl+u", "pgup":
		return session.IntentScrollLogPageUp
	case "f":
		return session.IntentFollowLogs
	}
	return session.IntentNone
}

// confirmIntent maps a key event to an intent in the delete confirmation.
// Anything that is not an explicit confirmation cancels.
func confirmIntent(msg tea.KeyMsg) session.Intent {
	if msg.Type == tea.KeyCtrlC {
		return session.IntentQuit
	}
	switch msg.String() {
	case "y", "Y", "enter":
		return session.IntentConfirmAction
	}
	return session.IntentCancelConfirm
}

// inputIntent maps the few keys the controller intercepts in input mode;
// every other event goes to the text buffer.
func inputIntent(msg tea.KeyMsg) session.Intent {
	switch msg.Type {
	case tea.KeyCtrlC:
		return session.IntentCancelInput
	case tea.KeyEnter:
		return session.IntentSubmitInput
	case tea.KeyEsc:
		return session.IntentCancelInput
	}
	return session.IntentNone
}
