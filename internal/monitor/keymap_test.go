package monitor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/s22625/lazyq/internal/session"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNormalIntentBindings(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want session.Intent
	}{
		{key("j"), session.IntentNavigateDown},
		{tea.KeyMsg{Type: tea.KeyDown}, session.IntentNavigateDown},
		{key("k"), session.IntentNavigateUp},
		{key("g"), session.IntentNavigateTop},
		{key("G"), session.IntentNavigateBottom},
		{key("h"), session.IntentCollapse},
		{tea.KeyMsg{Type: tea.KeyLeft}, session.IntentCollapse},
		{key("l"), session.IntentExpand},
		{tea.KeyMsg{Type: tea.KeyEnter}, session.IntentExpand},
		{key("K"), session.IntentKillTask},
		{key("p"), session.IntentTogglePause},
		{key(" "), session.IntentToggleTaskPause},
		{key("r"), session.IntentRefresh},
		{key("R"), session.IntentRestartTask},
		{key("c"), session.IntentCleanFinished},
		{key("a"), session.IntentStartAddTask},
		{key("e"), session.IntentStartEditTask},
		{key("d"), session.IntentRemoveTask},
		{key("x"), session.IntentRemoveTask},
		{key("s"), session.IntentStashTask},
		{key("S"), session.IntentEnqueueTask},
		{key("<"), session.IntentSwitchUp},
		{key(">"), session.IntentSwitchDown},
		{key("+"), session.IntentIncreaseParallel},
		{key("-"), session.IntentDecreaseParallel},
		{key("f"), session.IntentFollowLogs},
		{key("q"), session.IntentQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, session.IntentQuit},
		{key("z"), session.IntentNone},
	}

	for _, tt := range tests {
		if got := normalIntent(tt.msg); got != tt.want {
			t.Errorf("normalIntent(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestLogIntentBindings(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want session.Intent
	}{
		{key("q"), session.IntentCloseLogs},
		{tea.KeyMsg{Type: tea.KeyEsc}, session.IntentCloseLogs},
		{tea.KeyMsg{Type: tea.KeyEnter}, session.IntentCloseLogs},
		{key("j"), session.IntentScrollLogDown},
		{key("k"), session.IntentScrollLogUp},
		{tea.KeyMsg{Type: tea.KeyCtrlD}, session.IntentScrollLogPageDown},
		{tea.KeyMsg{Type: tea.KeyCtrlU}, session.IntentScrollLogPageUp},
		{tea.KeyMsg{Type: tea.KeyPgDown}, session.IntentScrollLogPageDown},
		{tea.KeyMsg{Type: tea.KeyPgUp}, session.IntentScrollLogPageUp},
		{key("f"), session.IntentFollowLogs},
		{key("a"), session.IntentNone},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, session.IntentQuit},
	}

	for _, tt := range tests {
		if got := logIntent(tt.msg); got != tt.want {
			t.Errorf("logIntent(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestConfirmIntentDefaultsToCancel(t *testing.T) {
	confirms := []tea.KeyMsg{key("y"), key("Y"), {Type: tea.KeyEnter}}
	for _, msg := range confirms {
		if got := confirmIntent(msg); got != session.IntentConfirmAction {
			t.Errorf("confirmIntent(%q) = %v, want confirm", msg.String(), got)
		}
	}

	cancels := []tea.KeyMsg{key("n"), key("q"), {Type: tea.KeyEsc}, key("j")}
	for _, msg := range cancels {
		if got := confirmIntent(msg); got != session.IntentCancelConfirm {
			t.Errorf("confirmIntent(%q) = %v, want cancel", msg.String(), got)
		}
	}
}

func TestInputIntentInterceptsOnlyControlKeys(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want session.Intent
	}{
		{tea.KeyMsg{Type: tea.KeyEnter}, session.IntentSubmitInput},
		{tea.KeyMsg{Type: tea.KeyEsc}, session.IntentCancelInput},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, session.IntentCancelInput},
		{key("a"), session.IntentNone},
		{key("q"), session.IntentNone},
		{key(" "), session.IntentNone},
	}

	for _, tt := range tests {
		if got := inputIntent(tt.msg); got != tt.want {
			t.Errorf("inputIntent(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
