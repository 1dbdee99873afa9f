package session

// Intent is the closed set of operations the controller knows how to
// execute. The monitor layer maps raw key events to intents per mode;
// the controller never sees raw input outside of text editing.
type Intent int

const (
	IntentNone Intent = iota

	IntentRefresh
	IntentNavigateUp
	IntentNavigateDown
	IntentNavigateTop
	IntentNavigateBottom
	IntentCollapse
	IntentExpand

	IntentKillTask
	IntentTogglePause
	IntentToggleTaskPause
	IntentRestartTask
	IntentCleanFinished
	IntentStashTask
	IntentEnqueueTask
	IntentSwitchUp
	IntentSwitchDown
	IntentIncreaseParallel
	IntentDecreaseParallel

	IntentStartAddTask
	IntentStartEditTask
	IntentSubmitInput
	IntentCancelInput

	IntentRemoveTask
	IntentConfirmAction
	IntentCancelConfirm

	IntentViewLogs
	IntentFollowLogs
	IntentCloseLogs
	IntentScrollLogUp
	IntentScrollLogDown
	IntentScrollLogPageUp
	IntentScrollLogPageDown

	IntentQuit
)

var intentNames = map[Intent]string{
	IntentNone:              "none",
	IntentRefresh:           "refresh",
	IntentNavigateUp:        "navigate-up",
	IntentNavigateDown:      "navigate-down",
	IntentNavigateTop:       "navigate-top",
	IntentNavigateBottom:    "navigate-bottom",
	IntentCollapse:          "collapse",
	IntentExpand:            "expand",
	IntentKillTask:          "kill-task",
	IntentTogglePause:       "toggle-pause",
	IntentToggleTaskPause:   "toggle-task-pause",
	IntentRestartTask:       "restart-task",
	IntentCleanFinished:     "clean-finished",
	IntentStashTask:         "stash-task",
	IntentEnqueueTask:       "enqueue-task",
	IntentSwitchUp:          "switch-up",
	IntentSwitchDown:        "switch-down",
	IntentIncreaseParallel:  "increase-parallel",
	IntentDecreaseParallel:  "decrease-parallel",
	IntentStartAddTask:      "start-add-task",
	IntentStartEditTask:     "start-edit-task",
	IntentSubmitInput:       "submit-input",
	IntentCancelInput:       "cancel-input",
	IntentRemoveTask:        "remove-task",
	IntentConfirmAction:     "confirm-action",
	IntentCancelConfirm:     "cancel-confirm",
	IntentViewLogs:          "view-logs",
	IntentFollowLogs:        "follow-logs",
	IntentCloseLogs:         "close-logs",
	IntentScrollLogUp:       "scroll-log-up",
	IntentScrollLogDown:     "scroll-log-down",
	IntentScrollLogPageUp:   "scroll-log-page-up",
	IntentScrollLogPageDown: "scroll-log-page-down",
	IntentQuit:              "quit",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}
