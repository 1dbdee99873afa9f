package session

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/s22625/lazyq/internal/client"
	"github.com/s22625/lazyq/internal/protocol"
)

// Mode is the controller's UI mode. Exactly one is active; raw input is
// interpreted per mode before it ever reaches the controller.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInput
	ModeLog
	ModeConfirm
)

// InputKind distinguishes the two text-input dialogs.
type InputKind int

const (
	InputAdd InputKind = iota
	InputEdit
)

// LogScrollBottom is the scroll sentinel meaning "pinned to the newest
// output". The renderer clamps it to the real maximum offset.
const LogScrollBottom = math.MaxInt

const logPageLines = 20

// Client is the slice of the daemon client the controller drives. Calls are
// issued one at a time; the controller is never reentered while one is
// outstanding.
type Client interface {
	Status() (*protocol.State, error)
	Kill(ids []int) error
	PauseTasks(ids []int) error
	StartTasks(ids []int) error
	PauseGroup(group string) error
	StartGroup(group string) error
	Restart(opts client.RestartOptions) error
	Clean(group string, successfulOnly bool) error
	Add(opts client.AddOptions) error
	Remove(ids []int) error
	Log(id int) (string, error)
	EditRequest(id int) (*protocol.EditableTask, error)
	EditSubmit(task *protocol.EditableTask) error
	EditRestore(id int) error
	Stash(ids []int) error
	Enqueue(ids []int) error
	Switch(a, b int) error
	Parallel(group string, limit int) error
}

// Controller owns the last-known daemon snapshot, the tree selection, the
// UI mode, and the log-viewer state, and executes intents against the
// daemon. Every mutating intent is call-then-refresh: the controller never
// predicts daemon state, it re-fetches truth after each write.
type Controller struct {
	client Client

	state       *protocol.State
	errMsg      string
	lastRefresh time.Time

	mode      Mode
	selection Selection
	collapsed map[string]bool

	inputKind InputKind
	input     textinput.Model
	editTask  *protocol.EditableTask

	confirmRemove int

	logTask    int
	logContent string
	logScroll  int
	follow     bool

	quitting bool
}

// New creates a controller bound to a daemon client. No snapshot is fetched
// until the first Refresh.
func New(c Client) *Controller {
	input := textinput.New()
	input.Prompt = "> "
	return &Controller{
		client:        c,
		selection:     SelectGroup(protocol.DefaultGroup),
		collapsed:     make(map[string]bool),
		confirmRemove: -1,
		input:         input,
	}
}

// State returns the last successfully fetched snapshot, or nil.
func (c *Controller) State() *protocol.State { return c.state }

// Err returns the current error banner, empty when none.
func (c *Controller) Err() string { return c.errMsg }

// LastRefresh returns the time of the last successful snapshot fetch.
func (c *Controller) LastRefresh() time.Time { return c.lastRefresh }

// Mode returns the active UI mode.
func (c *Controller) Mode() Mode { return c.mode }

// Selection returns the focused tree item reference.
func (c *Controller) Selection() Selection { return c.selection }

// Items projects the current snapshot into the flattened tree view.
func (c *Controller) Items() []TreeItem {
	return Tree(c.state, c.collapsed)
}

// InputKind reports which dialog the text input belongs to.
func (c *Controller) InputKind() InputKind { return c.inputKind }

// Input exposes the text input model for rendering.
func (c *Controller) Input() *textinput.Model { return &c.input }

// ConfirmTaskID returns the task id awaiting delete confirmation, or -1.
func (c *Controller) ConfirmTaskID() int { return c.confirmRemove }

// LogTaskID returns the task whose log is open in the viewer.
func (c *Controller) LogTaskID() int { return c.logTask }

// LogContent returns the fetched log text while the viewer is open.
func (c *Controller) LogContent() string { return c.logContent }

// LogScroll returns the viewer scroll offset, possibly LogScrollBottom.
func (c *Controller) LogScroll() int { return c.logScroll }

// FollowMode reports whether the log viewer is pinned to new output.
func (c *Controller) FollowMode() bool { return c.follow }

// Quitting reports whether a quit intent has been executed.
func (c *Controller) Quitting() bool { return c.quitting }

// CollapsedGroups returns the collapsed group names, for persistence.
func (c *Controller) CollapsedGroups() []string {
	var names []string
	for name, on := range c.collapsed {
		if on {
			names = append(names, name)
		}
	}
	return names
}

// RestoreUIState seeds collapse state and the selected group from persisted
// settings. Entries for groups that no longer exist are harmless; the
// projector ignores them and the next refresh reconciles the selection.
func (c *Controller) RestoreUIState(collapsed []string, group string) {
	for _, name := range collapsed {
		c.collapsed[name] = true
	}
	if group != "" {
		c.selection = SelectGroup(group)
	}
}

// Refresh re-fetches the snapshot. On success the cache is replaced
// wholesale, the error banner cleared, and the selection reconciled. On
// failure the previous snapshot is retained so the UI keeps showing
// stale-but-valid data behind the banner.
func (c *Controller) Refresh() {
	state, err := c.client.Status()
	if err != nil {
		c.errMsg = fmt.Sprintf("failed to fetch status: %v", err)
		return
	}
	c.state = state
	c.errMsg = ""
	c.lastRefresh = time.Now()
	c.selection = Reconcile(c.selection, c.Items())
}

// RefreshLogs re-fetches the open log while follow mode is on, keeping the
// viewer pinned to the bottom. Fetch errors during follow are ignored.
func (c *Controller) RefreshLogs() {
	if c.mode != ModeLog || !c.follow {
		return
	}
	content, err := c.client.Log(c.logTask)
	if err != nil {
		return
	}
	c.logContent = content
	c.logScroll = LogScrollBottom
}

// UpdateInput forwards a raw input event to the text buffer. Only valid in
// input mode; the monitor routes submit/cancel keys to intents before
// anything reaches the buffer.
func (c *Controller) UpdateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// Apply executes one intent. Remote failures become the error banner and
// never change UI state beyond it; precondition violations are refused
// locally without issuing a request.
func (c *Controller) Apply(intent Intent) {
	switch intent {
	case IntentRefresh:
		c.Refresh()

	case IntentNavigateUp:
		items := c.Items()
		if pos, ok := PositionOf(c.selection, items); ok && pos > 0 {
			c.selection = selectionFor(items[pos-1])
		}
	case IntentNavigateDown:
		items := c.Items()
		if pos, ok := PositionOf(c.selection, items); ok && pos+1 < len(items) {
			c.selection = selectionFor(items[pos+1])
		}
	case IntentNavigateTop:
		if items := c.Items(); len(items) > 0 {
			c.selection = selectionFor(items[0])
		}
	case IntentNavigateBottom:
		if items := c.Items(); len(items) > 0 {
			c.selection = selectionFor(items[len(items)-1])
		}

	case IntentCollapse:
		c.collapse()
	case IntentExpand:
		c.expand()

	case IntentKillTask:
		if id, ok := c.selectedTaskID(); ok {
			c.run("kill task", func() error { return c.client.Kill([]int{id}) })
		}
	case IntentTogglePause:
		c.toggleGroupPause()
	case IntentToggleTaskPause:
		c.toggleTaskPause()
	case IntentRestartTask:
		c.restartTask()
	case IntentCleanFinished:
		group := c.selectedGroup()
		c.run("clean tasks", func() error { return c.client.Clean(group, false) })
	case IntentStashTask:
		if task, ok := c.selectedTask(); ok && task.Status == protocol.StatusQueued {
			c.run("stash task", func() error { return c.client.Stash([]int{task.ID}) })
		}
	case IntentEnqueueTask:
		if task, ok := c.selectedTask(); ok && task.Status == protocol.StatusStashed {
			c.run("enqueue task", func() error { return c.client.Enqueue([]int{task.ID}) })
		}
	case IntentSwitchUp:
		c.switchNeighbor(-1)
	case IntentSwitchDown:
		c.switchNeighbor(+1)
	case IntentIncreaseParallel:
		c.adjustParallel(+1)
	case IntentDecreaseParallel:
		c.adjustParallel(-1)

	case IntentStartAddTask:
		c.input.Reset()
		c.input.Focus()
		c.inputKind = InputAdd
		c.mode = ModeInput
	case IntentStartEditTask:
		c.startEditTask()
	case IntentSubmitInput:
		c.submitInput()
	case IntentCancelInput:
		c.cancelInput()

	case IntentRemoveTask:
		if task, ok := c.selectedTask(); ok && task.Status != protocol.StatusRunning {
			c.confirmRemove = task.ID
			c.mode = ModeConfirm
		}
	case IntentConfirmAction:
		if c.mode == ModeConfirm && c.confirmRemove >= 0 {
			id := c.confirmRemove
			c.confirmRemove = -1
			c.mode = ModeNormal
			c.run("remove task", func() error { return c.client.Remove([]int{id}) })
		}
	case IntentCancelConfirm:
		c.confirmRemove = -1
		c.mode = ModeNormal

	case IntentViewLogs:
		if c.mode == ModeLog {
			c.closeLogs()
		} else if id, ok := c.selectedTaskID(); ok {
			c.openLogs(id, false)
		}
	case IntentFollowLogs:
		if c.mode == ModeLog {
			c.follow = !c.follow
			if c.follow {
				c.logScroll = LogScrollBottom
			}
		} else if id, ok := c.selectedTaskID(); ok {
			c.openLogs(id, true)
		}
	case IntentCloseLogs:
		c.closeLogs()
	case IntentScrollLogUp:
		c.scrollLog(-1)
	case IntentScrollLogDown:
		c.scrollLog(+1)
	case IntentScrollLogPageUp:
		c.scrollLog(-logPageLines)
	case IntentScrollLogPageDown:
		c.scrollLog(logPageLines)

	case IntentQuit:
		c.quitting = true
	}
}

// run executes a mutating call and unconditionally re-fetches truth on
// success. Failures become the banner; no local state is rolled back
// because none was predicted.
func (c *Controller) run(action string, call func() error) {
	if err := call(); err != nil {
		c.errMsg = fmt.Sprintf("failed to %s: %v", action, err)
		return
	}
	c.Refresh()
}

func (c *Controller) selectedTaskID() (int, bool) {
	if c.selection.Kind == ItemTask {
		return c.selection.TaskID, true
	}
	return 0, false
}

func (c *Controller) selectedTask() (*protocol.Task, bool) {
	id, ok := c.selectedTaskID()
	if !ok || c.state == nil {
		return nil, false
	}
	task, ok := c.state.Tasks[id]
	return task, ok
}

// selectedGroup resolves a group name from the selection regardless of its
// kind: a task selection yields its parent group.
func (c *Controller) selectedGroup() string {
	return c.selection.Group
}

func (c *Controller) collapse() {
	switch c.selection.Kind {
	case ItemGroup:
		name := c.selection.Group
		if c.collapsed[name] {
			delete(c.collapsed, name)
		} else {
			c.collapsed[name] = true
		}
	case ItemTask:
		// Zoom out to the parent group, not a fold.
		c.selection = SelectGroup(c.selection.Group)
	}
}

func (c *Controller) expand() {
	switch c.selection.Kind {
	case ItemGroup:
		name := c.selection.Group
		if c.collapsed[name] {
			delete(c.collapsed, name)
			return
		}
		// Already expanded: drill into the first task if the group has any.
		if c.state != nil {
			if ids := tasksInGroup(c.state, name); len(ids) > 0 {
				c.selection = SelectTask(name, ids[0])
			}
		}
	case ItemTask:
		// Expand on a task doubles as "drill in": open its logs.
		c.openLogs(c.selection.TaskID, false)
	}
}

func (c *Controller) toggleGroupPause() {
	if c.state == nil {
		return
	}
	name := c.selectedGroup()
	group, ok := c.state.Groups[name]
	if !ok {
		return
	}
	if group.Status == protocol.GroupPaused {
		c.run("resume group", func() error { return c.client.StartGroup(name) })
	} else {
		c.run("pause group", func() error { return c.client.PauseGroup(name) })
	}
}

func (c *Controller) toggleTaskPause() {
	task, ok := c.selectedTask()
	if !ok {
		return
	}
	id := task.ID
	switch task.Status {
	case protocol.StatusPaused:
		c.run("resume task", func() error { return c.client.StartTasks([]int{id}) })
	case protocol.StatusRunning:
		c.run("pause task", func() error { return c.client.PauseTasks([]int{id}) })
	case protocol.StatusQueued, protocol.StatusStashed:
		// Force-start immediately, ahead of the scheduler.
		c.run("start task", func() error { return c.client.StartTasks([]int{id}) })
	default:
		// Nothing to toggle on finished or locked tasks.
	}
}

// restartTask resubmits a copy of the task as a brand-new queue entry. The
// original record stays in history untouched.
func (c *Controller) restartTask() {
	task, ok := c.selectedTask()
	if !ok {
		return
	}
	opts := client.RestartOptions{
		Command:  task.Command,
		Path:     task.Path,
		Envs:     task.Envs,
		Group:    task.Group,
		Priority: task.Priority,
		Label:    task.Label,
	}
	c.run("restart task", func() error { return c.client.Restart(opts) })
}

// switchNeighbor swaps the selected task with its neighbor in global
// id-sorted order. Both tasks must not have started yet; otherwise the
// request is refused locally.
func (c *Controller) switchNeighbor(dir int) {
	task, ok := c.selectedTask()
	if !ok {
		return
	}
	ids := allTaskIDs(c.state)
	pos := -1
	for i, id := range ids {
		if id == task.ID {
			pos = i
			break
		}
	}
	other := pos + dir
	if pos < 0 || other < 0 || other >= len(ids) {
		return
	}
	neighbor, ok := c.state.Tasks[ids[other]]
	if !ok || !task.Switchable() || !neighbor.Switchable() {
		return
	}
	c.run("switch tasks", func() error { return c.client.Switch(task.ID, neighbor.ID) })
}

func (c *Controller) adjustParallel(delta int) {
	if c.state == nil {
		return
	}
	name := c.selectedGroup()
	group, ok := c.state.Groups[name]
	if !ok {
		return
	}
	limit := group.Parallel + delta
	if limit < 1 {
		return
	}
	c.run("set parallel limit", func() error { return c.client.Parallel(name, limit) })
}

func (c *Controller) startEditTask() {
	id, ok := c.selectedTaskID()
	if !ok {
		return
	}
	editable, err := c.client.EditRequest(id)
	if err != nil {
		c.errMsg = fmt.Sprintf("failed to edit task: %v", err)
		return
	}
	c.editTask = editable
	c.input.SetValue(editable.Command)
	c.input.CursorEnd()
	c.input.Focus()
	c.inputKind = InputEdit
	c.mode = ModeInput
}

func (c *Controller) submitInput() {
	if c.mode != ModeInput {
		return
	}
	command := c.input.Value()
	if strings.TrimSpace(command) != "" {
		switch c.inputKind {
		case InputAdd:
			group := c.selectedGroup()
			path, _ := os.Getwd()
			c.run("add task", func() error {
				return c.client.Add(client.AddOptions{Command: command, Path: path, Group: group})
			})
		case InputEdit:
			if c.editTask != nil {
				task := c.editTask
				task.Command = command
				c.run("save edit", func() error { return c.client.EditSubmit(task) })
			}
		}
	}
	c.resetInput()
}

func (c *Controller) cancelInput() {
	if c.mode != ModeInput {
		return
	}
	// Best effort: a failed restore must not block the user.
	if c.inputKind == InputEdit && c.editTask != nil {
		_ = c.client.EditRestore(c.editTask.ID)
	}
	c.resetInput()
}

func (c *Controller) resetInput() {
	c.input.Reset()
	c.input.Blur()
	c.editTask = nil
	c.mode = ModeNormal
}

func (c *Controller) openLogs(id int, follow bool) {
	content, err := c.client.Log(id)
	if err != nil {
		c.errMsg = fmt.Sprintf("failed to get logs: %v", err)
		return
	}
	c.logTask = id
	c.logContent = content
	c.follow = follow
	if follow {
		c.logScroll = LogScrollBottom
	} else {
		c.logScroll = 0
	}
	c.mode = ModeLog
}

// closeLogs discards the log view state, fetched text included, so a long
// log does not outlive its modal.
func (c *Controller) closeLogs() {
	c.mode = ModeNormal
	c.logTask = 0
	c.logContent = ""
	c.logScroll = 0
	c.follow = false
}

func (c *Controller) scrollLog(delta int) {
	if c.mode != ModeLog {
		return
	}
	if delta < 0 {
		if c.logScroll+delta > 0 {
			c.logScroll += delta
		} else {
			c.logScroll = 0
		}
		return
	}
	if c.logScroll > LogScrollBottom-delta {
		c.logScroll = LogScrollBottom
		return
	}
	c.logScroll += delta
}
