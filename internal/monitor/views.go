package monitor

import (
	"fmt"
	"strings"

	"github.com/s22625/lazyq/internal/protocol"
	"github.com/s22625/lazyq/internal/session"
)

func (d *Dashboard) viewTasks() string {
	var b strings.Builder

	b.WriteString(d.styles.Title.Render("lazyq"))
	b.WriteString("\n")

	if errMsg := d.ctrl.Err(); errMsg != "" {
		b.WriteString(d.styles.Error.Render(errMsg))
		b.WriteString("\n")
	}

	state := d.ctrl.State()
	items := d.ctrl.Items()
	selection := d.ctrl.Selection()

	listHeight := d.innerHeight() - 4
	if listHeight < 3 {
		listHeight = 3
	}

	switch {
	case state == nil:
		b.WriteString(d.styles.Muted.Render("waiting for daemon..."))
		b.WriteString("\n")
	case len(items) == 0:
		b.WriteString(d.styles.Muted.Render("no groups"))
		b.WriteString("\n")
	default:
		start := d.listOffset(items, selection, listHeight)
		end := start + listHeight
		if end > len(items) {
			end = len(items)
		}
		for _, item := range items[start:end] {
			b.WriteString(d.renderItem(state, item, selection.Matches(item)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(d.styles.StatusBar.Render(d.statusLine(state)))
	b.WriteString("\n")
	b.WriteString(d.styles.HelpBar.Render(fmt.Sprintf("[%s] move  [%s] expand  [%s] collapse  [%s] add  [%s] logs follow  [%s] help  [%s] quit",
		d.keymap.Navigate, d.keymap.Expand, d.keymap.Collapse, d.keymap.Add, d.keymap.Follow, d.keymap.Help, d.keymap.Quit)))
	return b.String()
}

func (d *Dashboard) renderItem(state *protocol.State, item session.TreeItem, selected bool) string {
	if item.Kind == session.ItemGroup {
		group := state.Groups[item.Group]
		count := 0
		for _, task := range state.Tasks {
			if task.Group == item.Group {
				count++
			}
		}
		collapsed := false
		for _, name := range d.ctrl.CollapsedGroups() {
			if name == item.Group {
				collapsed = true
				break
			}
		}
		return d.groupHeader(item.Group, group, count, collapsed, selected)
	}
	task, ok := state.Tasks[item.TaskID]
	if !ok {
		return ""
	}
	return d.taskRow(task, d.innerWidth(), selected)
}

// listOffset picks a window start that keeps the selection visible.
func (d *Dashboard) listOffset(items []session.TreeItem, selection session.Selection, height int) int {
	pos, ok := session.PositionOf(selection, items)
	if !ok {
		return 0
	}
	if pos < height {
		return 0
	}
	return pos - height + 1
}

func (d *Dashboard) statusLine(state *protocol.State) string {
	if state == nil {
		return "disconnected"
	}
	var running, queued, done int
	for _, task := range state.Tasks {
		switch task.Status {
		case protocol.StatusRunning:
			running++
		case protocol.StatusQueued:
			queued++
		case protocol.StatusDone:
			done++
		}
	}
	return fmt.Sprintf("%d running  %d queued  %d finished  |  refreshed %s",
		running, queued, done, refreshAge(d.ctrl.LastRefresh()))
}

func (d *Dashboard) viewLog() string {
	var b strings.Builder

	title := fmt.Sprintf("logs: task %d", d.ctrl.LogTaskID())
	if d.ctrl.FollowMode() {
		title += "  (following)"
	}
	b.WriteString(d.styles.Title.Render(title))
	b.WriteString("\n\n")

	lines := strings.Split(d.ctrl.LogContent(), "\n")
	visible := d.innerHeight() - 4
	if visible < 1 {
		visible = 1
	}

	maxOffset := len(lines) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	offset := d.ctrl.LogScroll()
	if offset > maxOffset {
		// Covers the pinned-to-bottom sentinel as well.
		offset = maxOffset
	}

	end := offset + visible
	if end > len(lines) {
		end = len(lines)
	}
	for _, line := range lines[offset:end] {
		b.WriteString(d.styles.Normal.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(d.styles.HelpBar.Render("[j/k] scroll  [ctrl+d/ctrl+u] page  [f] follow  [q] close"))
	return b.String()
}

func (d *Dashboard) viewInput() string {
	var b strings.Builder

	title := "add task"
	if d.ctrl.InputKind() == session.InputEdit {
		title = "edit command"
	}
	b.WriteString(d.styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(d.ctrl.Input().View())
	b.WriteString("\n\n")
	if d.ctrl.InputKind() == session.InputAdd {
		b.WriteString(d.styles.Muted.Render(fmt.Sprintf("group: %s", d.ctrl.Selection().Group)))
		b.WriteString("\n")
	}
	b.WriteString(d.styles.HelpBar.Render("[enter] submit  [esc] cancel"))
	return b.String()
}

func (d *Dashboard) viewConfirm() string {
	var b strings.Builder

	b.WriteString(d.styles.Title.Render("remove task"))
	b.WriteString("\n\n")

	id := d.ctrl.ConfirmTaskID()
	command := ""
	if state := d.ctrl.State(); state != nil {
		if task, ok := state.Tasks[id]; ok {
			command = task.Command
		}
	}
	b.WriteString(fmt.Sprintf("remove task %d?", id))
	if command != "" {
		b.WriteString("\n")
		b.WriteString(d.styles.Muted.Render(command))
	}
	b.WriteString("\n\n")
	b.WriteString(d.styles.HelpBar.Render("[y/enter] remove  [any other key] cancel"))
	return b.String()
}

func (d *Dashboard) viewHelp() string {
	k := d.keymap
	rows := []struct{ key, desc string }{
		{k.Navigate, "move selection"},
		{k.TopBot, "jump to top / bottom"},
		{k.Expand, "expand group / open task logs"},
		{k.Collapse, "collapse group / back to group"},
		{k.Kill, "kill task"},
		{k.Pause, "pause or resume group"},
		{k.TaskRun, "pause, resume or force-start task"},
		{k.Refresh, "refresh now"},
		{k.Restart, "restart task as a new entry"},
		{k.Clean, "clean finished tasks in group"},
		{k.Add, "add task to group"},
		{k.Edit, "edit task command"},
		{k.Remove, "remove task (with confirmation)"},
		{k.Stash, "stash queued task"},
		{k.Enqueue, "enqueue stashed task"},
		{k.Switch, "move task up / down the queue"},
		{k.Parallel, "raise / lower group parallel limit"},
		{k.Follow, "follow task logs"},
		{k.Quit, "quit"},
	}

	var b strings.Builder
	b.WriteString(d.styles.Title.Render("key bindings"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %-8s %s\n", row.key, d.styles.Muted.Render(row.desc)))
	}
	b.WriteString("\n")
	b.WriteString(d.styles.HelpBar.Render("press any key to close"))
	return b.String()
}
