package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/s22625/lazyq/internal/protocol"
)

const (
	colIDWidth     = 4
	colStatusWidth = 10
	colAgeWidth    = 16
	rowIndent      = "  "
)

// taskRow renders one task line, truncating the command to the remaining
// width. The status cell is styled after padding so ANSI codes do not skew
// the column math.
func (d *Dashboard) taskRow(task *protocol.Task, width int, selected bool) string {
	id := fmt.Sprintf("%*d", colIDWidth, task.ID)
	label := statusLabel(task)
	age := runewidth.FillRight(taskAge(task), colAgeWidth)

	fixed := len(rowIndent) + colIDWidth + colStatusWidth + colAgeWidth + 6
	cmdWidth := width - fixed
	if cmdWidth < 8 {
		cmdWidth = 8
	}
	command := task.Command
	if task.Label != "" {
		command = fmt.Sprintf("[%s] %s", task.Label, command)
	}
	command = runewidth.FillRight(runewidth.Truncate(command, cmdWidth, "…"), cmdWidth)

	if selected {
		line := fmt.Sprintf("%s%s  %s  %s  %s", rowIndent, id, runewidth.FillRight(label, colStatusWidth), age, command)
		return d.styles.Selected.Render(runewidth.FillRight(line, width))
	}

	pad := colStatusWidth - runewidth.StringWidth(label)
	if pad < 0 {
		pad = 0
	}
	styled := d.styles.StyleTaskStatus(task) + strings.Repeat(" ", pad)
	return fmt.Sprintf("%s%s  %s  %s  %s", rowIndent, d.styles.Muted.Render(id), styled, d.styles.Muted.Render(age), d.styles.Normal.Render(command))
}

// groupHeader renders a group line with its collapse marker, pause state,
// parallel limit, and task count.
func (d *Dashboard) groupHeader(name string, group *protocol.Group, taskCount int, collapsed, selected bool) string {
	marker := "▾"
	if collapsed {
		marker = "▸"
	}
	line := fmt.Sprintf("%s %s", marker, name)
	if group != nil {
		if group.Status == protocol.GroupPaused {
			line += " [paused]"
		}
		line += fmt.Sprintf("  (%d task(s), parallel %d)", taskCount, group.Parallel)
	}
	if selected {
		return d.styles.Selected.Render(runewidth.FillRight(line, d.innerWidth()))
	}
	return d.styles.GroupLine.Render(line)
}

// taskAge describes when the task last changed state, for the age column.
func taskAge(task *protocol.Task) string {
	switch {
	case task.End != nil:
		return humanize.Time(*task.End)
	case task.Start != nil:
		return humanize.Time(*task.Start)
	case !task.CreatedAt.IsZero():
		return humanize.Time(task.CreatedAt)
	default:
		return ""
	}
}

// refreshAge describes how stale the snapshot is, for the status bar.
func refreshAge(last time.Time) string {
	if last.IsZero() {
		return "never"
	}
	return humanize.Time(last)
}
