package protocol

import "time"

// DefaultGroup is the group every daemon instance creates on startup.
// Tasks added without an explicit group land here.
const DefaultGroup = "default"

// TaskStatus is the scheduling state reported by the daemon for a task.
type TaskStatus string

const (
	StatusQueued  TaskStatus = "queued"
	StatusStashed TaskStatus = "stashed"
	StatusRunning TaskStatus = "running"
	StatusPaused  TaskStatus = "paused"
	StatusDone    TaskStatus = "done"
	StatusLocked  TaskStatus = "locked"
)

// Terminal reports whether the task can no longer change state on its own.
func (s TaskStatus) Terminal() bool {
	return s == StatusDone || s == StatusLocked
}

// TaskResult describes how a finished task ended.
type TaskResult string

const (
	ResultSuccess          TaskResult = "success"
	ResultFailed           TaskResult = "failed"
	ResultFailedToSpawn    TaskResult = "failed_to_spawn"
	ResultKilled           TaskResult = "killed"
	ResultErrored          TaskResult = "errored"
	ResultDependencyFailed TaskResult = "dependency_failed"
)

// Task is the daemon's record of a single queued command.
// Read-only on the client side; mutations go through requests.
type Task struct {
	ID           int               `json:"id"`
	Command      string            `json:"command"`
	Path         string            `json:"path"`
	Envs         map[string]string `json:"envs,omitempty"`
	Group        string            `json:"group"`
	Priority     int               `json:"priority,omitempty"`
	Label        string            `json:"label,omitempty"`
	Dependencies []int             `json:"dependencies,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`

	Status   TaskStatus `json:"status"`
	Start    *time.Time `json:"start,omitempty"`
	End      *time.Time `json:"end,omitempty"`
	Result   TaskResult `json:"result,omitempty"`
	ExitCode *int       `json:"exit_code,omitempty"`
}

// Switchable reports whether the task's queue position may be swapped.
// The daemon only reorders tasks that have not started yet.
func (t *Task) Switchable() bool {
	return t.Status == StatusQueued || t.Status == StatusStashed
}

// GroupStatus is the run state of a whole group.
type GroupStatus string

const (
	GroupRunning GroupStatus = "running"
	GroupPaused  GroupStatus = "paused"
	GroupReset   GroupStatus = "reset"
)

// Group is a named scheduling bucket with its own pause state and
// parallel-execution limit.
type Group struct {
	Status   GroupStatus `json:"status"`
	Parallel int         `json:"parallel"`
}

// State is the full point-in-time snapshot reported by the daemon.
// The client replaces it wholesale on every refresh and never mutates it.
type State struct {
	Tasks  map[int]*Task     `json:"tasks"`
	Groups map[string]*Group `json:"groups"`
}

// EditableTask is the daemon's editable representation of a task, returned
// by an edit request. While one is checked out the task is locked daemon-side
// until the edit is submitted or restored.
type EditableTask struct {
	ID       int    `json:"id"`
	Command  string `json:"command"`
	Path     string `json:"path"`
	Label    string `json:"label,omitempty"`
	Priority int    `json:"priority,omitempty"`
}
