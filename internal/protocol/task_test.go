package protocol

import (
	"encoding/json"
	"testing"
)

func TestStateDecode(t *testing.T) {
	raw := `{
		"tasks": {
			"0": {"id": 0, "command": "echo hi", "path": "/tmp", "group": "default",
				"created_at": "2026-08-29T10:00:00Z", "status": "done",
				"result": "success", "exit_code": 0},
			"1": {"id": 1, "command": "make", "path": "/src", "group": "build",
				"created_at": "2026-08-29T10:01:00Z", "status": "running",
				"start": "2026-08-29T10:01:05Z"}
		},
		"groups": {
			"default": {"status": "running", "parallel": 1},
			"build": {"status": "paused", "parallel": 4}
		}
	}`

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	task, ok := state.Tasks[0]
	if !ok {
		t.Fatal("numeric task keys did not decode")
	}
	if task.Result != ResultSuccess || task.ExitCode == nil || *task.ExitCode != 0 {
		t.Errorf("finished task = %+v", task)
	}
	if state.Tasks[1].Start == nil {
		t.Error("running task lost its start time")
	}
	if g := state.Groups["build"]; g.Status != GroupPaused || g.Parallel != 4 {
		t.Errorf("build group = %+v", g)
	}
}

func TestTaskStatusPredicates(t *testing.T) {
	terminal := map[TaskStatus]bool{
		StatusQueued:  false,
		StatusStashed: false,
		StatusRunning: false,
		StatusPaused:  false,
		StatusDone:    true,
		StatusLocked:  true,
	}
	for status, want := range terminal {
		if got := status.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, want %v", status, got, want)
		}
	}

	for status, want := range map[TaskStatus]bool{
		StatusQueued:  true,
		StatusStashed: true,
		StatusRunning: false,
		StatusDone:    false,
	} {
		task := &Task{Status: status}
		if got := task.Switchable(); got != want {
			t.Errorf("Switchable with status %s = %v, want %v", status, got, want)
		}
	}
}
