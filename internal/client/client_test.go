package client

import (
	"encoding/json"
	"errors"
	"net"
	"path/filepath"
	"sync"
	"testing"

	"github.com/s22625/lazyq/internal/protocol"
)

// fakeDaemon listens on a real unix socket and answers each decoded request
// with the next scripted response.
type fakeDaemon struct {
	mu    sync.Mutex
	reqs  []protocol.Request
	resps []protocol.Response
}

func (d *fakeDaemon) push(resp protocol.Response) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resps = append(d.resps, resp)
}

func (d *fakeDaemon) requests() []protocol.Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]protocol.Request(nil), d.reqs...)
}

func (d *fakeDaemon) serve(conn net.Conn) {
	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)
	for {
		var req protocol.Request
		if err := dec.Decode(&req); err != nil {
			return
		}
		d.mu.Lock()
		d.reqs = append(d.reqs, req)
		var resp protocol.Response
		if len(d.resps) > 0 {
			resp = d.resps[0]
			d.resps = d.resps[1:]
		} else {
			resp = protocol.Response{Type: protocol.RespSuccess}
		}
		d.mu.Unlock()
		if err := enc.Encode(resp); err != nil {
			return
		}
	}
}

func newTestDaemon(t *testing.T) (*Client, *fakeDaemon) {
	t.Helper()
	socket := filepath.Join(t.TempDir(), "queued.sock")
	ln, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	daemon := &fakeDaemon{}
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		daemon.serve(conn)
	}()

	c, err := Dial(socket)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, daemon
}

func TestStatusRoundTrip(t *testing.T) {
	c, daemon := newTestDaemon(t)
	daemon.push(protocol.Response{
		Type: protocol.RespStatus,
		Status: &protocol.State{
			Tasks: map[int]*protocol.Task{
				7: {ID: 7, Command: "sleep 1", Group: "default", Status: protocol.StatusRunning},
			},
			Groups: map[string]*protocol.Group{
				"default": {Status: protocol.GroupRunning, Parallel: 1},
			},
		},
	})

	state, err := c.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	task, ok := state.Tasks[7]
	if !ok || task.Command != "sleep 1" {
		t.Fatalf("snapshot did not survive the wire: %+v", state.Tasks)
	}

	reqs := daemon.requests()
	if len(reqs) != 1 || reqs[0].Type != protocol.ReqStatus {
		t.Fatalf("requests = %+v, want a single status request", reqs)
	}
}

func TestDaemonFailureBecomesDaemonError(t *testing.T) {
	c, daemon := newTestDaemon(t)
	daemon.push(protocol.Response{Type: protocol.RespFailure, Message: "no such task"})

	err := c.Kill([]int{9})
	var derr *DaemonError
	if !errors.As(err, &derr) {
		t.Fatalf("error = %v (%T), want DaemonError", err, err)
	}
	if derr.Message != "no such task" {
		t.Fatalf("message = %q, want daemon text", derr.Message)
	}
	if got, want := derr.Error(), "daemon: no such task"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestMismatchedResponseKind(t *testing.T) {
	c, daemon := newTestDaemon(t)
	daemon.push(protocol.Response{Type: protocol.RespSuccess})

	_, err := c.Status()
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v (%T), want ProtocolError", err, err)
	}
	if perr.Want != protocol.RespStatus || perr.Got != protocol.RespSuccess {
		t.Fatalf("ProtocolError = %+v", perr)
	}
}

func TestLogReturnsOutput(t *testing.T) {
	c, daemon := newTestDaemon(t)
	daemon.push(protocol.Response{Type: protocol.RespLog, TaskID: 3, Output: "line one\nline two\n"})

	output, err := c.Log(3)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if output != "line one\nline two\n" {
		t.Fatalf("output = %q", output)
	}

	reqs := daemon.requests()
	if len(reqs) != 1 || reqs[0].Type != protocol.ReqLog || reqs[0].TaskID != 3 {
		t.Fatalf("requests = %+v, want log request for task 3", reqs)
	}
}

func TestEditRequestReturnsTask(t *testing.T) {
	c, daemon := newTestDaemon(t)
	daemon.push(protocol.Response{
		Type: protocol.RespEdit,
		Task: &protocol.EditableTask{ID: 4, Command: "make all", Path: "/src"},
	})

	task, err := c.EditRequest(4)
	if err != nil {
		t.Fatalf("EditRequest: %v", err)
	}
	if task.ID != 4 || task.Command != "make all" {
		t.Fatalf("task = %+v", task)
	}
}

func TestEditResponseWithoutTaskIsProtocolError(t *testing.T) {
	c, daemon := newTestDaemon(t)
	daemon.push(protocol.Response{Type: protocol.RespEdit})

	_, err := c.EditRequest(4)
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v (%T), want ProtocolError", err, err)
	}
}

func TestRequestFieldEncoding(t *testing.T) {
	c, daemon := newTestDaemon(t)

	if err := c.Clean("build", true); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if err := c.Parallel("build", 4); err != nil {
		t.Fatalf("Parallel: %v", err)
	}
	if err := c.Switch(2, 5); err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if err := c.Add(AddOptions{Command: "echo hi", Path: "/tmp", Group: "default"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	reqs := daemon.requests()
	if len(reqs) != 4 {
		t.Fatalf("got %d requests, want 4: %+v", len(reqs), reqs)
	}

	clean := reqs[0]
	if clean.Type != protocol.ReqClean || clean.Group != "build" || !clean.SuccessfulOnly {
		t.Errorf("clean request = %+v", clean)
	}
	parallel := reqs[1]
	if parallel.Type != protocol.ReqParallel || parallel.Group != "build" || parallel.Parallel != 4 {
		t.Errorf("parallel request = %+v", parallel)
	}
	sw := reqs[2]
	if sw.Type != protocol.ReqSwitch || len(sw.TaskIDs) != 2 || sw.TaskIDs[0] != 2 || sw.TaskIDs[1] != 5 {
		t.Errorf("switch request = %+v", sw)
	}
	add := reqs[3]
	if add.Type != protocol.ReqAdd || add.Command != "echo hi" || add.Group != "default" {
		t.Errorf("add request = %+v", add)
	}
}

func TestSerialCallsReuseConnection(t *testing.T) {
	c, daemon := newTestDaemon(t)

	for i := 0; i < 3; i++ {
		if err := c.Stash([]int{i}); err != nil {
			t.Fatalf("Stash %d: %v", i, err)
		}
	}
	if got := len(daemon.requests()); got != 3 {
		t.Fatalf("daemon saw %d requests, want 3", got)
	}
}

func TestDialFailsWithoutDaemon(t *testing.T) {
	_, err := Dial(filepath.Join(t.TempDir(), "missing.sock"))
	if err == nil {
		t.Fatal("Dial succeeded against a missing socket")
	}
}
