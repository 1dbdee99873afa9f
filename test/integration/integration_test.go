package integration

import (
	"bytes"
	"encoding/json"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/s22625/lazyq/internal/protocol"
)

var lazyqBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "lazyq-integration-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	lazyqBinary = filepath.Join(tmpDir, "lazyq")
	cmd := exec.Command("go", "build", "-o", lazyqBinary, "../../cmd/lazyq")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("failed to build lazyq: " + err.Error() + "\n" + string(out))
	}

	os.Exit(m.Run())
}

// fakeDaemon serves the queued wire protocol on a unix socket, one
// connection at a time, answering from an in-memory snapshot and recording
// every request it sees.
type fakeDaemon struct {
	socket string

	mu    sync.Mutex
	state *protocol.State
	reqs  []protocol.Request
}

func startFakeDaemon(t *testing.T, state *protocol.State) *fakeDaemon {
	t.Helper()
	socket := filepath.Join(t.TempDir(), "queued.sock")
	ln, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	d := &fakeDaemon{socket: socket, state: state}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			d.serve(conn)
			conn.Close()
		}
	}()
	return d
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
		resp := protocol.Response{Type: protocol.RespSuccess}
		if req.Type == protocol.ReqStatus {
			resp = protocol.Response{Type: protocol.RespStatus, Status: d.state}
		}
		d.mu.Unlock()
		if err := enc.Encode(resp); err != nil {
			return
		}
	}
}

func (d *fakeDaemon) requests() []protocol.Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]protocol.Request(nil), d.reqs...)
}

func runLazyq(t *testing.T, socket string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command(lazyqBinary, append([]string{"--socket", socket}, args...)...)
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir(), "XDG_RUNTIME_DIR=")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func testSnapshot() *protocol.State {
	exitOK := 0
	return &protocol.State{
		Tasks: map[int]*protocol.Task{
			1: {ID: 1, Command: "echo hi", Group: "default", Status: protocol.StatusQueued},
			2: {ID: 2, Command: "make", Group: "build", Status: protocol.StatusDone,
				Result: protocol.ResultSuccess, ExitCode: &exitOK},
		},
		Groups: map[string]*protocol.Group{
			"default": {Status: protocol.GroupRunning, Parallel: 1},
			"build":   {Status: protocol.GroupPaused, Parallel: 2},
		},
	}
}

func TestStatusCommand(t *testing.T) {
	d := startFakeDaemon(t, testSnapshot())

	stdout, stderr, err := runLazyq(t, d.socket, "status")
	if err != nil {
		t.Fatalf("lazyq status: %v (stderr: %s)", err, stderr)
	}

	for _, want := range []string{"default", "build (paused)", "echo hi", "queued", "make", "success"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("status output missing %q:\n%s", want, stdout)
		}
	}

	// default group prints before the others
	if strings.Index(stdout, "default") > strings.Index(stdout, "build") {
		t.Errorf("default group not listed first:\n%s", stdout)
	}
}

func TestAddCommand(t *testing.T) {
	d := startFakeDaemon(t, testSnapshot())

	_, stderr, err := runLazyq(t, d.socket, "add", "-g", "build", "--", "sleep", "5")
	if err != nil {
		t.Fatalf("lazyq add: %v (stderr: %s)", err, stderr)
	}

	reqs := d.requests()
	if len(reqs) != 1 {
		t.Fatalf("daemon saw %d requests, want 1: %+v", len(reqs), reqs)
	}
	add := reqs[0]
	if add.Type != protocol.ReqAdd || add.Command != "sleep 5" || add.Group != "build" {
		t.Fatalf("add request = %+v", add)
	}
	if add.Path == "" {
		t.Fatal("add request has no working directory")
	}
}

func TestCleanCommand(t *testing.T) {
	d := startFakeDaemon(t, testSnapshot())

	_, stderr, err := runLazyq(t, d.socket, "clean", "-g", "build", "--successful-only")
	if err != nil {
		t.Fatalf("lazyq clean: %v (stderr: %s)", err, stderr)
	}

	reqs := d.requests()
	if len(reqs) != 1 {
		t.Fatalf("daemon saw %d requests, want 1: %+v", len(reqs), reqs)
	}
	clean := reqs[0]
	if clean.Type != protocol.ReqClean || clean.Group != "build" || !clean.SuccessfulOnly {
		t.Fatalf("clean request = %+v", clean)
	}
}

func TestDashboardRefusesPipedOutput(t *testing.T) {
	d := startFakeDaemon(t, testSnapshot())

	_, stderr, err := runLazyq(t, d.socket)
	if err == nil {
		t.Fatal("dashboard started without a terminal")
	}
	if !strings.Contains(stderr, "not a terminal") {
		t.Errorf("stderr = %q, want tty hint", stderr)
	}
}

func TestCommandsFailWithoutDaemon(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "missing.sock")
	_, stderr, err := runLazyq(t, socket, "status")
	if err == nil {
		t.Fatal("status succeeded against a missing daemon")
	}
	if !strings.Contains(stderr, "failed to connect") {
		t.Errorf("stderr = %q, want connect failure", stderr)
	}
}
