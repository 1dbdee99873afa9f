package client

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/s22625/lazyq/internal/protocol"
)

const dialTimeout = 5 * time.Second

// DaemonError is an explicit failure response from the daemon to a request.
type DaemonError struct {
	Message string
}

func (e *DaemonError) Error() string {
	return fmt.Sprintf("daemon: %s", e.Message)
}

// ProtocolError means the daemon answered with a response kind that does not
// match the request just sent.
type ProtocolError struct {
	Want protocol.ResponseType
	Got  protocol.ResponseType
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("unexpected %q response from daemon (want %q)", e.Got, e.Want)
}

// Client talks to the queued daemon over a single persistent unix-socket
// connection. Calls are strictly serial: one request in flight at a time,
// each answered by exactly one response. Requests block until the daemon
// answers; no client-side timeout is applied to a round trip.
type Client struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
}

// Dial connects to the daemon socket. Only the dial itself is bounded by a
// timeout; established connections are untimed.
func Dial(socketPath string) (*Client, error) {
	conn, err := net.DialTimeout("unix", socketPath, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w", err)
	}
	return &Client{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
	}, nil
}

// Close closes the daemon connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) roundTrip(req protocol.Request, want protocol.ResponseType) (*protocol.Response, error) {
	if err := c.enc.Encode(req); err != nil {
		return nil, fmt.Errorf("failed to send %s request: %w", req.Type, err)
	}
	var resp protocol.Response
	if err := c.dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", req.Type, err)
	}
	if resp.Type == protocol.RespFailure {
		return nil, &DaemonError{Message: resp.Message}
	}
	if resp.Type != want {
		return nil, &ProtocolError{Want: want, Got: resp.Type}
	}
	return &resp, nil
}

func (c *Client) ack(req protocol.Request) error {
	_, err := c.roundTrip(req, protocol.RespSuccess)
	return err
}

// Status fetches the full daemon snapshot.
func (c *Client) Status() (*protocol.State, error) {
	resp, err := c.roundTrip(protocol.Request{Type: protocol.ReqStatus}, protocol.RespStatus)
	if err != nil {
		return nil, err
	}
	if resp.Status == nil {
		return nil, &ProtocolError{Want: protocol.RespStatus, Got: resp.Type}
	}
	return resp.Status, nil
}

// Kill terminates the given tasks.
func (c *Client) Kill(ids []int) error {
	return c.ack(protocol.Request{Type: protocol.ReqKill, TaskIDs: ids})
}

// PauseTasks pauses the given running tasks.
func (c *Client) PauseTasks(ids []int) error {
	return c.ack(protocol.Request{Type: protocol.ReqPause, TaskIDs: ids})
}

// PauseGroup pauses a whole group.
func (c *Client) PauseGroup(group string) error {
	return c.ack(protocol.Request{Type: protocol.ReqPause, Group: group})
}

// StartTasks resumes paused tasks, or force-starts queued and stashed ones.
func (c *Client) StartTasks(ids []int) error {
	return c.ack(protocol.Request{Type: protocol.ReqStart, TaskIDs: ids})
}

// StartGroup resumes a paused group.
func (c *Client) StartGroup(group string) error {
	return c.ack(protocol.Request{Type: protocol.ReqStart, Group: group})
}

// RestartOptions carries a copy of the task fields resubmitted as a brand-new
// queue entry. The original record is left untouched.
type RestartOptions struct {
	Command  string
	Path     string
	Envs     map[string]string
	Group    string
	Priority int
	Label    string
}

// Restart resubmits a task copy as a new queue entry.
func (c *Client) Restart(opts RestartOptions) error {
	return c.ack(protocol.Request{
		Type:     protocol.ReqRestart,
		Command:  opts.Command,
		Path:     opts.Path,
		Envs:     opts.Envs,
		Group:    opts.Group,
		Priority: opts.Priority,
		Label:    opts.Label,
	})
}

// Clean removes finished tasks. An empty group cleans every group;
// successfulOnly keeps failed tasks around.
func (c *Client) Clean(group string, successfulOnly bool) error {
	return c.ack(protocol.Request{
		Type:           protocol.ReqClean,
		Group:          group,
		SuccessfulOnly: successfulOnly,
	})
}

// AddOptions describes a new task to enqueue.
type AddOptions struct {
	Command string
	Path    string
	Envs    map[string]string
	Group   string
}

// Add enqueues a new task in the named group.
func (c *Client) Add(opts AddOptions) error {
	return c.ack(protocol.Request{
		Type:    protocol.ReqAdd,
		Command: opts.Command,
		Path:    opts.Path,
		Envs:    opts.Envs,
		Group:   opts.Group,
	})
}

// Remove deletes non-running tasks from the queue.
func (c *Client) Remove(ids []int) error {
	return c.ack(protocol.Request{Type: protocol.ReqRemove, TaskIDs: ids})
}

// Log fetches a task's accumulated output.
func (c *Client) Log(id int) (string, error) {
	resp, err := c.roundTrip(protocol.Request{Type: protocol.ReqLog, TaskID: id}, protocol.RespLog)
	if err != nil {
		return "", err
	}
	return resp.Output, nil
}

// EditRequest checks out a task for editing. The daemon locks the task until
// the edit is submitted or restored.
func (c *Client) EditRequest(id int) (*protocol.EditableTask, error) {
	resp, err := c.roundTrip(protocol.Request{Type: protocol.ReqEditRequest, TaskID: id}, protocol.RespEdit)
	if err != nil {
		return nil, err
	}
	if resp.Task == nil {
		return nil, &ProtocolError{Want: protocol.RespEdit, Got: resp.Type}
	}
	return resp.Task, nil
}

// EditSubmit sends back the edited task fields.
func (c *Client) EditSubmit(task *protocol.EditableTask) error {
	return c.ack(protocol.Request{Type: protocol.ReqEditSubmit, Task: task})
}

// EditRestore abandons an edit and unlocks the task unchanged.
func (c *Client) EditRestore(id int) error {
	return c.ack(protocol.Request{Type: protocol.ReqEditRestore, TaskID: id})
}

// Stash takes queued tasks out of the run rotation.
func (c *Client) Stash(ids []int) error {
	return c.ack(protocol.Request{Type: protocol.ReqStash, TaskIDs: ids})
}

// Enqueue puts stashed tasks back in the queue.
func (c *Client) Enqueue(ids []int) error {
	return c.ack(protocol.Request{Type: protocol.ReqEnqueue, TaskIDs: ids})
}

// Switch swaps the queue order of two not-yet-started tasks.
func (c *Client) Switch(a, b int) error {
	return c.ack(protocol.Request{Type: protocol.ReqSwitch, TaskIDs: []int{a, b}})
}

// Parallel sets a group's parallel-execution limit.
func (c *Client) Parallel(group string, limit int) error {
	return c.ack(protocol.Request{Type: protocol.ReqParallel, Group: group, Parallel: limit})
}
