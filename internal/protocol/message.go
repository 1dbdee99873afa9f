package protocol

// RequestType discriminates request envelopes on the wire.
type RequestType string

const (
	ReqStatus      RequestType = "status"
	ReqKill        RequestType = "kill"
	ReqPause       RequestType = "pause"
	ReqStart       RequestType = "start"
	ReqRestart     RequestType = "restart"
	ReqClean       RequestType = "clean"
	ReqAdd         RequestType = "add"
	ReqRemove      RequestType = "remove"
	ReqLog         RequestType = "log"
	ReqEditRequest RequestType = "edit_request"
	ReqEditSubmit  RequestType = "edit_submit"
	ReqEditRestore RequestType = "edit_restore"
	ReqStash       RequestType = "stash"
	ReqEnqueue     RequestType = "enqueue"
	ReqSwitch      RequestType = "switch"
	ReqParallel    RequestType = "parallel"
)

// Request is the single JSON envelope for all daemon requests. Only the
// fields relevant to the Type are set; everything else stays omitted.
//
// Pause and Start address either explicit task ids or a whole group,
// never both. Switch carries exactly two ids in TaskIDs.
type Request struct {
	Type RequestType `json:"type"`

	TaskIDs []int  `json:"task_ids,omitempty"`
	TaskID  int    `json:"task_id,omitempty"`
	Group   string `json:"group,omitempty"`

	// Add / Restart payload.
	Command  string            `json:"command,omitempty"`
	Path     string            `json:"path,omitempty"`
	Envs     map[string]string `json:"envs,omitempty"`
	Priority int               `json:"priority,omitempty"`
	Label    string            `json:"label,omitempty"`

	// Clean options.
	SuccessfulOnly bool `json:"successful_only,omitempty"`

	// Parallel limit.
	Parallel int `json:"parallel,omitempty"`

	// Edit submission.
	Task *EditableTask `json:"task,omitempty"`
}

// ResponseType discriminates response envelopes on the wire.
type ResponseType string

const (
	RespStatus  ResponseType = "status"
	RespSuccess ResponseType = "success"
	RespFailure ResponseType = "failure"
	RespLog     ResponseType = "log"
	RespEdit    ResponseType = "edit"
)

// Response is the single JSON envelope for all daemon responses. Exactly one
// response follows every request.
type Response struct {
	Type ResponseType `json:"type"`

	// Status payload.
	Status *State `json:"status,omitempty"`

	// Failure or success detail, human readable.
	Message string `json:"message,omitempty"`

	// Log payload.
	TaskID int    `json:"task_id,omitempty"`
	Output string `json:"output,omitempty"`

	// Editable-task payload.
	Task *EditableTask `json:"task,omitempty"`
}
