package nativehost

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/niteowll/SnoozeTabs/common"
)

// Client defines the daemon client methods used by the native host. It
// decouples the host from the concrete snoozecli.Client so tests can mock
// the daemon.
type Client interface {
	Schedule(params *common.SnoozeParams) error
	Confirm(params *common.SnoozeParams) (*common.ConfirmResponse, error)
	Cancel(params *common.SnoozeParams) error
	Update(old, updated *common.SnoozeParams) (*common.ConfirmResponse, error)
	SetConfirm(dontShow bool) error
	List() (*common.ListResponse, error)
	Close() error
}

// Host is the native messaging host that bridges the extension to the
// daemon.
type Host struct {
	client  Client
	version string
	stdin   io.Reader
	stdout  io.Writer
}

// NewHost creates a native messaging host over os.Stdin and os.Stdout.
func NewHost(client Client, version string) *Host {
	return &Host{
		client:  client,
		version: version,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
	}
}

// Run is the host main loop: read a request from stdin, dispatch it to the
// daemon, write the response to stdout. Returns when the browser closes
// stdin or an unrecoverable transport error occurs.
func (h *Host) Run() error {
	for {
		err := h.processOneMessage()
		if err == io.EOF {
			return nil // browser closed the connection
		}
		if err != nil {
			return err
		}
	}
}

func (h *Host) processOneMessage() error {
	data, err := ReadMessage(h.stdin)
	if err != nil {
		return err
	}

	req, err := ParseRequest(data)
	if err != nil {
		// ID 0 since we could not parse one out of the request
		resp := MakeErrorResponse(0, fmt.Errorf("invalid request: %w", err))
		return WriteMessage(h.stdout, resp)
	}

	resp := h.handleRequest(req)
	return WriteMessage(h.stdout, resp)
}

func (h *Host) handleRequest(req *Request) []byte {
	var result any
	var err error

	switch req.Method {
	case "version":
		result = map[string]string{"version": h.version}

	case "schedule":
		var params common.SnoozeParams
		if err = json.Unmarshal(req.Message, &params); err != nil {
			return MakeErrorResponse(req.ID, fmt.Errorf("invalid schedule params: %w", err))
		}
		if params.Url == "" {
			return MakeErrorResponse(req.ID, errors.New("url is required"))
		}
		err = h.client.Schedule(&params)
		if err == nil {
			result = map[string]bool{"success": true}
		}

	case "confirm":
		var params common.SnoozeParams
		if err = json.Unmarshal(req.Message, &params); err != nil {
			return MakeErrorResponse(req.ID, fmt.Errorf("invalid confirm params: %w", err))
		}
		if params.Url == "" {
			return MakeErrorResponse(req.ID, errors.New("url is required"))
		}
		result, err = h.client.Confirm(&params)

	case "cancel":
		var params common.SnoozeParams
		if err = json.Unmarshal(req.Message, &params); err != nil {
			return MakeErrorResponse(req.ID, fmt.Errorf("invalid cancel params: %w", err))
		}
		err = h.client.Cancel(&params)
		if err == nil {
			result = map[string]bool{"success": true}
		}

	case "update":
		var params common.UpdateParams
		if err = json.Unmarshal(req.Message, &params); err != nil {
			return MakeErrorResponse(req.ID, fmt.Errorf("invalid update params: %w", err))
		}
		result, err = h.client.Update(&params.Old, &params.Updated)

	case "setconfirm":
		var params common.SetConfirmParams
		if err = json.Unmarshal(req.Message, &params); err != nil {
			return MakeErrorResponse(req.ID, fmt.Errorf("invalid setconfirm params: %w", err))
		}
		err = h.client.SetConfirm(params.DontShow)
		if err == nil {
			result = map[string]bool{"success": true}
		}

	case "list":
		result, err = h.client.List()

	default:
		return MakeErrorResponse(req.ID, fmt.Errorf("unknown method: %s", req.Method))
	}

	if err != nil {
		return MakeErrorResponse(req.ID, err)
	}
	return MakeSuccessResponse(req.ID, result)
}
