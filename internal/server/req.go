package server

import (
	"encoding/json"

	"github.com/niteowll/SnoozeTabs/common"
)

// Request is one framed message from a UI client: an op name and its
// payload.
type Request struct {
	Op      common.OpType   `json:"op"`
	Message json.RawMessage `json:"message,omitempty"`
}

func ParseRequest(b []byte) (*Request, error) {
	var r Request
	return &r, json.Unmarshal(b, &r)
}
