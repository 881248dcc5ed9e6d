package snoozecli

import (
	"encoding/json"

	"github.com/niteowll/SnoozeTabs/common"
)

type Request struct {
	Op      common.OpType `json:"op"`
	Message any           `json:"message,omitempty"`
}

type Response struct {
	Ok     bool    `json:"ok"`
	Error  string  `json:"error,omitempty"`
	Update *Update `json:"update,omitempty"`
}

type Update struct {
	Type    common.OpType   `json:"type"`
	Message json.RawMessage `json:"message"`
}
