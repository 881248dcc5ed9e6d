package snoozecli

import (
	"encoding/json"

	"github.com/niteowll/SnoozeTabs/common"
)

// Handler processes pushed daemon updates. Implementations receive raw
// JSON messages and are responsible for unmarshaling them.
type Handler interface {
	Handle(json.RawMessage) error
}

// NewWakeHandler creates a handler for wake updates. The action parameter
// filters updates to those matching the given wake action; pass an empty
// string to receive all actions.
func NewWakeHandler(action common.WakeAction, callback func(*common.WakeUpdate) error) *WakeHandler {
	return &WakeHandler{
		Action:   action,
		Callback: callback,
	}
}

// WakeHandler filters wake updates by action and invokes a callback for
// each match.
type WakeHandler struct {
	Action   common.WakeAction
	Callback func(*common.WakeUpdate) error
}

func (h *WakeHandler) Handle(m json.RawMessage) error {
	var v common.WakeUpdate
	err := json.Unmarshal(m, &v)
	if err != nil {
		return err
	}
	if h.Action != "" && v.Action != h.Action {
		return nil
	}
	return h.Callback(&v)
}
