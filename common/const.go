package common

// OpType identifies a snooze operation requested by a UI client.
// The values match the op names the extension panels and context menu send.
type OpType string

const (
	OP_SCHEDULE     OpType = "schedule"
	OP_CONFIRM      OpType = "confirm"
	OP_CANCEL       OpType = "cancel"
	OP_UPDATE       OpType = "update"
	OP_SETCONFIRM   OpType = "setconfirm"
	OP_CLICK        OpType = "click"
	OP_PANEL_OPENED OpType = "panelOpened"
	OP_LIST         OpType = "list"
	OP_WATCH        OpType = "watch"
	OP_WAKE         OpType = "wake"
)

// WakeAction describes a push update sent to connected UI clients while
// due snoozed tabs are being materialized.
type WakeAction string

const (
	WakeTabOpened    WakeAction = "tab_opened"
	WakeNotification WakeAction = "notification"
)

// TCPHost is the loopback host used when the unix socket transport is
// unavailable.
const TCPHost = "127.0.0.1"

// MaxMessageSize caps a single framed payload. Matches the 1MB limit
// browsers impose on native messaging.
const MaxMessageSize = 1024 * 1024
