package server

import (
	"encoding/json"

	"github.com/niteowll/SnoozeTabs/common"
)

// HandlerFunc is the signature for socket op handlers. It receives the
// synchronized connection, the subscriber pool, and the raw JSON payload,
// and returns the response op tag, the response payload, and any error.
type HandlerFunc func(
	conn *SyncConn,
	pool *Pool,
	body json.RawMessage,
) (
	common.OpType,
	any,
	error,
)
