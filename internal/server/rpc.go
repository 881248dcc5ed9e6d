package server

import (
	"context"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"

	"github.com/niteowll/SnoozeTabs/common"
)

// JSON-RPC error codes for snooze operations.
const (
	codeInvalidParams = jrpc2.Code(-32602)
	codeStoreFailure  = jrpc2.Code(-32001)
)

// Ops is the operation surface the RPC bridge dispatches into. It is
// implemented by the api layer; keeping it as an interface here avoids an
// import cycle between server and api.
type Ops interface {
	Schedule(ctx context.Context, p *common.SnoozeParams) error
	Confirm(ctx context.Context, p *common.SnoozeParams) (*common.ConfirmResponse, error)
	Cancel(ctx context.Context, p *common.SnoozeParams) error
	Update(ctx context.Context, p *common.UpdateParams) (*common.ConfirmResponse, error)
	SetConfirm(ctx context.Context, p *common.SetConfirmParams) error
	List(ctx context.Context) (*common.ListResponse, error)
	Click(ctx context.Context, p *common.SnoozeParams) error
	PanelOpened(ctx context.Context) error
	NotificationClicked(ctx context.Context, id string) error
}

// RPCConfig holds configuration for the JSON-RPC endpoint.
type RPCConfig struct {
	Secret  string // Auth token (required -- empty means RPC disabled)
	Version string // Daemon version
}

// RPCServer exposes the snooze ops as JSON-RPC 2.0 methods, over both an
// HTTP bridge and per-connection WebSocket sessions. WebSocket sessions
// also register as the browser host transport, so the daemon can call back
// into the connected extension.
type RPCServer struct {
	bridge  jhttp.Bridge
	secret  string
	version string
	ops     Ops
	methods handler.Map

	// session lifecycle hooks; wired to the browser.Remote registry.
	onConnect    func(*jrpc2.Server)
	onDisconnect func(*jrpc2.Server)
}

// VersionResult is the response for system.getVersion.
type VersionResult struct {
	Version string `json:"version"`
}

// EmptyResult is a placeholder for methods that return no data.
type EmptyResult struct{}

// NotificationClickedParams carries the correlation id of a clicked
// notification back to the daemon.
type NotificationClickedParams struct {
	Id string `json:"id"`
}

// NewRPCServer creates an RPCServer dispatching into ops. The connect and
// disconnect hooks observe WebSocket session lifecycles; either may be nil.
func NewRPCServer(cfg *RPCConfig, ops Ops, onConnect, onDisconnect func(*jrpc2.Server)) *RPCServer {
	rs := &RPCServer{
		secret:       cfg.Secret,
		version:      cfg.Version,
		ops:          ops,
		onConnect:    onConnect,
		onDisconnect: onDisconnect,
	}

	rs.methods = handler.Map{
		"system.getVersion":          handler.New(rs.systemGetVersion),
		"snooze.schedule":            handler.New(rs.snoozeSchedule),
		"snooze.confirm":             handler.New(rs.snoozeConfirm),
		"snooze.cancel":              handler.New(rs.snoozeCancel),
		"snooze.update":              handler.New(rs.snoozeUpdate),
		"snooze.setConfirm":          handler.New(rs.snoozeSetConfirm),
		"snooze.list":                handler.New(rs.snoozeList),
		"snooze.click":               handler.New(rs.snoozeClick),
		"snooze.panelOpened":         handler.New(rs.snoozePanelOpened),
		"snooze.notificationClicked": handler.New(rs.snoozeNotificationClicked),
	}

	rs.bridge = jhttp.NewBridge(rs.methods, nil)
	return rs
}

func (rs *RPCServer) systemGetVersion(_ context.Context) (*VersionResult, error) {
	return &VersionResult{Version: rs.version}, nil
}

func (rs *RPCServer) snoozeSchedule(ctx context.Context, p *common.SnoozeParams) (*EmptyResult, error) {
	if p.Url == "" {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "missing required param: url"}
	}
	if err := rs.ops.Schedule(ctx, p); err != nil {
		return nil, &jrpc2.Error{Code: codeStoreFailure, Message: err.Error()}
	}
	return &EmptyResult{}, nil
}

func (rs *RPCServer) snoozeConfirm(ctx context.Context, p *common.SnoozeParams) (*common.ConfirmResponse, error) {
	if p.Url == "" {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "missing required param: url"}
	}
	res, err := rs.ops.Confirm(ctx, p)
	if err != nil {
		return nil, &jrpc2.Error{Code: codeStoreFailure, Message: err.Error()}
	}
	return res, nil
}

func (rs *RPCServer) snoozeCancel(ctx context.Context, p *common.SnoozeParams) (*EmptyResult, error) {
	if err := rs.ops.Cancel(ctx, p); err != nil {
		return nil, &jrpc2.Error{Code: codeStoreFailure, Message: err.Error()}
	}
	return &EmptyResult{}, nil
}

func (rs *RPCServer) snoozeUpdate(ctx context.Context, p *common.UpdateParams) (*common.ConfirmResponse, error) {
	res, err := rs.ops.Update(ctx, p)
	if err != nil {
		return nil, &jrpc2.Error{Code: codeStoreFailure, Message: err.Error()}
	}
	return res, nil
}

func (rs *RPCServer) snoozeSetConfirm(ctx context.Context, p *common.SetConfirmParams) (*EmptyResult, error) {
	if err := rs.ops.SetConfirm(ctx, p); err != nil {
		return nil, &jrpc2.Error{Code: codeStoreFailure, Message: err.Error()}
	}
	return &EmptyResult{}, nil
}

func (rs *RPCServer) snoozeList(ctx context.Context) (*common.ListResponse, error) {
	res, err := rs.ops.List(ctx)
	if err != nil {
		return nil, &jrpc2.Error{Code: codeStoreFailure, Message: err.Error()}
	}
	return res, nil
}

func (rs *RPCServer) snoozeClick(ctx context.Context, p *common.SnoozeParams) (*EmptyResult, error) {
	_ = rs.ops.Click(ctx, p)
	return &EmptyResult{}, nil
}

func (rs *RPCServer) snoozePanelOpened(ctx context.Context) (*EmptyResult, error) {
	_ = rs.ops.PanelOpened(ctx)
	return &EmptyResult{}, nil
}

func (rs *RPCServer) snoozeNotificationClicked(ctx context.Context, p *NotificationClickedParams) (*EmptyResult, error) {
	if err := rs.ops.NotificationClicked(ctx, p.Id); err != nil {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: err.Error()}
	}
	return &EmptyResult{}, nil
}

// Close shuts down the HTTP bridge.
func (rs *RPCServer) Close() error {
	return rs.bridge.Close()
}
