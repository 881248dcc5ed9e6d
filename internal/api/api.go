// Package api implements the snooze operations behind the message router:
// scheduling, confirming, canceling and updating records, the wake handler
// that materializes due tabs, and the startup pass that resolves next-open
// records.
package api

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/niteowll/SnoozeTabs/common"
	"github.com/niteowll/SnoozeTabs/internal/bookmarks"
	"github.com/niteowll/SnoozeTabs/internal/browser"
	"github.com/niteowll/SnoozeTabs/internal/scheduler"
	"github.com/niteowll/SnoozeTabs/internal/server"
	"github.com/niteowll/SnoozeTabs/pkg/snoozelib"
)

// DefaultTabUrl is opened when confirming a snooze would otherwise leave
// the browser with no tabs.
const DefaultTabUrl = "about:home"

// closeDelay is how long a confirmed tab stays open after persisting, so
// the inline confirmation bar can finish its transition.
const closeDelay = 500 * time.Millisecond

// Api wires the alarm store, the browser host, the bookmark mirror and the
// reconciler behind the op dispatch surface.
type Api struct {
	log     *log.Logger
	manager *snoozelib.Manager
	host    browser.Host
	mirror  *bookmarks.Mirror
	timers  scheduler.TimerService
	rec     *scheduler.Reconciler
	pool    *server.Pool

	// mu serializes mutating ops so update's cancel+confirm pair cannot
	// interleave with another mutation.
	mu sync.Mutex
	// wakeMu keeps wake batches from overlapping if the timer refires
	// before a batch finishes removing its records.
	wakeMu sync.Mutex

	now        func() time.Time
	closeAfter time.Duration

	clicks  atomic.Int64
	panels  atomic.Int64
	snoozes atomic.Int64
}

// NewApi creates the op surface. If timers is nil a wall-clock timer
// service is used; tests pass a fake.
func NewApi(l *log.Logger, m *snoozelib.Manager, host browser.Host, mirror *bookmarks.Mirror, timers scheduler.TimerService) *Api {
	a := &Api{
		log:        l,
		manager:    m,
		host:       host,
		mirror:     mirror,
		now:        time.Now,
		closeAfter: closeDelay,
	}
	if timers == nil {
		timers = scheduler.NewWallTimer(func(string) {
			a.HandleWake(context.Background())
		})
	}
	a.timers = timers
	a.rec = scheduler.New(l, m, timers, a.syncBookmarks)
	return a
}

// Reconciler exposes the reconciler, e.g. for the startup pass in tests.
func (a *Api) Reconciler() *scheduler.Reconciler {
	return a.rec
}

// syncBookmarks refreshes the mirror from the given record set. Mirror
// failures are diagnostics only; they never fail the triggering op.
func (a *Api) syncBookmarks(records snoozelib.RecordsMap) {
	if a.mirror == nil {
		return
	}
	if err := a.mirror.Sync(context.Background(), records); err != nil {
		a.log.Println("bookmark sync failed:", err.Error())
	}
}

// RegisterHandlers attaches the socket op handlers and adopts the server's
// wake subscriber pool.
func (a *Api) RegisterHandlers(serv *server.Server) {
	a.pool = serv.Pool()

	serv.RegisterHandler(common.OP_SCHEDULE, a.scheduleHandler)
	serv.RegisterHandler(common.OP_CONFIRM, a.confirmHandler)
	serv.RegisterHandler(common.OP_CANCEL, a.cancelHandler)
	serv.RegisterHandler(common.OP_UPDATE, a.updateHandler)
	serv.RegisterHandler(common.OP_SETCONFIRM, a.setConfirmHandler)
	serv.RegisterHandler(common.OP_CLICK, a.clickHandler)
	serv.RegisterHandler(common.OP_PANEL_OPENED, a.panelOpenedHandler)
	serv.RegisterHandler(common.OP_LIST, a.listHandler)
	serv.RegisterHandler(common.OP_WATCH, a.watchHandler)
	serv.RegisterHandler(common.OP_WAKE, a.wakeHandler)
}

// Close flushes and closes the alarm store.
func (a *Api) Close() error {
	a.timers.ClearAll()
	return a.manager.Close()
}

func (a *Api) scheduleHandler(_ *server.SyncConn, _ *server.Pool, body json.RawMessage) (common.OpType, any, error) {
	var p common.SnoozeParams
	if err := json.Unmarshal(body, &p); err != nil {
		return common.OP_SCHEDULE, nil, err
	}
	if err := a.Schedule(context.Background(), &p); err != nil {
		return common.OP_SCHEDULE, nil, err
	}
	return common.OP_SCHEDULE, nil, nil
}

func (a *Api) confirmHandler(_ *server.SyncConn, _ *server.Pool, body json.RawMessage) (common.OpType, any, error) {
	var p common.SnoozeParams
	if err := json.Unmarshal(body, &p); err != nil {
		return common.OP_CONFIRM, nil, err
	}
	res, err := a.Confirm(context.Background(), &p)
	if err != nil {
		return common.OP_CONFIRM, nil, err
	}
	return common.OP_CONFIRM, res, nil
}

func (a *Api) cancelHandler(_ *server.SyncConn, _ *server.Pool, body json.RawMessage) (common.OpType, any, error) {
	var p common.SnoozeParams
	if err := json.Unmarshal(body, &p); err != nil {
		return common.OP_CANCEL, nil, err
	}
	if err := a.Cancel(context.Background(), &p); err != nil {
		return common.OP_CANCEL, nil, err
	}
	return common.OP_CANCEL, nil, nil
}

func (a *Api) updateHandler(_ *server.SyncConn, _ *server.Pool, body json.RawMessage) (common.OpType, any, error) {
	var p common.UpdateParams
	if err := json.Unmarshal(body, &p); err != nil {
		return common.OP_UPDATE, nil, err
	}
	res, err := a.Update(context.Background(), &p)
	if err != nil {
		return common.OP_UPDATE, nil, err
	}
	return common.OP_UPDATE, res, nil
}

func (a *Api) setConfirmHandler(_ *server.SyncConn, _ *server.Pool, body json.RawMessage) (common.OpType, any, error) {
	var p common.SetConfirmParams
	if err := json.Unmarshal(body, &p); err != nil {
		return common.OP_SETCONFIRM, nil, err
	}
	if err := a.SetConfirm(context.Background(), &p); err != nil {
		return common.OP_SETCONFIRM, nil, err
	}
	return common.OP_SETCONFIRM, nil, nil
}

func (a *Api) clickHandler(_ *server.SyncConn, _ *server.Pool, body json.RawMessage) (common.OpType, any, error) {
	var p common.SnoozeParams
	_ = json.Unmarshal(body, &p)
	_ = a.Click(context.Background(), &p)
	return common.OP_CLICK, nil, nil
}

func (a *Api) panelOpenedHandler(_ *server.SyncConn, _ *server.Pool, _ json.RawMessage) (common.OpType, any, error) {
	_ = a.PanelOpened(context.Background())
	return common.OP_PANEL_OPENED, nil, nil
}

func (a *Api) listHandler(_ *server.SyncConn, _ *server.Pool, _ json.RawMessage) (common.OpType, any, error) {
	res, err := a.List(context.Background())
	if err != nil {
		return common.OP_LIST, nil, err
	}
	return common.OP_LIST, res, nil
}

func (a *Api) watchHandler(sconn *server.SyncConn, pool *server.Pool, _ json.RawMessage) (common.OpType, any, error) {
	pool.Subscribe(sconn)
	return common.OP_WATCH, nil, nil
}

// wakeHandler runs a wake batch on demand, as if the timer had fired.
func (a *Api) wakeHandler(_ *server.SyncConn, _ *server.Pool, _ json.RawMessage) (common.OpType, any, error) {
	a.HandleWake(context.Background())
	return common.OP_WAKE, nil, nil
}
