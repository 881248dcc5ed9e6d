package api

import (
	"context"
	"fmt"
	"sync"

	"github.com/niteowll/SnoozeTabs/common"
	"github.com/niteowll/SnoozeTabs/internal/browser"
	"github.com/niteowll/SnoozeTabs/internal/server"
	"github.com/niteowll/SnoozeTabs/pkg/snoozelib"
)

// HandleWake materializes every due record as a reopened tab plus a
// notification, removes the due keys in one batch, and re-arms the timer
// for the next-earliest remaining record.
//
// Records are processed in parallel with per-record failure isolation: one
// tab that cannot be opened never blocks its siblings or the batch
// removal. Batches themselves are serialized, so a timer that fires again
// before rescheduling completes cannot reopen the same record twice.
func (a *Api) HandleWake(ctx context.Context) {
	a.wakeMu.Lock()
	defer a.wakeMu.Unlock()

	now := a.now()
	a.log.Printf("woke at %d", snoozelib.Millis(now))

	items := a.manager.GetAll()
	due := make(snoozelib.RecordsMap)
	for key, rec := range items {
		if rec.Due(now) {
			due[key] = rec
		}
	}
	a.log.Printf("tabs due to wake: %d", len(due))
	if len(due) == 0 {
		a.rec.Reconcile()
		return
	}

	windowIds := make(map[int64]bool)
	if wins, err := a.host.List(ctx); err != nil {
		a.log.Println("window query rejected:", err.Error())
	} else {
		for _, id := range wins {
			windowIds[id] = true
		}
	}

	var wg sync.WaitGroup
	wg.Add(len(due))
	for key, rec := range due {
		rec := rec
		snoozelib.SafeGo(a.log, &wg, "wake "+key, func() {
			a.wakeOne(ctx, rec, windowIds)
		})
	}
	wg.Wait()

	keys := make([]string, 0, len(due))
	for key := range due {
		keys = append(keys, key)
	}
	if err := a.manager.Remove(keys...); err != nil {
		a.log.Println("due record removal failed:", err.Error())
	}
	a.rec.Reconcile()
}

// wakeOne reopens a single record. The record's window is reused if it
// still exists; otherwise the host picks one.
func (a *Api) wakeOne(ctx context.Context, rec *snoozelib.SnoozeRecord, windowIds map[int64]bool) {
	windowId := int64(0)
	if windowIds[rec.WindowId] {
		windowId = rec.WindowId
	}
	tabId, err := a.host.Open(ctx, rec.Url, windowId, false)
	if err != nil {
		a.log.Printf("failed to reopen %s: %s", rec.Url, err.Error())
		return
	}
	// Cosmetic only; a restricted page rejecting the script is fine.
	if err := a.host.Inject(ctx, tabId, browser.FaviconFlashScript); err != nil {
		a.log.Println("favicon flash rejected:", err.Error())
	}
	noteId := fmt.Sprintf("%d:%d", rec.WindowId, tabId)
	if err := a.host.Create(ctx, noteId, rec.Title, rec.Url); err != nil {
		a.log.Println("notification rejected:", err.Error())
	}
	a.broadcast(&common.WakeUpdate{
		Action:   common.WakeTabOpened,
		Key:      rec.Key,
		Url:      rec.Url,
		Title:    rec.Title,
		WindowId: rec.WindowId,
		TabId:    tabId,
	})
}

// broadcast pushes a wake update to subscribed socket clients.
func (a *Api) broadcast(u *common.WakeUpdate) {
	if a.pool == nil {
		return
	}
	a.pool.Broadcast(server.MakeResult(common.OP_WATCH, u))
}
