package api

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/niteowll/SnoozeTabs/common"
	"github.com/niteowll/SnoozeTabs/internal/browser"
	"github.com/niteowll/SnoozeTabs/pkg/snoozelib"
)

// Schedule either commits the record immediately (dont-show set, or no
// originating tab to ask in) or asks the extension to render the inline
// confirmation bar in the originating tab. If the injection fails for any
// reason, e.g. a restricted page, it falls back to an immediate confirm.
func (a *Api) Schedule(ctx context.Context, p *common.SnoozeParams) error {
	if a.manager.DontShow() || p.TabId == 0 {
		_, err := a.Confirm(ctx, p)
		return err
	}
	if err := a.host.Inject(ctx, p.TabId, browser.ConfirmBarScript); err != nil {
		a.log.Println("schedule inject rejected:", err.Error())
		_, cerr := a.Confirm(ctx, p)
		return cerr
	}
	return nil
}

// Confirm persists the record and closes the originating tab shortly
// after, opening a default tab first if that close would leave the browser
// empty.
func (a *Api) Confirm(ctx context.Context, p *common.SnoozeParams) (*common.ConfirmResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.confirm(ctx, p)
}

// confirm is Confirm without the mutation lock, for composition by Update.
func (a *Api) confirm(ctx context.Context, p *common.SnoozeParams) (*common.ConfirmResponse, error) {
	a.snoozes.Add(1)
	tabId := p.TabId
	rec := p.Record()

	if tabId != 0 {
		if count, err := a.host.Count(ctx); err == nil && count <= 1 {
			if _, err := a.host.Open(ctx, DefaultTabUrl, 0, true); err != nil {
				a.log.Println("default tab open rejected:", err.Error())
			}
		}
	}

	if err := a.manager.Save(snoozelib.RecordsMap{rec.Key: rec}); err != nil {
		return nil, fmt.Errorf("confirm: %w", err)
	}

	if tabId != 0 {
		// Let the confirmation bar finish its transition first. The tab
		// may be gone by then; that is not a failure.
		time.AfterFunc(a.closeAfter, func() {
			if err := a.host.Close(context.Background(), tabId); err != nil {
				a.log.Println("deferred tab close rejected:", err.Error())
			}
		})
	}

	a.rec.Reconcile()
	return &common.ConfirmResponse{Key: rec.Key}, nil
}

// Cancel removes the record matching the payload's derived key.
func (a *Api) Cancel(ctx context.Context, p *common.SnoozeParams) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancel(ctx, p)
}

func (a *Api) cancel(_ context.Context, p *common.SnoozeParams) error {
	key := p.Record().Key
	if err := a.manager.Remove(key); err != nil {
		return fmt.Errorf("cancel: %w", err)
	}
	a.rec.Reconcile()
	return nil
}

// Update atomically replaces one record with another: the cancel of the
// old record and the confirm of the new one happen under a single mutation
// lock, so no other mutation can observe neither or both present.
func (a *Api) Update(ctx context.Context, p *common.UpdateParams) (*common.ConfirmResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.cancel(ctx, &p.Old); err != nil {
		return nil, err
	}
	return a.confirm(ctx, &p.Updated)
}

// SetConfirm persists the dont-show preference. No rescheduling needed.
func (a *Api) SetConfirm(_ context.Context, p *common.SetConfirmParams) error {
	return a.manager.SetDontShow(p.DontShow)
}

// List returns the pending records, earliest wake time first.
func (a *Api) List(_ context.Context) (*common.ListResponse, error) {
	records := a.manager.GetAll()
	items := make([]*snoozelib.SnoozeRecord, 0, len(records))
	for _, r := range records {
		items = append(items, r)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].WakeTime < items[j].WakeTime
	})
	return &common.ListResponse{
		Items:    items,
		DontShow: a.manager.DontShow(),
	}, nil
}

// Click counts a woken-tab notification interaction.
func (a *Api) Click(_ context.Context, _ *common.SnoozeParams) error {
	a.clicks.Add(1)
	return nil
}

// PanelOpened counts a management panel open.
func (a *Api) PanelOpened(_ context.Context) error {
	a.panels.Add(1)
	return nil
}

// NotificationClicked routes a notification click back to the woken tab by
// focusing its window and activating it. The id is the "windowId:tabId"
// correlation the wake handler created the notification with.
func (a *Api) NotificationClicked(ctx context.Context, id string) error {
	winPart, tabPart, ok := strings.Cut(id, ":")
	if !ok {
		return fmt.Errorf("malformed notification id: %q", id)
	}
	windowId, err := strconv.ParseInt(winPart, 10, 64)
	if err != nil {
		return fmt.Errorf("malformed notification id: %q", id)
	}
	tabId, err := strconv.ParseInt(tabPart, 10, 64)
	if err != nil {
		return fmt.Errorf("malformed notification id: %q", id)
	}
	if err := a.host.Focus(ctx, windowId); err != nil {
		a.log.Println("window focus rejected:", err.Error())
	}
	return a.host.Activate(ctx, tabId)
}
