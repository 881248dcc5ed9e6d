package api

import (
	"github.com/niteowll/SnoozeTabs/pkg/snoozelib"
)

// Startup resolves every record scheduled for "next open" to the current
// instant and arms the wake timer. Run it once, after the manager is
// loaded and before the server starts accepting requests, so the resolved
// records are picked up by the same reconcile that aligns the bookmark
// mirror.
func (a *Api) Startup() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := snoozelib.Millis(a.now())

	resolved := make(snoozelib.RecordsMap)
	for key, rec := range a.manager.GetAll() {
		if rec.WakeTime != snoozelib.NextOpen {
			continue
		}
		rec.WakeTime = now
		resolved[key] = rec
	}
	if len(resolved) > 0 {
		if err := a.manager.Save(resolved); err != nil {
			return err
		}
		a.log.Printf("startup: resolved %d next-open record(s)", len(resolved))
	}
	a.rec.Reconcile()
	return nil
}
