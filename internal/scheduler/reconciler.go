package scheduler

import (
	"log"
	"time"

	"github.com/niteowll/SnoozeTabs/pkg/snoozelib"
)

// WakeTimerName is the fixed identifier of the single wake timer.
const WakeTimerName = "snooze-wake-alarm"

// MinLeadTime is the shortest interval the wake timer may be armed for.
// Clamping to it keeps the timer from firing before the mutation that
// triggered rescheduling has committed.
const MinLeadTime = 5 * time.Second

// Store is the record set the Reconciler derives its timer from.
type Store interface {
	GetAll() snoozelib.RecordsMap
}

// Reconciler owns the invariant that the armed wake timer equals the
// minimum pending concrete wake time (clamped), or is absent when no
// concrete record is pending.
type Reconciler struct {
	log    *log.Logger
	store  Store
	timers TimerService
	onSync func(snoozelib.RecordsMap)
	now    func() time.Time
}

// New creates a Reconciler over the given store and timer service. onSync
// is invoked with the current record set on every pass so derived state
// (the bookmark mirror) stays in step; it may be nil.
func New(l *log.Logger, store Store, timers TimerService, onSync func(snoozelib.RecordsMap)) *Reconciler {
	return &Reconciler{
		log:    l,
		store:  store,
		timers: timers,
		onSync: onSync,
		now:    time.Now,
	}
}

// Reconcile recomputes the wake timer from the current record set. It is
// idempotent: the end state depends only on the records, not on how many
// times or in what order it has been called before.
func (r *Reconciler) Reconcile() {
	r.timers.Clear(WakeTimerName)

	records := r.store.GetAll()
	if r.onSync != nil {
		r.onSync(records)
	}

	next := int64(0)
	found := false
	for _, rec := range records {
		if !rec.Concrete() {
			continue
		}
		if !found || rec.WakeTime < next {
			next = rec.WakeTime
			found = true
		}
	}
	if !found {
		// Terminal idle state; nothing to wake until the next mutation.
		return
	}

	at := snoozelib.FromMillis(next)
	if soon := r.now().Add(MinLeadTime); at.Before(soon) {
		at = soon
	}
	r.log.Printf("armed wake timer for %s", at.Format(time.RFC3339))
	r.timers.Arm(WakeTimerName, at)
}
