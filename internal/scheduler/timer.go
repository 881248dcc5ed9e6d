package scheduler

import (
	"sync"
	"time"
)

const maxSleepCap = 60 * time.Second

// TimerService provides named one-shot timers. Arming a name that is
// already armed fully replaces the earlier timer, so there is never more
// than one outstanding timer per name.
type TimerService interface {
	// Arm schedules the named timer to fire at the given instant,
	// replacing any prior timer with the same name.
	Arm(name string, at time.Time)

	// Clear cancels the named timer. Clearing an absent name is a no-op.
	Clear(name string)

	// ClearAll cancels every outstanding timer.
	ClearAll()
}

// WallTimer is the wall-clock TimerService. It sleeps in slices of at most
// 60 seconds and re-checks the target instant on each slice, so clock
// steps and system sleep delay a fire but never lose it. Fires are
// delivered at-least-once and possibly late, never early.
type WallTimer struct {
	onFire func(name string)
	mu     sync.Mutex
	timers map[string]*wallEntry
}

type wallEntry struct {
	at time.Time
	t  *time.Timer
}

// NewWallTimer creates a WallTimer delivering fires to onFire. The callback
// runs on the timer goroutine; it must arrange its own synchronization.
func NewWallTimer(onFire func(name string)) *WallTimer {
	return &WallTimer{
		onFire: onFire,
		timers: make(map[string]*wallEntry),
	}
}

func (w *WallTimer) Arm(name string, at time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if old, ok := w.timers[name]; ok {
		old.t.Stop()
	}
	e := &wallEntry{at: at}
	w.timers[name] = e
	w.schedule(name, e)
}

// schedule arms the next sleep slice for e. Callers must hold w.mu.
func (w *WallTimer) schedule(name string, e *wallEntry) {
	dur := time.Until(e.at)
	if dur > maxSleepCap {
		dur = maxSleepCap
	}
	if dur < 0 {
		dur = 0
	}
	e.t = time.AfterFunc(dur, func() {
		w.tick(name, e)
	})
}

func (w *WallTimer) tick(name string, e *wallEntry) {
	w.mu.Lock()
	if w.timers[name] != e {
		// Replaced or cleared while the slice was sleeping.
		w.mu.Unlock()
		return
	}
	if time.Now().Before(e.at) {
		w.schedule(name, e)
		w.mu.Unlock()
		return
	}
	delete(w.timers, name)
	w.mu.Unlock()
	w.onFire(name)
}

func (w *WallTimer) Clear(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if e, ok := w.timers[name]; ok {
		e.t.Stop()
		delete(w.timers, name)
	}
}

func (w *WallTimer) ClearAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for name, e := range w.timers {
		e.t.Stop()
		delete(w.timers, name)
	}
}

var _ TimerService = (*WallTimer)(nil)
