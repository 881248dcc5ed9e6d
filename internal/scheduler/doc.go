// Package scheduler keeps the single OS-level wake timer consistent with
// the persisted snooze record set.
//
// The Reconciler re-derives the timer after every store mutation: it reads
// all records, drops the next-open sentinel, and arms exactly one named
// timer at the earliest concrete wake time, clamped to a minimum lead time
// so the timer cannot fire before the triggering mutation has committed.
// Many pending records share that one timer; rescheduling always replaces
// it, never adjusts it incrementally.
//
// The TimerService abstraction exposes named one-shot timers cancellable
// by identity. WallTimer is the wall-clock implementation with a 60-second
// max-sleep-cap to ride out NTP steps, DST transitions, and system sleep.
package scheduler
