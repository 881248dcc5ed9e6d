package api

import (
	"strings"
	"testing"
	"time"

	"github.com/niteowll/SnoozeTabs/internal/browser"
	"github.com/niteowll/SnoozeTabs/internal/scheduler"
	"github.com/niteowll/SnoozeTabs/pkg/logger"
	"github.com/niteowll/SnoozeTabs/pkg/snoozelib"
)

// TestStartupResolvesNextOpen verifies records waiting for the next start
// get a concrete wake time and the clamped timer makes them fire shortly
// after boot.
func TestStartupResolvesNextOpen(t *testing.T) {
	host := browser.NewFake(1)
	a, timers := newTestApi(t, host)

	pending := saveRecord(t, a, "https://next-open", snoozelib.NextOpen, 1)

	if err := a.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}

	rec := a.manager.Get(pending.Key)
	if rec == nil {
		t.Fatal("record vanished during startup")
	}
	if rec.WakeTime != snoozelib.Millis(testNow) {
		t.Errorf("wake time = %d, want resolved to %d", rec.WakeTime, snoozelib.Millis(testNow))
	}
	at, ok := timers.armed[scheduler.WakeTimerName]
	if !ok {
		t.Fatal("timer not armed for the resolved record")
	}
	if !at.Equal(testNow.Add(scheduler.MinLeadTime)) {
		t.Errorf("armed for %s, want the clamped %s", at, testNow.Add(scheduler.MinLeadTime))
	}
}

// TestStartupLeavesConcreteRecordsAlone verifies startup only touches the
// sentinel records.
func TestStartupLeavesConcreteRecordsAlone(t *testing.T) {
	host := browser.NewFake(1)
	a, timers := newTestApi(t, host)

	wake := futureMillis(2 * time.Hour)
	rec := saveRecord(t, a, "https://concrete", wake, 1)

	if err := a.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}

	if got := a.manager.Get(rec.Key).WakeTime; got != wake {
		t.Errorf("wake time = %d, want untouched %d", got, wake)
	}
	if at := timers.armed[scheduler.WakeTimerName]; !at.Equal(snoozelib.FromMillis(wake)) {
		t.Errorf("armed for %s, want %s", at, snoozelib.FromMillis(wake))
	}
}

// TestStartupLogLevelPrefix verifies the startup summary carries no level
// tag of its own. The daemon routes the stdlib logger through the Logger
// backend, which adds the level, so a literal tag would print twice.
func TestStartupLogLevelPrefix(t *testing.T) {
	a, _ := newTestApi(t, browser.NewFake(1))
	mock := logger.NewMockLogger()
	a.log = logger.ToStd(mock)

	saveRecord(t, a, "https://next-open", snoozelib.NextOpen, 1)
	if err := a.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}

	if len(mock.InfoCalls) == 0 {
		t.Fatal("startup logged nothing")
	}
	for _, line := range mock.InfoCalls {
		if strings.Contains(line, "[INFO]") {
			t.Errorf("log line carries its own level tag: %q", line)
		}
	}
}

// TestStartupEmptyStore verifies a fresh install starts idle.
func TestStartupEmptyStore(t *testing.T) {
	a, timers := newTestApi(t, browser.NewFake())

	if err := a.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	if len(timers.armed) != 0 {
		t.Errorf("armed = %v, want no timers", timers.armed)
	}
}
