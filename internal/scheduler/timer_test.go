package scheduler

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestWallTimerFires(t *testing.T) {
	fired := make(chan string, 1)
	w := NewWallTimer(func(name string) {
		fired <- name
	})

	w.Arm("t", time.Now().Add(20*time.Millisecond))

	select {
	case name := <-fired:
		if name != "t" {
			t.Errorf("fired %q, want t", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestWallTimerPastInstantFiresImmediately(t *testing.T) {
	fired := make(chan string, 1)
	w := NewWallTimer(func(name string) { fired <- name })

	w.Arm("t", time.Now().Add(-time.Hour))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("overdue timer did not fire")
	}
}

func TestWallTimerClear(t *testing.T) {
	var fires atomic.Int32
	w := NewWallTimer(func(string) { fires.Add(1) })

	w.Arm("t", time.Now().Add(30*time.Millisecond))
	w.Clear("t")

	time.Sleep(100 * time.Millisecond)
	if n := fires.Load(); n != 0 {
		t.Errorf("cleared timer fired %d times", n)
	}
}

// TestWallTimerRearmReplaces verifies that arming an existing name drops
// the earlier schedule entirely: one name, one fire.
func TestWallTimerRearmReplaces(t *testing.T) {
	var fires atomic.Int32
	fired := make(chan struct{}, 2)
	w := NewWallTimer(func(string) {
		fires.Add(1)
		fired <- struct{}{}
	})

	w.Arm("t", time.Now().Add(20*time.Millisecond))
	w.Arm("t", time.Now().Add(60*time.Millisecond))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("replaced timer never fired")
	}
	time.Sleep(100 * time.Millisecond)
	if n := fires.Load(); n != 1 {
		t.Errorf("timer fired %d times, want 1", n)
	}
}

func TestWallTimerClearAll(t *testing.T) {
	var fires atomic.Int32
	w := NewWallTimer(func(string) { fires.Add(1) })

	w.Arm("a", time.Now().Add(30*time.Millisecond))
	w.Arm("b", time.Now().Add(30*time.Millisecond))
	w.ClearAll()

	time.Sleep(100 * time.Millisecond)
	if n := fires.Load(); n != 0 {
		t.Errorf("cleared timers fired %d times", n)
	}
}

func TestWallTimerIndependentNames(t *testing.T) {
	fired := make(chan string, 2)
	w := NewWallTimer(func(name string) { fired <- name })

	w.Arm("a", time.Now().Add(20*time.Millisecond))
	w.Arm("b", time.Now().Add(20*time.Millisecond))

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case name := <-fired:
			got[name] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d of 2 timers fired", i)
		}
	}
	if !got["a"] || !got["b"] {
		t.Errorf("fired set = %v", got)
	}
}
