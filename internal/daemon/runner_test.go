package daemon

import (
	"context"
	"errors"
	"testing"
	"time"
)

func startAndWaitRunning(t *testing.T, r *Runner, ctx context.Context) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- r.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for !r.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("runner never reported running")
		}
		time.Sleep(time.Millisecond)
	}
	return done
}

// TestStartBlocksUntilCanceled verifies the default start path parks on
// the context.
func TestStartBlocksUntilCanceled(t *testing.T) {
	r := New(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := startAndWaitRunning(t, r, ctx)

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Start = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
	if r.IsRunning() {
		t.Error("still reported running after Start returned")
	}
}

// TestStartFuncReceivesCancelableContext verifies Shutdown reaches a
// blocked StartFunc through its context.
func TestStartFuncReceivesCancelableContext(t *testing.T) {
	started := make(chan struct{})
	r := New(nil, &Dependencies{
		StartFunc: func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return nil
		},
	})
	done := startAndWaitRunning(t, r, context.Background())

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("StartFunc never ran")
	}
	if err := r.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("StartFunc did not observe the cancel")
	}
}

// TestDoubleStart verifies the second Start is rejected while the first
// still runs.
func TestDoubleStart(t *testing.T) {
	r := New(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := startAndWaitRunning(t, r, ctx)

	if err := r.Start(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second Start = %v, want ErrAlreadyRunning", err)
	}
	cancel()
	<-done
}

// TestShutdownNotRunning verifies shutting down a stopped runner fails
// cleanly.
func TestShutdownNotRunning(t *testing.T) {
	r := New(nil, nil)
	if err := r.Shutdown(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("Shutdown = %v, want ErrNotRunning", err)
	}
}

// TestShutdownRunsCleanup verifies ShutdownFunc executes and its error
// surfaces.
func TestShutdownRunsCleanup(t *testing.T) {
	cleanupErr := errors.New("flush failed")
	cleaned := false
	r := New(nil, &Dependencies{
		ShutdownFunc: func() error {
			cleaned = true
			return cleanupErr
		},
	})
	done := startAndWaitRunning(t, r, context.Background())

	if err := r.Shutdown(); !errors.Is(err, cleanupErr) {
		t.Fatalf("Shutdown = %v, want %v", err, cleanupErr)
	}
	if !cleaned {
		t.Error("ShutdownFunc never ran")
	}
	<-done
}

// TestShutdownTimeout verifies a hung cleanup is abandoned after the
// configured timeout.
func TestShutdownTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	r := New(&Config{ShutdownTimeout: 20 * time.Millisecond}, &Dependencies{
		ShutdownFunc: func() error {
			<-release
			return nil
		},
	})
	done := startAndWaitRunning(t, r, context.Background())

	if err := r.Shutdown(); !errors.Is(err, ErrShutdownTimeout) {
		t.Fatalf("Shutdown = %v, want ErrShutdownTimeout", err)
	}
	<-done
}

// TestRestartAfterStop verifies the runner is reusable once Start
// returns.
func TestRestartAfterStop(t *testing.T) {
	r := New(nil, nil)

	for i := 0; i < 2; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		done := startAndWaitRunning(t, r, ctx)
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("round %d: Start did not return", i)
		}
	}
}
