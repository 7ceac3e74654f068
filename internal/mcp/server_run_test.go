package mcp

import (
	"context"
	"testing"
	"time"
)

func TestRunServerModeShutsDownOnCancel(t *testing.T) {
	srv, cfg := testServer(t)
	cfg.Mode = "server"
	cfg.Port = 0 // ephemeral port

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	// Give the listener a moment to come up, then cancel.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down after context cancellation")
	}
}

func TestRunServerModeAlreadyCancelled(t *testing.T) {
	srv, cfg := testServer(t)
	cfg.Mode = "server"
	cfg.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not return for cancelled context")
	}
}
