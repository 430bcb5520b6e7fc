//go:build !windows

package uniproc

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedLifecycle(t *testing.T) {
	c := DefaultConfig()
	c.Command = "sleep 5"
	c.PIDFile = filepath.Join(t.TempDir(), "app.pid")
	c.Grace = 50 * time.Millisecond

	sup := New(c, nil)

	st, err := sup.Status()
	if err != nil || st.State != StateStopped {
		t.Fatalf("initial status: %+v, %v", st, err)
	}

	pid, err := sup.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	var are *AlreadyRunningError
	if _, err := sup.Start(); !errors.As(err, &are) {
		t.Fatalf("expected AlreadyRunningError, got %v", err)
	}

	if stopped, err := sup.Stop(); err != nil || stopped != pid {
		t.Fatalf("Stop: %d, %v", stopped, err)
	}
	if _, err := sup.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
}

func TestNewHistorySink(t *testing.T) {
	sink, err := NewHistorySink("sqlite://:memory:")
	if err != nil {
		t.Fatalf("NewHistorySink: %v", err)
	}
	_ = sink.Close()
}
