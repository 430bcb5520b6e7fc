package factory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/loykin/uniproc/internal/history"
)

func TestNewSinkFromDSN_SQLite(t *testing.T) {
	sink, err := NewSinkFromDSN("sqlite://:memory:")
	if err != nil {
		t.Fatalf("sqlite DSN: %v", err)
	}
	defer func() { _ = sink.Close() }()

	e := history.Event{
		Action:     history.ActionStart,
		OccurredAt: time.Now().UTC(),
		PID:        1,
		Command:    "sleep 1",
	}
	if err := sink.Send(context.Background(), e); err != nil {
		t.Fatalf("Send: %v", err)
	}
}

func TestNewSinkFromDSN_PlainPathIsSQLite(t *testing.T) {
	sink, err := NewSinkFromDSN(t.TempDir() + "/audit.db")
	if err != nil {
		t.Fatalf("plain path DSN: %v", err)
	}
	defer func() { _ = sink.Close() }()
}

func TestNewSinkFromDSN_Empty(t *testing.T) {
	if _, err := NewSinkFromDSN("   "); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}

func TestNewSinkFromDSN_Unsupported(t *testing.T) {
	_, err := NewSinkFromDSN("redis://localhost:6379")
	if err == nil || !strings.Contains(err.Error(), "unsupported DSN") {
		t.Fatalf("expected unsupported DSN error, got %v", err)
	}
}
