package clickhouse

import (
	"testing"
)

func TestClickHouseSink_UnreachableHost(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping connection test in short mode")
	}
	// No ClickHouse listens here; New must fail at ping rather than return a
	// half-connected sink.
	if _, err := New("127.0.0.1:1", "lifecycle_history"); err == nil {
		t.Fatal("expected connection error for unreachable host")
	}
}
