package history

import (
	"context"
	"time"
)

// Action defines the kind of lifecycle transition.
type Action string

const (
	ActionStart        Action = "start"
	ActionStop         Action = "stop"
	ActionStaleCleanup Action = "stale-cleanup"
)

// Event is one lifecycle transition of the managed process, exported to an
// external audit store at operation time.
type Event struct {
	Action     Action    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
	PID        int       `json:"pid"`
	StartUnix  int64     `json:"start_unix"`
	Command    string    `json:"command"`
}

// Sink is a destination for lifecycle events. Sink failures never fail the
// operation that produced the event.
type Sink interface {
	Send(ctx context.Context, e Event) error
	Close() error
}
