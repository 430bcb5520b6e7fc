package supervisor

import (
	"errors"
	"fmt"
)

// ErrNotRunning is returned by Stop when there is nothing to stop: no
// identity record exists, or the record turned out to be stale and was
// cleaned up.
var ErrNotRunning = errors.New("not running")

// AlreadyRunningError is returned by Start when a live instance is already
// tracked by the identity record.
type AlreadyRunningError struct {
	PID int
}

func (e *AlreadyRunningError) Error() string {
	return fmt.Sprintf("already running (pid %d)", e.PID)
}

// SpawnError wraps a failure to launch the managed program. The identity
// record is never written when spawning fails.
type SpawnError struct {
	Err error
}

func (e *SpawnError) Error() string { return "spawn failed: " + e.Err.Error() }

func (e *SpawnError) Unwrap() error { return e.Err }
