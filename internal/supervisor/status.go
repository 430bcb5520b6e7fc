package supervisor

// State is the observed lifecycle state of the managed process.
type State string

const (
	// StateRunning: the identity record names a live process.
	StateRunning State = "running"
	// StateStopped: no identity record exists.
	StateStopped State = "stopped"
	// StateStale: an identity record exists but its process is gone (or the
	// record is unreadable). Status reports this without cleaning up; Stop
	// performs the cleanup.
	StateStale State = "stale"
)

// Status is the result of a Status probe. PID is set for StateRunning and,
// when the record was readable, for StateStale.
type Status struct {
	State State `json:"state"`
	PID   int   `json:"pid,omitempty"`
}
