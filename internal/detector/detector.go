package detector

// Detector is a strategy that determines whether the managed process is
// running. The probe must be non-mutating: it never signals the target and
// a dead PID is a normal outcome, not an error.
type Detector interface {
	// Alive returns true if the process is detected as running.
	Alive() (bool, error)
	// Describe returns a human-readable description of the detection method.
	Describe() string
}
