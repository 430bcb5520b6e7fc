package detector

import "fmt"

// PIDDetector probes a process by PID. When StartUnix is set it additionally
// verifies the live process's start time, so a recycled PID belonging to an
// unrelated process reads as not-alive.
type PIDDetector struct {
	PID       int
	StartUnix int64
}

func (d PIDDetector) Alive() (bool, error) {
	if !pidAlive(d.PID) {
		return false, nil
	}
	if d.StartUnix > 0 {
		if cur := ProcStartUnix(d.PID); cur > 0 && cur != d.StartUnix {
			return false, nil // PID reused; not our process
		}
	}
	return true, nil
}

func (d PIDDetector) Describe() string { return fmt.Sprintf("pid:%d", d.PID) }
