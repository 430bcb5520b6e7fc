//go:build !windows

package record

import (
	"fmt"
	"os"
	"syscall"
	"time"
)

const (
	lockWait = 2 * time.Second
	lockPoll = 50 * time.Millisecond
)

// FileLock holds an exclusive advisory lock guarding the record's
// read-probe-write sequence against a concurrent supervisor invocation.
type FileLock struct {
	f *os.File
}

// Lock acquires an exclusive flock on a sibling "<path>.lock" file. It tries
// non-blocking first and then retries briefly, so a racing invocation fails
// fast instead of hanging.
func Lock(path string) (*FileLock, error) {
	lockPath := path + ".lock"
	// #nosec G304 -- path is operator-configured
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", lockPath, err)
	}
	deadline := time.Now().Add(lockWait)
	for {
		err = tryLock(f)
		if err == nil {
			return &FileLock{f: f}, nil
		}
		if time.Now().After(deadline) {
			_ = f.Close()
			return nil, fmt.Errorf("lock %s held by another invocation: %w", lockPath, err)
		}
		time.Sleep(lockPoll)
	}
}

func tryLock(f *os.File) error {
	return syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
}

// Unlock releases the lock. The lock file itself is left in place; holding
// the flock, not the file's existence, is what provides exclusion.
func (l *FileLock) Unlock() {
	if l == nil || l.f == nil {
		return
	}
	_ = syscall.Flock(int(l.f.Fd()), syscall.LOCK_UN)
	_ = l.f.Close()
	l.f = nil
}
