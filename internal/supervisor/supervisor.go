package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/loykin/uniproc/internal/config"
	"github.com/loykin/uniproc/internal/detector"
	"github.com/loykin/uniproc/internal/history"
	"github.com/loykin/uniproc/internal/record"
)

// Supervisor owns the lifecycle of one managed process: a persisted
// identity record, a liveness probe, and spawn/terminate against the OS
// process table. Each operation runs to completion in a single invocation;
// there is no resident monitoring loop.
type Supervisor struct {
	cfg    config.Config
	logger *slog.Logger
	sink   history.Sink
}

func New(cfg config.Config, logger *slog.Logger) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Supervisor{cfg: cfg, logger: logger}
}

// SetHistorySink attaches an optional audit sink for lifecycle events.
// Sink errors are logged and never fail an operation.
func (s *Supervisor) SetHistorySink(sink history.Sink) { s.sink = sink }

// Start spawns the managed program as a detached background process unless
// a live instance is already tracked. The identity record is written only
// after the spawn is confirmed; a spawn failure never leaves a bogus
// record behind. Returns the new PID.
func (s *Supervisor) Start() (int, error) {
	// Embedders can construct a Supervisor without going through
	// config.Validate; an empty command must fail here, not spawn a shell
	// that exits immediately.
	if strings.TrimSpace(s.cfg.Command) == "" {
		return 0, errors.New("no command configured")
	}
	lock, err := record.Lock(s.cfg.PIDFile)
	if err != nil {
		return 0, err
	}
	defer lock.Unlock()
	return s.startLocked()
}

func (s *Supervisor) startLocked() (int, error) {
	rec, err := record.Read(s.cfg.PIDFile)
	switch {
	case err == nil:
		alive, perr := (detector.PIDDetector{PID: rec.PID, StartUnix: rec.StartUnix}).Alive()
		if perr != nil {
			return 0, perr
		}
		if alive {
			return 0, &AlreadyRunningError{PID: rec.PID}
		}
		s.logger.Debug("stale pid file found, will overwrite", "pid", rec.PID)
	case os.IsNotExist(err):
		// fresh start
	case errors.Is(err, record.ErrCorrupt):
		s.logger.Warn("corrupt pid file found, will overwrite", "path", s.cfg.PIDFile)
	default:
		return 0, err
	}

	cmd := buildCommand(s.cfg.Command)
	if s.cfg.WorkDir != "" {
		cmd.Dir = s.cfg.WorkDir
	}
	if len(s.cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), s.cfg.Env...)
	}
	cmd.SysProcAttr = detachAttrs()

	// The sink must be a real file descriptor: the child inherits it and
	// keeps writing after this invocation exits.
	out, err := s.cfg.Log.Open()
	if err != nil {
		return 0, err
	}
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Start(); err != nil {
		_ = out.Close()
		return 0, &SpawnError{Err: err}
	}
	pid := cmd.Process.Pid
	startUnix := detector.ProcStartUnix(pid)
	// The child holds its own copy of the descriptor.
	_ = out.Close()
	_ = cmd.Process.Release()

	if err := record.Write(s.cfg.PIDFile, record.Record{PID: pid, StartUnix: startUnix}); err != nil {
		return 0, err
	}
	s.logger.Info("started", "pid", pid, "command", s.cfg.Command)
	s.emit(history.ActionStart, pid, startUnix)
	return pid, nil
}

// Stop terminates the tracked process. The termination signal is sent once
// and the identity record is removed without waiting for the process to
// exit; a target that ignores the signal keeps running untracked. A stale
// or corrupt record is cleaned up and reported as ErrNotRunning. Returns
// the PID that was signaled.
func (s *Supervisor) Stop() (int, error) {
	lock, err := record.Lock(s.cfg.PIDFile)
	if err != nil {
		return 0, err
	}
	defer lock.Unlock()
	return s.stopLocked()
}

func (s *Supervisor) stopLocked() (int, error) {
	rec, err := record.Read(s.cfg.PIDFile)
	switch {
	case os.IsNotExist(err):
		return 0, ErrNotRunning
	case errors.Is(err, record.ErrCorrupt):
		s.logger.Warn("removing corrupt pid file", "path", s.cfg.PIDFile)
		if rerr := record.Remove(s.cfg.PIDFile); rerr != nil {
			return 0, rerr
		}
		s.emit(history.ActionStaleCleanup, 0, 0)
		return 0, ErrNotRunning
	case err != nil:
		return 0, err
	}

	alive, err := (detector.PIDDetector{PID: rec.PID, StartUnix: rec.StartUnix}).Alive()
	if err != nil {
		return 0, err
	}
	if !alive {
		s.logger.Info("removing stale pid file", "pid", rec.PID)
		if err := record.Remove(s.cfg.PIDFile); err != nil {
			return 0, err
		}
		s.emit(history.ActionStaleCleanup, rec.PID, rec.StartUnix)
		return 0, ErrNotRunning
	}

	// Best-effort termination; failures are not detectable here and the
	// record is removed regardless.
	terminate(rec.PID)
	if err := record.Remove(s.cfg.PIDFile); err != nil {
		return 0, err
	}
	s.logger.Info("stopped", "pid", rec.PID)
	s.emit(history.ActionStop, rec.PID, rec.StartUnix)
	return rec.PID, nil
}

// Status reports the observed state without side effects. A stale record is
// reported, not removed; running Stop or Start self-heals it.
func (s *Supervisor) Status() (Status, error) {
	rec, err := record.Read(s.cfg.PIDFile)
	switch {
	case os.IsNotExist(err):
		return Status{State: StateStopped}, nil
	case errors.Is(err, record.ErrCorrupt):
		return Status{State: StateStale}, nil
	case err != nil:
		return Status{}, err
	}

	alive, err := (detector.PIDDetector{PID: rec.PID, StartUnix: rec.StartUnix}).Alive()
	if err != nil {
		return Status{}, err
	}
	if alive {
		return Status{State: StateRunning, PID: rec.PID}, nil
	}
	return Status{State: StateStale, PID: rec.PID}, nil
}

// Restart stops the tracked process if any, waits the grace interval so the
// OS can release ports and file handles, then starts a fresh instance. The
// result is Start's result; Stop's outcome is not surfaced.
func (s *Supervisor) Restart() (int, error) {
	s.logger.Info("restarting", "command", s.cfg.Command)
	if pid, err := s.Stop(); err != nil {
		s.logger.Debug("nothing to stop before restart", "reason", err)
	} else {
		s.logger.Debug("stopped previous instance", "pid", pid)
	}
	time.Sleep(s.cfg.Grace)
	return s.Start()
}

func (s *Supervisor) emit(action history.Action, pid int, startUnix int64) {
	if s.sink == nil {
		return
	}
	e := history.Event{
		Action:     action,
		OccurredAt: time.Now().UTC(),
		PID:        pid,
		StartUnix:  startUnix,
		Command:    s.cfg.Command,
	}
	if err := s.sink.Send(context.Background(), e); err != nil {
		s.logger.Warn("history sink send failed", "action", string(action), "error", err)
	}
}
