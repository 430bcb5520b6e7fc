package main

import (
	"errors"
	"fmt"

	"github.com/loykin/uniproc/internal/config"
	"github.com/loykin/uniproc/internal/history/factory"
	"github.com/loykin/uniproc/internal/logger"
	"github.com/loykin/uniproc/internal/supervisor"
)

// errReported marks failures whose outcome line was already printed to
// stdout; main exits non-zero without printing again.
var errReported = errors.New("reported")

// command binds the subcommand handlers to the resolved flags.
type command struct {
	flags *GlobalFlags
}

// loadConfig merges the optional config file with flag overrides. The
// managed command itself is only required for operations that spawn.
func (c command) loadConfig(needCommand bool) (config.Config, error) {
	cfg := config.Default()
	if c.flags.ConfigPath != "" {
		loaded, err := config.Load(c.flags.ConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if c.flags.Command != "" {
		cfg.Command = c.flags.Command
	}
	if c.flags.WorkDir != "" {
		cfg.WorkDir = c.flags.WorkDir
	}
	if c.flags.PIDFile != "" {
		cfg.PIDFile = c.flags.PIDFile
	}
	if c.flags.LogPath != "" {
		cfg.Log.Path = c.flags.LogPath
	}
	if c.flags.GraceSet {
		cfg.Grace = c.flags.Grace
	}
	if c.flags.HistoryDSN != "" {
		cfg.History.DSN = c.flags.HistoryDSN
	}
	if needCommand {
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// supervisor builds a Supervisor and, when configured, attaches the history
// sink. The returned cleanup closes the sink.
func (c command) supervisor(needCommand bool) (*supervisor.Supervisor, func(), error) {
	cfg, err := c.loadConfig(needCommand)
	if err != nil {
		return nil, nil, err
	}
	lg := logger.New(c.flags.Debug, cfg.SupervisorLog)
	sup := supervisor.New(cfg, lg)
	cleanup := func() {}
	if cfg.History.DSN != "" {
		sink, err := factory.NewSinkFromDSN(cfg.History.DSN)
		if err != nil {
			lg.Warn("history sink unavailable", "dsn", cfg.History.DSN, "error", err)
		} else {
			sup.SetHistorySink(sink)
			cleanup = func() { _ = sink.Close() }
		}
	}
	return sup, cleanup, nil
}

func (c command) Start() error {
	sup, cleanup, err := c.supervisor(true)
	if err != nil {
		return err
	}
	defer cleanup()
	pid, err := sup.Start()
	if err != nil {
		return err
	}
	fmt.Printf("started (pid %d)\n", pid)
	return nil
}

func (c command) Stop() error {
	sup, cleanup, err := c.supervisor(false)
	if err != nil {
		return err
	}
	defer cleanup()
	pid, err := sup.Stop()
	if err != nil {
		return err
	}
	fmt.Printf("stopped (pid %d)\n", pid)
	return nil
}

func (c command) Restart() error {
	sup, cleanup, err := c.supervisor(true)
	if err != nil {
		return err
	}
	defer cleanup()
	pid, err := sup.Restart()
	if err != nil {
		return err
	}
	fmt.Printf("restarted (pid %d)\n", pid)
	return nil
}

func (c command) Status() error {
	sup, cleanup, err := c.supervisor(false)
	if err != nil {
		return err
	}
	defer cleanup()
	st, err := sup.Status()
	if err != nil {
		return err
	}
	switch st.State {
	case supervisor.StateRunning:
		fmt.Printf("running (pid %d)\n", st.PID)
		return nil
	case supervisor.StateStale:
		if st.PID > 0 {
			fmt.Printf("stale pid file (pid %d)\n", st.PID)
		} else {
			fmt.Println("stale pid file")
		}
		return errReported
	default:
		fmt.Println("not running")
		return errReported
	}
}
