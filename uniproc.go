package uniproc

import (
	"log/slog"

	cfg "github.com/loykin/uniproc/internal/config"
	"github.com/loykin/uniproc/internal/history"
	"github.com/loykin/uniproc/internal/history/factory"
	"github.com/loykin/uniproc/internal/supervisor"
)

// Re-export core types for external consumers.
// These are aliases so conversions are zero-cost.

type Config = cfg.Config

type HistoryConfig = cfg.HistoryConfig

type Status = supervisor.Status

type State = supervisor.State

const (
	StateRunning = supervisor.StateRunning
	StateStopped = supervisor.StateStopped
	StateStale   = supervisor.StateStale
)

var ErrNotRunning = supervisor.ErrNotRunning

type AlreadyRunningError = supervisor.AlreadyRunningError

type SpawnError = supervisor.SpawnError

type HistorySink = history.Sink

// Supervisor is a thin facade over internal/supervisor.Supervisor.
// It provides a stable public API for embedding.

type Supervisor struct{ inner *supervisor.Supervisor }

// New builds a supervisor for one managed program. A nil logger falls back
// to slog.Default.
func New(c Config, logger *slog.Logger) *Supervisor {
	return &Supervisor{inner: supervisor.New(c, logger)}
}

// DefaultConfig returns the built-in defaults; Command must still be set.
func DefaultConfig() Config { return cfg.Default() }

// LoadConfig parses a TOML config file.
func LoadConfig(path string) (Config, error) { return cfg.Load(path) }

// NewHistorySink creates a lifecycle audit sink from a DSN
// (sqlite, postgres or clickhouse).
func NewHistorySink(dsn string) (HistorySink, error) { return factory.NewSinkFromDSN(dsn) }

func (s *Supervisor) SetHistorySink(sink HistorySink) { s.inner.SetHistorySink(sink) }
func (s *Supervisor) Start() (int, error)             { return s.inner.Start() }
func (s *Supervisor) Stop() (int, error)              { return s.inner.Stop() }
func (s *Supervisor) Restart() (int, error)           { return s.inner.Restart() }
func (s *Supervisor) Status() (Status, error)         { return s.inner.Status() }
