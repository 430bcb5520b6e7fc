package logger

import (
	"log/slog"
	"os"
	"path/filepath"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Default rotation constants for the supervisor's own log file
// (lumberjack semantics).
const (
	DefaultMaxSizeMB  = 10 // MB
	DefaultMaxBackups = 3  // number of backup files
	DefaultMaxAgeDays = 7  // days
)

// SinkConfig names the file receiving the managed application's combined
// stdout and stderr. The file is opened with append semantics and the
// descriptor is handed to the child directly, so output keeps flowing after
// the supervisor invocation exits. Rotation of this file is out of scope.
type SinkConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// Open returns the file the managed process writes to. When no path is
// configured the output is discarded.
func (c SinkConfig) Open() (*os.File, error) {
	if c.Path == "" {
		return os.OpenFile(os.DevNull, os.O_RDWR, 0)
	}
	if dir := filepath.Dir(c.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, err
		}
	}
	// #nosec G304 -- path is operator-configured
	return os.OpenFile(c.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
}

// Config describes the supervisor's own structured log. With no path the
// log goes to stderr with colored levels; with a path it goes to a rotating
// file, which caps growth across many short invocations.
type Config struct {
	Path       string `json:"path" mapstructure:"path"`
	MaxSizeMB  int    `json:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `json:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `json:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool   `json:"compress" mapstructure:"compress"`
}

// New builds the supervisor's slog logger. It never writes to stdout, so it
// cannot interleave with the status lines the CLI prints there.
func New(debug bool, cfg Config) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Path != "" {
		w := &lj.Logger{
			Filename:   cfg.Path,
			MaxSize:    valOr(cfg.MaxSizeMB, DefaultMaxSizeMB),
			MaxBackups: valOr(cfg.MaxBackups, DefaultMaxBackups),
			MaxAge:     valOr(cfg.MaxAgeDays, DefaultMaxAgeDays),
			Compress:   cfg.Compress,
		}
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(NewColorTextHandler(os.Stderr, opts, false))
}

func valOr(v int, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
