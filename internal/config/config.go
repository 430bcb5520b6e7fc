package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/loykin/uniproc/internal/logger"
)

// DefaultGrace is the pause between Stop and Start during a restart. It
// gives the OS time to release ports and file handles before the respawn.
const DefaultGrace = 2 * time.Second

// DefaultPIDFile is used when neither config nor flags name a record path.
const DefaultPIDFile = "uniproc.pid"

// HistoryConfig selects the optional lifecycle audit sink.
type HistoryConfig struct {
	DSN string `toml:"dsn" mapstructure:"dsn"`
}

// Config describes the one managed program and every path the supervisor
// touches. All paths are injected here rather than hardcoded so tests can
// run against temporary directories.
type Config struct {
	Command       string            `toml:"command" mapstructure:"command"`
	WorkDir       string            `toml:"workdir" mapstructure:"workdir"`
	Env           []string          `toml:"env" mapstructure:"env"`
	PIDFile       string            `toml:"pidfile" mapstructure:"pidfile"`
	Grace         time.Duration     `toml:"grace" mapstructure:"grace"`
	Log           logger.SinkConfig `toml:"log" mapstructure:"log"`
	SupervisorLog logger.Config     `toml:"supervisor_log" mapstructure:"supervisor_log"`
	History       HistoryConfig     `toml:"history" mapstructure:"history"`
}

// Default returns a config with the supervisor's built-in defaults; the
// managed command must still be supplied.
func Default() Config {
	return Config{
		PIDFile: DefaultPIDFile,
		Grace:   DefaultGrace,
	}
}

// Load parses a TOML config file. Fields absent from the file keep their
// defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the fields an operation cannot proceed without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Command) == "" {
		return errors.New("command is required")
	}
	if strings.TrimSpace(c.PIDFile) == "" {
		return errors.New("pidfile is required")
	}
	if c.Grace < 0 {
		return fmt.Errorf("grace must not be negative: %s", c.Grace)
	}
	for i, kv := range c.Env {
		if !strings.Contains(kv, "=") {
			return fmt.Errorf("env[%d] %q is invalid, must be in KEY=VALUE format", i, kv)
		}
	}
	return nil
}
