package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uniproc.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
command = "python app.py"
workdir = "/srv/app"
env = ["PORT=8000", "MODE=prod"]
pidfile = "/var/run/app.pid"
grace = "3s"

[log]
path = "/var/log/app.log"

[supervisor_log]
path = "/var/log/uniproc.log"
max_size_mb = 20
max_backups = 5
max_age_days = 14
compress = true

[history]
dsn = "sqlite:///var/lib/uniproc/history.db"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Command != "python app.py" {
		t.Fatalf("command: %q", cfg.Command)
	}
	if cfg.WorkDir != "/srv/app" {
		t.Fatalf("workdir: %q", cfg.WorkDir)
	}
	if len(cfg.Env) != 2 || cfg.Env[0] != "PORT=8000" {
		t.Fatalf("env: %v", cfg.Env)
	}
	if cfg.PIDFile != "/var/run/app.pid" {
		t.Fatalf("pidfile: %q", cfg.PIDFile)
	}
	if cfg.Grace != 3*time.Second {
		t.Fatalf("grace: %s", cfg.Grace)
	}
	if cfg.Log.Path != "/var/log/app.log" {
		t.Fatalf("log: %+v", cfg.Log)
	}
	if cfg.SupervisorLog.Path != "/var/log/uniproc.log" || cfg.SupervisorLog.MaxSizeMB != 20 || !cfg.SupervisorLog.Compress {
		t.Fatalf("supervisor log: %+v", cfg.SupervisorLog)
	}
	if cfg.History.DSN != "sqlite:///var/lib/uniproc/history.db" {
		t.Fatalf("history dsn: %q", cfg.History.DSN)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `command = "sleep 5"`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PIDFile != DefaultPIDFile {
		t.Fatalf("pidfile default not applied: %q", cfg.PIDFile)
	}
	if cfg.Grace != DefaultGrace {
		t.Fatalf("grace default not applied: %s", cfg.Grace)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing command", func(c *Config) { c.Command = " " }, true},
		{"missing pidfile", func(c *Config) { c.PIDFile = "" }, true},
		{"negative grace", func(c *Config) { c.Grace = -time.Second }, true},
		{"malformed env", func(c *Config) { c.Env = []string{"NOEQUALS"} }, true},
		{"zero grace ok", func(c *Config) { c.Grace = 0 }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Command = "sleep 5"
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
