package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	root := buildRoot()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// GlobalFlags holds persistent flags shared by all subcommands. Flags
// override values loaded from the config file. GraceSet records whether
// --grace was passed at all, so an explicit --grace=0s still overrides a
// config-file value.
type GlobalFlags struct {
	ConfigPath string
	Command    string
	WorkDir    string
	PIDFile    string
	LogPath    string
	Grace      time.Duration
	GraceSet   bool
	HistoryDSN string
	Debug      bool
}

func buildRoot() *cobra.Command {
	flags := &GlobalFlags{}
	c := command{flags: flags}

	root := &cobra.Command{
		Use:   "uniproc",
		Short: "Single-instance supervisor for one long-running application",
		Long: `Uniproc starts one managed application as a detached background process,
tracks its pid in a pid file, and controls it with start, stop, restart
and status.

Examples:
  uniproc start --cmd="python app.py" --pidfile=/var/run/app.pid
  uniproc status --pidfile=/var/run/app.pid
  uniproc restart --config=/etc/uniproc.toml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			flags.GraceSet = cmd.Flags().Changed("grace")
		},
		// A bare invocation is an operator mistake; show usage and exit
		// non-zero like an unknown subcommand does.
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errReported
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.ConfigPath, "config", "", "path to TOML config file (optional)")
	pf.StringVar(&flags.Command, "cmd", "", "command to run (overrides config)")
	pf.StringVar(&flags.WorkDir, "workdir", "", "working directory for the managed process")
	pf.StringVar(&flags.PIDFile, "pidfile", "", "path of the pid file")
	pf.StringVar(&flags.LogPath, "log", "", "file receiving the managed process output")
	pf.DurationVar(&flags.Grace, "grace", 0, "pause between stop and start during restart")
	pf.StringVar(&flags.HistoryDSN, "history-dsn", "", "lifecycle audit sink DSN (sqlite/postgres/clickhouse)")
	pf.BoolVar(&flags.Debug, "debug", false, "enable debug logging")

	root.AddCommand(
		createStartCommand(c),
		createStopCommand(c),
		createRestartCommand(c),
		createStatusCommand(c),
	)
	return root
}

func createStartCommand(c command) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the managed application if not already running",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Start()
		},
	}
}

func createStopCommand(c command) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Terminate the managed application if running",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Stop()
		},
	}
}

func createRestartCommand(c command) *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Stop the managed application, then start it again",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Restart()
		},
	}
}

func createStatusCommand(c command) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the managed application is running",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Status()
		},
	}
}
