//go:build !windows

package supervisor

import (
	"os/exec"
	"syscall"
)

// detachAttrs returns process attributes that start the child in a new
// session, detached from the controlling terminal, so it survives the
// supervisor invocation's exit.
func detachAttrs() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}

// terminate sends SIGTERM, preferring the process group so shell-wrapped
// commands take their children down with them. Delivery is best-effort.
func terminate(pid int) {
	if err := syscall.Kill(-pid, syscall.SIGTERM); err != nil {
		_ = syscall.Kill(pid, syscall.SIGTERM)
	}
}

// getShellCommand returns a shell command for Unix systems
func getShellCommand(script string) *exec.Cmd {
	// #nosec G204
	return exec.Command("/bin/sh", "-c", script)
}
