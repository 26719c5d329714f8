//go:build !windows

package supervise

import (
	"os/exec"
	"syscall"
)

// configureSysProc places the child in its own process group so that
// signals reach the whole command tree, pipelines included.
func configureSysProc(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// signalGroup signals the child's process group: SIGTERM on the polite
// pass, SIGKILL on the hard pass.
func signalGroup(cmd *exec.Cmd, hard bool) error {
	if cmd.Process == nil {
		return nil
	}
	sig := syscall.SIGTERM
	if hard {
		sig = syscall.SIGKILL
	}
	return syscall.Kill(-cmd.Process.Pid, sig)
}
