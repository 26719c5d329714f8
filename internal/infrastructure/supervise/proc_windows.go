//go:build windows

package supervise

import (
	"os/exec"
	"strconv"
)

func configureSysProc(cmd *exec.Cmd) {}

// signalGroup stops the child's process tree. Windows has no process
// groups to signal, so both passes go through taskkill /T; the hard pass
// adds /F and falls back to killing the direct child when taskkill is
// unavailable.
func signalGroup(cmd *exec.Cmd, hard bool) error {
	if cmd.Process == nil {
		return nil
	}
	args := []string{"/T", "/PID", strconv.Itoa(cmd.Process.Pid)}
	if hard {
		args = append([]string{"/F"}, args...)
	}
	if err := exec.Command("taskkill", args...).Run(); err != nil {
		return cmd.Process.Kill()
	}
	return nil
}
