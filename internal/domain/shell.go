package domain

import (
	"fmt"
	"runtime"
	"strings"
)

// TargetShell names the shell dialect a prompt is translated into.
type TargetShell string

const (
	// ShellBash targets POSIX-flavoured shells via bash.
	ShellBash TargetShell = "bash"
	// ShellPowerShell targets Windows PowerShell and pwsh.
	ShellPowerShell TargetShell = "powershell"
)

// ShellSpec is the concrete invocation for a target shell: the binary plus
// the arguments that precede the command string.
type ShellSpec struct {
	Binary string
	Args   []string
}

// CommandArgs returns the full argv for running command under the shell.
func (s ShellSpec) CommandArgs(command string) []string {
	args := make([]string, 0, len(s.Args)+1)
	args = append(args, s.Args...)
	args = append(args, command)
	return args
}

// Spec resolves the invocation details for the shell.
func (t TargetShell) Spec() ShellSpec {
	switch t {
	case ShellPowerShell:
		return ShellSpec{Binary: "powershell", Args: []string{"-NoProfile", "-NonInteractive", "-Command"}}
	default:
		return ShellSpec{Binary: "bash", Args: []string{"-c"}}
	}
}

// Valid reports whether the shell is one smartshell knows how to drive.
func (t TargetShell) Valid() bool {
	return t == ShellBash || t == ShellPowerShell
}

// ParseTargetShell normalises user or config input into a TargetShell.
// The empty string and "auto" defer to platform detection.
func ParseTargetShell(value string) (TargetShell, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return DetectShell(), nil
	case "bash", "sh", "zsh":
		return ShellBash, nil
	case "powershell", "pwsh":
		return ShellPowerShell, nil
	default:
		return "", fmt.Errorf("unsupported shell %q (expected bash or powershell)", value)
	}
}

// DetectShell picks the native shell for the current platform.
func DetectShell() TargetShell {
	if runtime.GOOS == "windows" {
		return ShellPowerShell
	}
	return ShellBash
}
