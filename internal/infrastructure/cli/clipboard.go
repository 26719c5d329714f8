package cli

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/smartshell-ai/smartshell/internal/ports"
)

// Clipboard copies translated commands to the system clipboard so a
// previewed command can be pasted instead of retyped. macOS uses pbcopy;
// Linux needs xclip or wl-copy on the PATH.
type Clipboard struct{}

// NewClipboard builds the clipboard helper.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

func (c *Clipboard) Enabled() bool {
	switch runtime.GOOS {
	case "darwin", "linux":
		return true
	default:
		return false
	}
}

// Copy places the command text on the system clipboard.
func (c *Clipboard) Copy(text string) error {
	cmd, err := c.copyCommand()
	if err != nil {
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("copy command to clipboard: %w", err)
	}
	return nil
}

func (c *Clipboard) copyCommand() (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("pbcopy"), nil
	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard"), nil
		}
		if _, err := exec.LookPath("wl-copy"); err == nil {
			return exec.Command("wl-copy"), nil
		}
		return nil, fmt.Errorf("cannot copy command: neither xclip nor wl-copy found on PATH")
	default:
		return nil, fmt.Errorf("cannot copy command: clipboard unsupported on %s", runtime.GOOS)
	}
}

var _ ports.Clipboard = (*Clipboard)(nil)
