// Package platform snapshots the host environment for prompt templates.
package platform

import (
	"context"
	"os"
	"runtime"

	"github.com/smartshell-ai/smartshell/internal/domain"
	"github.com/smartshell-ai/smartshell/internal/ports"
)

// Collector gathers OS, shell, working directory and user.
type Collector struct{}

// NewCollector builds a Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Collect implements ports.PlatformCollector. A shell the config cannot
// resolve falls back to platform detection; the snapshot itself never
// fails.
func (c *Collector) Collect(_ context.Context, cfg domain.Config) (domain.PlatformInfo, error) {
	shell, err := cfg.EffectiveShell()
	if err != nil {
		shell = domain.DetectShell()
	}

	wd, _ := os.Getwd()

	return domain.PlatformInfo{
		OS:         runtime.GOOS,
		OSHint:     cfg.Preferences.OSHint,
		Shell:      shell,
		WorkingDir: wd,
		User:       currentUser(),
	}, nil
}

func currentUser() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return os.Getenv("USERNAME")
}

var _ ports.PlatformCollector = (*Collector)(nil)
