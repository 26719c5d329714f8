// Package filesystem resolves the directories smartshell keeps state in.
package filesystem

import (
	"os"
	"path/filepath"
	"runtime"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// ConfigDir resolves the smartshell state directory. Resolution order:
// $SMARTSHELL_HOME, then $XDG_CONFIG_HOME/smartshell, then %APPDATA%\smartshell
// on Windows, then ~/.smartshell.
func ConfigDir() string {
	if dir := os.Getenv("SMARTSHELL_HOME"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "smartshell")
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "smartshell")
		}
	}
	return filepath.Join(UserHomeDir(), ".smartshell")
}

// LogsDir is where daily command log files live.
func LogsDir() string {
	return filepath.Join(ConfigDir(), "logs")
}

// CacheDir is where cached translations live.
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// DefaultConfigPath is the config file location inside ConfigDir.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultIndexPath is the sqlite history index location inside ConfigDir.
func DefaultIndexPath() string {
	return filepath.Join(ConfigDir(), "history.db")
}
