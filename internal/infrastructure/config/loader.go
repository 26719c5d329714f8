// Package config loads and persists the YAML configuration file.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/smartshell-ai/smartshell/assets"
	"github.com/smartshell-ai/smartshell/internal/domain"
	"github.com/smartshell-ai/smartshell/internal/pkg/filesystem"
	"github.com/smartshell-ai/smartshell/internal/ports"
)

// FileLoader reads config.yaml from the smartshell state directory.
// SMARTSHELL_CONFIG overrides the location; the embedded defaults are
// written out on first run.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a loader. An empty path uses the standard resolution
// order.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Path returns the config file location this loader reads and writes.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("SMARTSHELL_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filesystem.DefaultConfigPath()
}

// Load implements ports.ConfigProvider. A missing file is seeded from the
// embedded defaults so a fresh install works without any setup step.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return domain.Config{}, fmt.Errorf("create config dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
				return domain.Config{}, fmt.Errorf("write default config: %w", err)
			}
			data = assets.DefaultConfigYAML
		} else {
			return domain.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse config: %w", err)
	}
	return hydrate(cfg), nil
}

// Save persists the configuration to disk.
func (l *FileLoader) Save(cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// Backup copies the current config file aside and returns the backup path.
func (l *FileLoader) Backup() (string, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read config for backup: %w", err)
	}
	backup := path + ".bak-" + time.Now().UTC().Format("20060102-150405")
	if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", fmt.Errorf("write config backup: %w", err)
	}
	return backup, nil
}

// Reset rewrites the config file from the embedded defaults and returns the
// resulting configuration.
func (l *FileLoader) Reset() (domain.Config, error) {
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return domain.Config{}, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
		return domain.Config{}, fmt.Errorf("reset config: %w", err)
	}
	return DefaultConfig(), nil
}

// DefaultConfig returns the embedded default configuration. The embedded
// YAML ships with the binary, so a parse failure here is a build defect.
func DefaultConfig() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		panic(fmt.Sprintf("embedded default config invalid: %v", err))
	}
	return hydrate(cfg)
}

// hydrate fills derived defaults a hand-edited file may omit.
func hydrate(cfg domain.Config) domain.Config {
	if cfg.Preferences.DefaultModel == "" && len(cfg.Models) > 0 {
		cfg.Preferences.DefaultModel = cfg.Models[0].Name
	}
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = filesystem.LogsDir()
	}
	return cfg
}

func expandPath(path string) string {
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
