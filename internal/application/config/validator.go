// Package config validates configuration before it is persisted.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/smartshell-ai/smartshell/internal/domain"
)

// Validate ensures the config structure is safe to persist: structural
// checks here, cross-field agreement via the domain's own consistency rule.
func Validate(cfg domain.Config) error {
	if len(cfg.Models) == 0 {
		return errors.New("at least one model must be configured")
	}
	for _, model := range cfg.Models {
		if model.Name == "" {
			return errors.New("every model needs a name")
		}
	}
	if err := cfg.ValidateConsistency(); err != nil {
		return err
	}
	if err := validateExecution(cfg.Execution); err != nil {
		return err
	}
	if err := validateCache(cfg.Cache); err != nil {
		return err
	}
	if cfg.Log.RetentionDays < 0 {
		return fmt.Errorf("log.retention_days must be >= 0")
	}
	return nil
}

func validateExecution(exec domain.ExecutionSettings) error {
	if exec.TimeoutSeconds < 0 {
		return fmt.Errorf("execution.timeout must be >= 0")
	}
	if exec.GraceMillis < 0 {
		return fmt.Errorf("execution.grace_period_ms must be >= 0")
	}
	return nil
}

func validateCache(cache domain.CacheSettings) error {
	if cache.TTL != "" {
		if _, err := time.ParseDuration(cache.TTL); err != nil {
			return fmt.Errorf("cache.ttl invalid: %w", err)
		}
	}
	if cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries must be >= 0")
	}
	return nil
}
