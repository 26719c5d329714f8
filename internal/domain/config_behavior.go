package domain

import (
	"fmt"
	"time"
)

// GetDefaultModel retrieves the default model definition from configuration.
// Returns an error if the default model is not found.
func (c *Config) GetDefaultModel() (ModelDefinition, error) {
	if c.Preferences.DefaultModel == "" {
		return ModelDefinition{}, fmt.Errorf("no default model configured")
	}

	for _, model := range c.Models {
		if model.Name == c.Preferences.DefaultModel {
			return model, nil
		}
	}

	return ModelDefinition{}, fmt.Errorf("default model %s not found in configuration", c.Preferences.DefaultModel)
}

// FindModelByName looks a model up by name.
func (c *Config) FindModelByName(name string) (ModelDefinition, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelDefinition{}, false
}

// HasModel reports whether a model with the given name is configured.
func (c *Config) HasModel(name string) bool {
	_, exists := c.FindModelByName(name)
	return exists
}

// AddModel appends a model definition. Names identify models everywhere
// (overrides, cache keys, the default preference), so they are required
// and unique.
func (c *Config) AddModel(model ModelDefinition) error {
	if model.Name == "" {
		return fmt.Errorf("model name is required")
	}
	if c.HasModel(model.Name) {
		return fmt.Errorf("model %s already configured", model.Name)
	}
	c.Models = append(c.Models, model)
	return nil
}

// RemoveModel drops the named model. Removing the default promotes the
// first remaining model, or clears the preference when none are left.
func (c *Config) RemoveModel(name string) error {
	kept := make([]ModelDefinition, 0, len(c.Models))
	found := false
	for _, model := range c.Models {
		if model.Name == name {
			found = true
			continue
		}
		kept = append(kept, model)
	}
	if !found {
		return fmt.Errorf("model %s not found", name)
	}
	c.Models = kept

	if c.Preferences.DefaultModel == name {
		c.Preferences.DefaultModel = ""
		if len(c.Models) > 0 {
			c.Preferences.DefaultModel = c.Models[0].Name
		}
	}
	return nil
}

// SetDefaultModel points the default preference at an existing model.
func (c *Config) SetDefaultModel(name string) error {
	if !c.HasModel(name) {
		return fmt.Errorf("cannot set default model: %s is not configured", name)
	}
	c.Preferences.DefaultModel = name
	return nil
}

// GetModelCount returns the number of configured models.
func (c *Config) GetModelCount() int {
	return len(c.Models)
}

// ShouldFallbackToPhrasebook checks if offline translation backs up a failing model.
func (c *Config) ShouldFallbackToPhrasebook() bool {
	return c.Preferences.FallbackToPhrasebook
}

// EffectiveShell resolves the configured shell, deferring to platform
// detection when the value is empty or "auto".
func (c *Config) EffectiveShell() (TargetShell, error) {
	return ParseTargetShell(c.Execution.Shell)
}

// CommandTimeout returns the configured execution deadline.
// Returns the default timeout when unset or nonpositive.
func (c *Config) CommandTimeout() time.Duration {
	if c.Execution.TimeoutSeconds <= 0 {
		return DefaultCommandTimeout
	}
	return time.Duration(c.Execution.TimeoutSeconds) * time.Second
}

// GracePeriod returns how long a signalled process group may linger before
// the hard kill. Returns the default grace when unset or nonpositive.
func (c *Config) GracePeriod() time.Duration {
	if c.Execution.GraceMillis <= 0 {
		return DefaultGracePeriod
	}
	return time.Duration(c.Execution.GraceMillis) * time.Millisecond
}

// OutputTailLines returns how many trailing output lines a record keeps.
func (c *Config) OutputTailLines() int {
	if c.Execution.OutputTailLines <= 0 {
		return DefaultOutputTailLines
	}
	return c.Execution.OutputTailLines
}

// CacheTTL returns the configured cache entry lifetime.
// Returns the default TTL when unset or malformed.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTL == "" {
		return DefaultCacheTTL
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || ttl <= 0 {
		return DefaultCacheTTL
	}
	return ttl
}

// GetCacheMaxEntries returns the maximum number of cache entries.
func (c *Config) GetCacheMaxEntries() int {
	if c.Cache.MaxEntries <= 0 {
		return DefaultMaxCacheEntries
	}
	return c.Cache.MaxEntries
}

// GetLogRetentionDays returns the number of days to retain command log files.
func (c *Config) GetLogRetentionDays() int {
	if c.Log.RetentionDays <= 0 {
		return DefaultLogRetentionDays
	}
	return c.Log.RetentionDays
}

// ValidateConsistency checks cross-field agreement: the default preference
// must name a configured model, and the shell and cache TTL must parse.
func (c *Config) ValidateConsistency() error {
	if name := c.Preferences.DefaultModel; name != "" {
		if len(c.Models) == 0 {
			return fmt.Errorf("default model %s is set but no models are configured", name)
		}
		if !c.HasModel(name) {
			return fmt.Errorf("default model %s does not exist in models list", name)
		}
	}

	if c.Execution.Shell != "" {
		if _, err := ParseTargetShell(c.Execution.Shell); err != nil {
			return fmt.Errorf("execution shell: %w", err)
		}
	}

	if c.Cache.TTL != "" {
		if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
			return fmt.Errorf("cache ttl %q is not a duration: %w", c.Cache.TTL, err)
		}
	}

	return nil
}
