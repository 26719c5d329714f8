package domain

// ModelDefinition describes a translation backend declared in the config file.
// Each model points at an OpenAI-compatible chat completion endpoint, or at
// the offline phrasebook when no endpoint is set.
type ModelDefinition struct {
	Name        string          `yaml:"name"`
	Endpoint    string          `yaml:"endpoint"`
	AuthEnvVar  string          `yaml:"auth_env_var,omitempty"`
	ModelID     string          `yaml:"model_id"`
	MaxTokens   int             `yaml:"max_tokens,omitempty"`
	Temperature float64         `yaml:"temperature,omitempty"`
	ContextSize int             `yaml:"context_size,omitempty"`
	Prompt      []PromptMessage `yaml:"prompt,omitempty"`
}

// PromptMessage follows the role/content pair required by chat APIs.
type PromptMessage struct {
	Role    string `yaml:"role"`
	Content string `yaml:"content"`
}

// EffectiveMaxTokens returns the completion budget, defaulted when unset.
func (m ModelDefinition) EffectiveMaxTokens() int {
	if m.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return m.MaxTokens
}

// EffectiveTemperature returns the sampling temperature, defaulted when unset.
func (m ModelDefinition) EffectiveTemperature() float64 {
	if m.Temperature <= 0 {
		return DefaultTemperature
	}
	return m.Temperature
}

// Offline reports whether the model resolves locally without a network call.
func (m ModelDefinition) Offline() bool {
	return m.Endpoint == ""
}
