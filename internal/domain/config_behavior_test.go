package domain_test

import (
	"testing"
	"time"

	"github.com/smartshell-ai/smartshell/internal/domain"
)

func sampleConfig() domain.Config {
	return domain.Config{
		Preferences: domain.Preferences{DefaultModel: "local-llama"},
		Models: []domain.ModelDefinition{
			{Name: "local-llama", Endpoint: "http://localhost:8080/v1/chat/completions", ModelID: "llama"},
			{Name: "ollama", Endpoint: "http://localhost:11434/v1/chat/completions", ModelID: "llama3"},
			{Name: "phrasebook"},
		},
	}
}

func TestGetDefaultModel(t *testing.T) {
	tests := []struct {
		name      string
		config    domain.Config
		expect    string
		wantError bool
	}{
		{name: "default exists", config: sampleConfig(), expect: "local-llama"},
		{
			name:      "default missing from models",
			config:    domain.Config{Preferences: domain.Preferences{DefaultModel: "ghost"}},
			wantError: true,
		},
		{name: "no default configured", config: domain.Config{}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := tt.config.GetDefaultModel()
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if model.Name != tt.expect {
				t.Errorf("default model = %s, want %s", model.Name, tt.expect)
			}
		})
	}
}

func TestFindModelByName(t *testing.T) {
	cfg := sampleConfig()

	if model, ok := cfg.FindModelByName("ollama"); !ok || model.ModelID != "llama3" {
		t.Errorf("FindModelByName(ollama) = %+v, %v", model, ok)
	}
	if _, ok := cfg.FindModelByName("ghost"); ok {
		t.Error("expected ghost model to be absent")
	}
	if !cfg.HasModel("phrasebook") {
		t.Error("expected phrasebook model to exist")
	}
}

func TestSetDefaultModel(t *testing.T) {
	cfg := sampleConfig()

	if err := cfg.SetDefaultModel("ollama"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Preferences.DefaultModel != "ollama" {
		t.Errorf("default model = %s, want ollama", cfg.Preferences.DefaultModel)
	}

	if err := cfg.SetDefaultModel("ghost"); err == nil {
		t.Fatal("expected error but got none")
	}
}

func TestAddModel(t *testing.T) {
	cfg := sampleConfig()

	if err := cfg.AddModel(domain.ModelDefinition{Name: "remote"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetModelCount() != 4 {
		t.Errorf("model count = %d, want 4", cfg.GetModelCount())
	}

	if err := cfg.AddModel(domain.ModelDefinition{Name: "ollama"}); err == nil {
		t.Fatal("expected duplicate model error but got none")
	}
	if err := cfg.AddModel(domain.ModelDefinition{Endpoint: "http://localhost"}); err == nil {
		t.Fatal("expected nameless model error but got none")
	}
}

func TestRemoveModelReassignsDefault(t *testing.T) {
	cfg := sampleConfig()

	if err := cfg.RemoveModel("local-llama"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Preferences.DefaultModel != "ollama" {
		t.Errorf("default after removal = %s, want ollama", cfg.Preferences.DefaultModel)
	}

	if err := cfg.RemoveModel("ghost"); err == nil {
		t.Fatal("expected error removing unknown model")
	}
}

func TestRemoveLastModelClearsDefault(t *testing.T) {
	cfg := domain.Config{
		Preferences: domain.Preferences{DefaultModel: "only"},
		Models:      []domain.ModelDefinition{{Name: "only"}},
	}

	if err := cfg.RemoveModel("only"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Preferences.DefaultModel != "" {
		t.Errorf("default after removing last model = %q, want empty", cfg.Preferences.DefaultModel)
	}
	if cfg.GetModelCount() != 0 {
		t.Errorf("model count = %d, want 0", cfg.GetModelCount())
	}
}

func TestEffectiveShell(t *testing.T) {
	cfg := domain.Config{Execution: domain.ExecutionSettings{Shell: "powershell"}}
	shell, err := cfg.EffectiveShell()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shell != domain.ShellPowerShell {
		t.Errorf("shell = %s, want powershell", shell)
	}

	cfg.Execution.Shell = "csh"
	if _, err := cfg.EffectiveShell(); err == nil {
		t.Fatal("expected error for unsupported shell")
	}
}

func TestCommandTimeout(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		expect  time.Duration
	}{
		{name: "configured value", seconds: 30, expect: 30 * time.Second},
		{name: "zero falls back to default", seconds: 0, expect: domain.DefaultCommandTimeout},
		{name: "negative falls back to default", seconds: -5, expect: domain.DefaultCommandTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.Config{Execution: domain.ExecutionSettings{TimeoutSeconds: tt.seconds}}
			if got := cfg.CommandTimeout(); got != tt.expect {
				t.Errorf("CommandTimeout() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestGracePeriod(t *testing.T) {
	cfg := domain.Config{Execution: domain.ExecutionSettings{GraceMillis: 1500}}
	if got := cfg.GracePeriod(); got != 1500*time.Millisecond {
		t.Errorf("GracePeriod() = %v, want 1.5s", got)
	}

	cfg.Execution.GraceMillis = 0
	if got := cfg.GracePeriod(); got != domain.DefaultGracePeriod {
		t.Errorf("GracePeriod() default = %v, want %v", got, domain.DefaultGracePeriod)
	}
}

func TestCacheTTL(t *testing.T) {
	tests := []struct {
		name   string
		ttl    string
		expect time.Duration
	}{
		{name: "parseable duration", ttl: "12h", expect: 12 * time.Hour},
		{name: "empty falls back to default", ttl: "", expect: domain.DefaultCacheTTL},
		{name: "malformed falls back to default", ttl: "soon", expect: domain.DefaultCacheTTL},
		{name: "nonpositive falls back to default", ttl: "-1h", expect: domain.DefaultCacheTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.Config{Cache: domain.CacheSettings{TTL: tt.ttl}}
			if got := cfg.CacheTTL(); got != tt.expect {
				t.Errorf("CacheTTL() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestValidateConsistency(t *testing.T) {
	tests := []struct {
		name      string
		config    domain.Config
		wantError bool
	}{
		{name: "valid config", config: sampleConfig()},
		{name: "empty config", config: domain.Config{}},
		{
			name: "default model missing",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultModel: "ghost"},
				Models:      []domain.ModelDefinition{{Name: "real"}},
			},
			wantError: true,
		},
		{
			name: "unsupported shell",
			config: domain.Config{
				Execution: domain.ExecutionSettings{Shell: "fish"},
			},
			wantError: true,
		},
		{
			name: "malformed cache ttl",
			config: domain.Config{
				Cache: domain.CacheSettings{TTL: "whenever"},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.ValidateConsistency()
			if tt.wantError && err == nil {
				t.Fatal("expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
