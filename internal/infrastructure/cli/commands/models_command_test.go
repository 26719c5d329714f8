package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartshell-ai/smartshell/internal/app"
	configinfra "github.com/smartshell-ai/smartshell/internal/infrastructure/config"
)

func newModelsContainer(t *testing.T) (*app.Container, *configinfra.FileLoader) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := configinfra.NewFileLoader(path)
	if err := loader.Save(configinfra.DefaultConfig()); err != nil {
		t.Fatalf("seed config: %v", err)
	}
	return &app.Container{ConfigLoader: loader}, loader
}

func runModels(t *testing.T, container *app.Container, args ...string) (string, error) {
	t.Helper()
	cmd := NewModelsCommand(container)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestModelsAddPersistsDefinition(t *testing.T) {
	container, loader := newModelsContainer(t)

	_, err := runModels(t, container, "add",
		"--name", "remote-gpt",
		"--endpoint", "https://api.example.com/v1/chat/completions",
		"--model-id", "gpt-4o-mini",
		"--auth-env", "EXAMPLE_API_KEY")
	if err != nil {
		t.Fatalf("models add: %v", err)
	}

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	model, found := cfg.FindModelByName("remote-gpt")
	if !found {
		t.Fatal("added model not persisted")
	}
	if model.ModelID != "gpt-4o-mini" || model.AuthEnvVar != "EXAMPLE_API_KEY" {
		t.Errorf("persisted model = %+v", model)
	}
}

func TestModelsAddDuplicateNameFails(t *testing.T) {
	container, _ := newModelsContainer(t)

	if _, err := runModels(t, container, "add", "--name", "ollama"); err == nil {
		t.Fatal("expected duplicate model name to be rejected")
	}
}

func TestModelsAddWithoutNameFails(t *testing.T) {
	container, _ := newModelsContainer(t)

	if _, err := runModels(t, container, "add", "--endpoint", "https://api.example.com"); err == nil {
		t.Fatal("expected nameless model to be rejected")
	}
}

func TestModelsUseUpdatesDefault(t *testing.T) {
	container, loader := newModelsContainer(t)

	if _, err := runModels(t, container, "use", "ollama"); err != nil {
		t.Fatalf("models use: %v", err)
	}

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if cfg.Preferences.DefaultModel != "ollama" {
		t.Errorf("default model = %s, want ollama", cfg.Preferences.DefaultModel)
	}
}

func TestModelsUseUnknownFails(t *testing.T) {
	container, loader := newModelsContainer(t)

	if _, err := runModels(t, container, "use", "ghost"); err == nil {
		t.Fatal("expected unknown model to be rejected")
	}

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if cfg.Preferences.DefaultModel == "ghost" {
		t.Error("unknown model must not become the default")
	}
}

func TestModelsRemoveReassignsDefault(t *testing.T) {
	container, loader := newModelsContainer(t)

	out, err := runModels(t, container, "remove", "local-llama")
	if err != nil {
		t.Fatalf("models remove: %v", err)
	}

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if cfg.HasModel("local-llama") {
		t.Error("removed model still configured")
	}
	if cfg.Preferences.DefaultModel == "local-llama" || cfg.Preferences.DefaultModel == "" {
		t.Errorf("default model = %q, want a promoted replacement", cfg.Preferences.DefaultModel)
	}
	if !strings.Contains(out, cfg.Preferences.DefaultModel) {
		t.Errorf("output should announce the new default: %q", out)
	}
}

func TestModelsListMarksDefault(t *testing.T) {
	container, _ := newModelsContainer(t)

	out, err := runModels(t, container, "list")
	if err != nil {
		t.Fatalf("models list: %v", err)
	}
	if !strings.Contains(out, "local-llama") || !strings.Contains(out, "*") {
		t.Errorf("list should show the default marker: %q", out)
	}
	if !strings.Contains(out, "models configured") {
		t.Errorf("list should end with the model count: %q", out)
	}
}

func TestModelsShowUnknownFails(t *testing.T) {
	container, _ := newModelsContainer(t)

	if _, err := runModels(t, container, "show", "ghost"); err == nil {
		t.Fatal("expected unknown model to be rejected")
	}
}
