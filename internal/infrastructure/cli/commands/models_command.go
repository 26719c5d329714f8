package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/smartshell-ai/smartshell/internal/app"
	"github.com/smartshell-ai/smartshell/internal/domain"
	"github.com/smartshell-ai/smartshell/internal/infrastructure/cli/helpers"
)

// NewModelsCommand creates the models command with all subcommands
func NewModelsCommand(container *app.Container) *cobra.Command {
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "Manage translation model configurations",
	}

	modelsCmd.AddCommand(
		newModelsListCommand(container),
		newModelsShowCommand(container),
		newModelsUseCommand(container),
		newModelsAddCommand(container),
		newModelsRemoveCommand(container),
	)

	return modelsCmd
}

func newModelsListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured models",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listModels(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

func newModelsShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a model definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showModel(cmd.Context(), cmd.OutOrStdout(), container, args[0])
		},
	}
}

func newModelsUseCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Set the default model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setDefaultModel(cmd.Context(), container, args[0])
		},
	}
}

func newModelsAddCommand(container *app.Container) *cobra.Command {
	var (
		name      string
		endpoint  string
		modelID   string
		authEnv   string
		maxTokens int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a model definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			model := domain.ModelDefinition{
				Name:       name,
				Endpoint:   endpoint,
				ModelID:    modelID,
				AuthEnvVar: authEnv,
				MaxTokens:  maxTokens,
			}
			return addModel(cmd.Context(), container, model)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Model name (identifier)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Provider endpoint URL")
	cmd.Flags().StringVar(&modelID, "model-id", "", "Model identifier at the provider")
	cmd.Flags().StringVar(&authEnv, "auth-env", "", "Environment variable holding the API key")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "Max tokens for responses (0 uses the provider default)")

	return cmd
}

func newModelsRemoveCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a model definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return removeModel(cmd.Context(), cmd.OutOrStdout(), container, args[0])
		},
	}
}

// listModels lists all configured models with the default marked
func listModels(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := loadModelsConfig(ctx, container)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "NAME\tMODEL ID\tENDPOINT\tDEFAULT\n")
	for _, model := range cfg.Models {
		marker := ""
		if cfg.Preferences.DefaultModel == model.Name {
			marker = "*"
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", model.Name, model.ModelID, model.Endpoint, marker)
	}
	fmt.Fprintf(out, "\n%d models configured\n", cfg.GetModelCount())

	return nil
}

// showModel prints the full definition of one model in YAML form
func showModel(ctx context.Context, out io.Writer, container *app.Container, name string) error {
	cfg, err := loadModelsConfig(ctx, container)
	if err != nil {
		return err
	}

	model, found := cfg.FindModelByName(name)
	if !found {
		return fmt.Errorf("model %s not found", name)
	}

	data, err := yaml.Marshal(model)
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}
	fmt.Fprint(out, string(data))

	return nil
}

// setDefaultModel updates the default model preference
func setDefaultModel(ctx context.Context, container *app.Container, name string) error {
	cfg, err := loadModelsConfig(ctx, container)
	if err != nil {
		return err
	}

	if err := cfg.SetDefaultModel(name); err != nil {
		return err
	}

	return helpers.SaveConfigWithValidation(container, cfg)
}

// addModel appends a model definition and persists the configuration
func addModel(ctx context.Context, container *app.Container, model domain.ModelDefinition) error {
	cfg, err := loadModelsConfig(ctx, container)
	if err != nil {
		return err
	}

	if err := cfg.AddModel(model); err != nil {
		return err
	}

	return helpers.SaveConfigWithValidation(container, cfg)
}

// removeModel drops a model definition and persists the configuration
func removeModel(ctx context.Context, out io.Writer, container *app.Container, name string) error {
	cfg, err := loadModelsConfig(ctx, container)
	if err != nil {
		return err
	}

	wasDefault := cfg.Preferences.DefaultModel == name
	if err := cfg.RemoveModel(name); err != nil {
		return err
	}

	if err := helpers.SaveConfigWithValidation(container, cfg); err != nil {
		return err
	}

	if wasDefault && cfg.Preferences.DefaultModel != "" {
		fmt.Fprintf(out, "Default model is now %s\n", cfg.Preferences.DefaultModel)
	}
	return nil
}

func loadModelsConfig(ctx context.Context, container *app.Container) (domain.Config, error) {
	loader, err := helpers.GetConfigLoader(container)
	if err != nil {
		return domain.Config{}, err
	}
	cfg, err := loader.Load(ctx)
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
