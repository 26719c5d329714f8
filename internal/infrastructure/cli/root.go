// Package cli wires the cobra command tree and the interactive surfaces:
// the confirmation prompter, result rendering, spinner and clipboard.
package cli

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartshell-ai/smartshell/internal/app"
	"github.com/smartshell-ai/smartshell/internal/domain"
	"github.com/smartshell-ai/smartshell/internal/infrastructure/cli/commands"
	"github.com/smartshell-ai/smartshell/internal/ports"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd builds the container and wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	gate := NewPrompter(nil, nil)
	container.Session.Gate = gate
	container.Session.Clipboard = NewClipboard()
	container.Session.Output = os.Stdout
	container.Doctor.Gate = gate

	var (
		model       string
		shell       string
		timeout     time.Duration
		previewOnly bool
		copyCmd     bool
		debug       bool
	)

	root := &cobra.Command{
		Use:   "smartshell [prompt...]",
		Short: "smartshell - natural language to shell commands",
		Long: "smartshell translates a Greek or English instruction into a single shell\n" +
			"command for this machine, asks for confirmation, and runs it.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}

			// The spinner covers translation; the gate decorator clears it the
			// moment the confirmation prompt is about to appear.
			spinner := NewSpinner(os.Stderr)
			if gate.Enabled() {
				spinner.Start()
			}
			defer spinner.Stop()
			container.Session.Gate = &spinnerGate{gate: gate, spinner: spinner}

			result, err := container.Session.Run(cmd.Context(), domain.SessionRequest{
				Prompt:          strings.Join(args, " "),
				ModelOverride:   model,
				ShellOverride:   shell,
				TimeoutOverride: timeout,
				PreviewOnly:     previewOnly,
				CopyToClipboard: copyCmd,
			})
			spinner.Stop()
			if err != nil {
				return err
			}
			RenderResult(cmd.OutOrStdout(), result)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().StringVarP(&model, "model", "m", "", "Override model name (default from config)")
	root.Flags().StringVarP(&shell, "shell", "s", "", "Target shell: bash or powershell (default: detect)")
	root.Flags().DurationVarP(&timeout, "timeout", "t", 0, "Override execution timeout (e.g. 30s, 5m)")
	root.Flags().BoolVarP(&previewOnly, "preview-only", "p", false, "Show the translated command without running it")
	root.Flags().BoolVarP(&copyCmd, "copy", "c", false, "Copy the translated command to the clipboard")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable verbose logging")

	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewModelsCommand(container))
	root.AddCommand(commands.NewCacheCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}

// spinnerGate stops the translation spinner right before the confirmation
// prompt so the two never share the terminal line.
type spinnerGate struct {
	gate    ports.ConfirmationGate
	spinner *Spinner
}

func (g *spinnerGate) Enabled() bool {
	return g.gate.Enabled()
}

func (g *spinnerGate) Confirm(ctx context.Context, command string) (domain.Decision, error) {
	g.spinner.Stop()
	return g.gate.Confirm(ctx, command)
}
