package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/smartshell-ai/smartshell/internal/infrastructure/cli"
)

func main() {
	// Ctrl-C cancels the context: the confirmation gate rejects and the
	// supervisor terminates the running process group.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := cli.Options{Verbose: isVerbose()}

	root, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func isVerbose() bool {
	if strings.EqualFold(os.Getenv("SMARTSHELL_DEBUG"), "1") || strings.EqualFold(os.Getenv("SMARTSHELL_DEBUG"), "true") {
		return true
	}
	for _, arg := range os.Args[1:] {
		if arg == "--debug" {
			return true
		}
	}
	return false
}
