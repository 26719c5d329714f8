package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/smartshell-ai/smartshell/internal/app"
)

// NewCacheCommand creates the cache command with all subcommands
func NewCacheCommand(container *app.Container) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the translation cache",
	}

	cacheCmd.AddCommand(
		newCacheListCommand(container),
		newCacheClearCommand(container),
		newCacheDirCommand(container),
	)

	return cacheCmd
}

func newCacheListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached translations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCacheEntries(cmd.OutOrStdout(), container)
		},
	}
}

func newCacheClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached translations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.CacheStore == nil {
				return fmt.Errorf(ErrCacheStoreUnavailable)
			}
			if err := container.CacheStore.Clear(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			return nil
		},
	}
}

func newCacheDirCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.CacheStore == nil {
				return fmt.Errorf(ErrCacheStoreUnavailable)
			}
			fmt.Fprintln(cmd.OutOrStdout(), container.CacheStore.Dir())
			return nil
		},
	}
}

func listCacheEntries(out io.Writer, container *app.Container) error {
	if container.CacheStore == nil {
		return fmt.Errorf(ErrCacheStoreUnavailable)
	}

	entries := container.CacheStore.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoCachedTranslations)
		return nil
	}

	for _, entry := range entries {
		fmt.Fprintf(out, "%-14s %-12s %-10s %q -> %s\n",
			humanize.Time(entry.CreatedAt),
			entry.Model,
			entry.Shell,
			entry.Prompt,
			entry.Command)
	}
	return nil
}
