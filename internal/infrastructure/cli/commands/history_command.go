package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/smartshell-ai/smartshell/internal/app"
	"github.com/smartshell-ai/smartshell/internal/domain"
	"github.com/smartshell-ai/smartshell/internal/infrastructure/cli/helpers"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the command log",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
		newHistoryStatsCommand(container),
		newHistoryReindexCommand(container),
	)

	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recently executed commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")
	return cmd
}

func newHistorySearchCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search the command log for a keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return searchHistoryEntries(cmd.OutOrStdout(), container, args[0], limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistorySearchLimit, "Limit search results")
	return cmd
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all command log files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return clearHistory(container)
		},
	}
}

func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export the command log as a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportHistory(cmd.OutOrStdout(), container, args[0])
		},
	}
}

func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show success rate and top commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistoryStats(cmd.OutOrStdout(), container)
		},
	}
}

func newHistoryReindexCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the search index from the log files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return reindexHistory(cmd.OutOrStdout(), container)
		},
	}
}

func listHistoryEntries(out io.Writer, container *app.Container, limit int) error {
	if container.CommandLog == nil {
		return fmt.Errorf(ErrCommandLogUnavailable)
	}

	entries, err := container.CommandLog.Records(limit, "")
	if err != nil {
		return fmt.Errorf("failed to read command log: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	for _, entry := range entries {
		fmt.Fprintf(out, "%-14s %-9s exit=%s  %s\n",
			humanize.Time(entry.Time()),
			entry.Status,
			formatExitCode(entry.ExitCode),
			entry.Command)
	}
	return nil
}

// searchHistoryEntries prefers the sqlite index and falls back to scanning
// the JSONL files when the index is unavailable.
func searchHistoryEntries(out io.Writer, container *app.Container, query string, limit int) error {
	var entries []domain.LogEntry
	var err error

	if container.HistoryIndex != nil {
		entries, err = container.HistoryIndex.Search(query, limit)
	}
	if container.HistoryIndex == nil || err != nil {
		if container.CommandLog == nil {
			return fmt.Errorf(ErrCommandLogUnavailable)
		}
		entries, err = container.CommandLog.Records(limit, query)
	}
	if err != nil {
		return fmt.Errorf("failed to search command log: %w", err)
	}

	for _, entry := range entries {
		fmt.Fprintf(out, "%s | %s | %s\n", entry.Timestamp, entry.Status, entry.Command)
	}
	return nil
}

func clearHistory(container *app.Container) error {
	if container.CommandLog == nil {
		return fmt.Errorf(ErrCommandLogUnavailable)
	}
	if err := container.CommandLog.Clear(); err != nil {
		return fmt.Errorf("failed to clear command log: %w", err)
	}
	if container.HistoryIndex != nil {
		if err := container.HistoryIndex.Clear(); err != nil {
			return fmt.Errorf("failed to clear history index: %w", err)
		}
	}
	return nil
}

func exportHistory(out io.Writer, container *app.Container, path string) error {
	if container.CommandLog == nil {
		return fmt.Errorf(ErrCommandLogUnavailable)
	}
	data, err := container.CommandLog.ExportJSON()
	if err != nil {
		return fmt.Errorf("failed to export command log: %w", err)
	}
	if err := os.WriteFile(path, data, domain.LogFilePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(out, "Exported command log to %s\n", path)
	return nil
}

func showHistoryStats(out io.Writer, container *app.Container) error {
	if container.CommandLog == nil {
		return fmt.Errorf(ErrCommandLogUnavailable)
	}

	entries, err := container.CommandLog.Records(domain.MaxHistoryAnalysisRecords, "")
	if err != nil {
		return fmt.Errorf("failed to read command log: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	frequency := make(map[string]int)
	for _, entry := range entries {
		frequency[entry.Command]++
	}
	counts := helpers.CountByStatus(entries)

	fmt.Fprintf(out, "Entries analyzed: %d\nSuccess rate: %.1f%%\n",
		len(entries),
		helpers.CalculateSuccessRate(counts[domain.StatusCompleted], len(entries)))

	fmt.Fprintln(out, "Top commands:")
	for _, stat := range helpers.CalculateTopCommands(frequency, 5) {
		fmt.Fprintf(out, "  %s (%d)\n", stat.Command, stat.Count)
	}

	fmt.Fprintln(out, "Outcome distribution:")
	for _, status := range []domain.Status{domain.StatusCompleted, domain.StatusFailed, domain.StatusTimedOut, domain.StatusCancelled} {
		if counts[status] > 0 {
			fmt.Fprintf(out, "  %s: %d\n", status, counts[status])
		}
	}
	return nil
}

func reindexHistory(out io.Writer, container *app.Container) error {
	if container.HistoryIndex == nil {
		return fmt.Errorf("history index disabled; enable log.sqlite_index in the config")
	}
	if container.CommandLog == nil {
		return fmt.Errorf(ErrCommandLogUnavailable)
	}

	entries, err := container.CommandLog.Records(0, "")
	if err != nil {
		return fmt.Errorf("failed to read command log: %w", err)
	}
	if err := container.HistoryIndex.Rebuild(entries); err != nil {
		return fmt.Errorf("failed to rebuild history index: %w", err)
	}
	fmt.Fprintf(out, "Rebuilt index with %d entries at %s\n", len(entries), container.HistoryIndex.Path())
	return nil
}

func formatExitCode(code *int) string {
	if code == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *code)
}
