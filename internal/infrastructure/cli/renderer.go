package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/smartshell-ai/smartshell/internal/domain"
)

const timeRounding = 10 * time.Millisecond

// RenderResult prints the session outcome in a plain ASCII format. Live
// command output has already streamed; this is the summary line after it.
func RenderResult(out io.Writer, result domain.SessionResult) {
	fmt.Fprintf(out, "\nCommand: %s\n", result.Command)
	if result.FromCache {
		fmt.Fprintf(out, "Translated by: %s (cached)\n", result.Translator)
	} else {
		fmt.Fprintf(out, "Translated by: %s\n", result.Translator)
	}

	switch result.Status {
	case domain.StatusPending:
		fmt.Fprintln(out, "Not executed (preview only).")
	case domain.StatusRejected:
		fmt.Fprintln(out, "Rejected; nothing was executed.")
	default:
		renderRecord(out, result.Record)
	}
}

func renderRecord(out io.Writer, record *domain.ExecutionRecord) {
	if record == nil {
		return
	}
	switch record.Status {
	case domain.StatusCompleted:
		fmt.Fprintf(out, "Completed in %s.\n", record.Duration().Round(timeRounding))
	case domain.StatusFailed:
		if record.ExitCode != nil {
			fmt.Fprintf(out, "Failed with exit code %d after %s.\n", *record.ExitCode, record.Duration().Round(timeRounding))
		} else {
			fmt.Fprintf(out, "Failed to start: %s\n", record.Reason)
		}
	case domain.StatusTimedOut:
		fmt.Fprintf(out, "Timed out after %ds; the process was terminated.\n", record.TimeoutSeconds)
	case domain.StatusCancelled:
		fmt.Fprintln(out, "Cancelled; the process was terminated.")
	}
}
