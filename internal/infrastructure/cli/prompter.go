package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/smartshell-ai/smartshell/internal/domain"
	"github.com/smartshell-ai/smartshell/internal/ports"
)

// Prompter is the confirmation gate: it shows the proposed command and
// blocks until the user answers or the context is cancelled. It never runs
// anything itself.
type Prompter struct {
	in       io.Reader
	out      io.Writer
	terminal bool
}

// NewPrompter constructs a prompter. Nil readers and writers default to
// stdio; a non-stdin reader is treated as interactive so tests can script
// answers.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	terminal := true
	if in == nil {
		in = os.Stdin
		terminal = isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{in: in, out: out, terminal: terminal}
}

// Enabled reports whether there is an interactive terminal to ask on.
func (p *Prompter) Enabled() bool {
	return p.terminal
}

// Confirm presents the command and waits for a y/N answer. Only an explicit
// yes accepts. Cancellation while waiting yields Decision{Cancelled: true};
// the stdin read is abandoned to its goroutine in that case.
func (p *Prompter) Confirm(ctx context.Context, command string) (domain.Decision, error) {
	fmt.Fprintf(p.out, "\nProposed command:\n  %s\n", command)
	fmt.Fprint(p.out, "Run it? [y/N]: ")

	type answer struct {
		line string
		err  error
	}
	lines := make(chan answer, 1)
	go func() {
		line, err := bufio.NewReader(p.in).ReadString('\n')
		lines <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return domain.Decision{Cancelled: true}, nil
	case got := <-lines:
		if got.err != nil && got.line == "" {
			// EOF without an answer counts as a decline.
			return domain.Decision{}, nil
		}
		reply := strings.ToLower(strings.TrimSpace(got.line))
		return domain.Decision{Accepted: reply == "y" || reply == "yes"}, nil
	}
}

var _ ports.ConfirmationGate = (*Prompter)(nil)
