// Package supervise runs confirmed commands and owns their lifecycle:
// spawn, output capture, timeout, cancellation and the terminal verdict.
package supervise

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/smartshell-ai/smartshell/internal/domain"
	"github.com/smartshell-ai/smartshell/internal/ports"
)

// Supervisor executes one command at a time. Exactly one of the competing
// outcomes (natural exit, timeout, cancellation) claims the verdict; the
// losers become no-ops.
type Supervisor struct {
	logger  ports.Logger
	grace   time.Duration
	tailMax int

	mu     sync.Mutex
	active *run
}

// run tracks a live child process. The verdict fields are written once,
// under mu, by whichever outcome claims them first.
type run struct {
	cmd    *exec.Cmd
	reaped chan struct{}

	mu       sync.Mutex
	status   domain.Status
	exitCode *int
	reason   string
}

// claim records the terminal verdict if none is set yet and reports
// whether this caller won. Only legal edges out of running are accepted.
func (r *run) claim(status domain.Status, exitCode *int, reason string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != "" || !domain.StatusRunning.CanTransitionTo(status) {
		return false
	}
	r.status = status
	r.exitCode = exitCode
	r.reason = reason
	return true
}

func (r *run) verdict() (domain.Status, *int, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status, r.exitCode, r.reason
}

// New creates a Supervisor. Grace bounds the delay between the polite
// signal and the hard kill; tailMax caps the captured output lines.
func New(logger ports.Logger, grace time.Duration, tailMax int) *Supervisor {
	if grace <= 0 {
		grace = domain.DefaultGracePeriod
	}
	if tailMax <= 0 {
		tailMax = domain.DefaultOutputTailLines
	}
	return &Supervisor{logger: logger, grace: grace, tailMax: tailMax}
}

// Run executes the translated command under the request's shell and blocks
// until the child is reaped. The returned record is always terminal: failed
// when the process never spawned or exited nonzero, timed_out when the
// deadline elapsed, cancelled when ctx was done or Cancel was called, and
// completed otherwise. A timeout of zero means no deadline.
func (s *Supervisor) Run(ctx context.Context, request domain.CommandRequest, timeout time.Duration, output io.Writer) domain.ExecutionRecord {
	record := domain.ExecutionRecord{
		ID:             request.ID,
		Prompt:         request.RawPrompt,
		Command:        request.TranslatedCommand,
		Shell:          request.TargetShell,
		Status:         domain.StatusRunning,
		TimeoutSeconds: timeoutSeconds(timeout),
		StartedAt:      time.Now(),
	}

	spec := request.TargetShell.Spec()
	cmd := exec.Command(spec.Binary, spec.CommandArgs(request.TranslatedCommand)...)

	tail := newTailBuffer(s.tailMax)
	// The exact same writer value goes to both streams so os/exec shares a
	// single pipe and copy goroutine between them.
	var sink io.Writer = tail
	if output != nil {
		sink = io.MultiWriter(output, tail)
	}
	cmd.Stdout = sink
	cmd.Stderr = sink
	configureSysProc(cmd)

	if err := cmd.Start(); err != nil {
		finished := time.Now()
		record.Status = domain.StatusFailed
		record.FinishedAt = &finished
		record.Reason = fmt.Sprintf("spawn: %v", err)
		s.logger.Error("command failed to start", err, map[string]interface{}{
			"command": record.Command,
			"shell":   string(record.Shell),
		})
		return record
	}

	r := &run{cmd: cmd, reaped: make(chan struct{})}
	s.mu.Lock()
	s.active = r
	s.mu.Unlock()

	s.logger.Debug("command started", map[string]interface{}{
		"pid":     cmd.Process.Pid,
		"command": record.Command,
	})

	go s.reap(r)

	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case <-r.reaped:
	case <-deadline:
		s.terminate(r, domain.StatusTimedOut, fmt.Sprintf("deadline of %s elapsed", timeout))
	case <-ctx.Done():
		s.terminate(r, domain.StatusCancelled, "interrupted")
	}
	<-r.reaped

	s.mu.Lock()
	s.active = nil
	s.mu.Unlock()

	finished := time.Now()
	record.Status, record.ExitCode, record.Reason = r.verdict()
	record.FinishedAt = &finished
	record.OutputTail = tail.String()

	s.logger.Debug("command finished", map[string]interface{}{
		"status":   string(record.Status),
		"duration": record.Duration().String(),
	})
	return record
}

// reap waits for the child and claims the natural-exit verdict. Losing the
// claim means a timeout or cancellation already owns the outcome.
func (s *Supervisor) reap(r *run) {
	err := r.cmd.Wait()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}
	status := domain.StatusCompleted
	if exitCode != 0 {
		status = domain.StatusFailed
	}
	r.claim(status, &exitCode, "")
	close(r.reaped)
}

// terminate claims the verdict for status and stops the process group:
// polite signal first, hard kill after the grace period. A child that
// already exited wins the claim instead and terminate does nothing.
func (s *Supervisor) terminate(r *run, status domain.Status, reason string) {
	if !r.claim(status, nil, reason) {
		return
	}
	if err := signalGroup(r.cmd, false); err != nil {
		s.logger.Debug("polite signal failed", map[string]interface{}{"error": err.Error()})
	}
	select {
	case <-r.reaped:
		return
	case <-time.After(s.grace):
	}
	if err := signalGroup(r.cmd, true); err != nil {
		s.logger.Warn("hard kill failed", map[string]interface{}{"error": err.Error()})
	}
}

// Cancel stops the active command, if any. Safe to call concurrently with
// Run and repeatedly; calls with nothing running are no-ops.
func (s *Supervisor) Cancel() {
	s.mu.Lock()
	r := s.active
	s.mu.Unlock()
	if r == nil {
		return
	}
	s.terminate(r, domain.StatusCancelled, "cancelled")
}

// timeoutSeconds converts the deadline for the record, rounding up so a
// sub-second deadline never reads as unbounded.
func timeoutSeconds(timeout time.Duration) int {
	if timeout <= 0 {
		return 0
	}
	return int((timeout + time.Second - 1) / time.Second)
}

var _ ports.Supervisor = (*Supervisor)(nil)

// tailBuffer keeps the last max lines written to it plus any unterminated
// remainder.
type tailBuffer struct {
	mu      sync.Mutex
	max     int
	lines   []string
	pending string
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending += string(p)
	for {
		idx := strings.IndexByte(b.pending, '\n')
		if idx < 0 {
			break
		}
		b.push(b.pending[:idx])
		b.pending = b.pending[idx+1:]
	}
	return len(p), nil
}

func (b *tailBuffer) push(line string) {
	b.lines = append(b.lines, line)
	if len(b.lines) > b.max {
		b.lines = b.lines[len(b.lines)-b.max:]
	}
}

// String joins the retained lines, counting an unterminated remainder as
// one line.
func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	lines := b.lines
	if b.pending != "" {
		lines = append(append([]string(nil), b.lines...), b.pending)
		if len(lines) > b.max {
			lines = lines[len(lines)-b.max:]
		}
	}
	return strings.Join(lines, "\n")
}
