package supervise_test

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/smartshell-ai/smartshell/internal/domain"
	"github.com/smartshell-ai/smartshell/internal/infrastructure/supervise"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

func requireBash(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("bash based tests do not run on windows")
	}
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not installed")
	}
}

func bashRequest(command string) domain.CommandRequest {
	req := domain.NewCommandRequest("test prompt", domain.ShellBash)
	req.TranslatedCommand = command
	return req
}

func TestRunCompleted(t *testing.T) {
	requireBash(t)
	s := supervise.New(nopLogger{}, 200*time.Millisecond, 0)

	var output bytes.Buffer
	record := s.Run(context.Background(), bashRequest("echo hello"), 10*time.Second, &output)

	if record.Status != domain.StatusCompleted {
		t.Fatalf("status = %s, want completed (reason: %s)", record.Status, record.Reason)
	}
	if record.ExitCode == nil || *record.ExitCode != 0 {
		t.Errorf("exit code = %v, want 0", record.ExitCode)
	}
	if record.FinishedAt == nil {
		t.Error("expected FinishedAt to be set")
	}
	if !strings.Contains(output.String(), "hello") {
		t.Errorf("live output missing command output: %q", output.String())
	}
	if !strings.Contains(record.OutputTail, "hello") {
		t.Errorf("tail missing command output: %q", record.OutputTail)
	}
}

func TestRunNonzeroExit(t *testing.T) {
	requireBash(t)
	s := supervise.New(nopLogger{}, 200*time.Millisecond, 0)

	record := s.Run(context.Background(), bashRequest("exit 3"), 10*time.Second, nil)

	if record.Status != domain.StatusFailed {
		t.Fatalf("status = %s, want failed", record.Status)
	}
	if record.ExitCode == nil || *record.ExitCode != 3 {
		t.Errorf("exit code = %v, want 3", record.ExitCode)
	}
}

func TestRunCapturesStderr(t *testing.T) {
	requireBash(t)
	s := supervise.New(nopLogger{}, 200*time.Millisecond, 0)

	record := s.Run(context.Background(), bashRequest("echo out; echo err 1>&2"), 10*time.Second, nil)

	if !strings.Contains(record.OutputTail, "out") || !strings.Contains(record.OutputTail, "err") {
		t.Errorf("tail should interleave stdout and stderr, got %q", record.OutputTail)
	}
}

func TestRunTimedOut(t *testing.T) {
	requireBash(t)
	s := supervise.New(nopLogger{}, 150*time.Millisecond, 0)

	start := time.Now()
	record := s.Run(context.Background(), bashRequest("sleep 5"), 100*time.Millisecond, nil)

	if record.Status != domain.StatusTimedOut {
		t.Fatalf("status = %s, want timed_out", record.Status)
	}
	if record.ExitCode != nil {
		t.Errorf("exit code = %v, want nil for timed out command", *record.ExitCode)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("timed out run took %s, expected prompt termination", elapsed)
	}
}

func TestRunHardKillsSignalTrap(t *testing.T) {
	requireBash(t)
	s := supervise.New(nopLogger{}, 150*time.Millisecond, 0)

	start := time.Now()
	record := s.Run(context.Background(), bashRequest(`trap "" TERM; sleep 5`), 100*time.Millisecond, nil)

	if record.Status != domain.StatusTimedOut {
		t.Fatalf("status = %s, want timed_out", record.Status)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("trap-ignoring child survived %s, hard kill did not land", elapsed)
	}
}

func TestRunContextCancelled(t *testing.T) {
	requireBash(t)
	s := supervise.New(nopLogger{}, 150*time.Millisecond, 0)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	record := s.Run(ctx, bashRequest("sleep 5"), 10*time.Second, nil)

	if record.Status != domain.StatusCancelled {
		t.Fatalf("status = %s, want cancelled", record.Status)
	}
	if record.ExitCode != nil {
		t.Errorf("exit code = %v, want nil for cancelled command", *record.ExitCode)
	}
}

func TestCancelStopsActiveRun(t *testing.T) {
	requireBash(t)
	s := supervise.New(nopLogger{}, 150*time.Millisecond, 0)

	go func() {
		time.Sleep(100 * time.Millisecond)
		s.Cancel()
		s.Cancel()
	}()

	record := s.Run(context.Background(), bashRequest("sleep 5"), 10*time.Second, nil)
	if record.Status != domain.StatusCancelled {
		t.Fatalf("status = %s, want cancelled", record.Status)
	}
}

func TestCancelWithoutActiveRun(t *testing.T) {
	s := supervise.New(nopLogger{}, 150*time.Millisecond, 0)
	s.Cancel()
}

func TestRunSpawnFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("powershell exists on windows")
	}
	if _, err := exec.LookPath("powershell"); err == nil {
		t.Skip("powershell installed, cannot provoke spawn failure")
	}
	s := supervise.New(nopLogger{}, 150*time.Millisecond, 0)

	req := domain.NewCommandRequest("test prompt", domain.ShellPowerShell)
	req.TranslatedCommand = "Get-ChildItem"
	record := s.Run(context.Background(), req, 10*time.Second, nil)

	if record.Status != domain.StatusFailed {
		t.Fatalf("status = %s, want failed", record.Status)
	}
	if record.ExitCode != nil {
		t.Errorf("exit code = %v, want nil when command never spawned", *record.ExitCode)
	}
	if record.Reason == "" {
		t.Error("expected a spawn failure reason")
	}
	if record.FinishedAt == nil {
		t.Error("expected FinishedAt even on spawn failure")
	}
}

func TestRunTailCap(t *testing.T) {
	requireBash(t)
	s := supervise.New(nopLogger{}, 200*time.Millisecond, 5)

	record := s.Run(context.Background(), bashRequest("for i in $(seq 1 50); do echo line$i; done"), 10*time.Second, nil)

	if record.Status != domain.StatusCompleted {
		t.Fatalf("status = %s, want completed", record.Status)
	}
	lines := strings.Split(record.OutputTail, "\n")
	if len(lines) != 5 {
		t.Fatalf("tail kept %d lines, want 5: %q", len(lines), record.OutputTail)
	}
	if lines[0] != "line46" || lines[4] != "line50" {
		t.Errorf("tail kept wrong window: %v", lines)
	}
}

func TestRunNoDeadline(t *testing.T) {
	requireBash(t)
	s := supervise.New(nopLogger{}, 200*time.Millisecond, 0)

	record := s.Run(context.Background(), bashRequest("true"), 0, nil)
	if record.Status != domain.StatusCompleted {
		t.Fatalf("status = %s, want completed with no deadline", record.Status)
	}
	if record.TimeoutSeconds != 0 {
		t.Errorf("timeout seconds = %d, want 0", record.TimeoutSeconds)
	}
}

func TestRunSubSecondTimeoutRecordsDeadline(t *testing.T) {
	requireBash(t)
	s := supervise.New(nopLogger{}, 150*time.Millisecond, 0)

	record := s.Run(context.Background(), bashRequest("sleep 5"), 300*time.Millisecond, nil)

	if record.Status != domain.StatusTimedOut {
		t.Fatalf("status = %s, want timed_out", record.Status)
	}
	if record.TimeoutSeconds != 1 {
		t.Errorf("timeout seconds = %d, want 1 so the record shows a deadline fired", record.TimeoutSeconds)
	}
}
