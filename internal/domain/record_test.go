package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/smartshell-ai/smartshell/internal/domain"
)

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   domain.Status
		to     domain.Status
		expect bool
	}{
		{name: "pending to confirmed", from: domain.StatusPending, to: domain.StatusConfirmed, expect: true},
		{name: "pending to rejected", from: domain.StatusPending, to: domain.StatusRejected, expect: true},
		{name: "pending to running skips confirmation", from: domain.StatusPending, to: domain.StatusRunning, expect: false},
		{name: "confirmed to running", from: domain.StatusConfirmed, to: domain.StatusRunning, expect: true},
		{name: "confirmed to completed skips running", from: domain.StatusConfirmed, to: domain.StatusCompleted, expect: false},
		{name: "running to completed", from: domain.StatusRunning, to: domain.StatusCompleted, expect: true},
		{name: "running to cancelled", from: domain.StatusRunning, to: domain.StatusCancelled, expect: true},
		{name: "running to timed_out", from: domain.StatusRunning, to: domain.StatusTimedOut, expect: true},
		{name: "running to failed", from: domain.StatusRunning, to: domain.StatusFailed, expect: true},
		{name: "running back to pending", from: domain.StatusRunning, to: domain.StatusPending, expect: false},
		{name: "completed is final", from: domain.StatusCompleted, to: domain.StatusRunning, expect: false},
		{name: "cancelled is final", from: domain.StatusCancelled, to: domain.StatusConfirmed, expect: false},
		{name: "rejected is final", from: domain.StatusRejected, to: domain.StatusConfirmed, expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.expect {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.expect)
			}
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	terminal := []domain.Status{
		domain.StatusRejected,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusTimedOut,
		domain.StatusFailed,
	}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}

	live := []domain.Status{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusRunning,
	}
	for _, s := range live {
		if s.Terminal() {
			t.Errorf("expected %s to not be terminal", s)
		}
	}
}

func TestExecutionRecordSucceeded(t *testing.T) {
	zero := 0
	three := 3
	finished := time.Now()

	tests := []struct {
		name   string
		record domain.ExecutionRecord
		expect bool
	}{
		{
			name:   "completed with exit zero",
			record: domain.ExecutionRecord{Status: domain.StatusCompleted, ExitCode: &zero, FinishedAt: &finished},
			expect: true,
		},
		{
			name:   "failed with nonzero exit",
			record: domain.ExecutionRecord{Status: domain.StatusFailed, ExitCode: &three, FinishedAt: &finished},
			expect: false,
		},
		{
			name:   "timed out without exit code",
			record: domain.ExecutionRecord{Status: domain.StatusTimedOut, FinishedAt: &finished},
			expect: false,
		},
		{
			name:   "completed status but missing exit code",
			record: domain.ExecutionRecord{Status: domain.StatusCompleted},
			expect: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.Succeeded(); got != tt.expect {
				t.Errorf("Succeeded() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestExecutionRecordDuration(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)

	record := domain.ExecutionRecord{StartedAt: start, FinishedAt: &end}
	if got := record.Duration(); got != 1500*time.Millisecond {
		t.Errorf("Duration() = %v, want 1.5s", got)
	}

	unfinished := domain.ExecutionRecord{StartedAt: start}
	if got := unfinished.Duration(); got != 0 {
		t.Errorf("Duration() on unfinished record = %v, want 0", got)
	}
}

func TestLogEntryFields(t *testing.T) {
	exit := 0
	started := time.Date(2025, 3, 1, 10, 30, 0, 0, time.FixedZone("EET", 2*3600))
	record := domain.ExecutionRecord{
		Prompt:    "show disk usage",
		Command:   "df -h",
		Status:    domain.StatusCompleted,
		StartedAt: started,
		ExitCode:  &exit,
	}

	entry := record.LogEntry()
	if entry.Prompt != "show disk usage" {
		t.Errorf("unexpected prompt: %s", entry.Prompt)
	}
	if entry.Command != "df -h" {
		t.Errorf("unexpected command: %s", entry.Command)
	}
	if entry.Status != domain.StatusCompleted {
		t.Errorf("unexpected status: %s", entry.Status)
	}
	if entry.Timestamp != "2025-03-01T08:30:00Z" {
		t.Errorf("timestamp not normalised to UTC: %s", entry.Timestamp)
	}
	if entry.ExitCode == nil || *entry.ExitCode != 0 {
		t.Errorf("unexpected exit code: %v", entry.ExitCode)
	}
}

func TestLogEntryJSONShape(t *testing.T) {
	started := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	record := domain.ExecutionRecord{
		Prompt:    "wait forever",
		Command:   "sleep 9999",
		Status:    domain.StatusTimedOut,
		StartedAt: started,
	}

	raw, err := json.Marshal(record.LogEntry())
	if err != nil {
		t.Fatalf("marshal log entry: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal log entry: %v", err)
	}

	want := []string{"prompt", "command", "exit_code", "timestamp", "status"}
	if len(decoded) != len(want) {
		t.Fatalf("expected %d fields, got %d: %s", len(want), len(decoded), raw)
	}
	for _, key := range want {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing field %q in %s", key, raw)
		}
	}
	if string(decoded["exit_code"]) != "null" {
		t.Errorf("exit_code for timed out command = %s, want null", decoded["exit_code"])
	}
}

func TestLogEntryTime(t *testing.T) {
	entry := domain.LogEntry{Timestamp: "2025-03-01T08:30:00Z"}
	want := time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC)
	if got := entry.Time(); !got.Equal(want) {
		t.Errorf("Time() = %v, want %v", got, want)
	}

	malformed := domain.LogEntry{Timestamp: "yesterday"}
	if got := malformed.Time(); !got.IsZero() {
		t.Errorf("Time() on malformed timestamp = %v, want zero", got)
	}
}
