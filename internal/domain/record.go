// Package domain defines core business entities and value objects for smartshell.
//
// This file contains the command lifecycle: the status machine a request moves
// through and the execution record produced once a confirmed command reaches a
// terminal state. The domain layer is independent of infrastructure concerns.
package domain

import "time"

// Status tracks a command request through its lifecycle.
type Status string

const (
	// StatusPending means the request was translated and awaits confirmation.
	StatusPending Status = "pending"
	// StatusConfirmed means the user accepted the command.
	StatusConfirmed Status = "confirmed"
	// StatusRejected means the user declined, or confirmation was impossible.
	StatusRejected Status = "rejected"
	// StatusRunning means a child process is alive.
	StatusRunning Status = "running"
	// StatusCompleted means the process exited with code zero.
	StatusCompleted Status = "completed"
	// StatusCancelled means the user stopped the process before it finished.
	StatusCancelled Status = "cancelled"
	// StatusTimedOut means the deadline elapsed before the process finished.
	StatusTimedOut Status = "timed_out"
	// StatusFailed means a nonzero exit or a process that never spawned.
	StatusFailed Status = "failed"
)

// validTransitions enumerates the legal lifecycle edges. Terminal states
// deliberately have no outgoing edges.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusRejected},
	StatusConfirmed: {StatusRunning},
	StatusRunning:   {StatusCompleted, StatusCancelled, StatusTimedOut, StatusFailed},
}

// CanTransitionTo reports whether moving to target is a legal lifecycle edge.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Terminal reports whether the status ends the lifecycle.
func (s Status) Terminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCancelled, StatusTimedOut, StatusFailed:
		return true
	default:
		return false
	}
}

// ExecutionRecord captures the full outcome of one confirmed request.
// ExitCode and FinishedAt stay nil until the child process reaches a terminal
// state; a command that timed out, was cancelled, or never spawned keeps a
// nil ExitCode permanently.
type ExecutionRecord struct {
	ID             string
	Prompt         string
	Command        string
	Shell          TargetShell
	Status         Status
	TimeoutSeconds int
	StartedAt      time.Time
	FinishedAt     *time.Time
	ExitCode       *int
	OutputTail     string
	Reason         string
}

// Succeeded reports whether the command ran to completion with exit zero.
func (r ExecutionRecord) Succeeded() bool {
	return r.Status == StatusCompleted && r.ExitCode != nil && *r.ExitCode == 0
}

// Duration returns the wall-clock run time, zero while unfinished.
func (r ExecutionRecord) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// LogEntry is the wire form of one command log line. The field set is fixed:
// readers parse each line independently, so entries never gain or lose keys.
type LogEntry struct {
	Prompt    string `json:"prompt"`
	Command   string `json:"command"`
	ExitCode  *int   `json:"exit_code"`
	Timestamp string `json:"timestamp"`
	Status    Status `json:"status"`
}

// LogEntry derives the log line for a terminal record. The timestamp is the
// moment the command started, in UTC.
func (r ExecutionRecord) LogEntry() LogEntry {
	return LogEntry{
		Prompt:    r.Prompt,
		Command:   r.Command,
		ExitCode:  r.ExitCode,
		Timestamp: r.StartedAt.UTC().Format(TimestampFormat),
		Status:    r.Status,
	}
}

// Time parses the entry timestamp, returning the zero time on malformed input.
func (e LogEntry) Time() time.Time {
	t, err := time.Parse(TimestampFormat, e.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}
