// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the application to remain independent of specific
// implementations like databases, HTTP clients, or CLI frameworks.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Translator, CommandLog)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"
	"io"
	"time"

	"github.com/smartshell-ai/smartshell/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.smartshell/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// PlatformCollector snapshots the host environment so translations can be
// tailored to the operating system and shell actually in front of the user.
type PlatformCollector interface {
	Collect(context.Context, domain.Config) (domain.PlatformInfo, error)
}

// TranslatorFactory builds translator instances based on model definitions.
// It abstracts the creation of different backends (chat endpoints, the
// offline phrasebook, and the fallback composite of the two).
type TranslatorFactory interface {
	ForModel(domain.ModelDefinition) (Translator, error)
}

// Translator turns a natural language prompt into a shell command.
type Translator interface {
	Name() string
	Model() domain.ModelDefinition
	Translate(context.Context, TranslationRequest) (TranslationResult, error)
}

// TranslationRequest contains all data needed to produce a command.
type TranslationRequest struct {
	Prompt   string
	Shell    domain.TargetShell
	Platform domain.PlatformInfo
	Model    domain.ModelDefinition
}

// TranslationResult contains the produced command and any explanatory text.
// Source names the backend that actually produced the command, which can
// differ from the requested model when a fallback engaged.
type TranslationResult struct {
	Command string
	Reply   string
	Source  string
}

// ConfirmationGate asks the user to approve a command before it runs.
// Enabled reports whether an interactive terminal is available to ask on.
type ConfirmationGate interface {
	Confirm(ctx context.Context, command string) (domain.Decision, error)
	Enabled() bool
}

// Supervisor runs one confirmed command at a time and owns its full
// lifecycle: spawn, timeout, cancellation and the terminal verdict.
// Run always returns a record in a terminal state. Cancel stops the
// active command, if any, and is safe to call at any moment.
type Supervisor interface {
	Run(ctx context.Context, request domain.CommandRequest, timeout time.Duration, output io.Writer) domain.ExecutionRecord
	Cancel()
}

// CommandLog is the append-only record of executed commands.
// Records returns newest-first entries, optionally filtered by a substring
// match on prompt or command.
type CommandLog interface {
	Append(entry domain.LogEntry) error
	Records(limit int, search string) ([]domain.LogEntry, error)
	Dir() string
	Clear() error
	ExportJSON() ([]byte, error)
}

// HistoryIndex is the queryable index derived from the command log.
// It is rebuildable from the log files and never the source of truth.
type HistoryIndex interface {
	Insert(entry domain.LogEntry) error
	Search(query string, limit int) ([]domain.LogEntry, error)
	Rebuild(entries []domain.LogEntry) error
	Clear() error
	Path() string
}

// CacheStore persists translation results between invocations.
type CacheStore interface {
	Get(key string) (domain.CacheEntry, bool)
	Set(entry domain.CacheEntry) error
	Entries() []domain.CacheEntry
	Clear() error
	Dir() string
}

// Clipboard provides cross-platform clipboard integration for copying commands.
// Allows users to copy generated commands without manually selecting text.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stderr, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
