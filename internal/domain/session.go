package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CommandRequest is a prompt on its way to becoming a shell command.
type CommandRequest struct {
	ID                string
	RawPrompt         string
	TranslatedCommand string
	TargetShell       TargetShell
	CreatedAt         time.Time
}

// NewCommandRequest builds a request with a fresh identifier.
func NewCommandRequest(prompt string, shell TargetShell) CommandRequest {
	return CommandRequest{
		ID:          uuid.NewString(),
		RawPrompt:   strings.TrimSpace(prompt),
		TargetShell: shell,
		CreatedAt:   time.Now(),
	}
}

// SessionRequest carries one invocation of the assistant from the CLI layer
// into the session service.
type SessionRequest struct {
	Prompt          string
	ModelOverride   string
	ShellOverride   string
	TimeoutOverride time.Duration
	PreviewOnly     bool
	CopyToClipboard bool
}

// SessionResult reports what a session produced. Record is nil unless the
// command actually ran.
type SessionResult struct {
	Prompt     string
	Command    string
	Translator string
	Status     Status
	FromCache  bool
	Record     *ExecutionRecord
}

// Decision is the outcome of a confirmation prompt.
type Decision struct {
	Accepted  bool
	Cancelled bool
}
