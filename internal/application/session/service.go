// Package session drives one prompt through its full lifecycle: translate,
// confirm, run, log. Each Run call is an independent state machine instance;
// nothing carries over between prompts.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/smartshell-ai/smartshell/internal/domain"
	"github.com/smartshell-ai/smartshell/internal/ports"
)

// Service orchestrates a session end-to-end. The confirmation gate sits
// between translation and execution: nothing runs without an accept, and a
// reject leaves no trace in the command log.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Platform       ports.PlatformCollector
	Translators    ports.TranslatorFactory
	Cache          ports.CacheStore
	Gate           ports.ConfirmationGate
	Supervisor     ports.Supervisor
	CommandLog     ports.CommandLog
	Index          ports.HistoryIndex
	Clipboard      ports.Clipboard
	Logger         ports.Logger

	// Output receives the live child process output. Nil keeps the run
	// silent; the record still retains the tail.
	Output io.Writer
}

// Run processes a single prompt. The returned result always reflects the
// final state; Record is set only when a command actually ran. Errors cover
// the paths where no execution was attempted (translation failure, missing
// terminal); execution outcomes, including failures, live on the record.
func (s *Service) Run(ctx context.Context, req domain.SessionRequest) (domain.SessionResult, error) {
	if s.ConfigProvider == nil || s.Platform == nil || s.Translators == nil ||
		s.Supervisor == nil || s.CommandLog == nil || s.Logger == nil {
		return domain.SessionResult{}, errors.New("session.Service dependencies not satisfied")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.SessionResult{}, fmt.Errorf("load config: %w", err)
	}

	shell, err := resolveShell(cfg, req.ShellOverride)
	if err != nil {
		return domain.SessionResult{}, err
	}

	model, err := pickModel(cfg, req.ModelOverride)
	if err != nil {
		return domain.SessionResult{}, err
	}

	request := domain.NewCommandRequest(req.Prompt, shell)
	if request.RawPrompt == "" {
		return domain.SessionResult{}, errors.New("empty prompt")
	}

	command, source, fromCache, err := s.translate(ctx, cfg, request, model)
	if err != nil {
		return domain.SessionResult{}, err
	}
	request.TranslatedCommand = command

	result := domain.SessionResult{
		Prompt:     request.RawPrompt,
		Command:    command,
		Translator: source,
		Status:     domain.StatusPending,
		FromCache:  fromCache,
	}

	if (req.CopyToClipboard || cfg.Preferences.CopyToClipboard) && s.Clipboard != nil && s.Clipboard.Enabled() {
		if err := s.Clipboard.Copy(command); err != nil {
			s.Logger.Warn("clipboard copy failed", map[string]interface{}{"error": err.Error()})
		}
	}

	if req.PreviewOnly {
		return result, nil
	}

	decision, err := s.confirm(ctx, command)
	if err != nil {
		result.Status = domain.StatusRejected
		return result, err
	}
	if !decision.Accepted {
		// Rejections are not logged: the command log records executions only.
		result.Status = domain.StatusRejected
		if decision.Cancelled {
			s.Logger.Debug("confirmation cancelled", map[string]interface{}{"command": command})
		}
		return result, nil
	}

	timeout := cfg.CommandTimeout()
	if req.TimeoutOverride > 0 {
		timeout = req.TimeoutOverride
	}

	record := s.Supervisor.Run(ctx, request, timeout, s.Output)
	s.append(record)

	result.Status = record.Status
	result.Record = &record
	return result, nil
}

// translate resolves the command for the request, consulting the cache
// before the translator. Translation failures surface as TranslationError
// and never produce a record.
func (s *Service) translate(ctx context.Context, cfg domain.Config, request domain.CommandRequest, model domain.ModelDefinition) (command, source string, fromCache bool, err error) {
	key := domain.CacheKey(request.RawPrompt, request.TargetShell, model.Name)
	if cfg.Cache.Enabled && s.Cache != nil {
		if entry, ok := s.Cache.Get(key); ok && entry.Command != "" {
			s.Logger.Debug("translation served from cache", map[string]interface{}{"model": model.Name})
			return entry.Command, entry.Model, true, nil
		}
	}

	translator, err := s.Translators.ForModel(model)
	if err != nil {
		return "", "", false, fmt.Errorf("translator init: %w", err)
	}

	platform, err := s.Platform.Collect(ctx, cfg)
	if err != nil {
		s.Logger.Warn("platform snapshot failed", map[string]interface{}{"error": err.Error()})
		platform = domain.PlatformInfo{Shell: request.TargetShell}
	}

	outcome, err := translator.Translate(ctx, ports.TranslationRequest{
		Prompt:   request.RawPrompt,
		Shell:    request.TargetShell,
		Platform: platform,
		Model:    model,
	})
	if err != nil {
		var terr *domain.TranslationError
		if errors.As(err, &terr) {
			return "", "", false, err
		}
		return "", "", false, &domain.TranslationError{Model: model.Name, Endpoint: model.Endpoint, Err: err}
	}
	if outcome.Command == "" {
		return "", "", false, &domain.TranslationError{Model: model.Name, Endpoint: model.Endpoint, Err: domain.ErrEmptyCommand}
	}

	if cfg.Cache.Enabled && s.Cache != nil {
		entry := domain.CacheEntry{
			Key:       key,
			Prompt:    request.RawPrompt,
			Command:   outcome.Command,
			Model:     outcome.Source,
			Shell:     string(request.TargetShell),
			CreatedAt: time.Now(),
		}
		if err := s.Cache.Set(entry); err != nil {
			s.Logger.Warn("translation cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return outcome.Command, outcome.Source, false, nil
}

// confirm runs the gate. A missing or non-interactive gate rejects rather
// than hanging a piped invocation on a read that can never answer.
func (s *Service) confirm(ctx context.Context, command string) (domain.Decision, error) {
	if s.Gate == nil || !s.Gate.Enabled() {
		return domain.Decision{}, domain.ErrNotInteractive
	}
	decision, err := s.Gate.Confirm(ctx, command)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return domain.Decision{Cancelled: true}, nil
		}
		return domain.Decision{}, fmt.Errorf("confirmation: %w", err)
	}
	return decision, nil
}

// append writes the terminal record to the command log exactly once. A
// failed append is retried once, then dropped with a warning; the session
// result is already decided and a log problem must not undo it.
func (s *Service) append(record domain.ExecutionRecord) {
	entry := record.LogEntry()

	if err := s.CommandLog.Append(entry); err != nil {
		s.Logger.Warn("command log append failed, retrying", map[string]interface{}{"error": err.Error()})
		if err := s.CommandLog.Append(entry); err != nil {
			s.Logger.Warn("command log entry dropped", map[string]interface{}{
				"error":   err.Error(),
				"command": entry.Command,
			})
			return
		}
	}

	if s.Index != nil {
		if err := s.Index.Insert(entry); err != nil {
			s.Logger.Warn("history index insert failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

func resolveShell(cfg domain.Config, override string) (domain.TargetShell, error) {
	if override != "" {
		return domain.ParseTargetShell(override)
	}
	return cfg.EffectiveShell()
}

func pickModel(cfg domain.Config, override string) (domain.ModelDefinition, error) {
	name := override
	if name == "" {
		name = cfg.Preferences.DefaultModel
	}
	if name == "" && len(cfg.Models) > 0 {
		return cfg.Models[0], nil
	}
	for _, model := range cfg.Models {
		if model.Name == name {
			return model, nil
		}
	}
	return domain.ModelDefinition{}, fmt.Errorf("model %s not configured", name)
}
