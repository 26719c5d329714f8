package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/smartshell-ai/smartshell/internal/domain"
	"github.com/smartshell-ai/smartshell/internal/ports"
)

// maxResponseBytes caps how much of an endpoint response is read.
const maxResponseBytes = 1 << 20

// chatTranslator sends prompts to an OpenAI-compatible chat completion
// endpoint and normalises the reply into a single command line.
type chatTranslator struct {
	model  domain.ModelDefinition
	client *http.Client
	logger ports.Logger
}

func (t *chatTranslator) Name() string {
	return t.model.Name
}

func (t *chatTranslator) Model() domain.ModelDefinition {
	return t.model
}

func (t *chatTranslator) Translate(ctx context.Context, req ports.TranslationRequest) (ports.TranslationResult, error) {
	payload := chatCompletionRequest{
		Model:       valueOrDefault(t.model.ModelID, "local"),
		Messages:    renderPromptMessages(t.model, req),
		MaxTokens:   t.model.EffectiveMaxTokens(),
		Temperature: t.model.EffectiveTemperature(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.TranslationResult{}, t.fail(fmt.Errorf("encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.model.Endpoint, bytes.NewReader(body))
	if err != nil {
		return ports.TranslationResult{}, t.fail(fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if key := resolveAuth(t.model); key != "" {
		httpReq.Header.Set("Authorization", "Bearer "+key)
	}

	t.logger.Debug("calling translation endpoint", map[string]interface{}{
		"model":    t.model.Name,
		"endpoint": t.model.Endpoint,
	})

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return ports.TranslationResult{}, t.fail(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return ports.TranslationResult{}, t.fail(fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode >= 400 {
		return ports.TranslationResult{}, t.fail(fmt.Errorf("endpoint returned %s: %s", resp.Status, summarize(data)))
	}

	var decoded chatCompletionResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return ports.TranslationResult{}, t.fail(fmt.Errorf("decode response: %w", err))
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return ports.TranslationResult{}, t.fail(fmt.Errorf("endpoint error: %s", decoded.Error.Message))
	}

	raw := decoded.FirstMessage()
	command := extractCommand(raw)
	if command == "" {
		return ports.TranslationResult{}, t.fail(domain.ErrEmptyCommand)
	}

	return ports.TranslationResult{Command: command, Reply: strings.TrimSpace(raw), Source: t.model.Name}, nil
}

func (t *chatTranslator) fail(err error) error {
	return &domain.TranslationError{Model: t.model.Name, Endpoint: t.model.Endpoint, Err: err}
}

// resolveAuth reads the model's API key from its configured environment
// variable. Local endpoints typically configure none.
func resolveAuth(model domain.ModelDefinition) string {
	if model.AuthEnvVar == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(model.AuthEnvVar))
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// summarize trims an error body down to one loggable line.
func summarize(data []byte) string {
	text := strings.TrimSpace(string(data))
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return text
}

var _ ports.Translator = (*chatTranslator)(nil)
