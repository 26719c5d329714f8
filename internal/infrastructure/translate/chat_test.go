package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smartshell-ai/smartshell/internal/domain"
	"github.com/smartshell-ai/smartshell/internal/ports"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

func chatReply(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	reply := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"content": content}},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(reply); err != nil {
		t.Errorf("encode reply: %v", err)
	}
}

func translationRequest(prompt string) ports.TranslationRequest {
	return ports.TranslationRequest{
		Prompt: prompt,
		Shell:  domain.ShellBash,
		Platform: domain.PlatformInfo{
			OS:     "linux",
			OSHint: "Ubuntu/Debian Linux",
			Shell:  domain.ShellBash,
		},
	}
}

func TestChatTranslatorTranslate(t *testing.T) {
	var captured chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		chatReply(t, w, "```bash\ndf -h\n```")
	}))
	defer server.Close()

	model := domain.ModelDefinition{Name: "local-llama", Endpoint: server.URL, ModelID: "llama", MaxTokens: 128}
	tr := &chatTranslator{model: model, client: server.Client(), logger: nopLogger{}}

	result, err := tr.Translate(context.Background(), translationRequest("show disk usage"))
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if result.Command != "df -h" {
		t.Errorf("command = %q, want df -h", result.Command)
	}
	if result.Source != "local-llama" {
		t.Errorf("source = %q, want local-llama", result.Source)
	}

	if captured.Model != "llama" {
		t.Errorf("payload model = %q, want llama", captured.Model)
	}
	if captured.MaxTokens != 128 {
		t.Errorf("payload max_tokens = %d, want 128", captured.MaxTokens)
	}
	if captured.Stream {
		t.Error("payload requested streaming")
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("payload carried %d messages, want 2", len(captured.Messages))
	}
	if captured.Messages[1].Content != "show disk usage" {
		t.Errorf("user message = %q", captured.Messages[1].Content)
	}
	if !strings.Contains(captured.Messages[0].Content, "bash") {
		t.Errorf("system message should mention the shell: %q", captured.Messages[0].Content)
	}
}

func TestChatTranslatorAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		chatReply(t, w, "uptime")
	}))
	defer server.Close()

	t.Setenv("SMARTSHELL_TEST_KEY", "secret-token")
	model := domain.ModelDefinition{Name: "remote", Endpoint: server.URL, AuthEnvVar: "SMARTSHELL_TEST_KEY"}
	tr := &chatTranslator{model: model, client: server.Client(), logger: nopLogger{}}

	if _, err := tr.Translate(context.Background(), translationRequest("uptime please")); err != nil {
		t.Fatalf("translate: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("auth header = %q, want Bearer secret-token", gotAuth)
	}
}

func TestChatTranslatorNoAuthWithoutEnvVar(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		chatReply(t, w, "uptime")
	}))
	defer server.Close()

	model := domain.ModelDefinition{Name: "local", Endpoint: server.URL}
	tr := &chatTranslator{model: model, client: server.Client(), logger: nopLogger{}}

	if _, err := tr.Translate(context.Background(), translationRequest("uptime please")); err != nil {
		t.Fatalf("translate: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("auth header = %q, want empty for local endpoint", gotAuth)
	}
}

func TestChatTranslatorErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	model := domain.ModelDefinition{Name: "local-llama", Endpoint: server.URL}
	tr := &chatTranslator{model: model, client: server.Client(), logger: nopLogger{}}

	_, err := tr.Translate(context.Background(), translationRequest("anything"))
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	var terr *domain.TranslationError
	if !errors.As(err, &terr) {
		t.Fatalf("error type = %T, want *domain.TranslationError", err)
	}
	if terr.Model != "local-llama" {
		t.Errorf("error model = %q", terr.Model)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error should carry the status: %v", err)
	}
}

func TestChatTranslatorUnreachableEndpoint(t *testing.T) {
	model := domain.ModelDefinition{Name: "local-llama", Endpoint: "http://127.0.0.1:1/v1/chat/completions"}
	tr := &chatTranslator{model: model, client: http.DefaultClient, logger: nopLogger{}}

	_, err := tr.Translate(context.Background(), translationRequest("anything"))
	var terr *domain.TranslationError
	if !errors.As(err, &terr) {
		t.Fatalf("error type = %T, want *domain.TranslationError", err)
	}
}

func TestChatTranslatorEmptyReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, "   \n")
	}))
	defer server.Close()

	model := domain.ModelDefinition{Name: "local-llama", Endpoint: server.URL}
	tr := &chatTranslator{model: model, client: server.Client(), logger: nopLogger{}}

	_, err := tr.Translate(context.Background(), translationRequest("anything"))
	if !errors.Is(err, domain.ErrEmptyCommand) {
		t.Fatalf("error = %v, want ErrEmptyCommand in chain", err)
	}
}

func TestChatTranslatorEndpointErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"message": "context window exceeded"},
		})
	}))
	defer server.Close()

	model := domain.ModelDefinition{Name: "local-llama", Endpoint: server.URL}
	tr := &chatTranslator{model: model, client: server.Client(), logger: nopLogger{}}

	_, err := tr.Translate(context.Background(), translationRequest("anything"))
	if err == nil || !strings.Contains(err.Error(), "context window exceeded") {
		t.Fatalf("error = %v, want endpoint error message", err)
	}
}
