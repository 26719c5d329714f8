package translate

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/smartshell-ai/smartshell/internal/domain"
	"github.com/smartshell-ai/smartshell/internal/ports"
)

// templateData exposes the fields prompt templates may reference.
type templateData struct {
	Prompt   string
	Shell    string
	Platform string
}

// renderPromptMessages expands the model's prompt templates against the
// request. Models without a usable prompt get the built-in default; a
// template that fails to parse or execute is sent verbatim.
func renderPromptMessages(model domain.ModelDefinition, req ports.TranslationRequest) []chatMessage {
	messages := model.Prompt
	if len(messages) == 0 || !hasUserMessage(messages) {
		messages = defaultTemplateMessages()
	}

	data := templateData{
		Prompt:   req.Prompt,
		Shell:    string(req.Shell),
		Platform: req.Platform.Describe(),
	}

	rendered := make([]chatMessage, 0, len(messages))
	for _, message := range messages {
		content, err := executeTemplate(message.Content, data)
		if err != nil {
			content = message.Content
		}
		rendered = append(rendered, chatMessage{Role: message.Role, Content: content})
	}
	return rendered
}

func executeTemplate(content string, data templateData) (string, error) {
	tmpl, err := template.New("prompt").Parse(content)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func hasUserMessage(messages []domain.PromptMessage) bool {
	for _, message := range messages {
		if strings.EqualFold(message.Role, "user") {
			return true
		}
	}
	return false
}

func defaultTemplateMessages() []domain.PromptMessage {
	return []domain.PromptMessage{
		{
			Role: "system",
			Content: "You are an assistant that converts natural language instructions " +
				"(Greek or English) into a single {{.Shell}} command for {{.Platform}}. " +
				"Return only the command, no explanations and no markdown.",
		},
		{Role: "user", Content: "{{.Prompt}}"},
	}
}
