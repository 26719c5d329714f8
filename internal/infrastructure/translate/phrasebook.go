package translate

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smartshell-ai/smartshell/assets"
	"github.com/smartshell-ai/smartshell/internal/domain"
	"github.com/smartshell-ai/smartshell/internal/ports"
)

// phrasebookRule pairs trigger phrases with a command. Match phrases hit
// against the whole prompt; prefix phrases capture the remainder into
// {rest} in the command.
type phrasebookRule struct {
	Match   []string `yaml:"match"`
	Prefix  []string `yaml:"prefix"`
	Command string   `yaml:"command"`
}

type phrasebookFile struct {
	Rules    []phrasebookRule `yaml:"rules"`
	Fallback string           `yaml:"fallback"`
}

// phrasebookTranslator resolves prompts offline against YAML rules. It
// never fails a prompt: anything no rule covers becomes the fallback echo.
type phrasebookTranslator struct {
	model    domain.ModelDefinition
	rules    []phrasebookRule
	fallback string
}

// newPhrasebookTranslator loads rules from rulesFile, or the embedded
// defaults when the path is empty.
func newPhrasebookTranslator(model domain.ModelDefinition, rulesFile string) (*phrasebookTranslator, error) {
	data := assets.DefaultPhrasesYAML
	if rulesFile != "" {
		loaded, err := os.ReadFile(rulesFile)
		if err != nil {
			return nil, fmt.Errorf("read phrasebook rules: %w", err)
		}
		data = loaded
	}

	var file phrasebookFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse phrasebook rules: %w", err)
	}
	if strings.TrimSpace(file.Fallback) == "" {
		file.Fallback = `echo "Δεν κατάλαβα το αίτημα: {prompt}"`
	}
	return &phrasebookTranslator{model: model, rules: file.Rules, fallback: file.Fallback}, nil
}

func (t *phrasebookTranslator) Name() string {
	return t.model.Name
}

func (t *phrasebookTranslator) Model() domain.ModelDefinition {
	return t.model
}

func (t *phrasebookTranslator) Translate(ctx context.Context, req ports.TranslationRequest) (ports.TranslationResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.TranslationResult{}, err
	}

	prompt := strings.ToLower(strings.TrimSpace(req.Prompt))
	for _, rule := range t.rules {
		if command, ok := rule.apply(prompt); ok {
			return t.result(command), nil
		}
	}

	command := strings.ReplaceAll(t.fallback, "{prompt}", sanitizePrompt(req.Prompt))
	return t.result(command), nil
}

func (t *phrasebookTranslator) result(command string) ports.TranslationResult {
	return ports.TranslationResult{Command: command, Source: t.model.Name}
}

// apply matches the rule against the lowercased prompt. Match phrases
// shorter than four runes must equal the whole prompt, so tiny triggers
// like "ip" stay out of unrelated requests.
func (r phrasebookRule) apply(prompt string) (string, bool) {
	for _, phrase := range r.Match {
		phrase = strings.ToLower(strings.TrimSpace(phrase))
		if phrase == "" {
			continue
		}
		if prompt == phrase {
			return r.Command, true
		}
		if len([]rune(phrase)) >= 4 && strings.Contains(prompt, phrase) {
			return r.Command, true
		}
	}

	for _, prefix := range r.Prefix {
		prefix = strings.ToLower(strings.TrimSpace(prefix))
		if prefix == "" || !strings.HasPrefix(prompt, prefix+" ") {
			continue
		}
		rest := strings.TrimSpace(prompt[len(prefix):])
		if rest == "" {
			continue
		}
		return strings.ReplaceAll(r.Command, "{rest}", rest), true
	}

	return "", false
}

// sanitizePrompt strips characters that would break out of the fallback
// echo's quoting.
func sanitizePrompt(prompt string) string {
	replacer := strings.NewReplacer(`"`, "", "`", "", `\`, "", "$", "")
	return strings.TrimSpace(replacer.Replace(prompt))
}

var _ ports.Translator = (*phrasebookTranslator)(nil)
