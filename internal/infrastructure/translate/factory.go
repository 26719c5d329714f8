// Package translate adapts model definitions into translators: HTTP chat
// completion backends, the offline phrasebook, and the fallback composite
// of the two.
package translate

import (
	"context"
	"net/http"
	"strings"

	"github.com/smartshell-ai/smartshell/internal/domain"
	"github.com/smartshell-ai/smartshell/internal/ports"
)

// Factory builds translator instances from model definitions. One shared
// HTTP client serves every chat backend it creates.
type Factory struct {
	client    *http.Client
	logger    ports.Logger
	rulesFile string
	fallback  bool
}

// NewFactory creates a Factory. rulesFile overrides the embedded phrasebook
// when nonempty; fallbackToPhrasebook wraps chat backends so a failed model
// call degrades to the offline rules instead of erroring out.
func NewFactory(logger ports.Logger, rulesFile string, fallbackToPhrasebook bool) *Factory {
	return &Factory{
		client:    &http.Client{Timeout: domain.DefaultHTTPClientTimeout},
		logger:    logger,
		rulesFile: rulesFile,
		fallback:  fallbackToPhrasebook,
	}
}

// ForModel resolves the translator for a model definition. Models without
// an endpoint, or named like the phrasebook, resolve offline.
func (f *Factory) ForModel(model domain.ModelDefinition) (ports.Translator, error) {
	if isPhrasebookModel(model) {
		return newPhrasebookTranslator(model, f.rulesFile)
	}

	chat := &chatTranslator{model: model, client: f.client, logger: f.logger}
	if !f.fallback {
		return chat, nil
	}

	book, err := newPhrasebookTranslator(phrasebookModel(), f.rulesFile)
	if err != nil {
		f.logger.Warn("phrasebook unavailable, model fallback disabled", map[string]interface{}{
			"error": err.Error(),
		})
		return chat, nil
	}
	return &fallbackTranslator{primary: chat, secondary: book, logger: f.logger}, nil
}

func isPhrasebookModel(model domain.ModelDefinition) bool {
	if model.Offline() {
		return true
	}
	name := strings.ToLower(model.Name)
	return strings.Contains(name, "phrasebook") || strings.Contains(name, "offline")
}

func phrasebookModel() domain.ModelDefinition {
	return domain.ModelDefinition{Name: "phrasebook", ModelID: "offline"}
}

// fallbackTranslator tries the primary backend and degrades to the
// secondary when the primary fails for any reason other than the caller
// giving up.
type fallbackTranslator struct {
	primary   ports.Translator
	secondary ports.Translator
	logger    ports.Logger
}

func (t *fallbackTranslator) Name() string {
	return t.primary.Name()
}

func (t *fallbackTranslator) Model() domain.ModelDefinition {
	return t.primary.Model()
}

func (t *fallbackTranslator) Translate(ctx context.Context, req ports.TranslationRequest) (ports.TranslationResult, error) {
	result, err := t.primary.Translate(ctx, req)
	if err == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		return ports.TranslationResult{}, err
	}

	t.logger.Warn("model translation failed, using phrasebook", map[string]interface{}{
		"model": t.primary.Name(),
		"error": err.Error(),
	})
	return t.secondary.Translate(ctx, req)
}

var (
	_ ports.TranslatorFactory = (*Factory)(nil)
	_ ports.Translator        = (*fallbackTranslator)(nil)
)
