// Package generate implements the generation orchestrator: it routes a
// request to a primary AI provider, walks a fixed fallback chain when that
// provider fails, and synthesizes deterministic template content when every
// provider is exhausted. Publishing a degraded-but-non-empty result is
// preferred over hard failure.
package generate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/content-autopilot/internal/llm"
	"github.com/jonathan/content-autopilot/internal/store"
	"github.com/jonathan/content-autopilot/internal/types"
)

// DefaultTimeout bounds a single provider call so an unbounded hang cannot
// block the fallback chain indefinitely.
const DefaultTimeout = 30 * time.Second

// Provider identifies an AI provider adapter.
type Provider string

// Supported providers.
const (
	ProviderGemini   Provider = "gemini"
	ProviderGroq     Provider = "groq"
	ProviderRapidAPI Provider = "rapidapi"
)

// fallbackOrder is the fixed order tried after the primary provider fails.
var fallbackOrder = []Provider{ProviderGemini, ProviderGroq, ProviderRapidAPI}

// UnsupportedModelError indicates a requested model that maps to no adapter.
// This is a configuration error: it is never retried.
type UnsupportedModelError struct {
	Model string
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("unsupported model: %s", e.Model)
}

// RouteModel selects the primary provider by substring match on the
// requested model identifier.
func RouteModel(model string) (Provider, error) {
	m := strings.ToLower(model)
	switch {
	case strings.Contains(m, "rapidapi") || strings.Contains(m, "gpt"):
		return ProviderRapidAPI, nil
	case strings.Contains(m, "gemini"):
		return ProviderGemini, nil
	case strings.Contains(m, "llama") || strings.Contains(m, "groq"):
		return ProviderGroq, nil
	default:
		return "", &UnsupportedModelError{Model: model}
	}
}

// keyFor returns the settings-store key holding a provider's API key.
func keyFor(p Provider) string {
	switch p {
	case ProviderGemini:
		return store.KeyGemini
	case ProviderGroq:
		return store.KeyGroq
	default:
		return store.KeyRapidAPI
	}
}

// Adapters constructs provider adapters for a given model. The fallback chain
// passes an empty model to get each provider's default. Tests substitute
// fakes here.
type Adapters struct {
	Gemini   func(model string) llm.Generator
	Groq     func(model string) llm.Generator
	RapidAPI func(model string) llm.Generator
}

// DefaultAdapters returns the production adapter constructors.
func DefaultAdapters() Adapters {
	return Adapters{
		Gemini:   func(model string) llm.Generator { return llm.NewGemini(model) },
		Groq:     func(model string) llm.Generator { return llm.NewGroq(model) },
		RapidAPI: func(string) llm.Generator { return llm.NewRapidAPI() },
	}
}

// Orchestrator runs the generation pipeline for one request at a time.
// Provider attempts execute strictly sequentially: a fallback fires only
// after the previous provider has conclusively failed.
type Orchestrator struct {
	store    store.Store
	adapters Adapters
	logger   *slog.Logger
	timeout  time.Duration
}

// New creates an orchestrator with the production adapters.
func New(st store.Store, logger *slog.Logger) *Orchestrator {
	return NewWithAdapters(st, logger, DefaultAdapters(), DefaultTimeout)
}

// NewWithAdapters creates an orchestrator with explicit adapters and per-call
// timeout.
func NewWithAdapters(st store.Store, logger *slog.Logger, adapters Adapters, timeout time.Duration) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Orchestrator{
		store:    st,
		adapters: adapters,
		logger:   logger,
		timeout:  timeout,
	}
}

// Generate produces content for the request. It fails only on an unsupported
// model or a credential-store error; provider failures are absorbed by the
// fallback chain, and total provider failure yields template content flagged
// as degraded.
func (o *Orchestrator) Generate(ctx context.Context, userID uuid.UUID, req types.GenerationRequest) (types.GeneratedContent, error) {
	settings := req.Settings
	settings.ApplyDefaults()

	primary, err := RouteModel(req.Model)
	if err != nil {
		return types.GeneratedContent{}, err
	}

	keys, err := o.store.GetCredentials(ctx, userID, store.IntegrationLLMAPIs)
	if err != nil {
		return types.GeneratedContent{}, err
	}

	prompt := llm.BuildPostPrompt(req.Prompt, settings)

	if key := keys[keyFor(primary)]; key != "" {
		gen := o.generatorFor(primary, req.Model)
		text, err := o.attempt(ctx, gen, prompt, settings, key)
		if err == nil {
			return llm.ParseContent(text), nil
		}
		o.logger.Warn("primary provider failed, trying fallbacks",
			"provider", string(primary), "model", req.Model, "error", err)
	} else {
		o.logger.Warn("primary provider not configured, trying fallbacks",
			"provider", string(primary))
	}

	for _, fb := range fallbackOrder {
		if fb == primary {
			continue
		}
		key := keys[keyFor(fb)]
		if key == "" {
			continue
		}
		gen := o.generatorFor(fb, "")
		text, err := o.attempt(ctx, gen, prompt, settings, key)
		if err == nil {
			return llm.ParseContent(text), nil
		}
		o.logger.Warn("fallback provider failed", "provider", string(fb), "error", err)
	}

	o.logger.Warn("all providers exhausted, returning template content",
		"model", req.Model)
	return templateContent(req.Prompt, settings), nil
}

// attempt runs one provider call under the per-call timeout.
func (o *Orchestrator) attempt(ctx context.Context, gen llm.Generator, prompt string, settings types.GenerationSettings, key string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	return gen.Generate(callCtx, prompt, settings, key)
}

func (o *Orchestrator) generatorFor(p Provider, model string) llm.Generator {
	switch p {
	case ProviderGemini:
		return o.adapters.Gemini(model)
	case ProviderGroq:
		return o.adapters.Groq(model)
	default:
		return o.adapters.RapidAPI(model)
	}
}
