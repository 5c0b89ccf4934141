package llm

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/content-autopilot/internal/types"
)

// DefaultGeminiModel is used when the caller did not request a specific
// Gemini model (the fallback chain, for instance).
const DefaultGeminiModel = "gemini-2.0-flash"

// Gemini generates content through the Google Gemini API.
type Gemini struct {
	Model string
}

// NewGemini creates a Gemini adapter for the given model, falling back to
// DefaultGeminiModel when model is empty.
func NewGemini(model string) *Gemini {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{Model: model}
}

// Name returns the provider identifier.
func (g *Gemini) Name() string { return "gemini" }

// Generate calls the Gemini API and returns the raw response text.
// The client is constructed per call: the key comes from the per-user
// settings store and may differ between requests.
func (g *Gemini) Generate(ctx context.Context, prompt string, settings types.GenerationSettings, apiKey string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", &TransportError{Provider: g.Name(), Message: "failed to create client", Cause: err}
	}
	defer func() { _ = client.Close() }()

	model := client.GenerativeModel(g.Model)
	model.SetTemperature(temperature(settings))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &TransportError{Provider: g.Name(), Message: "generate content failed", Cause: err}
	}

	return extractGeminiText(g.Name(), resp)
}

// extractGeminiText pulls the concatenated text parts out of a Gemini response.
func extractGeminiText(provider string, resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &ProtocolError{Provider: provider, Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &ProtocolError{Provider: provider, Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", &ProtocolError{Provider: provider, Message: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}

var _ Generator = (*Gemini)(nil)
