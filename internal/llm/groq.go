package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonathan/content-autopilot/internal/types"
)

// DefaultGroqModel is the alternate model the fallback chain uses when Groq
// was not the requested provider.
const DefaultGroqModel = "llama-3.1-8b-instant"

const groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"

// Groq generates content through the Groq OpenAI-compatible chat API.
type Groq struct {
	Model   string
	BaseURL string
	client  *http.Client
}

// NewGroq creates a Groq adapter for the given model, falling back to
// DefaultGroqModel when model is empty.
func NewGroq(model string) *Groq {
	if model == "" {
		model = DefaultGroqModel
	}
	return &Groq{
		Model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Name returns the provider identifier.
func (g *Groq) Name() string { return "groq" }

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float32       `json:"temperature,omitempty"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate calls the Groq chat completions API and returns the raw response text.
func (g *Groq) Generate(ctx context.Context, prompt string, settings types.GenerationSettings, apiKey string) (string, error) {
	payload := groqRequest{
		Model: g.Model,
		Messages: []groqMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: temperature(settings),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &TransportError{Provider: g.Name(), Message: "failed to encode request", Cause: err}
	}

	endpoint := groqEndpoint
	if g.BaseURL != "" {
		endpoint = g.BaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Provider: g.Name(), Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", &TransportError{Provider: g.Name(), Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Provider: g.Name(), Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransportError{
			Provider:   g.Name(),
			StatusCode: resp.StatusCode,
			Message:    groqErrorMessage(respBody),
		}
	}

	var parsed groqResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &ProtocolError{Provider: g.Name(), Message: "response is not valid JSON"}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", &ProtocolError{Provider: g.Name(), Message: "no choices in response"}
	}

	return parsed.Choices[0].Message.Content, nil
}

// groqErrorMessage extracts a readable error from a non-2xx Groq body.
func groqErrorMessage(body []byte) string {
	var parsed groqResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return fmt.Sprintf("%.200s", string(body))
}

var _ Generator = (*Groq)(nil)
