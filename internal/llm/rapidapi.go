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

const (
	rapidAPIHost     = "chatgpt-42.p.rapidapi.com"
	rapidAPIEndpoint = "https://chatgpt-42.p.rapidapi.com/gpt4"
)

// RapidAPI generates content through a GPT endpoint hosted on RapidAPI.
type RapidAPI struct {
	BaseURL string
	Host    string
	client  *http.Client
}

// NewRapidAPI creates a RapidAPI adapter.
func NewRapidAPI() *RapidAPI {
	return &RapidAPI{
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Name returns the provider identifier.
func (r *RapidAPI) Name() string { return "rapidapi" }

type rapidAPIRequest struct {
	Messages  []rapidAPIMessage `json:"messages"`
	WebAccess bool              `json:"web_access"`
}

type rapidAPIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type rapidAPIResponse struct {
	Result string `json:"result"`
	Status bool   `json:"status"`
}

// Generate calls the RapidAPI GPT endpoint and returns the raw response text.
// The settings temperature is not forwarded: the hosted endpoint does not
// expose a sampling control.
func (r *RapidAPI) Generate(ctx context.Context, prompt string, _ types.GenerationSettings, apiKey string) (string, error) {
	payload := rapidAPIRequest{
		Messages: []rapidAPIMessage{
			{Role: "user", Content: prompt},
		},
		WebAccess: false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &TransportError{Provider: r.Name(), Message: "failed to encode request", Cause: err}
	}

	endpoint := rapidAPIEndpoint
	if r.BaseURL != "" {
		endpoint = r.BaseURL
	}
	host := rapidAPIHost
	if r.Host != "" {
		host = r.Host
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Provider: r.Name(), Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-rapidapi-key", apiKey)
	req.Header.Set("x-rapidapi-host", host)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", &TransportError{Provider: r.Name(), Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Provider: r.Name(), Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransportError{
			Provider:   r.Name(),
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%.200s", string(respBody)),
		}
	}

	var parsed rapidAPIResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &ProtocolError{Provider: r.Name(), Message: "response is not valid JSON"}
	}
	if parsed.Result == "" {
		return "", &ProtocolError{Provider: r.Name(), Message: "no result in response"}
	}

	return parsed.Result, nil
}

var _ Generator = (*RapidAPI)(nil)
