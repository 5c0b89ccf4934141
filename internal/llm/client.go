package llm

import (
	"context"

	"github.com/jonathan/content-autopilot/internal/types"
)

// Generator is the single capability every provider adapter implements.
// The API key is passed per call because credentials are fetched fresh from
// the settings store for every request.
type Generator interface {
	// Name returns the provider identifier used in logs and errors.
	Name() string
	// Generate produces raw text for the prompt. Any error (network, non-2xx,
	// unusable payload) signals the orchestrator to try the next provider.
	Generate(ctx context.Context, prompt string, settings types.GenerationSettings, apiKey string) (string, error)
}

// temperature converts the 0-100 integer scale used by the settings UI to the
// 0.0-1.0 float scale providers expect.
func temperature(settings types.GenerationSettings) float32 {
	t := settings.Temperature
	if t == 0 {
		t = types.DefaultTemperature
	}
	return float32(t) / 100
}
