// Package llm provides AI provider adapters and response normalization for
// the generation pipeline. Each adapter maps (prompt, settings, key) to raw
// provider text, hiding that provider's transport and response shape.
package llm

import "fmt"

// TransportError represents a network failure or non-2xx response from a
// provider. The generation orchestrator retries these via its fallback chain.
type TransportError struct {
	Provider   string
	StatusCode int
	Message    string
	Cause      error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s request failed: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s request failed: %s", e.Provider, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ProtocolError represents a 2xx provider response missing an expected field.
// Treated like a transport failure for fallback purposes.
type ProtocolError struct {
	Provider string
	Message  string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s returned an unusable response: %s", e.Provider, e.Message)
}
