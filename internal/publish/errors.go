// Package publish submits validated content to the platform API, signing
// each outbound call with OAuth 1.0a and translating transport failures into
// a stable error taxonomy.
package publish

import "fmt"

// ValidationError represents malformed caller input (empty tweet, oversize
// media, unsupported media format). It fails fast before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ConfigError represents missing or incomplete integration credentials. The
// message is surfaced verbatim and should tell the user what to configure.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// TransportError represents a failed platform call: a network error or a
// non-2xx response. Publish transport failures are terminal for the attempt.
type TransportError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("platform error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("platform error: %s", e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ProtocolError represents a 2xx platform response missing an expected field,
// such as a create call that returns no post identifier.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("platform protocol error: %s", e.Message)
}
