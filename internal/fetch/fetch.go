// Package fetch provides bounded URL downloading for media attachments.
// This package centralizes HTTP fetching logic used by publishing.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrTooLarge marks a download rejected for exceeding the size ceiling.
var ErrTooLarge = errors.New("media too large")

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ContentAutopilot/1.0)"

// Size ceilings by media kind, matching the platform's upload limits.
const (
	MaxImageBytes = 5 << 20
	MaxVideoBytes = 512 << 20
)

// Result holds the downloaded bytes and response metadata.
type Result struct {
	URL         string
	Data        []byte
	ContentType string
	StatusCode  int
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
	Client    *http.Client
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		MaxBytes:  MaxImageBytes,
	}
}

// MaxBytesFor returns the download ceiling for a media type string.
// Unknown types get the conservative image ceiling.
func MaxBytesFor(mediaType string) int64 {
	if mediaType == "video" {
		return MaxVideoBytes
	}
	return MaxImageBytes
}

// Media downloads the resource at urlStr into memory, failing fast if the
// response exceeds opts.MaxBytes. The whole payload is buffered because the
// upload endpoint needs it in one piece.
func Media(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = MaxImageBytes
	}

	// Validate URL
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	// Reject early when the server declares an oversize payload.
	if resp.ContentLength > maxBytes {
		return nil, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("%d bytes, limit %d", resp.ContentLength, maxBytes),
			Cause:   ErrTooLarge,
		}
	}

	// Read at most one byte past the limit so overruns are detectable even
	// without a Content-Length header.
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to read response body",
			Cause:   err,
		}
	}
	if int64(len(data)) > maxBytes {
		return nil, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("exceeds %d bytes", maxBytes),
			Cause:   ErrTooLarge,
		}
	}

	return &Result{
		URL:         urlStr,
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}, nil
}
