// Package types provides type definitions for structured data used throughout the content-autopilot system.
package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// DefaultContentLength is the target character budget when none is requested.
const DefaultContentLength = 60

// DefaultTemperature is the sampling temperature (0-100 scale) when none is requested.
const DefaultTemperature = 70

// GenerationSettings controls how content is generated.
type GenerationSettings struct {
	Tone            string `json:"tone,omitempty"`
	CreativityLevel int    `json:"creativityLevel,omitempty" validate:"gte=0,lte=100"`
	TargetAudience  string `json:"targetAudience,omitempty"`
	ContentLength   int    `json:"contentLength,omitempty" validate:"gte=0"`
	Temperature     int    `json:"temperature,omitempty" validate:"gte=0,lte=100"`
}

// ApplyDefaults fills in zero-valued settings with their defaults.
func (s *GenerationSettings) ApplyDefaults() {
	if s.ContentLength == 0 {
		s.ContentLength = DefaultContentLength
	}
	if s.Temperature == 0 {
		s.Temperature = DefaultTemperature
	}
}

// GenerationRequest represents a request to generate post content.
// It is immutable once issued: the pipeline never mutates it.
type GenerationRequest struct {
	Prompt   string             `json:"prompt" validate:"required"`
	Settings GenerationSettings `json:"settings"`
	Model    string             `json:"model" validate:"required"`
	UserID   string             `json:"userId" validate:"required"`
}

// Validate validates the GenerationRequest using the validator.
func (r *GenerationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// TagList is an ordered sequence of content tags.
// Providers sometimes return tags as a string or an object instead of an
// array; those decode to nil rather than failing the whole document, so the
// validator can substitute defaults.
type TagList []string

// UnmarshalJSON decodes a JSON array of strings, tolerating any other shape.
func (t *TagList) UnmarshalJSON(data []byte) error {
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		*t = nil
		return nil
	}
	*t = tags
	return nil
}

// GeneratedContent is the canonical output of the generation pipeline.
type GeneratedContent struct {
	Title    string  `json:"title"`
	Body     string  `json:"body"`
	Tags     TagList `json:"tags"`
	MediaURL string  `json:"mediaUrl"`
	// Degraded marks content synthesized by the template fallback after
	// every provider failed, so callers can warn the user.
	Degraded bool `json:"degraded,omitempty"`
}
