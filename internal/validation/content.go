package validation

import (
	"fmt"

	"github.com/jonathan/content-autopilot/internal/types"
)

// MaxTags is the largest tag count allowed through the gate.
const MaxTags = 10

// truncationMultiplier widens the hard ceiling well past the target length.
// Verbose models routinely overshoot; the gate tolerates that but still
// bounds the worst case.
const truncationMultiplier = 10

// defaultTags replace a tags value that was not a sequence of strings.
var defaultTags = types.TagList{"generated", "ai"}

// Validate enforces the content-quality gate and returns the normalized
// content. Title and body must be non-empty; the body must clear the minimum
// length for the requested content budget; absurdly long bodies are
// truncated rather than rejected; tags are defaulted and clipped.
func Validate(content types.GeneratedContent, settings types.GenerationSettings) (types.GeneratedContent, error) {
	if content.Tags == nil {
		content.Tags = append(types.TagList{}, defaultTags...)
	}
	if len(content.Tags) > MaxTags {
		content.Tags = content.Tags[:MaxTags]
	}

	if err := checkSchema(content); err != nil {
		return types.GeneratedContent{}, err
	}

	target := settings.ContentLength
	if target == 0 {
		target = types.DefaultContentLength
	}
	// Half the target, rounded up, floored at 10.
	minLength := (target + 1) / 2
	if minLength < 10 {
		minLength = 10
	}
	maxLength := target * 2

	bodyRunes := []rune(content.Body)
	if len(bodyRunes) < minLength {
		return types.GeneratedContent{}, &QualityError{
			Message: fmt.Sprintf("body too short: %d characters, need at least %d", len(bodyRunes), minLength),
		}
	}
	if ceiling := maxLength * truncationMultiplier; len(bodyRunes) > ceiling {
		content.Body = string(bodyRunes[:ceiling]) + "..."
	}

	return content, nil
}
