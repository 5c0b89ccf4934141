package llm

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/content-autopilot/internal/types"
)

// ParseContent normalizes a provider's free-text response into the canonical
// GeneratedContent shape. Three attempts, in order:
//  1. direct JSON parse of the whole (fence-stripped) response,
//  2. parse of the first balanced {...} substring,
//  3. wrap the raw text in a generated-content envelope.
// The last step always succeeds: a provider that answered at all produces
// publishable content.
func ParseContent(raw string) types.GeneratedContent {
	cleaned := CleanJSONBlock(raw)

	if content, ok := decodeContent(cleaned); ok {
		return content
	}

	if obj := ExtractJSONObject(cleaned); obj != "" {
		if content, ok := decodeContent(obj); ok {
			return content
		}
	}

	return types.GeneratedContent{
		Title:    "Generated Content",
		Body:     raw,
		Tags:     types.TagList{"ai", "generated"},
		MediaURL: "",
	}
}

// decodeContent attempts a strict decode into GeneratedContent. A document
// that is not a JSON object, or whose title/body are not usable strings,
// reports ok=false so the caller can fall through.
func decodeContent(text string) (types.GeneratedContent, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return types.GeneratedContent{}, false
	}

	var content types.GeneratedContent
	if err := json.Unmarshal([]byte(trimmed), &content); err != nil {
		return types.GeneratedContent{}, false
	}
	return content, true
}
