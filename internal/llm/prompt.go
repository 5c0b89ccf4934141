package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/content-autopilot/internal/types"
)

// BuildPostPrompt constructs the provider prompt for a post-generation
// request. Every provider receives the same prompt so fallback output stays
// comparable.
func BuildPostPrompt(userPrompt string, settings types.GenerationSettings) string {
	var sb strings.Builder

	sb.WriteString("You are a social media copywriter.\n\n")
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	sb.WriteString("  \"title\": \"string\" (required) // short post title\n")
	sb.WriteString("  \"body\": \"string\" (required) // the post text itself\n")
	sb.WriteString("  \"tags\": [\"string\"] // up to 10 topic tags\n")
	sb.WriteString("  \"mediaUrl\": \"string\" // optional image URL, empty if none\n")
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")
	if settings.Tone != "" {
		sb.WriteString(fmt.Sprintf("- Write in a %s tone.\n", settings.Tone))
	}
	if settings.TargetAudience != "" {
		sb.WriteString(fmt.Sprintf("- Write for this audience: %s.\n", settings.TargetAudience))
	}
	if settings.ContentLength > 0 {
		sb.WriteString(fmt.Sprintf("- Aim for roughly %d characters of body text.\n", settings.ContentLength))
	}
	sb.WriteString("\n")

	sb.WriteString("Topic:\n\"\"\"\n")
	sb.WriteString(userPrompt)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}
