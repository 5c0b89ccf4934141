package generate

import (
	"fmt"
	"strings"

	"github.com/jonathan/content-autopilot/internal/types"
)

// templatePromptLimit bounds how much prompt text the template echoes back.
const templatePromptLimit = 80

// templateContent synthesizes a deterministic post from the prompt and
// settings. It is the pipeline's last resort after every provider failed;
// the result is flagged degraded so the UI can warn the user.
func templateContent(prompt string, settings types.GenerationSettings) types.GeneratedContent {
	echo := strings.TrimSpace(prompt)
	if runes := []rune(echo); len(runes) > templatePromptLimit {
		echo = string(runes[:templatePromptLimit-3]) + "..."
	}

	tone := settings.Tone
	if tone == "" {
		tone = "neutral"
	}
	audience := settings.TargetAudience
	if audience == "" {
		audience = "a general audience"
	}

	return types.GeneratedContent{
		Title:    "Draft Post",
		Body:     fmt.Sprintf("%s (a %s note for %s)", echo, tone, audience),
		Tags:     types.TagList{"ai", "generated"},
		MediaURL: "",
		Degraded: true,
	}
}
