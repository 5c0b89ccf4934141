package llm

import (
	"testing"

	"github.com/jonathan/content-autopilot/internal/types"
)

func TestParseContent_DirectJSON(t *testing.T) {
	raw := `{"title":"Coffee Talk","body":"A casual message about coffee.","tags":["coffee"],"mediaUrl":""}`

	content := ParseContent(raw)

	if content.Title != "Coffee Talk" {
		t.Errorf("Title = %q", content.Title)
	}
	if content.Body != "A casual message about coffee." {
		t.Errorf("Body = %q", content.Body)
	}
	if len(content.Tags) != 1 || content.Tags[0] != "coffee" {
		t.Errorf("Tags = %v", content.Tags)
	}
}

func TestParseContent_FencedJSON(t *testing.T) {
	raw := "```json\n{\"title\":\"T\",\"body\":\"B\",\"tags\":[],\"mediaUrl\":\"\"}\n```"

	content := ParseContent(raw)

	if content.Title != "T" || content.Body != "B" {
		t.Errorf("ParseContent() = %+v", content)
	}
}

func TestParseContent_EmbeddedObject(t *testing.T) {
	raw := `Sure! Here's your post: {"title":"T","body":"B"} — enjoy.`

	content := ParseContent(raw)

	if content.Title != "T" || content.Body != "B" {
		t.Errorf("ParseContent() = %+v", content)
	}
}

func TestParseContent_PlainProseWrapped(t *testing.T) {
	raw := "Coffee is best enjoyed slowly, preferably before any meetings."

	content := ParseContent(raw)

	if content.Title != "Generated Content" {
		t.Errorf("Title = %q, want %q", content.Title, "Generated Content")
	}
	if content.Body != raw {
		t.Errorf("Body = %q, want raw text", content.Body)
	}
	want := types.TagList{"ai", "generated"}
	if len(content.Tags) != 2 || content.Tags[0] != want[0] || content.Tags[1] != want[1] {
		t.Errorf("Tags = %v, want %v", content.Tags, want)
	}
	if content.MediaURL != "" {
		t.Errorf("MediaURL = %q, want empty", content.MediaURL)
	}
}

func TestParseContent_NonStringTagsTolerated(t *testing.T) {
	// A tags value that is not an array of strings must not sink the whole
	// parse; it decodes to nil and the validator substitutes defaults.
	raw := `{"title":"T","body":"B","tags":"not-a-list","mediaUrl":""}`

	content := ParseContent(raw)

	if content.Title != "T" || content.Body != "B" {
		t.Errorf("ParseContent() = %+v", content)
	}
	if content.Tags != nil {
		t.Errorf("Tags = %v, want nil", content.Tags)
	}
}

func TestParseContent_MalformedEmbeddedObjectWrapped(t *testing.T) {
	raw := `prefix {"title": unquoted} suffix`

	content := ParseContent(raw)

	if content.Title != "Generated Content" || content.Body != raw {
		t.Errorf("ParseContent() = %+v, want raw wrap", content)
	}
}
