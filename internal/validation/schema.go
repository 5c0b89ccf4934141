package validation

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// contentSchema is the JSON Schema for the canonical generated-content
// shape. Only structural requirements live here; length and tag rules are
// settings-dependent and enforced in Go.
const contentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "GeneratedContent",
  "type": "object",
  "required": ["title", "body"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "body": {"type": "string", "minLength": 1},
    "tags": {
      "type": ["array", "null"],
      "items": {"type": "string"}
    },
    "mediaUrl": {"type": "string"}
  }
}`

// checkSchema validates a document against the content schema and returns a
// readable summary of any violations.
func checkSchema(document any) error {
	raw, err := json.Marshal(document)
	if err != nil {
		return &QualityError{Message: "content is not serializable"}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(contentSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return &QualityError{Message: "content could not be checked: " + err.Error()}
	}
	if result.Valid() {
		return nil
	}

	var sb strings.Builder
	for i, desc := range result.Errors() {
		if i > 0 {
			sb.WriteString("; ")
		}
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		sb.WriteString(field + ": " + desc.Description())
	}
	return &QualityError{Message: sb.String()}
}
