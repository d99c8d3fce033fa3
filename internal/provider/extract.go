package provider

import (
	"encoding/json"
	"strings"
)

func newResult(body []byte) *GenerationResult {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		payload = string(body)
	}
	return &GenerationResult{Content: ExtractContent(payload), Raw: payload}
}

// ExtractContent picks the reply text from a decoded provider payload. The first non-empty
// of choices[0].message.content, choices[0].delta.content, content, or the payload itself
// when it is a plain string wins.
func ExtractContent(raw any) string {
	obj, ok := raw.(map[string]any)
	if !ok {
		s, _ := raw.(string)
		return s
	}

	if choice := firstChoice(obj); choice != nil {
		if s := textOf(nested(choice, "message", "content")); s != "" {
			return s
		}
		if s := textOf(nested(choice, "delta", "content")); s != "" {
			return s
		}
	}
	return textOf(obj["content"])
}

func firstChoice(obj map[string]any) map[string]any {
	choices, ok := obj["choices"].([]any)
	if !ok || len(choices) == 0 {
		return nil
	}
	choice, _ := choices[0].(map[string]any)
	return choice
}

func nested(obj map[string]any, parent, field string) any {
	inner, ok := obj[parent].(map[string]any)
	if !ok {
		return nil
	}
	return inner[field]
}

// textOf accepts a string or a list of content parts ({"type":"text","text":...}).
func textOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		var sb strings.Builder
		for _, part := range t {
			switch p := part.(type) {
			case string:
				sb.WriteString(p)
			case map[string]any:
				if text, ok := p["text"].(string); ok {
					sb.WriteString(text)
				}
			}
		}
		return sb.String()
	}
	return ""
}
