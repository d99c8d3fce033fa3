package provider

import (
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	ProviderGitHub  = "github"
	ProviderMistral = "mistral"
	ProviderGemini  = "gemini"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerationRequest is built fresh for every call and not modified afterwards.
type GenerationRequest struct {
	Provider    string    `json:"provider"`
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float32  `json:"temperature,omitempty"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
	TopP        *float32  `json:"top_p,omitempty"`
}

type GenerationResult struct {
	Content string `json:"content"`
	Raw     any    `json:"raw"`
}

var knownRoles = map[string]bool{
	openai.ChatMessageRoleSystem:    true,
	openai.ChatMessageRoleUser:      true,
	openai.ChatMessageRoleAssistant: true,
}

func (r GenerationRequest) Validate() error {
	if r.Model == "" {
		return invalid("model is required")
	}
	if len(r.Messages) == 0 {
		return invalid("messages must be a non-empty list")
	}
	for i, m := range r.Messages {
		if !knownRoles[m.Role] {
			return invalid(fmt.Sprintf("messages[%d]: unknown role %q", i, m.Role))
		}
	}
	return nil
}
