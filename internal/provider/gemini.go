package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

type geminiBackend struct {
	httpClient *http.Client
	baseURL    string
}

// NewGeminiBackend builds a Gemini API backend. An empty baseURL keeps the SDK default.
func NewGeminiBackend(httpClient *http.Client, baseURL string) Backend {
	return &geminiBackend{httpClient: httpClient, baseURL: baseURL}
}

func (b *geminiBackend) Complete(ctx context.Context, credential string, req GenerationRequest) (*GenerationResult, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      credential,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  b.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: b.baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	system, contents := toGeminiContents(req.Messages)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: system,
		Temperature:       req.Temperature,
		TopP:              req.TopP,
	}
	if req.MaxTokens != nil {
		cfg.MaxOutputTokens = int32(*req.MaxTokens)
	}

	resp, err := client.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		if upstream := geminiUpstreamError(err); upstream != nil {
			return nil, upstream
		}
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	return &GenerationResult{Content: resp.Text(), Raw: resp}, nil
}

// toGeminiContents folds system messages into the system instruction and maps the
// assistant role onto Gemini's model role.
func toGeminiContents(messages []Message) (*genai.Content, []*genai.Content) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case openai.ChatMessageRoleSystem:
			system = append(system, m.Content)
		case openai.ChatMessageRoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  string(genai.RoleModel),
				Parts: []*genai.Part{{Text: m.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  string(genai.RoleUser),
				Parts: []*genai.Part{{Text: m.Content}},
			})
		}
	}

	if len(system) == 0 {
		return nil, contents
	}
	return &genai.Content{Parts: []*genai.Part{{Text: strings.Join(system, "\n\n")}}}, contents
}

func geminiUpstreamError(err error) *UpstreamError {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{Provider: ProviderGemini, StatusCode: apiErr.Code, Body: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &UpstreamError{Provider: ProviderGemini, StatusCode: apiErrPtr.Code, Body: apiErrPtr.Message}
	}
	return nil
}
