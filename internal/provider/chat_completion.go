package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/oauth2"
)

const maxResponseBytes = 8 << 20

// chatCompletionBackend talks to OpenAI-compatible chat completion endpoints
// (GitHub Models, Mistral).
type chatCompletionBackend struct {
	name     string
	endpoint string
	client   *http.Client
	maxBody  int64
}

func NewChatCompletionBackend(name, endpoint string, client *http.Client) Backend {
	if client == nil {
		client = http.DefaultClient
	}
	return &chatCompletionBackend{name: name, endpoint: endpoint, client: client, maxBody: maxResponseBytes}
}

type chatCompletionBody struct {
	Model       string                         `json:"model"`
	Messages    []openai.ChatCompletionMessage `json:"messages"`
	Temperature *float32                       `json:"temperature,omitempty"`
	MaxTokens   *int                           `json:"max_tokens,omitempty"`
	TopP        *float32                       `json:"top_p,omitempty"`
}

func (b *chatCompletionBackend) Complete(ctx context.Context, credential string, req GenerationRequest) (*GenerationResult, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	payload, err := json.Marshal(chatCompletionBody{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		TopP:        req.TopP,
	})
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", b.name, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", b.name, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := b.authorized(credential).Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", b.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, b.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", b.name, err)
	}
	if int64(len(body)) > b.maxBody {
		return nil, fmt.Errorf("%w: %s sent more than %d bytes", ErrResponseTooLarge, b.name, b.maxBody)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Provider: b.name, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return newResult(body), nil
}

// authorized wraps the base client so every request carries the bearer credential.
func (b *chatCompletionBackend) authorized(credential string) *http.Client {
	return &http.Client{
		Timeout: b.client.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: credential, TokenType: "Bearer"}),
			Base:   b.client.Transport,
		},
	}
}
