package provider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

type staticCredentials map[string]string

func (c staticCredentials) Credential(provider string) string { return c[provider] }

func newTestGateway(t *testing.T, creds staticCredentials, handler http.HandlerFunc) (*Gateway, *int32) {
	t.Helper()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	g := NewGateway(creds, srv.Client())
	g.WithBackend(ProviderGitHub, NewChatCompletionBackend(ProviderGitHub, srv.URL, srv.Client()))
	g.WithBackend(ProviderMistral, NewChatCompletionBackend(ProviderMistral, srv.URL, srv.Client()))
	return g, &calls
}

func validRequest(providerName string) GenerationRequest {
	temp := float32(0.2)
	maxTokens := 256
	return GenerationRequest{
		Provider:    providerName,
		Model:       "mistral-small-latest",
		Messages:    []Message{{Role: "system", Content: "be brief"}, {Role: "user", Content: "hi"}},
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	}
}

func TestGatewayGenerateSuccess(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	g, calls := newTestGateway(t, staticCredentials{ProviderMistral: "sk-test"}, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello there"}}]}`))
	})

	res, err := g.Generate(context.Background(), validRequest(ProviderMistral))
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if res.Content != "hello there" {
		t.Errorf("Content = %q, want %q", res.Content, "hello there")
	}
	if *calls != 1 {
		t.Errorf("upstream calls = %d, want 1", *calls)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody["model"] != "mistral-small-latest" {
		t.Errorf("model = %v", gotBody["model"])
	}
	if gotBody["max_tokens"] != float64(256) {
		t.Errorf("max_tokens = %v", gotBody["max_tokens"])
	}
	if _, ok := gotBody["top_p"]; ok {
		t.Errorf("top_p should be omitted when not set")
	}
	msgs, _ := gotBody["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("messages = %v", gotBody["messages"])
	}
	first, _ := msgs[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "be brief" {
		t.Errorf("first message = %v", first)
	}
}

func TestGatewayMissingCredential(t *testing.T) {
	g, calls := newTestGateway(t, staticCredentials{}, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("upstream must not be called without a credential")
	})

	_, err := g.Generate(context.Background(), validRequest(ProviderGitHub))
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("err = %v, want ErrMissingCredential", err)
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.EnvVar != "GITHUB_TOKEN" {
		t.Errorf("ConfigError = %+v", cfgErr)
	}
	if *calls != 0 {
		t.Errorf("upstream calls = %d, want 0", *calls)
	}
}

func TestGatewayUpstreamError(t *testing.T) {
	g, calls := newTestGateway(t, staticCredentials{ProviderGitHub: "ghp"}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	})

	_, err := g.Generate(context.Background(), validRequest(ProviderGitHub))
	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("err = %v, want *UpstreamError", err)
	}
	if upstreamErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d", upstreamErr.StatusCode)
	}
	if upstreamErr.Body != `{"error":"rate limited"}` {
		t.Errorf("Body = %q", upstreamErr.Body)
	}
	if *calls != 1 {
		t.Errorf("upstream calls = %d, want exactly 1 (no retries)", *calls)
	}
}

func TestGatewayRejectsOversizedReply(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"at limit", `{"content":"0123456789abcdef0123"}`, false},
		{"over limit", `{"content":"0123456789abcdef01234"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGateway(t, staticCredentials{ProviderMistral: "k"}, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})
			g.backends[ProviderMistral].(*chatCompletionBackend).maxBody = 34

			result, err := g.Generate(context.Background(), validRequest(ProviderMistral))
			if tt.wantErr {
				if !errors.Is(err, ErrResponseTooLarge) {
					t.Fatalf("err = %v, want ErrResponseTooLarge", err)
				}
				if result != nil {
					t.Errorf("truncated result returned: %+v", result)
				}
				return
			}
			if err != nil || result.Content != "0123456789abcdef0123" {
				t.Errorf("result = %+v, err = %v", result, err)
			}
		})
	}
}

func TestGatewayValidation(t *testing.T) {
	g, calls := newTestGateway(t, staticCredentials{ProviderMistral: "k", ProviderGitHub: "k"}, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("upstream must not be called for invalid requests")
	})

	tests := []struct {
		name string
		mut  func(*GenerationRequest)
	}{
		{"unsupported provider", func(r *GenerationRequest) { r.Provider = "openrouter" }},
		{"missing model", func(r *GenerationRequest) { r.Model = "" }},
		{"no messages", func(r *GenerationRequest) { r.Messages = nil }},
		{"unknown role", func(r *GenerationRequest) { r.Messages = []Message{{Role: "robot", Content: "x"}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(ProviderMistral)
			tt.mut(&req)
			_, err := g.Generate(context.Background(), req)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("err = %v, want ErrInvalidRequest", err)
			}
		})
	}
	if *calls != 0 {
		t.Errorf("upstream calls = %d, want 0", *calls)
	}
}

func TestGatewayProviders(t *testing.T) {
	g := NewGateway(staticCredentials{}, nil)
	got := g.Providers()
	want := []string{ProviderGemini, ProviderGitHub, ProviderMistral}
	if len(got) != len(want) {
		t.Fatalf("Providers() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Providers()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
