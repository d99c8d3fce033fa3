package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/saulo-duarte/socrates-lambda/internal/config"
	"github.com/saulo-duarte/socrates-lambda/internal/metrics"
	"github.com/sirupsen/logrus"
)

const (
	GitHubModelsEndpoint = "https://models.inference.ai.azure.com/chat/completions"
	MistralEndpoint      = "https://api.mistral.ai/v1/chat/completions"
)

// CredentialSource resolves the API credential of a provider at call time.
type CredentialSource interface {
	Credential(provider string) string
}

// Backend performs exactly one upstream call with an already validated request.
type Backend interface {
	Complete(ctx context.Context, credential string, req GenerationRequest) (*GenerationResult, error)
}

type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error)
}

type Gateway struct {
	creds    CredentialSource
	backends map[string]Backend
}

func NewGateway(creds CredentialSource, httpClient *http.Client) *Gateway {
	return &Gateway{
		creds: creds,
		backends: map[string]Backend{
			ProviderGitHub:  NewChatCompletionBackend(ProviderGitHub, GitHubModelsEndpoint, httpClient),
			ProviderMistral: NewChatCompletionBackend(ProviderMistral, MistralEndpoint, httpClient),
			ProviderGemini:  NewGeminiBackend(httpClient, ""),
		},
	}
}

// WithBackend registers or replaces the backend serving a provider name.
func (g *Gateway) WithBackend(name string, b Backend) *Gateway {
	g.backends[name] = b
	return g
}

func (g *Gateway) Providers() []string {
	names := make([]string, 0, len(g.backends))
	for name := range g.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (g *Gateway) Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"provider": req.Provider,
		"model":    req.Model,
	})

	backend, ok := g.backends[req.Provider]
	if !ok {
		return nil, invalid(fmt.Sprintf("unsupported provider %q", req.Provider))
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	credential := g.creds.Credential(req.Provider)
	if credential == "" {
		metrics.ObserveProviderCall(req.Provider, metrics.OutcomeConfigError, 0)
		err := &ConfigError{Provider: req.Provider, EnvVar: config.CredentialEnvName(req.Provider)}
		log.WithError(err).Error("Refusing unauthenticated upstream call")
		return nil, err
	}

	start := time.Now()
	result, err := backend.Complete(ctx, credential, req)
	elapsed := time.Since(start)

	if err != nil {
		var upstreamErr *UpstreamError
		if errors.As(err, &upstreamErr) {
			metrics.ObserveProviderCall(req.Provider, metrics.OutcomeUpstream, elapsed)
			log.WithField("status", upstreamErr.StatusCode).Warn("Upstream provider returned an error status")
		} else {
			metrics.ObserveProviderCall(req.Provider, metrics.OutcomeTransport, elapsed)
			log.WithError(err).Error("Upstream provider call failed")
		}
		return nil, err
	}

	metrics.ObserveProviderCall(req.Provider, metrics.OutcomeSuccess, elapsed)
	log.WithField("elapsed_ms", elapsed.Milliseconds()).Debug("Generation completed")
	return result, nil
}
