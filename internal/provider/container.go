package provider

import (
	"net/http"
	"time"

	"github.com/saulo-duarte/socrates-lambda/internal/config"
)

type ProviderContainer struct {
	Gateway *Gateway
	Handler *Handler
}

func NewProviderContainer() *ProviderContainer {
	httpClient := &http.Client{Timeout: 90 * time.Second}
	gateway := NewGateway(config.EnvCredentials{}, httpClient)

	return &ProviderContainer{
		Gateway: gateway,
		Handler: NewHandler(gateway),
	}
}
