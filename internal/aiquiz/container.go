package aiquiz

import (
	"github.com/saulo-duarte/socrates-lambda/internal/config"
	"github.com/saulo-duarte/socrates-lambda/internal/provider"
)

type AIQuizContainer struct {
	Service Service
	Handler *Handler
}

func NewAIQuizContainer(settings *config.Settings, gateway provider.Generator) *AIQuizContainer {
	service := NewService(gateway, settings.MCQProvider, settings.MCQModel)
	handler := NewHandler(service, settings.MaxUploadBytes)

	return &AIQuizContainer{
		Service: service,
		Handler: handler,
	}
}
