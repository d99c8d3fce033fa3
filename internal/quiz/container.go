package quiz

import (
	"github.com/saulo-duarte/socrates-lambda/internal/aiquiz"
	"github.com/saulo-duarte/socrates-lambda/internal/config"
	"github.com/saulo-duarte/socrates-lambda/internal/docstore"
)

type QuizContainer struct {
	Repo    SessionRepository
	Service SessionService
	Handler *Handler
}

func NewQuizContainer(settings *config.Settings, store docstore.Store, mcq aiquiz.Service, attempts AttemptRecorder) *QuizContainer {
	repo := NewRepository(store, settings.SessionTTL, settings.GenerationLock)
	service := NewService(repo, mcq, attempts)
	handler := NewHandler(service)

	return &QuizContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
