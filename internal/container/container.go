package container

import (
	"context"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/socrates-lambda/internal/aiquiz"
	"github.com/saulo-duarte/socrates-lambda/internal/attempt"
	"github.com/saulo-duarte/socrates-lambda/internal/auth"
	"github.com/saulo-duarte/socrates-lambda/internal/config"
	"github.com/saulo-duarte/socrates-lambda/internal/docstore"
	"github.com/saulo-duarte/socrates-lambda/internal/provider"
	"github.com/saulo-duarte/socrates-lambda/internal/quiz"
	"github.com/saulo-duarte/socrates-lambda/internal/router"
	"github.com/saulo-duarte/socrates-lambda/internal/user"
)

type Container struct {
	Settings          *config.Settings
	ProviderContainer *provider.ProviderContainer
	AIQuizContainer   *aiquiz.AIQuizContainer
	QuizContainer     *quiz.QuizContainer
	AttemptContainer  *attempt.AttemptContainer
	AuthHandler       *auth.Handler
	UserHandler       *user.Handler
}

func New() *Container {
	config.Init()
	auth.Init()
	if os.Getenv("CRYPTO_KEY") != "" {
		config.InitCrypto()
	}

	ctx := context.Background()
	log := config.WithContext(ctx)
	settings := config.Load()

	var store docstore.Store
	if settings.RedisURL != "" {
		if err := config.ConnectRedis(ctx, settings.RedisURL); err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		store = docstore.NewRedisStore(config.Redis)
	} else {
		log.Warn("REDIS_URL not set, quiz sessions live in process memory")
		store = docstore.NewMemoryStore()
	}
	if config.CryptoEnabled() {
		store = docstore.NewEncryptedStore(store)
	}

	var attemptContainer *attempt.AttemptContainer
	var recorder quiz.AttemptRecorder
	if settings.DatabaseDSN != "" {
		if err := config.Connect(ctx, settings.DatabaseDSN); err != nil {
			log.Fatalf("failed to connect to DB: %v", err)
		}
		if err := attempt.Migrate(config.DB); err != nil {
			log.Fatalf("failed to migrate attempts: %v", err)
		}
		attemptContainer = attempt.NewAttemptContainer(config.DB)
		recorder = attemptContainer.Service
	} else {
		log.Warn("DATABASE_DSN not set, attempt history disabled")
	}

	providerContainer := provider.NewProviderContainer()
	aiQuizContainer := aiquiz.NewAIQuizContainer(settings, providerContainer.Gateway)
	quizContainer := quiz.NewQuizContainer(settings, store, aiQuizContainer.Service, recorder)

	return &Container{
		Settings:          settings,
		ProviderContainer: providerContainer,
		AIQuizContainer:   aiQuizContainer,
		QuizContainer:     quizContainer,
		AttemptContainer:  attemptContainer,
		AuthHandler:       auth.NewHandler(settings.CookieDomain),
		UserHandler:       user.NewHandler(),
	}
}

func (c *Container) Router() *chi.Mux {
	cfg := router.RouterConfig{
		AllowedOrigins:  c.Settings.AllowedOrigins,
		ProviderHandler: c.ProviderContainer.Handler,
		AIQuizHandler:   c.AIQuizContainer.Handler,
		QuizHandler:     c.QuizContainer.Handler,
		AuthHandler:     c.AuthHandler,
		UserHandler:     c.UserHandler,
	}
	if c.AttemptContainer != nil {
		cfg.AttemptHandler = c.AttemptContainer.Handler
	}
	return router.New(cfg)
}
