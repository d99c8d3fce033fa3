package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/socrates-lambda/internal/aiquiz"
	"github.com/saulo-duarte/socrates-lambda/internal/attempt"
	"github.com/saulo-duarte/socrates-lambda/internal/auth"
	"github.com/saulo-duarte/socrates-lambda/internal/config"
	_ "github.com/saulo-duarte/socrates-lambda/internal/docs"
	"github.com/saulo-duarte/socrates-lambda/internal/metrics"
	"github.com/saulo-duarte/socrates-lambda/internal/middlewares"
	"github.com/saulo-duarte/socrates-lambda/internal/provider"
	"github.com/saulo-duarte/socrates-lambda/internal/quiz"
	"github.com/saulo-duarte/socrates-lambda/internal/user"
)

type RouterConfig struct {
	AllowedOrigins  []string
	ProviderHandler *provider.Handler
	AIQuizHandler   *aiquiz.Handler
	QuizHandler     *quiz.Handler
	AuthHandler     *auth.Handler
	UserHandler     *user.Handler
	// AttemptHandler is nil when no database is configured.
	AttemptHandler *attempt.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/chat", provider.Routes(cfg.ProviderHandler))
		r.Mount("/mcq", aiquiz.Routes(cfg.AIQuizHandler))
	})

	r.Mount("/quiz-sessions", quiz.Routes(cfg.QuizHandler))
	r.Post("/auth/logout", cfg.AuthHandler.Logout)
	r.Mount("/users", user.Routes(cfg.UserHandler))

	if cfg.AttemptHandler != nil {
		r.Mount("/attempts", attempt.Routes(cfg.AttemptHandler))
	}
	return r
}
