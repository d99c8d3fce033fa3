package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/socrates-lambda/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.OptionalAuthMiddleware)

	r.Post("/", h.CreateSession)
	r.Get("/{id}", h.GetSession)
	r.Post("/{id}/generate", h.GenerateQuestions)
	r.Put("/{id}/answers", h.Answer)
	r.Post("/{id}/submit", h.Submit)
	r.Post("/{id}/reset", h.Reset)
	r.Get("/{id}/events", h.Events)
	return r
}
