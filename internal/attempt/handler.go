package attempt

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/socrates-lambda/internal/auth"
	"github.com/saulo-duarte/socrates-lambda/internal/config"
)

type Handler struct {
	service AttemptService
}

func NewHandler(s AttemptService) *Handler {
	return &Handler{service: s}
}

// ListAttempts returns the caller's scored attempts, newest first.
//
// @Summary   List attempts
// @Tags      attempts
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}   Attempt
// @Failure   401  {object}  map[string]string
// @Router    /attempts [get]
func (h *Handler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	attempts, err := h.service.ListByUser(r.Context(), claims.UserID)
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if attempts == nil {
		attempts = []*Attempt{}
	}
	config.JSON(w, http.StatusOK, attempts)
}

// @Summary   Get attempt
// @Tags      attempts
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "Attempt ID"
// @Success   200  {object}  Attempt
// @Failure   404  {object}  map[string]string
// @Router    /attempts/{id} [get]
func (h *Handler) GetAttempt(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	a, err := h.service.Get(r.Context(), claims.UserID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrAttemptNotFound) {
			config.Error(w, http.StatusNotFound, err.Error())
			return
		}
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	config.JSON(w, http.StatusOK, a)
}
