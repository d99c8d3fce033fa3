package provider

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/socrates-lambda/internal/config"
)

type Handler struct {
	gateway Generator
}

func NewHandler(g Generator) *Handler {
	return &Handler{gateway: g}
}

// Chat forwards a chat request to the selected provider.
//
// @Summary      Chat completion proxy
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      GenerationRequest  true  "Chat request"
// @Success      200      {object}  GenerationResult
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/chat [post]
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid chat request body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.gateway.Generate(r.Context(), req)
	if err != nil {
		status, message := StatusFor(err)
		if status >= http.StatusInternalServerError {
			log.WithError(err).Error("Chat generation failed")
		}
		config.Error(w, status, message)
		return
	}

	config.JSON(w, http.StatusOK, result)
}

// StatusFor maps gateway errors onto the HTTP status and message returned to callers.
// Upstream failures keep the provider's status and raw body.
func StatusFor(err error) (int, string) {
	var upstreamErr *UpstreamError
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrMissingCredential):
		return http.StatusInternalServerError, err.Error()
	case errors.Is(err, ErrResponseTooLarge):
		return http.StatusBadGateway, err.Error()
	case errors.As(err, &upstreamErr):
		status := upstreamErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		return status, upstreamErr.Body
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
