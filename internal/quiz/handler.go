package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/socrates-lambda/internal/aiquiz"
	"github.com/saulo-duarte/socrates-lambda/internal/auth"
	"github.com/saulo-duarte/socrates-lambda/internal/config"
	"github.com/saulo-duarte/socrates-lambda/internal/docstore"
)

type Handler struct {
	service SessionService
}

func NewHandler(s SessionService) *Handler {
	return &Handler{service: s}
}

func sessionID(r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := config.WithContext(r.Context())

	var incomplete *IncompleteAnswersError
	switch {
	case errors.Is(err, ErrSessionNotFound):
		config.Error(w, http.StatusNotFound, err.Error())
	case errors.As(err, &incomplete):
		config.JSON(w, http.StatusConflict, map[string]any{
			"error":   err.Error(),
			"missing": incomplete.Missing,
		})
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrGenerationInProgress):
		config.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrUnknownQuestion), errors.Is(err, ErrEmptyQuestionSet), errors.Is(err, aiquiz.ErrFileContentRequired):
		config.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNoQuestionsGenerated):
		config.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, docstore.ErrConflict):
		log.WithError(err).Warn("Quiz session kept changing under concurrent writes")
		config.Error(w, http.StatusConflict, "session is being modified concurrently; retry")
	default:
		log.WithError(err).Error("Quiz session request failed")
		config.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

// CreateSession starts an empty quiz session.
//
// @Summary  Create quiz session
// @Tags     quiz-sessions
// @Produce  json
// @Success  201  {object}  SessionView
// @Router   /quiz-sessions [post]
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	hs, err := h.service.Create(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, NewSessionView(hs))
}

// GetSession returns a session. Correct answers are hidden until it is scored.
//
// @Summary  Get quiz session
// @Tags     quiz-sessions
// @Produce  json
// @Param    id   path      string  true  "Session ID"
// @Success  200  {object}  SessionView
// @Failure  404  {object}  map[string]string
// @Router   /quiz-sessions/{id} [get]
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(r)
	if !ok {
		h.writeError(w, r, ErrSessionNotFound)
		return
	}
	hs, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, NewSessionView(hs))
}

// GenerateQuestions fills the session with questions generated from a document.
//
// @Summary  Generate questions for a session
// @Tags     quiz-sessions
// @Accept   json
// @Produce  json
// @Param    id       path      string                  true  "Session ID"
// @Param    request  body      aiquiz.GenerateRequest  true  "Document"
// @Success  200      {object}  SessionView
// @Failure  400      {object}  map[string]string
// @Failure  409      {object}  map[string]string
// @Failure  422      {object}  map[string]string
// @Failure  500      {object}  aiquiz.FailureResponse
// @Router   /quiz-sessions/{id}/generate [post]
func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := sessionID(r)
	if !ok {
		h.writeError(w, r, ErrSessionNotFound)
		return
	}

	var req GenerateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid generate request body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hs, err := h.service.Generate(r.Context(), id, req)
	if err != nil {
		if isGenerationFailure(err) {
			log.WithError(err).Error("Failed to generate questions for session")
			config.JSON(w, http.StatusInternalServerError, aiquiz.FailureResponse{
				Error:             "Failed to generate questions",
				Details:           err.Error(),
				FallbackQuestions: aiquiz.FallbackQuestions(),
			})
			return
		}
		h.writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, NewSessionView(hs))
}

func isGenerationFailure(err error) bool {
	for _, known := range []error{
		ErrSessionNotFound, ErrInvalidState, ErrGenerationInProgress, ErrNoQuestionsGenerated,
		ErrEmptyQuestionSet, aiquiz.ErrFileContentRequired,
	} {
		if errors.Is(err, known) {
			return false
		}
	}
	return true
}

// Answer records the option chosen for one question.
//
// @Summary  Answer a question
// @Tags     quiz-sessions
// @Accept   json
// @Produce  json
// @Param    id       path      string         true  "Session ID"
// @Param    request  body      AnswerRequest  true  "Answer"
// @Success  200      {object}  SessionView
// @Failure  400      {object}  map[string]string
// @Failure  409      {object}  map[string]string
// @Router   /quiz-sessions/{id}/answers [put]
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(r)
	if !ok {
		h.writeError(w, r, ErrSessionNotFound)
		return
	}

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Option == "" {
		config.Error(w, http.StatusBadRequest, "questionId and option are required")
		return
	}

	hs, err := h.service.Answer(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, NewSessionView(hs))
}

// Submit scores the session. Authenticated callers also get the attempt recorded.
//
// @Summary  Submit answers
// @Tags     quiz-sessions
// @Produce  json
// @Param    id   path      string  true  "Session ID"
// @Success  200  {object}  SessionView
// @Failure  409  {object}  map[string]any
// @Router   /quiz-sessions/{id}/submit [post]
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(r)
	if !ok {
		h.writeError(w, r, ErrSessionNotFound)
		return
	}

	hs, err := h.service.Submit(r.Context(), id, auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, NewSessionView(hs))
}

// Reset clears answers and keeps the question set.
//
// @Summary  Reset a session
// @Tags     quiz-sessions
// @Produce  json
// @Param    id   path      string  true  "Session ID"
// @Success  200  {object}  SessionView
// @Router   /quiz-sessions/{id}/reset [post]
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(r)
	if !ok {
		h.writeError(w, r, ErrSessionNotFound)
		return
	}

	hs, err := h.service.Reset(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, NewSessionView(hs))
}

// Events streams the session as server-sent events: the current state first, then
// every saved change until the client disconnects. Writers that cannot flush receive
// only the current state.
//
// @Summary   Listen to session updates
// @Tags      quiz-sessions
// @Produce   text/event-stream
// @Param     id   path  string  true  "Session ID"
// @Router    /quiz-sessions/{id}/events [get]
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := sessionID(r)
	if !ok {
		h.writeError(w, r, ErrSessionNotFound)
		return
	}

	hs, err := h.service.Get(ctx, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	updates, err := h.service.Listen(ctx, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	send := func(hs *HostedSession) error {
		data, err := json.Marshal(NewSessionView(hs))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "event: session\ndata: %s\n\n", data); err != nil {
			return err
		}
		return rc.Flush()
	}

	// buffered writers (the API Gateway adapter) get the snapshot only
	if err := send(hs); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case next, ok := <-updates:
			if !ok {
				return
			}
			if err := send(next); err != nil {
				config.WithContext(ctx).WithError(err).Debug("Event stream closed")
				return
			}
		}
	}
}
