package aiquiz

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/saulo-duarte/socrates-lambda/internal/config"
	"github.com/saulo-duarte/socrates-lambda/internal/intake"
)

type Handler struct {
	service        Service
	maxUploadBytes int64
}

func NewHandler(s Service, maxUploadBytes int64) *Handler {
	return &Handler{service: s, maxUploadBytes: maxUploadBytes}
}

// GenerateQuestions turns file content into multiple-choice questions.
//
// @Summary      Generate MCQs from a document
// @Tags         mcq
// @Accept       json
// @Produce      json
// @Param        request  body      GenerateRequest  true  "Document"
// @Success      200      {object}  GenerateResponse
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  FailureResponse
// @Router       /api/mcq [post]
func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+64<<10)
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid MCQ request body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.generate(w, r, req)
}

// UploadQuestions is the multipart variant of GenerateQuestions: the document arrives in
// the "file" form field.
//
// @Summary      Generate MCQs from an uploaded file
// @Tags         mcq
// @Accept       multipart/form-data
// @Produce      json
// @Param        file                formData  file    true   "Study material"
// @Param        questionCount       formData  int     false  "Number of questions"
// @Param        difficulty          formData  string  false  "Difficulty label"
// @Param        customInstructions  formData  string  false  "Extra instructions"
// @Success      200  {object}  GenerateResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  FailureResponse
// @Router       /api/mcq/upload [post]
func (h *Handler) UploadQuestions(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+64<<10)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		log.WithError(err).Warn("Invalid multipart upload")
		config.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		config.Error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	doc, err := intake.Read(file, header.Filename, h.maxUploadBytes)
	if err != nil {
		var readErr *intake.ReadError
		if errors.As(err, &readErr) && readErr.Kind != intake.KindIO {
			config.Error(w, http.StatusBadRequest, readErr.Error())
			return
		}
		log.WithError(err).Error("Failed to read uploaded file")
		config.Error(w, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}

	count, _ := strconv.Atoi(r.FormValue("questionCount"))
	h.generate(w, r, GenerateRequest{
		FileContent:        doc.Content,
		FileName:           doc.Name,
		QuestionCount:      count,
		Difficulty:         r.FormValue("difficulty"),
		CustomInstructions: r.FormValue("customInstructions"),
	})
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, req GenerateRequest) {
	log := config.WithContext(r.Context())

	resp, err := h.service.GenerateQuestions(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrFileContentRequired) {
			config.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		log.WithError(err).Error("Failed to generate questions")
		config.JSON(w, http.StatusInternalServerError, FailureResponse{
			Error:             "Failed to generate questions",
			Details:           err.Error(),
			FallbackQuestions: FallbackQuestions(),
		})
		return
	}

	config.JSON(w, http.StatusOK, resp)
}
