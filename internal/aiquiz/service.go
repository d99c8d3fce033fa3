package aiquiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/saulo-duarte/socrates-lambda/internal/config"
	"github.com/saulo-duarte/socrates-lambda/internal/provider"
	"github.com/sirupsen/logrus"
)

var ErrFileContentRequired = errors.New("fileContent is required")

type Service interface {
	GenerateQuestions(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

type service struct {
	gateway      provider.Generator
	providerName string
	model        string
	now          func() time.Time
}

func NewService(gateway provider.Generator, providerName, model string) Service {
	return &service{
		gateway:      gateway,
		providerName: providerName,
		model:        model,
		now:          time.Now,
	}
}

// Normalize applies request defaults and rejects requests without file content.
func (r GenerateRequest) Normalize() (GenerateRequest, error) {
	if strings.TrimSpace(r.FileContent) == "" {
		return r, ErrFileContentRequired
	}
	if strings.TrimSpace(r.FileName) == "" {
		r.FileName = DefaultFileName
	}
	if r.QuestionCount <= 0 {
		r.QuestionCount = DefaultQuestionCount
	}
	if r.QuestionCount > MaxQuestionCount {
		r.QuestionCount = MaxQuestionCount
	}
	if strings.TrimSpace(r.Difficulty) == "" {
		r.Difficulty = DefaultDifficulty
	}
	return r, nil
}

func (s *service) GenerateQuestions(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"file_name":      req.FileName,
		"question_count": req.QuestionCount,
		"difficulty":     req.Difficulty,
	})

	prompt := BuildPrompt(PromptInput{
		FileName:           req.FileName,
		FileContent:        req.FileContent,
		QuestionCount:      req.QuestionCount,
		Difficulty:         req.Difficulty,
		CustomInstructions: req.CustomInstructions,
	})

	temperature := float32(0.7)
	maxTokens := 4096
	result, err := s.gateway.Generate(ctx, provider.GenerationRequest{
		Provider: s.providerName,
		Model:    s.model,
		Messages: []provider.Message{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	questions, err := ParseQuestions(result.Content)
	if err != nil {
		log.WithError(err).WithField("raw_reply", result.Content).Error("Failed to recover questions from model reply")
		return nil, err
	}

	log.Infof("Generated %d questions", len(questions))
	return &GenerateResponse{
		Success:   true,
		Questions: questions,
		Metadata: Metadata{
			FileName:      req.FileName,
			QuestionCount: len(questions),
			Difficulty:    req.Difficulty,
			GeneratedAt:   s.now().UTC(),
		},
	}, nil
}
