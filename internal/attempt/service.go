package attempt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/saulo-duarte/socrates-lambda/internal/config"
	"github.com/saulo-duarte/socrates-lambda/internal/quiz"
	"gorm.io/datatypes"
)

var ErrAttemptNotFound = errors.New("attempt not found")

type AttemptService interface {
	Record(ctx context.Context, userID string, s *quiz.HostedSession) error
	ListByUser(ctx context.Context, userID string) ([]*Attempt, error)
	Get(ctx context.Context, userID, id string) (*Attempt, error)
}

type attemptService struct {
	repo AttemptRepository
}

func NewService(repo AttemptRepository) AttemptService {
	return &attemptService{repo: repo}
}

func (s *attemptService) Record(ctx context.Context, userID string, hs *quiz.HostedSession) error {
	log := config.WithContext(ctx).WithField("session_id", hs.ID)

	if hs.Report == nil {
		return fmt.Errorf("session %s has no score report", hs.ID)
	}
	results, err := json.Marshal(hs.Report.Results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	a := &Attempt{
		UserID:     userID,
		SessionID:  hs.ID,
		FileName:   hs.FileName,
		Difficulty: hs.Difficulty,
		Correct:    hs.Report.Correct,
		Total:      hs.Report.Total,
		Percentage: hs.Report.Percentage,
		Results:    datatypes.JSON(results),
	}
	if err := s.repo.Create(a); err != nil {
		log.WithError(err).Error("Failed to save attempt")
		return err
	}

	log.WithField("attempt_id", a.ID.String()).Info("Attempt recorded")
	return nil
}

func (s *attemptService) ListByUser(ctx context.Context, userID string) ([]*Attempt, error) {
	attempts, err := s.repo.ListByUser(userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list attempts")
		return nil, err
	}
	return attempts, nil
}

// Get returns an attempt owned by userID. Another user's attempt is reported as missing.
func (s *attemptService) Get(ctx context.Context, userID, id string) (*Attempt, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrAttemptNotFound
	}

	a, err := s.repo.GetByID(id)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load attempt")
		return nil, err
	}
	if a == nil || a.UserID != userID {
		return nil, ErrAttemptNotFound
	}
	return a, nil
}
