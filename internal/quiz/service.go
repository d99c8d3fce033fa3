package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/socrates-lambda/internal/aiquiz"
	"github.com/saulo-duarte/socrates-lambda/internal/config"
	"github.com/saulo-duarte/socrates-lambda/internal/metrics"
)

var (
	ErrGenerationInProgress = errors.New("a question generation is already running for this session")
	ErrNoQuestionsGenerated = errors.New("the model returned no questions; try again or adjust the document")
)

// AttemptRecorder keeps a copy of a scored session for its user.
type AttemptRecorder interface {
	Record(ctx context.Context, userID string, s *HostedSession) error
}

type SessionService interface {
	Create(ctx context.Context) (*HostedSession, error)
	Get(ctx context.Context, id string) (*HostedSession, error)
	Generate(ctx context.Context, id string, req GenerateSessionRequest) (*HostedSession, error)
	Answer(ctx context.Context, id string, req AnswerRequest) (*HostedSession, error)
	Submit(ctx context.Context, id, userID string) (*HostedSession, error)
	Reset(ctx context.Context, id string) (*HostedSession, error)
	Listen(ctx context.Context, id string) (<-chan *HostedSession, error)
}

type sessionService struct {
	repo     SessionRepository
	mcq      aiquiz.Service
	attempts AttemptRecorder
	now      func() time.Time
}

// NewService wires the session store to the question pipeline. attempts may be nil when
// no database is configured.
func NewService(repo SessionRepository, mcq aiquiz.Service, attempts AttemptRecorder) SessionService {
	return &sessionService{repo: repo, mcq: mcq, attempts: attempts, now: time.Now}
}

func (s *sessionService) Create(ctx context.Context) (*HostedSession, error) {
	now := s.now().UTC()
	hs := &HostedSession{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Session:   *NewSession(),
	}
	if err := s.repo.Save(ctx, hs); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to create quiz session")
		return nil, err
	}
	config.WithContext(ctx).WithField("session_id", hs.ID).Info("Quiz session created")
	return hs, nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*HostedSession, error) {
	return s.repo.Get(ctx, id)
}

// mutate applies fn to the stored session and saves it when fn succeeds. Concurrent
// mutations of one session are serialized by the store, so fn may see a newer copy.
func (s *sessionService) mutate(ctx context.Context, id string, fn func(*HostedSession) error) (*HostedSession, error) {
	return s.repo.Update(ctx, id, func(hs *HostedSession) error {
		if err := fn(hs); err != nil {
			return err
		}
		hs.UpdatedAt = s.now().UTC()
		return nil
	})
}

func (s *sessionService) Generate(ctx context.Context, id string, req GenerateSessionRequest) (*HostedSession, error) {
	log := config.WithContext(ctx).WithField("session_id", id)

	hs, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if hs.State != StateEmpty && hs.State != StateLoaded {
		return nil, &StateError{Op: "load", State: hs.State}
	}

	token, acquired, err := s.repo.AcquireGeneration(ctx, id)
	if err != nil {
		return nil, err
	}
	if !acquired {
		log.Warn("Generation already in progress")
		return nil, ErrGenerationInProgress
	}
	defer func() {
		// the request context may already be gone; the lock TTL covers a failed release
		if err := s.repo.ReleaseGeneration(context.WithoutCancel(ctx), id, token); err != nil {
			log.WithError(err).Warn("Failed to release generation lock")
		}
	}()

	resp, err := s.mcq.GenerateQuestions(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Questions) == 0 {
		log.Warn("Model returned an empty question list")
		return nil, ErrNoQuestionsGenerated
	}

	hs, err = s.mutate(ctx, id, func(hs *HostedSession) error {
		if err := hs.Load(resp.Questions); err != nil {
			return err
		}
		hs.FileName = resp.Metadata.FileName
		hs.Difficulty = resp.Metadata.Difficulty
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Infof("Loaded %d questions", len(resp.Questions))
	return hs, nil
}

func (s *sessionService) Answer(ctx context.Context, id string, req AnswerRequest) (*HostedSession, error) {
	return s.mutate(ctx, id, func(hs *HostedSession) error {
		return hs.Answer(req.QuestionID, req.Option)
	})
}

func (s *sessionService) Submit(ctx context.Context, id, userID string) (*HostedSession, error) {
	hs, err := s.mutate(ctx, id, func(hs *HostedSession) error {
		_, err := hs.Submit()
		return err
	})
	if err != nil {
		return nil, err
	}

	log := config.WithContext(ctx).WithField("session_id", id)
	metrics.ObserveQuizScore(hs.Report.Percentage)
	log.Infof("Quiz scored %d/%d", hs.Report.Correct, hs.Report.Total)

	if userID != "" && s.attempts != nil {
		if err := s.attempts.Record(ctx, userID, hs); err != nil {
			log.WithError(err).Error("Failed to record attempt")
		}
	}
	return hs, nil
}

func (s *sessionService) Reset(ctx context.Context, id string) (*HostedSession, error) {
	return s.mutate(ctx, id, func(hs *HostedSession) error {
		return hs.Reset()
	})
}

func (s *sessionService) Listen(ctx context.Context, id string) (<-chan *HostedSession, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	updates, err := s.repo.Listen(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listen session %s: %w", id, err)
	}
	return updates, nil
}
