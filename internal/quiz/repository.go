package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/saulo-duarte/socrates-lambda/internal/config"
	"github.com/saulo-duarte/socrates-lambda/internal/docstore"
)

var ErrSessionNotFound = errors.New("quiz session not found")

type SessionRepository interface {
	Get(ctx context.Context, id string) (*HostedSession, error)
	Save(ctx context.Context, s *HostedSession) error
	// Update applies fn to the stored session and saves the result without losing a
	// concurrent write. fn may run more than once.
	Update(ctx context.Context, id string, fn func(*HostedSession) error) (*HostedSession, error)
	Listen(ctx context.Context, id string) (<-chan *HostedSession, error)
	AcquireGeneration(ctx context.Context, id string) (token string, ok bool, err error)
	ReleaseGeneration(ctx context.Context, id, token string) error
}

type sessionRepository struct {
	store   docstore.Store
	ttl     time.Duration
	lockTTL time.Duration
}

func NewRepository(store docstore.Store, ttl, lockTTL time.Duration) SessionRepository {
	return &sessionRepository{store: store, ttl: ttl, lockTTL: lockTTL}
}

func sessionKey(id string) string {
	return "quiz:session:" + id
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*HostedSession, error) {
	raw, err := r.store.Get(ctx, sessionKey(id))
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var s HostedSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &s, nil
}

func (r *sessionRepository) Save(ctx context.Context, s *HostedSession) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	return r.store.Set(ctx, sessionKey(s.ID), raw, r.ttl)
}

func (r *sessionRepository) Update(ctx context.Context, id string, fn func(*HostedSession) error) (*HostedSession, error) {
	var updated *HostedSession
	_, err := r.store.Update(ctx, sessionKey(id), r.ttl, func(raw []byte) ([]byte, error) {
		var s HostedSession
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decode session %s: %w", id, err)
		}
		if err := fn(&s); err != nil {
			return nil, err
		}
		updated = &s
		return json.Marshal(&s)
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *sessionRepository) Listen(ctx context.Context, id string) (<-chan *HostedSession, error) {
	docs, err := r.store.Listen(ctx, sessionKey(id))
	if err != nil {
		return nil, err
	}

	out := make(chan *HostedSession)
	go func() {
		defer close(out)
		for raw := range docs {
			var s HostedSession
			if err := json.Unmarshal(raw, &s); err != nil {
				config.WithContext(ctx).WithError(err).WithField("session_id", id).Warn("Skipping undecodable session update")
				continue
			}
			select {
			case out <- &s:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (r *sessionRepository) AcquireGeneration(ctx context.Context, id string) (string, bool, error) {
	return r.store.Lock(ctx, sessionKey(id), r.lockTTL)
}

func (r *sessionRepository) ReleaseGeneration(ctx context.Context, id, token string) error {
	return r.store.Unlock(ctx, sessionKey(id), token)
}
