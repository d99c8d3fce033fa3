package docstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	value   []byte
	expires time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

type lease struct {
	token   string
	expires time.Time
}

// MemoryStore is a process-local Store for tests and single-process servers.
type MemoryStore struct {
	mu        sync.Mutex
	docs      map[string]entry
	locks     map[string]lease
	listeners map[string]map[chan []byte]struct{}
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:      make(map[string]entry),
		locks:     make(map[string]lease),
		listeners: make(map[string]map[chan []byte]struct{}),
		now:       time.Now,
	}
}

func (s *MemoryStore) deadline(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(ttl)
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.docs[key]
	if !ok || e.expired(s.now()) {
		delete(s.docs, key)
		return nil, ErrNotFound
	}
	return append([]byte(nil), e.value...), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store(key, value, ttl)
	return nil
}

// Update holds the store mutex while fn runs, so fn must not call back into s.
func (s *MemoryStore) Update(ctx context.Context, key string, ttl time.Duration, fn UpdateFunc) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.docs[key]
	if !ok || e.expired(s.now()) {
		delete(s.docs, key)
		return nil, ErrNotFound
	}
	next, err := fn(append([]byte(nil), e.value...))
	if err != nil {
		return nil, err
	}
	s.store(key, next, ttl)
	return append([]byte(nil), next...), nil
}

// store writes value and fans it out. Callers hold s.mu.
func (s *MemoryStore) store(key string, value []byte, ttl time.Duration) {
	stored := append([]byte(nil), value...)
	s.docs[key] = entry{value: stored, expires: s.deadline(ttl)}

	// slow listeners miss intermediate updates, never the writer
	for ch := range s.listeners[key] {
		select {
		case ch <- append([]byte(nil), stored...):
		default:
		}
	}
}

func (s *MemoryStore) Listen(ctx context.Context, key string) (<-chan []byte, error) {
	ch := make(chan []byte, listenBuffer)

	s.mu.Lock()
	if s.listeners[key] == nil {
		s.listeners[key] = make(map[chan []byte]struct{})
	}
	s.listeners[key][ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.listeners[key], ch)
		if len(s.listeners[key]) == 0 {
			delete(s.listeners, key)
		}
		close(ch)
		s.mu.Unlock()
	}()
	return ch, nil
}

func (s *MemoryStore) Lock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, held := s.locks[key]; held && (l.expires.IsZero() || s.now().Before(l.expires)) {
		return "", false, nil
	}
	token := uuid.NewString()
	s.locks[key] = lease{token: token, expires: s.deadline(ttl)}
	return token, true, nil
}

func (s *MemoryStore) Unlock(ctx context.Context, key, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, held := s.locks[key]; held && l.token == token {
		delete(s.locks, key)
	}
	return nil
}
