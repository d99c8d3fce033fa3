package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/saulo-duarte/socrates-lambda/internal/config"
)

// EncryptedStore seals document values with the process crypto key before they reach
// the underlying store. Locks are passed through untouched.
type EncryptedStore struct {
	Store
}

func NewEncryptedStore(inner Store) *EncryptedStore {
	return &EncryptedStore{Store: inner}
}

func (s *EncryptedStore) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := s.Store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return open(sealed)
}

func (s *EncryptedStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	sealed, err := config.Encrypt(string(value))
	if err != nil {
		return fmt.Errorf("encrypt %s: %w", key, err)
	}
	return s.Store.Set(ctx, key, []byte(sealed), ttl)
}

func (s *EncryptedStore) Update(ctx context.Context, key string, ttl time.Duration, fn UpdateFunc) ([]byte, error) {
	var plainNext []byte
	_, err := s.Store.Update(ctx, key, ttl, func(sealed []byte) ([]byte, error) {
		plain, err := open(sealed)
		if err != nil {
			return nil, err
		}
		next, err := fn(plain)
		if err != nil {
			return nil, err
		}
		sealedNext, err := config.Encrypt(string(next))
		if err != nil {
			return nil, fmt.Errorf("encrypt %s: %w", key, err)
		}
		plainNext = next
		return []byte(sealedNext), nil
	})
	if err != nil {
		return nil, err
	}
	return plainNext, nil
}

func (s *EncryptedStore) Listen(ctx context.Context, key string) (<-chan []byte, error) {
	sealed, err := s.Store.Listen(ctx, key)
	if err != nil {
		return nil, err
	}

	out := make(chan []byte, listenBuffer)
	go func() {
		defer close(out)
		for v := range sealed {
			plain, err := open(v)
			if err != nil {
				config.WithContext(ctx).WithError(err).WithField("key", key).Warn("Dropping undecryptable update")
				continue
			}
			select {
			case out <- plain:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func open(sealed []byte) ([]byte, error) {
	plain, err := config.Decrypt(string(sealed))
	if err != nil {
		return nil, fmt.Errorf("decrypt document: %w", err)
	}
	return []byte(plain), nil
}
