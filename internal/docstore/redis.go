package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const maxUpdateAttempts = 8

// unlockScript deletes the lock only when it still carries the caller's token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	if err := s.client.Publish(ctx, channelKey(key), value).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", key, err)
	}
	return nil
}

// Update runs fn inside WATCH/MULTI so a write landing between the read and the EXEC
// aborts the transaction and fn is retried on the fresh value.
func (s *RedisStore) Update(ctx context.Context, key string, ttl time.Duration, fn UpdateFunc) ([]byte, error) {
	var (
		next  []byte
		fnErr error
	)
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		next, fnErr = fn(current)
		if fnErr != nil {
			return fnErr
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, ttl)
			pipe.Publish(ctx, channelKey(key), next)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		switch {
		case err == nil:
			return next, nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case fnErr != nil, errors.Is(err, ErrNotFound):
			return nil, err
		default:
			return nil, fmt.Errorf("redis update %s: %w", key, err)
		}
	}
	return nil, fmt.Errorf("%w: %s after %d attempts", ErrConflict, key, maxUpdateAttempts)
}

func (s *RedisStore) Listen(ctx context.Context, key string) (<-chan []byte, error) {
	sub := s.client.Subscribe(ctx, channelKey(key))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("redis subscribe %s: %w", key, err)
	}

	out := make(chan []byte, listenBuffer)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (s *RedisStore) Lock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := s.client.SetNX(ctx, lockKey(key), token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("redis lock %s: %w", key, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (s *RedisStore) Unlock(ctx context.Context, key, token string) error {
	if err := unlockScript.Run(ctx, s.client, []string{lockKey(key)}, token).Err(); err != nil {
		return fmt.Errorf("redis unlock %s: %w", key, err)
	}
	return nil
}
