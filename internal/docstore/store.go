// Package docstore keeps small JSON documents shared between stateless invocations,
// with change notifications and a short-lived busy lock per document.
package docstore

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("document not found")
	ErrConflict = errors.New("document kept changing during update")
)

// UpdateFunc turns the current value of a document into its next value. It may run more
// than once when a concurrent writer gets in first, so it must not keep side effects.
type UpdateFunc func(current []byte) ([]byte, error)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key and notifies listeners. A zero ttl keeps the key forever.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Update rewrites key with fn applied to its current value, failing with ErrNotFound
	// when key is absent. No concurrent write is lost: on contention fn runs again against
	// the newer value. Listeners are notified with the stored result.
	Update(ctx context.Context, key string, ttl time.Duration, fn UpdateFunc) ([]byte, error)
	// Listen streams every value written to key until ctx is done.
	Listen(ctx context.Context, key string) (<-chan []byte, error)
	// Lock acquires the busy flag for key. It reports false when another holder has it.
	// The returned token identifies this holder to Unlock.
	Lock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	// Unlock releases the flag only while token still owns it; a flag that expired and
	// was taken by someone else is left alone.
	Unlock(ctx context.Context, key, token string) error
}

const listenBuffer = 16

func lockKey(key string) string {
	return key + ":lock"
}

func channelKey(key string) string {
	return key + ":updates"
}
