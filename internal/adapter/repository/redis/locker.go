package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// Locker implements usecase.Locker with a Redis lock per key.
type Locker struct {
	client  *redislock.Client
	prefix  string
	ttl     time.Duration
	wait    time.Duration
	backoff time.Duration
}

// NewLocker creates a Locker. A held lock expires after ttl even if its
// owner never releases it.
func NewLocker(client *redis.Client, ttl time.Duration) *Locker {
	return &Locker{
		client:  redislock.New(client),
		prefix:  "lock:",
		ttl:     ttl,
		wait:    ttl,
		backoff: 50 * time.Millisecond,
	}
}

// Acquire blocks until the lock for key is held, ctx ends, or the lock
// could not be obtained within the wait period.
func (l *Locker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	lock, err := l.client.Obtain(waitCtx, l.prefix+key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(l.backoff),
	})
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", key, err)
	}

	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && err != redislock.ErrLockNotHeld {
			return err
		}
		return nil
	}, nil
}
