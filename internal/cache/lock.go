package cache

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"
)

const (
	lockKeyPrefix = "lock:"

	// DefaultLockTTL bounds how long a crashed holder can block a key.
	DefaultLockTTL = 30 * time.Second
	// DefaultLockWait is how long Acquire polls before giving up.
	DefaultLockWait = 20 * time.Second

	lockPollInterval   = 25 * time.Millisecond
	lockReleaseTimeout = 2 * time.Second
)

// ErrLockTimeout is returned when a key stays held for the whole wait period.
var ErrLockTimeout = errors.New("timed out waiting for lock")

// releaseScript deletes the lock only if the caller still owns it.
var releaseScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// Locker is a Redis-backed mutex keyed by arbitrary strings.
// Keys are hashed, so callers may pass long texts.
type Locker struct {
	cache  *Cache
	ttl    time.Duration
	wait   time.Duration
	logger *slog.Logger
}

// NewLocker creates a Locker. Non-positive durations use the defaults.
func NewLocker(c *Cache, ttl, wait time.Duration, logger *slog.Logger) *Locker {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	if wait <= 0 {
		wait = DefaultLockWait
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Locker{
		cache:  c,
		ttl:    ttl,
		wait:   wait,
		logger: logger,
	}
}

// Acquire takes the lock for key, polling until it is free, the wait period
// elapses (ErrLockTimeout) or ctx is done.
func (l *Locker) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := lockKey(key)
	token := ulid.Make().String()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.cache.rdb.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis setnx failed: %w", err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, redisKey)
		}

		timer := time.NewTimer(lockPollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lockReleaseTimeout)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, l.cache.rdb, []string{redisKey}, token).Err(); err != nil {
				l.logger.Warn("lock_release_failed",
					slog.String("key", redisKey),
					slog.String("error", err.Error()),
				)
			}
		})
	}, nil
}

// lockKey maps a business key to a fixed-length Redis key.
func lockKey(key string) string {
	sum := blake2b.Sum256([]byte(key))
	return lockKeyPrefix + hex.EncodeToString(sum[:])
}
