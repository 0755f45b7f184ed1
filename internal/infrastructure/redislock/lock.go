package redislock

import (
	"context"
	"fmt"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/config"
	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/jaevor/go-nanoid"
	"github.com/redis/go-redis/v9"
)

const scanLockKey = "supplier-compliance:alert-scan:lock"

// releaseScript deletes the key only while it still holds our token, so a run
// that outlived its TTL cannot free a lock taken by the next run.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func NewClient(cfg config.Redis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Lock is a single-holder lock over SET NX PX.
type Lock struct {
	client   *redis.Client
	key      string
	ttl      time.Duration
	newToken func() string
}

func NewLock(client *redis.Client, ttl time.Duration) (*Lock, error) {
	tokenGenerator, err := nanoid.Standard(21)
	if err != nil {
		return nil, fmt.Errorf("failed to create lock token generator: %w", err)
	}
	return &Lock{
		client:   client,
		key:      scanLockKey,
		ttl:      ttl,
		newToken: tokenGenerator,
	}, nil
}

func (l *Lock) Acquire(ctx context.Context) (func(ctx context.Context) error, error) {
	token := l.newToken()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis setnx %s: %w", l.key, err)
	}
	if !ok {
		return nil, domain.ErrScanInProgress
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil && err != redis.Nil {
			return fmt.Errorf("redis release %s: %w", l.key, err)
		}
		return nil
	}, nil
}

// NoopLock always succeeds. Used when Redis is not configured.
type NoopLock struct{}

func (NoopLock) Acquire(context.Context) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}
