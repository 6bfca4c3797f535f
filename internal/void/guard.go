package void

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard serializes void attempts per transaction reference so a retried or
// duplicated event cannot void the same hold twice.
type Guard interface {
	// Acquire claims the reference for this attempt. It reports false when
	// another attempt already holds (or recently held) the claim.
	Acquire(ctx context.Context, reference string) (bool, error)
}

// RedisGuard implements Guard with a SET NX claim that expires after the
// retention window. The claim deliberately outlives the attempt: a void that
// succeeded must not be retried even by a much later replay.
type RedisGuard struct {
	client    *redis.Client
	retention time.Duration
}

// NewRedisGuard connects a guard to the given redis address.
func NewRedisGuard(addr string, retention time.Duration) *RedisGuard {
	if retention <= 0 {
		retention = 72 * time.Hour
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisGuard{client: client, retention: retention}
}

// Close releases the redis connection.
func (g *RedisGuard) Close() error {
	return g.client.Close()
}

func (g *RedisGuard) Acquire(ctx context.Context, reference string) (bool, error) {
	claimed, err := g.client.SetNX(ctx, "void:"+reference, time.Now().UnixMilli(), g.retention).Result()
	if err != nil {
		return false, fmt.Errorf("claim void guard for %s: %w", reference, err)
	}
	return claimed, nil
}
