package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// InstructionCache implements ports.IdempotencyCache for custodian
// instruction results, keyed by instruction key.
type InstructionCache struct {
	client goredis.Cmdable
	prefix string
}

// NewInstructionCache creates a new Redis-backed instruction cache.
func NewInstructionCache(client goredis.Cmdable) *InstructionCache {
	return &InstructionCache{
		client: client,
		prefix: "escrow:instruction:",
	}
}

// Get returns the recorded result for key, or nil when none exists.
func (c *InstructionCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis instruction get: %w", err)
	}
	return val, nil
}

// Set records the result for key. An instruction executes once, so the
// first recorded result wins and later writes are ignored.
func (c *InstructionCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.client.SetArgs(ctx, c.prefix+key, value, goredis.SetArgs{Mode: "NX", TTL: ttl}).Err()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("redis instruction set: %w", err)
	}
	return nil
}

// Delete forgets the result for key once its instruction has been voided.
func (c *InstructionCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis instruction delete: %w", err)
	}
	return nil
}
