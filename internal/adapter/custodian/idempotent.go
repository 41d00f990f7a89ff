package custodian

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mapchain-escrow/internal/core/ports"
	"mapchain-escrow/pkg/money"

	"github.com/rs/zerolog"
)

// receipt is the cached outcome of a completed instruction.
type receipt struct {
	HoldRef string `json:"hold_ref,omitempty"`
	At      int64  `json:"at"`
}

// Idempotent short-circuits instructions whose key already completed, so a
// retried transition does not reach the custodian a second time. Cache
// failures degrade to calling the inner custodian, which is itself keyed.
type Idempotent struct {
	inner ports.PaymentCustodian
	cache ports.IdempotencyCache
	ttl   time.Duration
	log   zerolog.Logger
}

func NewIdempotent(inner ports.PaymentCustodian, cache ports.IdempotencyCache, ttl time.Duration, log zerolog.Logger) *Idempotent {
	return &Idempotent{inner: inner, cache: cache, ttl: ttl, log: log}
}

func (c *Idempotent) Hold(ctx context.Context, key, clientID string, amount money.Amount) (string, error) {
	if r, ok := c.lookup(ctx, key); ok && r.HoldRef != "" {
		return r.HoldRef, nil
	}
	ref, err := c.inner.Hold(ctx, key, clientID, amount)
	if err != nil {
		return "", err
	}
	c.remember(ctx, key, receipt{HoldRef: ref})
	return ref, nil
}

func (c *Idempotent) Release(ctx context.Context, key, holdRef, payee string, amount money.Amount) error {
	if _, ok := c.lookup(ctx, key); ok {
		return nil
	}
	if err := c.inner.Release(ctx, key, holdRef, payee, amount); err != nil {
		return err
	}
	c.remember(ctx, key, receipt{})
	return nil
}

func (c *Idempotent) Refund(ctx context.Context, key, holdRef, payee string, amount money.Amount) error {
	if _, ok := c.lookup(ctx, key); ok {
		return nil
	}
	if err := c.inner.Refund(ctx, key, holdRef, payee, amount); err != nil {
		return err
	}
	c.remember(ctx, key, receipt{})
	return nil
}

// Void always reaches the custodian and then drops the cached receipt, so a
// reissued key executes again.
func (c *Idempotent) Void(ctx context.Context, key, holdRef string) error {
	if err := c.inner.Void(ctx, key, holdRef); err != nil {
		return err
	}
	if err := c.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("forget voided instruction %s: %w", key, err)
	}
	return nil
}

func (c *Idempotent) lookup(ctx context.Context, key string) (receipt, bool) {
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("instruction cache read failed")
		return receipt{}, false
	}
	if raw == nil {
		return receipt{}, false
	}
	var r receipt
	if err := json.Unmarshal(raw, &r); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("discarding corrupt instruction receipt")
		return receipt{}, false
	}
	c.log.Debug().Str("key", key).Msg("instruction already completed")
	return r, true
}

func (c *Idempotent) remember(ctx context.Context, key string, r receipt) {
	r.At = time.Now().Unix()
	raw, _ := json.Marshal(r)
	if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("instruction cache write failed")
	}
}
