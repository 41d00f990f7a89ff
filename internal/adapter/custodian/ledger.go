package custodian

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"mapchain-escrow/pkg/money"

	"github.com/google/uuid"
)

var (
	// ErrUnknownHold is returned when a payout names a hold that does not exist.
	ErrUnknownHold = errors.New("unknown hold")
	// ErrHoldExhausted is returned when payouts would exceed the held amount.
	ErrHoldExhausted = errors.New("payout exceeds remaining hold")
)

type hold struct {
	account   string
	remaining money.Amount
}

// executed records what an instruction did so it can be voided.
type executed struct {
	holdRef string
	payee   string
	amount  money.Amount
	isHold  bool
}

// LedgerCustodian keeps custody in process memory. Instructions are
// idempotent by key, so replaying one is a no-op.
type LedgerCustodian struct {
	mu       sync.Mutex
	holds    map[string]*hold
	accounts map[string]money.Amount
	done     map[string]executed
	calls    int
}

func NewLedgerCustodian() *LedgerCustodian {
	return &LedgerCustodian{
		holds:    make(map[string]*hold),
		accounts: make(map[string]money.Amount),
		done:     make(map[string]executed),
	}
}

func (c *LedgerCustodian) Hold(ctx context.Context, key, clientID string, amount money.Amount) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if x, ok := c.done[key]; ok {
		return x.holdRef, nil
	}
	if !amount.IsPositive() {
		return "", fmt.Errorf("hold %s: amount must be positive", key)
	}
	ref := "hold-" + uuid.NewString()
	c.holds[ref] = &hold{account: clientID, remaining: amount}
	c.done[key] = executed{holdRef: ref, payee: clientID, amount: amount, isHold: true}
	return ref, nil
}

func (c *LedgerCustodian) Release(ctx context.Context, key, holdRef, payee string, amount money.Amount) error {
	return c.payout(key, holdRef, payee, amount)
}

func (c *LedgerCustodian) Refund(ctx context.Context, key, holdRef, payee string, amount money.Amount) error {
	return c.payout(key, holdRef, payee, amount)
}

// Void undoes the instruction executed under key. A voided hold no longer
// accepts payouts.
func (c *LedgerCustodian) Void(ctx context.Context, key, holdRef string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	x, ok := c.done[key]
	if !ok {
		return nil
	}
	if x.holdRef != holdRef {
		return fmt.Errorf("void %s: instruction belongs to %s", key, x.holdRef)
	}
	if x.isHold {
		delete(c.holds, x.holdRef)
	} else {
		if h, ok := c.holds[x.holdRef]; ok {
			h.remaining += x.amount
		}
		c.accounts[x.payee] -= x.amount
	}
	delete(c.done, key)
	return nil
}

func (c *LedgerCustodian) payout(key, holdRef, payee string, amount money.Amount) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if _, ok := c.done[key]; ok {
		return nil
	}
	h, ok := c.holds[holdRef]
	if !ok {
		return fmt.Errorf("%s: %w", holdRef, ErrUnknownHold)
	}
	if amount.IsNegative() || amount > h.remaining {
		return fmt.Errorf("%s: %w", key, ErrHoldExhausted)
	}
	h.remaining -= amount
	c.accounts[payee] += amount
	c.done[key] = executed{holdRef: holdRef, payee: payee, amount: amount}
	return nil
}

// Held reports whether holdRef is a live hold.
func (c *LedgerCustodian) Held(holdRef string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.holds[holdRef]
	return ok
}

// Paid returns the total paid out to account.
func (c *LedgerCustodian) Paid(account string) money.Amount {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accounts[account]
}

// Remaining returns the unpaid part of a hold.
func (c *LedgerCustodian) Remaining(holdRef string) money.Amount {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h, ok := c.holds[holdRef]; ok {
		return h.remaining
	}
	return 0
}

// Calls counts every instruction received, including replays.
func (c *LedgerCustodian) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
