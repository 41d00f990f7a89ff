package domain

import (
	"time"

	"mapchain-escrow/pkg/money"

	"github.com/google/uuid"
)

// EntryType represents the kind of money movement instructed to the custodian.
type EntryType string

const (
	EntryTypeHold            EntryType = "HOLD"
	EntryTypeReleaseValuator EntryType = "RELEASE_VALUATOR"
	EntryTypeReleasePlatform EntryType = "RELEASE_PLATFORM"
	EntryTypeRefundClient    EntryType = "REFUND_CLIENT"
)

// LedgerEntry is an immutable record of one custodian instruction.
// Balances are always computed as sums over entries.
type LedgerEntry struct {
	ID        uuid.UUID    `json:"id"`
	RequestID string       `json:"request_id"`
	EntryType EntryType    `json:"entry_type"`
	Account   string       `json:"account"`
	Amount    money.Amount `json:"amount"`
	HoldRef   string       `json:"hold_ref"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewLedgerEntry stamps a new entry with a fresh id.
func NewLedgerEntry(requestID string, entryType EntryType, account string, amount money.Amount, holdRef string, now time.Time) *LedgerEntry {
	return &LedgerEntry{
		ID:        uuid.New(),
		RequestID: requestID,
		EntryType: entryType,
		Account:   account,
		Amount:    amount,
		HoldRef:   holdRef,
		CreatedAt: now,
	}
}

// IsPayout returns true for entries that move money out of the hold.
func (e *LedgerEntry) IsPayout() bool {
	return e.EntryType != EntryTypeHold
}

// InstructionKey is the deterministic idempotency key for one custodian
// instruction. Retries of the same transition produce the same key.
func InstructionKey(requestID string, op Operation, leg EntryType) string {
	return requestID + ":" + string(op) + ":" + string(leg)
}

// CreateOperation labels the hold instruction issued by CreateEscrow.
const CreateOperation Operation = "CREATE"
