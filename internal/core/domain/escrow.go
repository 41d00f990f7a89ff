package domain

import (
	"errors"
	"fmt"
	"time"

	"mapchain-escrow/pkg/money"
)

// EscrowStatus represents the lifecycle state of an escrow record.
type EscrowStatus string

const (
	EscrowStatusCreated   EscrowStatus = "CREATED"
	EscrowStatusAccepted  EscrowStatus = "ACCEPTED"
	EscrowStatusCancelled EscrowStatus = "CANCELLED"
	EscrowStatusDisputed  EscrowStatus = "DISPUTED"
	EscrowStatusCompleted EscrowStatus = "COMPLETED"
)

// Valid reports whether s is a known status.
func (s EscrowStatus) Valid() bool {
	switch s {
	case EscrowStatusCreated, EscrowStatusAccepted, EscrowStatusCancelled,
		EscrowStatusDisputed, EscrowStatusCompleted:
		return true
	}
	return false
}

// Operation names a state-machine transition.
type Operation string

const (
	OperationAccept   Operation = "ACCEPT"
	OperationComplete Operation = "COMPLETE"
	OperationCancel   Operation = "CANCEL"
	OperationDispute  Operation = "DISPUTE"
	OperationResolve  Operation = "RESOLVE"
)

// transitions lists, per operation, the statuses it may start from and the
// status it ends in.
var transitions = map[Operation]struct {
	from []EscrowStatus
	to   EscrowStatus
}{
	OperationAccept:   {[]EscrowStatus{EscrowStatusCreated}, EscrowStatusAccepted},
	OperationComplete: {[]EscrowStatus{EscrowStatusAccepted}, EscrowStatusCompleted},
	OperationCancel:   {[]EscrowStatus{EscrowStatusCreated, EscrowStatusAccepted}, EscrowStatusCancelled},
	OperationDispute:  {[]EscrowStatus{EscrowStatusAccepted}, EscrowStatusDisputed},
	OperationResolve:  {[]EscrowStatus{EscrowStatusDisputed}, EscrowStatusCompleted},
}

var (
	// ErrInvalidTransition is returned when an operation is not allowed
	// from the record's current status.
	ErrInvalidTransition = errors.New("invalid escrow transition")
	// ErrSplitExceedsAmount is returned when a dispute split is negative or
	// larger than the escrowed amount.
	ErrSplitExceedsAmount = errors.New("dispute split exceeds escrowed amount")
)

// Escrow is the ledger record for one valuation request.
type Escrow struct {
	RequestID       string        `json:"request_id"`
	ClientID        string        `json:"client_id"`
	ValuatorID      string        `json:"valuator_id"`
	Amount          money.Amount  `json:"amount"`
	Currency        string        `json:"currency"`
	IsUrgent        bool          `json:"is_urgent"`
	Status          EscrowStatus  `json:"status"`
	HoldRef         string        `json:"hold_ref"`
	ValuatorBalance *money.Amount `json:"valuator_balance,omitempty"`
	PlatformBalance *money.Amount `json:"platform_balance,omitempty"`
	ClientRefund    *money.Amount `json:"client_refund,omitempty"`
	DisputeReason   *string       `json:"dispute_reason,omitempty"`
	DisputedBy      *string       `json:"disputed_by,omitempty"`
	CancelReason    *string       `json:"cancel_reason,omitempty"`
	CancelledBy     *string       `json:"cancelled_by,omitempty"`
	ResolvedBy      *string       `json:"resolved_by,omitempty"`
	Version         int64         `json:"version"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	AcceptedAt      *time.Time    `json:"accepted_at,omitempty"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
	CancelledAt     *time.Time    `json:"cancelled_at,omitempty"`
}

// NewEscrow builds a record in the CREATED state.
func NewEscrow(requestID, clientID, valuatorID string, amount money.Amount, currency string, isUrgent bool, now time.Time) *Escrow {
	return &Escrow{
		RequestID:  requestID,
		ClientID:   clientID,
		ValuatorID: valuatorID,
		Amount:     amount,
		Currency:   currency,
		IsUrgent:   isUrgent,
		Status:     EscrowStatusCreated,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsTerminal returns true once the record can no longer change.
func (e *Escrow) IsTerminal() bool {
	return e.Status == EscrowStatusCompleted || e.Status == EscrowStatusCancelled
}

// Allows reports whether op may be applied in the current status.
func (e *Escrow) Allows(op Operation) bool {
	t, ok := transitions[op]
	if !ok {
		return false
	}
	for _, s := range t.from {
		if e.Status == s {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate without touching shared state.
func (e *Escrow) Clone() *Escrow {
	c := *e
	c.ValuatorBalance = clonePtr(e.ValuatorBalance)
	c.PlatformBalance = clonePtr(e.PlatformBalance)
	c.ClientRefund = clonePtr(e.ClientRefund)
	c.DisputeReason = clonePtr(e.DisputeReason)
	c.DisputedBy = clonePtr(e.DisputedBy)
	c.CancelReason = clonePtr(e.CancelReason)
	c.CancelledBy = clonePtr(e.CancelledBy)
	c.ResolvedBy = clonePtr(e.ResolvedBy)
	c.AcceptedAt = clonePtr(e.AcceptedAt)
	c.CompletedAt = clonePtr(e.CompletedAt)
	c.CancelledAt = clonePtr(e.CancelledAt)
	return &c
}

func (e *Escrow) advance(op Operation, now time.Time) error {
	if !e.Allows(op) {
		return fmt.Errorf("%w: cannot %s escrow in status %s", ErrInvalidTransition, op, e.Status)
	}
	e.Status = transitions[op].to
	e.UpdatedAt = now
	e.Version++
	return nil
}

// Accept moves a CREATED record to ACCEPTED.
func (e *Escrow) Accept(now time.Time) error {
	if err := e.advance(OperationAccept, now); err != nil {
		return err
	}
	e.AcceptedAt = &now
	return nil
}

// Complete settles an ACCEPTED record with the standard split.
func (e *Escrow) Complete(valuatorShare, platformShare money.Amount, now time.Time) error {
	if err := e.advance(OperationComplete, now); err != nil {
		return err
	}
	e.ValuatorBalance = valuatorShare.Ptr()
	e.PlatformBalance = platformShare.Ptr()
	e.CompletedAt = &now
	return nil
}

// Cancel refunds the full amount of a CREATED or ACCEPTED record.
func (e *Escrow) Cancel(reason, by string, now time.Time) error {
	if err := e.advance(OperationCancel, now); err != nil {
		return err
	}
	e.CancelReason = &reason
	e.CancelledBy = &by
	e.ClientRefund = e.Amount.Ptr()
	e.CancelledAt = &now
	return nil
}

// Dispute freezes an ACCEPTED record.
func (e *Escrow) Dispute(reason, by string, now time.Time) error {
	if err := e.advance(OperationDispute, now); err != nil {
		return err
	}
	e.DisputeReason = &reason
	e.DisputedBy = &by
	return nil
}

// Resolve settles a DISPUTED record with an arbiter-assigned split; the
// residual goes to the platform.
func (e *Escrow) Resolve(clientRefund, valuatorPayment money.Amount, by string, now time.Time) error {
	residual, err := e.Residual(clientRefund, valuatorPayment)
	if err != nil {
		return err
	}
	if err := e.advance(OperationResolve, now); err != nil {
		return err
	}
	e.ClientRefund = clientRefund.Ptr()
	e.ValuatorBalance = valuatorPayment.Ptr()
	e.PlatformBalance = residual.Ptr()
	e.ResolvedBy = &by
	e.CompletedAt = &now
	return nil
}

// Residual validates a dispute split and returns the platform's share.
func (e *Escrow) Residual(clientRefund, valuatorPayment money.Amount) (money.Amount, error) {
	if clientRefund.IsNegative() || valuatorPayment.IsNegative() {
		return 0, fmt.Errorf("%w: refund and payment must be non-negative", ErrSplitExceedsAmount)
	}
	total, err := money.Sum(clientRefund, valuatorPayment)
	if err != nil || total > e.Amount {
		return 0, fmt.Errorf("%w: %s + %s > %s", ErrSplitExceedsAmount, clientRefund, valuatorPayment, e.Amount)
	}
	return e.Amount - total, nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ErrEscrowExists is returned by repositories on a duplicate request id.
var ErrEscrowExists = errors.New("escrow already exists")
