package dto

import (
	"time"

	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/pkg/money"
)

// CreateEscrowRequest is the request body for opening an escrow.
// ClientID defaults to the caller; only arbiters may fund on behalf of another client.
// Amounts are decimal strings parsed by the handler so that malformed values
// report ESC_004 rather than a binding error.
type CreateEscrowRequest struct {
	RequestID  string `json:"request_id" binding:"required,max=100,safe_id"`
	ClientID   string `json:"client_id,omitempty" binding:"omitempty,max=100,safe_id"`
	ValuatorID string `json:"valuator_id" binding:"required,max=100,safe_id"`
	Amount     string `json:"amount" binding:"required"`
	Currency   string `json:"currency,omitempty" binding:"omitempty,len=3,alpha"`
	IsUrgent   bool   `json:"is_urgent"`
}

// ReasonRequest is the body of cancel and dispute calls.
type ReasonRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// ResolveDisputeRequest carries an arbiter's split of a disputed escrow.
type ResolveDisputeRequest struct {
	ClientRefund    string `json:"client_refund" binding:"required"`
	ValuatorPayment string `json:"valuator_payment" binding:"required"`
}

// GrantRoleRequest grants a platform role to a subject.
type GrantRoleRequest struct {
	Role      string `json:"role" binding:"required,oneof=ARBITER"`
	SubjectID string `json:"subject_id" binding:"required,max=100,safe_id"`
}

// AmountView renders an amount as both minor units and a decimal string.
type AmountView struct {
	Minor   int64  `json:"minor"`
	Decimal string `json:"decimal"`
}

func NewAmountView(a money.Amount) AmountView {
	return AmountView{Minor: a.Int64(), Decimal: a.String()}
}

func optionalAmount(a *money.Amount) *AmountView {
	if a == nil {
		return nil
	}
	v := NewAmountView(*a)
	return &v
}

// EscrowResponse is the wire form of an escrow record.
type EscrowResponse struct {
	RequestID       string      `json:"request_id"`
	ClientID        string      `json:"client_id"`
	ValuatorID      string      `json:"valuator_id"`
	Amount          AmountView  `json:"amount"`
	Currency        string      `json:"currency"`
	IsUrgent        bool        `json:"is_urgent"`
	Status          string      `json:"status"`
	ValuatorBalance *AmountView `json:"valuator_balance,omitempty"`
	PlatformBalance *AmountView `json:"platform_balance,omitempty"`
	ClientRefund    *AmountView `json:"client_refund,omitempty"`
	DisputeReason   *string     `json:"dispute_reason,omitempty"`
	DisputedBy      *string     `json:"disputed_by,omitempty"`
	CancelReason    *string     `json:"cancel_reason,omitempty"`
	CancelledBy     *string     `json:"cancelled_by,omitempty"`
	ResolvedBy      *string     `json:"resolved_by,omitempty"`
	Version         int64       `json:"version"`
	CreatedAt       string      `json:"created_at"`
	UpdatedAt       string      `json:"updated_at"`
	AcceptedAt      *string     `json:"accepted_at,omitempty"`
	CompletedAt     *string     `json:"completed_at,omitempty"`
	CancelledAt     *string     `json:"cancelled_at,omitempty"`
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// ToEscrowResponse converts domain.Escrow to its wire form.
func ToEscrowResponse(e *domain.Escrow) EscrowResponse {
	return EscrowResponse{
		RequestID:       e.RequestID,
		ClientID:        e.ClientID,
		ValuatorID:      e.ValuatorID,
		Amount:          NewAmountView(e.Amount),
		Currency:        e.Currency,
		IsUrgent:        e.IsUrgent,
		Status:          string(e.Status),
		ValuatorBalance: optionalAmount(e.ValuatorBalance),
		PlatformBalance: optionalAmount(e.PlatformBalance),
		ClientRefund:    optionalAmount(e.ClientRefund),
		DisputeReason:   e.DisputeReason,
		DisputedBy:      e.DisputedBy,
		CancelReason:    e.CancelReason,
		CancelledBy:     e.CancelledBy,
		ResolvedBy:      e.ResolvedBy,
		Version:         e.Version,
		CreatedAt:       e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       e.UpdatedAt.UTC().Format(time.RFC3339),
		AcceptedAt:      formatTime(e.AcceptedAt),
		CompletedAt:     formatTime(e.CompletedAt),
		CancelledAt:     formatTime(e.CancelledAt),
	}
}

// LedgerEntryResponse is the wire form of a ledger entry.
type LedgerEntryResponse struct {
	ID        string     `json:"id"`
	EntryType string     `json:"entry_type"`
	Account   string     `json:"account"`
	Amount    AmountView `json:"amount"`
	HoldRef   string     `json:"hold_ref"`
	CreatedAt string     `json:"created_at"`
}

func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:        e.ID.String(),
		EntryType: string(e.EntryType),
		Account:   e.Account,
		Amount:    NewAmountView(e.Amount),
		HoldRef:   e.HoldRef,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// BalanceResponse reports a cumulative balance for one account.
type BalanceResponse struct {
	Account string     `json:"account"`
	Kind    string     `json:"kind"` // valuator, platform, client_refunds
	Balance AmountView `json:"balance"`
}

// GrantRoleResponse echoes a recorded role grant.
type GrantRoleResponse struct {
	Role      string `json:"role"`
	SubjectID string `json:"subject_id"`
	GrantedBy string `json:"granted_by"`
}
