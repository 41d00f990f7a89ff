package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/pkg/money"
)

// PaymentCustodian moves real funds. The key is a deterministic idempotency
// key; repeating a call with the same key must not move money twice.
type PaymentCustodian interface {
	Hold(ctx context.Context, key, clientID string, amount money.Amount) (string, error)
	Release(ctx context.Context, key, holdRef, payee string, amount money.Amount) error
	Refund(ctx context.Context, key, holdRef, payee string, amount money.Amount) error
	// Void reverses the instruction executed under key, returning paid-out
	// funds to the hold or releasing a hold back to the client. Voiding an
	// unknown or already voided key is a no-op, and a voided key may be
	// issued again.
	Void(ctx context.Context, key, holdRef string) error
}

// RoleAuthority answers authorization questions for ledger operations.
type RoleAuthority interface {
	IsArbiter(ctx context.Context, actor domain.Actor) (bool, error)
	IsAssignedValuator(actor domain.Actor, escrow *domain.Escrow) bool
	CanCancel(ctx context.Context, actor domain.Actor, escrow *domain.Escrow) (bool, error)
	CanRaiseDispute(actor domain.Actor, escrow *domain.Escrow) bool
	// Grant authorizes actor and records role for subjectID.
	Grant(ctx context.Context, actor domain.Actor, role domain.Role, subjectID string) error
}

// SignatureService handles HMAC-SHA256 signing and verification.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
	BuildCanonicalString(method, path string, timestamp int64, body string) string
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(subject string, roles []domain.Role) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject string
	Roles   []domain.Role
}

// IdempotencyCache is the Redis-layer record of completed custodian instructions.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached value or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// --- Service Ports (Business Logic) ---

// EscrowService defines the escrow ledger business logic.
type EscrowService interface {
	CreateEscrow(ctx context.Context, actor domain.Actor, req CreateEscrowRequest) (*domain.Escrow, error)
	AcceptEscrow(ctx context.Context, actor domain.Actor, requestID string) (*domain.Escrow, error)
	CompleteValuation(ctx context.Context, actor domain.Actor, requestID string) (*domain.Escrow, error)
	CancelEscrow(ctx context.Context, actor domain.Actor, requestID, reason string) (*domain.Escrow, error)
	RaiseDispute(ctx context.Context, actor domain.Actor, requestID, reason string) (*domain.Escrow, error)
	ResolveDispute(ctx context.Context, actor domain.Actor, req ResolveDisputeRequest) (*domain.Escrow, error)

	GetEscrow(ctx context.Context, requestID string) (*domain.Escrow, error)
	ListEscrows(ctx context.Context, params EscrowListParams) ([]domain.Escrow, int64, error)
	ListLedgerEntries(ctx context.Context, requestID string) ([]domain.LedgerEntry, error)
	GetValuatorBalance(ctx context.Context, valuatorID string) (money.Amount, error)
	GetPlatformBalance(ctx context.Context) (money.Amount, error)
	GetClientRefunds(ctx context.Context, clientID string) (money.Amount, error)
}

// CreateEscrowRequest holds validated input for escrow creation.
type CreateEscrowRequest struct {
	RequestID  string
	ClientID   string
	ValuatorID string
	Amount     money.Amount
	Currency   string
	IsUrgent   bool
}

// ResolveDisputeRequest holds the arbiter's split.
type ResolveDisputeRequest struct {
	RequestID       string
	ClientRefund    money.Amount
	ValuatorPayment money.Amount
}

// EventPublisher delivers escrow events to subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.EscrowEvent) error
}

// AuditService records audit entries.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// MetricsRecorder records ledger observations.
type MetricsRecorder interface {
	ObserveTransition(op domain.Operation, outcome string, elapsed time.Duration)
	ObserveCustodianCall(method, outcome string, elapsed time.Duration)
	ObserveExpiry(outcome string)
}
