package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"time"

	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/pkg/money"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// EscrowRepository defines persistence operations for escrow records.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
type EscrowRepository interface {
	Create(ctx context.Context, tx pgx.Tx, escrow *domain.Escrow) error
	GetByID(ctx context.Context, requestID string) (*domain.Escrow, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, requestID string) (*domain.Escrow, error)
	Update(ctx context.Context, tx pgx.Tx, escrow *domain.Escrow) error
	List(ctx context.Context, params EscrowListParams) ([]domain.Escrow, int64, error)
	// ListStale returns CREATED records created before the cutoff, oldest first.
	ListStale(ctx context.Context, createdBefore time.Time, limit int) ([]domain.Escrow, error)
}

// EscrowListParams holds filter + pagination for listing escrows.
type EscrowListParams struct {
	ClientID   string
	ValuatorID string
	Status     *domain.EscrowStatus
	Page       int
	PageSize   int
}

// LedgerRepository persists the append-only ledger entries.
type LedgerRepository interface {
	Create(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error
	ListByRequest(ctx context.Context, requestID string) ([]domain.LedgerEntry, error)
	// SumByAccount totals entries of the given type; an empty account sums all accounts.
	SumByAccount(ctx context.Context, entryType domain.EntryType, account string) (money.Amount, error)
}

// RoleRepository persists role grants.
type RoleRepository interface {
	Grant(ctx context.Context, grant *domain.RoleGrant) error
	HasRole(ctx context.Context, subjectID string, role domain.Role) (bool, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.RoleGrant, error)
}

// AuditRepository persists audit log rows.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// EventDeliveryRepository tracks webhook delivery attempts.
type EventDeliveryRepository interface {
	Create(ctx context.Context, delivery *domain.EventDelivery) error
	Update(ctx context.Context, delivery *domain.EventDelivery) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.EventDelivery, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
