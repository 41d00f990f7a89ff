package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

const escrowColumns = `request_id, client_id, valuator_id, amount, currency, is_urgent, status, hold_ref,
		valuator_balance, platform_balance, client_refund, dispute_reason, disputed_by,
		cancel_reason, cancelled_by, resolved_by, version, created_at, updated_at,
		accepted_at, completed_at, cancelled_at`

// EscrowRepo implements ports.EscrowRepository.
type EscrowRepo struct {
	pool Pool
}

// NewEscrowRepo creates a new EscrowRepo.
func NewEscrowRepo(pool Pool) *EscrowRepo {
	return &EscrowRepo{pool: pool}
}

// Create inserts a new escrow within a database transaction.
func (r *EscrowRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.Escrow) error {
	query := `INSERT INTO escrows (` + escrowColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`

	_, err := tx.Exec(ctx, query,
		e.RequestID, e.ClientID, e.ValuatorID, e.Amount, e.Currency, e.IsUrgent, e.Status, e.HoldRef,
		e.ValuatorBalance, e.PlatformBalance, e.ClientRefund, e.DisputeReason, e.DisputedBy,
		e.CancelReason, e.CancelledBy, e.ResolvedBy, e.Version, e.CreatedAt, e.UpdatedAt,
		e.AcceptedAt, e.CompletedAt, e.CancelledAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert escrow %s: %w", e.RequestID, domain.ErrEscrowExists)
		}
		return fmt.Errorf("insert escrow: %w", err)
	}
	return nil
}

// GetByID fetches an escrow by request id. Returns nil when absent.
func (r *EscrowRepo) GetByID(ctx context.Context, requestID string) (*domain.Escrow, error) {
	query := `SELECT ` + escrowColumns + ` FROM escrows WHERE request_id = $1`
	return scanEscrow(r.pool.QueryRow(ctx, query, requestID))
}

// GetByIDForUpdate fetches and row-locks an escrow inside tx.
func (r *EscrowRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, requestID string) (*domain.Escrow, error) {
	query := `SELECT ` + escrowColumns + ` FROM escrows WHERE request_id = $1 FOR UPDATE`
	return scanEscrow(tx.QueryRow(ctx, query, requestID))
}

// Update writes the mutable fields of a locked escrow. The version guard
// rejects writes based on a stale read.
func (r *EscrowRepo) Update(ctx context.Context, tx pgx.Tx, e *domain.Escrow) error {
	query := `UPDATE escrows SET status = $1, valuator_balance = $2, platform_balance = $3, client_refund = $4,
		dispute_reason = $5, disputed_by = $6, cancel_reason = $7, cancelled_by = $8, resolved_by = $9,
		version = $10, updated_at = $11, accepted_at = $12, completed_at = $13, cancelled_at = $14
		WHERE request_id = $15 AND version = $16`

	tag, err := tx.Exec(ctx, query,
		e.Status, e.ValuatorBalance, e.PlatformBalance, e.ClientRefund,
		e.DisputeReason, e.DisputedBy, e.CancelReason, e.CancelledBy, e.ResolvedBy,
		e.Version, e.UpdatedAt, e.AcceptedAt, e.CompletedAt, e.CancelledAt,
		e.RequestID, e.Version-1,
	)
	if err != nil {
		return fmt.Errorf("update escrow: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("escrow %s changed concurrently (version %d)", e.RequestID, e.Version-1)
	}
	return nil
}

// List fetches escrows with filtering and pagination.
func (r *EscrowRepo) List(ctx context.Context, params ports.EscrowListParams) ([]domain.Escrow, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.ClientID != "" {
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", argIdx))
		args = append(args, params.ClientID)
		argIdx++
	}
	if params.ValuatorID != "" {
		conditions = append(conditions, fmt.Sprintf("valuator_id = $%d", argIdx))
		args = append(args, params.ValuatorID)
		argIdx++
	}
	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total
	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM escrows %s", where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count escrows: %w", err)
	}

	// Fetch page
	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT %s FROM escrows %s ORDER BY created_at DESC, request_id LIMIT $%d OFFSET $%d`,
		escrowColumns, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list escrows: %w", err)
	}
	items, err := collectEscrows(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListStale returns CREATED escrows older than createdBefore, oldest first.
func (r *EscrowRepo) ListStale(ctx context.Context, createdBefore time.Time, limit int) ([]domain.Escrow, error) {
	query := `SELECT ` + escrowColumns + ` FROM escrows
		WHERE status = $1 AND created_at < $2 ORDER BY created_at LIMIT $3`

	rows, err := r.pool.Query(ctx, query, domain.EscrowStatusCreated, createdBefore, limit)
	if err != nil {
		return nil, fmt.Errorf("list stale escrows: %w", err)
	}
	return collectEscrows(rows)
}

func collectEscrows(rows pgx.Rows) ([]domain.Escrow, error) {
	defer rows.Close()

	var items []domain.Escrow
	for rows.Next() {
		e, err := scanEscrow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate escrow rows: %w", err)
	}
	return items, nil
}

// scanEscrow is a helper to scan a single row into an Escrow.
func scanEscrow(row pgx.Row) (*domain.Escrow, error) {
	e := &domain.Escrow{}
	err := row.Scan(
		&e.RequestID, &e.ClientID, &e.ValuatorID, &e.Amount, &e.Currency, &e.IsUrgent, &e.Status, &e.HoldRef,
		&e.ValuatorBalance, &e.PlatformBalance, &e.ClientRefund, &e.DisputeReason, &e.DisputedBy,
		&e.CancelReason, &e.CancelledBy, &e.ResolvedBy, &e.Version, &e.CreatedAt, &e.UpdatedAt,
		&e.AcceptedAt, &e.CompletedAt, &e.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan escrow: %w", err)
	}
	return e, nil
}
