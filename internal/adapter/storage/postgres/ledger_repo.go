package postgres

import (
	"context"
	"fmt"

	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/pkg/money"

	"github.com/jackc/pgx/v5"
)

// LedgerRepo implements ports.LedgerRepository. Entries are append-only.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

// Create inserts an entry within a database transaction.
func (r *LedgerRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (id, request_id, entry_type, account, amount, hold_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query, e.ID, e.RequestID, e.EntryType, e.Account, e.Amount, e.HoldRef, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// ListByRequest returns the entries of one escrow in insertion order.
func (r *LedgerRepo) ListByRequest(ctx context.Context, requestID string) ([]domain.LedgerEntry, error) {
	query := `SELECT id, request_id, entry_type, account, amount, hold_ref, created_at
		FROM ledger_entries WHERE request_id = $1 ORDER BY created_at, entry_type`

	rows, err := r.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.RequestID, &e.EntryType, &e.Account, &e.Amount, &e.HoldRef, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger rows: %w", err)
	}
	return entries, nil
}

// SumByAccount totals entries of entryType credited to account.
// An empty account sums across all accounts.
func (r *LedgerRepo) SumByAccount(ctx context.Context, entryType domain.EntryType, account string) (money.Amount, error) {
	query := `SELECT COALESCE(SUM(amount), 0)::BIGINT FROM ledger_entries WHERE entry_type = $1`
	args := []any{entryType}
	if account != "" {
		query += ` AND account = $2`
		args = append(args, account)
	}

	var total money.Amount
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum ledger entries: %w", err)
	}
	return total, nil
}
