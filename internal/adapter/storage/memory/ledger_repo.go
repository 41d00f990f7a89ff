package memory

import (
	"context"
	"fmt"

	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/pkg/money"

	"github.com/jackc/pgx/v5"
)

// LedgerRepo implements ports.LedgerRepository.
type LedgerRepo struct {
	store *Store
}

func NewLedgerRepo(store *Store) *LedgerRepo {
	return &LedgerRepo{store: store}
}

func (r *LedgerRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	mtx, err := asTx(tx)
	if err != nil {
		return err
	}
	return mtx.stage(func() { mtx.entries = append(mtx.entries, *e) })
}

func (r *LedgerRepo) ListByRequest(ctx context.Context, requestID string) ([]domain.LedgerEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []domain.LedgerEntry
	for _, e := range r.store.ledger {
		if e.RequestID == requestID {
			out = append(out, e)
		}
	}
	return out, nil
}

// SumByAccount totals committed entries of entryType. An empty account sums
// across all accounts.
func (r *LedgerRepo) SumByAccount(ctx context.Context, entryType domain.EntryType, account string) (money.Amount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var amounts []money.Amount
	for _, e := range r.store.ledger {
		if e.EntryType == entryType && (account == "" || e.Account == account) {
			amounts = append(amounts, e.Amount)
		}
	}
	total, err := money.Sum(amounts...)
	if err != nil {
		return 0, fmt.Errorf("sum %s for %q: %w", entryType, account, err)
	}
	return total, nil
}
