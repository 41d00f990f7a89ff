package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// EscrowRepo implements ports.EscrowRepository. Callers always get clones.
type EscrowRepo struct {
	store *Store
}

func NewEscrowRepo(store *Store) *EscrowRepo {
	return &EscrowRepo{store: store}
}

func (r *EscrowRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.Escrow) error {
	mtx, err := asTx(tx)
	if err != nil {
		return err
	}
	r.store.mu.RLock()
	_, exists := r.store.escrows[e.RequestID]
	r.store.mu.RUnlock()
	if exists || mtx.pending(e.RequestID) != nil {
		return fmt.Errorf("insert escrow %s: %w", e.RequestID, domain.ErrEscrowExists)
	}
	return mtx.stage(func() { mtx.creates = append(mtx.creates, e.Clone()) })
}

func (r *EscrowRepo) GetByID(ctx context.Context, requestID string) (*domain.Escrow, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	e, ok := r.store.escrows[requestID]
	if !ok {
		return nil, nil
	}
	return e.Clone(), nil
}

// GetByIDForUpdate reads through the tx so a record staged earlier in the
// same tx is visible. Row locking is the caller's per-key lock.
func (r *EscrowRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, requestID string) (*domain.Escrow, error) {
	mtx, err := asTx(tx)
	if err != nil {
		return nil, err
	}
	if e := mtx.pending(requestID); e != nil {
		return e.Clone(), nil
	}
	return r.GetByID(ctx, requestID)
}

func (r *EscrowRepo) Update(ctx context.Context, tx pgx.Tx, e *domain.Escrow) error {
	mtx, err := asTx(tx)
	if err != nil {
		return err
	}
	return mtx.stage(func() { mtx.updates = append(mtx.updates, e.Clone()) })
}

func (r *EscrowRepo) List(ctx context.Context, params ports.EscrowListParams) ([]domain.Escrow, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []domain.Escrow
	for _, id := range r.store.order {
		e := r.store.escrows[id]
		if params.ClientID != "" && e.ClientID != params.ClientID {
			continue
		}
		if params.ValuatorID != "" && e.ValuatorID != params.ValuatorID {
			continue
		}
		if params.Status != nil && e.Status != *params.Status {
			continue
		}
		result = append(result, *e.Clone())
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	total := int64(len(result))

	start := (params.Page - 1) * params.PageSize
	if start < 0 || start >= len(result) {
		return []domain.Escrow{}, total, nil
	}
	end := start + params.PageSize
	if end > len(result) {
		end = len(result)
	}
	return result[start:end], total, nil
}

func (r *EscrowRepo) ListStale(ctx context.Context, createdBefore time.Time, limit int) ([]domain.Escrow, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []domain.Escrow
	for _, id := range r.store.order {
		e := r.store.escrows[id]
		if e.Status == domain.EscrowStatusCreated && e.CreatedAt.Before(createdBefore) {
			result = append(result, *e.Clone())
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
