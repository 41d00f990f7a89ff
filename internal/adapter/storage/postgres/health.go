package postgres

import (
	"context"
	"errors"
	"fmt"
)

var errSchemaMissing = errors.New("escrows table not found; run migrations")

// StoreCheck reports the escrow store healthy when the database answers and
// the ledger schema is installed.
type StoreCheck struct {
	pool Pool
}

func NewHealthCheck(pool Pool) *StoreCheck {
	return &StoreCheck{pool: pool}
}

func (h *StoreCheck) Ping(ctx context.Context) error {
	var migrated bool
	if err := h.pool.QueryRow(ctx, `SELECT to_regclass('escrows') IS NOT NULL`).Scan(&migrated); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}
	if !migrated {
		return errSchemaMissing
	}
	return nil
}

func (h *StoreCheck) Name() string {
	return "postgresql"
}
