package memory

import (
	"context"
	"fmt"
	"sync"

	"mapchain-escrow/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Transactor hands out buffered transactions against a Store.
type Transactor struct {
	store *Store
}

// NewTransactor creates a Transactor for store.
func NewTransactor(store *Store) *Transactor {
	return &Transactor{store: store}
}

// Begin starts a transaction. Writes stay invisible until Commit.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &Tx{store: t.store}, nil
}

// Tx buffers escrow and ledger writes and applies them atomically on Commit.
// It implements pgx.Tx so it can flow through the same ports as a database
// transaction; the SQL methods are not supported.
type Tx struct {
	mu      sync.Mutex
	store   *Store
	creates []*domain.Escrow
	updates []*domain.Escrow
	entries []domain.LedgerEntry
	closed  bool
}

func (t *Tx) stage(fn func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrTxClosed
	}
	fn()
	return nil
}

// pending returns a staged write for requestID, if any.
func (t *Tx) pending(requestID string) *domain.Escrow {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.updates) - 1; i >= 0; i-- {
		if t.updates[i].RequestID == requestID {
			return t.updates[i]
		}
	}
	for _, e := range t.creates {
		if e.RequestID == requestID {
			return e
		}
	}
	return nil
}

// Commit validates every staged write against committed state and then
// applies all of them, or none.
func (t *Tx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrTxClosed
	}
	t.closed = true

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range t.creates {
		if _, ok := s.escrows[e.RequestID]; ok {
			return fmt.Errorf("commit escrow %s: %w", e.RequestID, domain.ErrEscrowExists)
		}
	}
	for _, e := range t.updates {
		cur, ok := s.escrows[e.RequestID]
		if !ok && !t.createdHere(e.RequestID) {
			return fmt.Errorf("commit escrow %s: not found", e.RequestID)
		}
		if ok && cur.Version != e.Version-1 {
			return fmt.Errorf("escrow %s changed concurrently (version %d)", e.RequestID, cur.Version)
		}
	}

	for _, e := range t.creates {
		s.escrows[e.RequestID] = e.Clone()
		s.order = append(s.order, e.RequestID)
	}
	for _, e := range t.updates {
		s.escrows[e.RequestID] = e.Clone()
	}
	s.ledger = append(s.ledger, t.entries...)
	return nil
}

func (t *Tx) createdHere(requestID string) bool {
	for _, e := range t.creates {
		if e.RequestID == requestID {
			return true
		}
	}
	return false
}

// Rollback discards staged writes. Calling it after Commit is a no-op.
func (t *Tx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	t.creates, t.updates, t.entries = nil, nil, nil
	return nil
}

func (t *Tx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *Tx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, errUnsupported
}
func (t *Tx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return unsupportedBatch{} }
func (t *Tx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *Tx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, errUnsupported
}
func (t *Tx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), errUnsupported
}
func (t *Tx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errUnsupported
}
func (t *Tx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return unsupportedRow{} }
func (t *Tx) Conn() *pgx.Conn                                               { return nil }

var errUnsupported = fmt.Errorf("memory: SQL is not supported")

type unsupportedRow struct{}

func (unsupportedRow) Scan(dest ...any) error { return errUnsupported }

type unsupportedBatch struct{}

func (unsupportedBatch) Exec() (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), errUnsupported
}
func (unsupportedBatch) Query() (pgx.Rows, error) { return nil, errUnsupported }
func (unsupportedBatch) QueryRow() pgx.Row        { return unsupportedRow{} }
func (unsupportedBatch) Close() error             { return errUnsupported }

func asTx(tx pgx.Tx) (*Tx, error) {
	mtx, ok := tx.(*Tx)
	if !ok {
		return nil, fmt.Errorf("memory: foreign transaction type %T", tx)
	}
	return mtx, nil
}
