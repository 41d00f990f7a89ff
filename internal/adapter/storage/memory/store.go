// Package memory is a process-local storage backend. It satisfies the same
// ports as the postgres adapter and is used for single-node deployments and
// end-to-end tests.
package memory

import (
	"errors"
	"sync"

	"mapchain-escrow/internal/core/domain"

	"github.com/google/uuid"
)

// ErrTxClosed is returned when a committed or rolled back tx is reused.
var ErrTxClosed = errors.New("memory: transaction already closed")

type roleKey struct {
	role    domain.Role
	subject string
}

// Store holds all committed state. Repositories share one Store.
type Store struct {
	mu         sync.RWMutex
	escrows    map[string]*domain.Escrow
	order      []string
	ledger     []domain.LedgerEntry
	roles      map[roleKey]domain.RoleGrant
	audits     []domain.AuditLog
	deliveries map[uuid.UUID]*domain.EventDelivery
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		escrows:    make(map[string]*domain.Escrow),
		roles:      make(map[roleKey]domain.RoleGrant),
		deliveries: make(map[uuid.UUID]*domain.EventDelivery),
	}
}

// AuditLogs returns a copy of the recorded audit trail.
func (s *Store) AuditLogs() []domain.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AuditLog, len(s.audits))
	copy(out, s.audits)
	return out
}
