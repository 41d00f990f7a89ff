package memory

import (
	"context"
	"fmt"

	"mapchain-escrow/internal/core/domain"

	"github.com/google/uuid"
)

type AuditRepo struct {
	store *Store
}

func NewAuditRepo(store *Store) *AuditRepo {
	return &AuditRepo{store: store}
}

func (r *AuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.audits = append(r.store.audits, *log)
	return nil
}

// EventDeliveryRepo implements ports.EventDeliveryRepository.
type EventDeliveryRepo struct {
	store *Store
}

func NewEventDeliveryRepo(store *Store) *EventDeliveryRepo {
	return &EventDeliveryRepo{store: store}
}

func (r *EventDeliveryRepo) Create(ctx context.Context, d *domain.EventDelivery) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.deliveries[d.ID]; ok {
		return fmt.Errorf("event delivery %s already exists", d.ID)
	}
	cp := *d
	r.store.deliveries[d.ID] = &cp
	return nil
}

func (r *EventDeliveryRepo) Update(ctx context.Context, d *domain.EventDelivery) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.deliveries[d.ID]; !ok {
		return fmt.Errorf("event delivery %s not found", d.ID)
	}
	cp := *d
	r.store.deliveries[d.ID] = &cp
	return nil
}

func (r *EventDeliveryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.EventDelivery, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	d, ok := r.store.deliveries[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

// HealthCheck always reports healthy; it exists so the health endpoint
// lists the active backend.
type HealthCheck struct{}

func (HealthCheck) Ping(ctx context.Context) error { return nil }
func (HealthCheck) Name() string                   { return "memory" }
