package postgres

import (
	"context"
	"errors"
	"fmt"

	"mapchain-escrow/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// EventDeliveryRepo implements ports.EventDeliveryRepository.
type EventDeliveryRepo struct {
	pool Pool
}

// NewEventDeliveryRepo creates a PostgreSQL-backed EventDeliveryRepository.
func NewEventDeliveryRepo(pool Pool) *EventDeliveryRepo {
	return &EventDeliveryRepo{pool: pool}
}

// Create inserts a pending delivery.
func (r *EventDeliveryRepo) Create(ctx context.Context, d *domain.EventDelivery) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO event_deliveries
		(id, event_id, event_type, request_id, webhook_url, payload, http_status, attempt, status, next_retry_at, last_error, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		d.ID, d.EventID, string(d.EventType), d.RequestID, d.WebhookURL,
		d.Payload, d.HTTPStatus, d.Attempt, string(d.Status),
		d.NextRetryAt, d.LastError, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event delivery: %w", err)
	}
	return nil
}

// Update records the outcome of a delivery attempt.
func (r *EventDeliveryRepo) Update(ctx context.Context, d *domain.EventDelivery) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE event_deliveries
		 SET http_status=$1, attempt=$2, status=$3, next_retry_at=$4, last_error=$5, updated_at=$6
		 WHERE id=$7`,
		d.HTTPStatus, d.Attempt, string(d.Status),
		d.NextRetryAt, d.LastError, d.UpdatedAt, d.ID,
	)
	if err != nil {
		return fmt.Errorf("update event delivery: %w", err)
	}
	return nil
}

// GetByID fetches one delivery. Returns nil when absent.
func (r *EventDeliveryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.EventDelivery, error) {
	var d domain.EventDelivery
	var eventType, status string
	err := r.pool.QueryRow(ctx,
		`SELECT id, event_id, event_type, request_id, webhook_url, payload,
		 http_status, attempt, status, next_retry_at, last_error, created_at, updated_at
		 FROM event_deliveries WHERE id=$1`, id,
	).Scan(
		&d.ID, &d.EventID, &eventType, &d.RequestID, &d.WebhookURL, &d.Payload,
		&d.HTTPStatus, &d.Attempt, &status, &d.NextRetryAt, &d.LastError, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get event delivery: %w", err)
	}
	d.EventType = domain.EventType(eventType)
	d.Status = domain.DeliveryStatus(status)
	return &d, nil
}
