package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType names an escrow lifecycle notification.
type EventType string

const (
	EventEscrowCreated   EventType = "EscrowCreated"
	EventEscrowAccepted  EventType = "EscrowAccepted"
	EventEscrowCompleted EventType = "EscrowCompleted"
	EventEscrowCancelled EventType = "EscrowCancelled"
	EventEscrowDisputed  EventType = "EscrowDisputed"
	EventDisputeResolved EventType = "DisputeResolved"
)

// EscrowEvent is emitted after a transition commits.
type EscrowEvent struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	RequestID  string    `json:"request_id"`
	ActorID    string    `json:"actor_id"`
	Escrow     Escrow    `json:"escrow"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEscrowEvent snapshots the record into an event.
func NewEscrowEvent(eventType EventType, e *Escrow, actorID string, now time.Time) *EscrowEvent {
	return &EscrowEvent{
		ID:         uuid.New(),
		Type:       eventType,
		RequestID:  e.RequestID,
		ActorID:    actorID,
		Escrow:     *e.Clone(),
		OccurredAt: now,
	}
}

// DeliveryStatus represents the delivery state of an event notification.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "PENDING"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
	DeliveryStatusFailed    DeliveryStatus = "FAILED"
)

// EventDelivery records each webhook delivery attempt for an event.
type EventDelivery struct {
	ID          uuid.UUID      `json:"id"`
	EventID     uuid.UUID      `json:"event_id"`
	EventType   EventType      `json:"event_type"`
	RequestID   string         `json:"request_id"`
	WebhookURL  string         `json:"webhook_url"`
	Payload     string         `json:"payload"` // JSON string
	HTTPStatus  *int           `json:"http_status"`
	Attempt     int            `json:"attempt"`
	Status      DeliveryStatus `json:"status"`
	NextRetryAt *time.Time     `json:"next_retry_at"`
	LastError   *string        `json:"last_error"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
