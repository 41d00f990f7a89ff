package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionCreateEscrow     AuditAction = "CREATE_ESCROW"
	AuditActionAcceptEscrow     AuditAction = "ACCEPT_ESCROW"
	AuditActionCompleteEscrow   AuditAction = "COMPLETE_ESCROW"
	AuditActionCancelEscrow     AuditAction = "CANCEL_ESCROW"
	AuditActionRaiseDispute     AuditAction = "RAISE_DISPUTE"
	AuditActionResolveDispute   AuditAction = "RESOLVE_DISPUTE"
	AuditActionGrantRole        AuditAction = "GRANT_ROLE"
	AuditActionExpireUnaccepted AuditAction = "EXPIRE_UNACCEPTED"
)

// AuditLog records a single audited action in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	ActorID      string      `json:"actor_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
