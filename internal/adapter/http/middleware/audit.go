package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog records successful write operations. It maps route templates to
// audit actions.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		if c.Request.Method != http.MethodPost {
			return
		}

		action, resourceType := mapRouteToAction(c.FullPath())
		if action == "" {
			return
		}

		var actorID string
		if actor, ok := ActorFrom(c); ok {
			actorID = actor.ID
		}
		resourceID := c.Param("request_id")
		if v, ok := c.Get(CtxAuditResource); ok {
			resourceID, _ = v.(string)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			ActorID:      actorID,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now(),
		})
	}
}

// CtxAuditResource lets a handler name the audited resource when the route
// carries no request_id, e.g. on create.
const CtxAuditResource = "audit_resource"

func mapRouteToAction(route string) (domain.AuditAction, string) {
	switch route {
	case "/api/v1/escrows":
		return domain.AuditActionCreateEscrow, "escrow"
	case "/api/v1/escrows/:request_id/accept":
		return domain.AuditActionAcceptEscrow, "escrow"
	case "/api/v1/escrows/:request_id/complete":
		return domain.AuditActionCompleteEscrow, "escrow"
	case "/api/v1/escrows/:request_id/cancel":
		return domain.AuditActionCancelEscrow, "escrow"
	case "/api/v1/escrows/:request_id/dispute":
		return domain.AuditActionRaiseDispute, "escrow"
	case "/api/v1/escrows/:request_id/resolve":
		return domain.AuditActionResolveDispute, "escrow"
	case "/api/v1/roles":
		return domain.AuditActionGrantRole, "role"
	}
	return "", ""
}
