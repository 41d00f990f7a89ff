package handler

import (
	"mapchain-escrow/internal/adapter/http/dto"
	"mapchain-escrow/internal/adapter/http/middleware"
	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/internal/core/ports"
	"mapchain-escrow/pkg/apperror"
	"mapchain-escrow/pkg/response"

	"github.com/gin-gonic/gin"
)

// RoleHandler manages platform role grants.
type RoleHandler struct {
	roles ports.RoleAuthority
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(roles ports.RoleAuthority) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// Grant handles POST /api/v1/roles.
func (h *RoleHandler) Grant(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.GrantRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	if err := h.roles.Grant(c.Request.Context(), actor, domain.Role(req.Role), req.SubjectID); err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxAuditResource, req.SubjectID)
	response.Created(c, dto.GrantRoleResponse{
		Role:      req.Role,
		SubjectID: req.SubjectID,
		GrantedBy: actor.ID,
	})
}
