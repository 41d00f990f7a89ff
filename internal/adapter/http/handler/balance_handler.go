package handler

import (
	"mapchain-escrow/internal/adapter/http/dto"
	"mapchain-escrow/internal/core/ports"
	"mapchain-escrow/pkg/response"

	"github.com/gin-gonic/gin"
)

// BalanceHandler serves cumulative ledger balances.
type BalanceHandler struct {
	escrowSvc ports.EscrowService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(escrowSvc ports.EscrowService) *BalanceHandler {
	return &BalanceHandler{escrowSvc: escrowSvc}
}

// Valuator handles GET /api/v1/balances/valuators/:valuator_id.
func (h *BalanceHandler) Valuator(c *gin.Context) {
	id := c.Param("valuator_id")
	bal, err := h.escrowSvc.GetValuatorBalance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.BalanceResponse{Account: id, Kind: "valuator", Balance: dto.NewAmountView(bal)})
}

// Platform handles GET /api/v1/balances/platform.
func (h *BalanceHandler) Platform(c *gin.Context) {
	bal, err := h.escrowSvc.GetPlatformBalance(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.BalanceResponse{Account: "platform", Kind: "platform", Balance: dto.NewAmountView(bal)})
}

// ClientRefunds handles GET /api/v1/balances/clients/:client_id/refunds.
func (h *BalanceHandler) ClientRefunds(c *gin.Context) {
	id := c.Param("client_id")
	bal, err := h.escrowSvc.GetClientRefunds(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.BalanceResponse{Account: id, Kind: "client_refunds", Balance: dto.NewAmountView(bal)})
}
