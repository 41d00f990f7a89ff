package handler

import (
	"strconv"
	"strings"

	"mapchain-escrow/internal/adapter/http/dto"
	"mapchain-escrow/internal/adapter/http/middleware"
	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/internal/core/ports"
	"mapchain-escrow/pkg/apperror"
	"mapchain-escrow/pkg/money"
	"mapchain-escrow/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// EscrowHandler serves the escrow lifecycle endpoints.
type EscrowHandler struct {
	escrowSvc ports.EscrowService
}

// NewEscrowHandler creates a new EscrowHandler.
func NewEscrowHandler(escrowSvc ports.EscrowService) *EscrowHandler {
	return &EscrowHandler{escrowSvc: escrowSvc}
}

// Create handles POST /api/v1/escrows.
func (h *EscrowHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreateEscrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, err := money.Parse(req.Amount)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}
	clientID := req.ClientID
	if clientID == "" {
		clientID = actor.ID
	}

	escrow, err := h.escrowSvc.CreateEscrow(c.Request.Context(), actor, ports.CreateEscrowRequest{
		RequestID:  req.RequestID,
		ClientID:   clientID,
		ValuatorID: req.ValuatorID,
		Amount:     amount,
		Currency:   strings.ToUpper(req.Currency),
		IsUrgent:   req.IsUrgent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxAuditResource, escrow.RequestID)
	response.Created(c, dto.ToEscrowResponse(escrow))
}

// Accept handles POST /api/v1/escrows/:request_id/accept.
func (h *EscrowHandler) Accept(c *gin.Context) {
	h.transition(c, func(actor domain.Actor, requestID string) (*domain.Escrow, error) {
		return h.escrowSvc.AcceptEscrow(c.Request.Context(), actor, requestID)
	})
}

// Complete handles POST /api/v1/escrows/:request_id/complete.
func (h *EscrowHandler) Complete(c *gin.Context) {
	h.transition(c, func(actor domain.Actor, requestID string) (*domain.Escrow, error) {
		return h.escrowSvc.CompleteValuation(c.Request.Context(), actor, requestID)
	})
}

// Cancel handles POST /api/v1/escrows/:request_id/cancel.
func (h *EscrowHandler) Cancel(c *gin.Context) {
	reason, ok := bindReason(c)
	if !ok {
		return
	}
	h.transition(c, func(actor domain.Actor, requestID string) (*domain.Escrow, error) {
		return h.escrowSvc.CancelEscrow(c.Request.Context(), actor, requestID, reason)
	})
}

// Dispute handles POST /api/v1/escrows/:request_id/dispute.
func (h *EscrowHandler) Dispute(c *gin.Context) {
	reason, ok := bindReason(c)
	if !ok {
		return
	}
	h.transition(c, func(actor domain.Actor, requestID string) (*domain.Escrow, error) {
		return h.escrowSvc.RaiseDispute(c.Request.Context(), actor, requestID, reason)
	})
}

// Resolve handles POST /api/v1/escrows/:request_id/resolve.
func (h *EscrowHandler) Resolve(c *gin.Context) {
	var req dto.ResolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	refund, err := money.Parse(strings.TrimSpace(req.ClientRefund))
	if err != nil {
		response.Error(c, apperror.ErrInvalidSplit("client_refund is not a valid amount"))
		return
	}
	payment, err := money.Parse(strings.TrimSpace(req.ValuatorPayment))
	if err != nil {
		response.Error(c, apperror.ErrInvalidSplit("valuator_payment is not a valid amount"))
		return
	}

	h.transition(c, func(actor domain.Actor, requestID string) (*domain.Escrow, error) {
		return h.escrowSvc.ResolveDispute(c.Request.Context(), actor, ports.ResolveDisputeRequest{
			RequestID:       requestID,
			ClientRefund:    refund,
			ValuatorPayment: payment,
		})
	})
}

// Get handles GET /api/v1/escrows/:request_id.
func (h *EscrowHandler) Get(c *gin.Context) {
	escrow, err := h.escrowSvc.GetEscrow(c.Request.Context(), c.Param("request_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToEscrowResponse(escrow))
}

// List handles GET /api/v1/escrows with optional filters.
func (h *EscrowHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	params := ports.EscrowListParams{
		ClientID:   c.Query("client_id"),
		ValuatorID: c.Query("valuator_id"),
		Page:       page,
		PageSize:   pageSize,
	}
	if s := c.Query("status"); s != "" {
		status := domain.EscrowStatus(strings.ToUpper(s))
		if !status.Valid() {
			response.Error(c, apperror.Validation("unknown status "+strconv.Quote(s)))
			return
		}
		params.Status = &status
	}

	escrows, total, err := h.escrowSvc.ListEscrows(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.EscrowResponse, 0, len(escrows))
	for i := range escrows {
		items = append(items, dto.ToEscrowResponse(&escrows[i]))
	}
	response.Page(c, items, total, page, pageSize)
}

// Entries handles GET /api/v1/escrows/:request_id/entries.
func (h *EscrowHandler) Entries(c *gin.Context) {
	entries, err := h.escrowSvc.ListLedgerEntries(c.Request.Context(), c.Param("request_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.LedgerEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.ToLedgerEntryResponse(&entries[i]))
	}
	response.OK(c, items)
}

func (h *EscrowHandler) transition(c *gin.Context, fn func(domain.Actor, string) (*domain.Escrow, error)) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	escrow, err := fn(actor, c.Param("request_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToEscrowResponse(escrow))
}

// bindReason reads an optional reason body. An empty body is allowed.
func bindReason(c *gin.Context) (string, bool) {
	var req dto.ReasonRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return "", false
		}
	}
	dto.SanitizeStruct(&req)
	return req.Reason, true
}
