package handler

import (
	"storefront-gateway/internal/adapter/http/dto"
	"storefront-gateway/internal/adapter/http/middleware"
	"storefront-gateway/internal/core/ports"
	"storefront-gateway/pkg/apperror"
	"storefront-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// OrderHandler places single-product orders.
type OrderHandler struct {
	settlementSvc ports.SettlementService
}

func NewOrderHandler(settlementSvc ports.SettlementService) *OrderHandler {
	return &OrderHandler{settlementSvc: settlementSvc}
}

// PlaceOrder handles POST /api/v1/orders. An anonymous caller reaches the
// settlement service with a nil credential and is refused there.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStrings(&req)

	result, err := h.settlementSvc.Settle(c.Request.Context(), req.ToDomain(), middleware.CredentialFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
