package handler

import (
	"storefront-gateway/internal/adapter/http/dto"
	"storefront-gateway/internal/core/ports"
	"storefront-gateway/pkg/apperror"
	"storefront-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ConversionHandler quotes currency conversions.
type ConversionHandler struct {
	conversionSvc ports.ConversionService
}

func NewConversionHandler(conversionSvc ports.ConversionService) *ConversionHandler {
	return &ConversionHandler{conversionSvc: conversionSvc}
}

// Convert handles GET /api/v1/conversion.
func (h *ConversionHandler) Convert(c *gin.Context) {
	var q dto.ConversionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	amount, err := decimal.NewFromString(q.Amount)
	if err != nil {
		response.Error(c, apperror.Validation("amount must be a decimal number"))
		return
	}

	quote, err := h.conversionSvc.Convert(c.Request.Context(), amount, q.SourceCurrency, q.TargetCurrency)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewConversionResponse(quote))
}
