package dto

import (
	"encoding/json"

	"storefront-gateway/internal/core/domain"

	"github.com/shopspring/decimal"
)

// LoginRequest is the request body for login.
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=128"`
}

// LoginResponse is the response body for a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// OrderRequest is the request body for placing a single-product order.
// Quantity and amount are range-checked by the settlement service, not here.
type OrderRequest struct {
	ProductID       int             `json:"product_id" binding:"required"`
	Quantity        int             `json:"quantity"`
	BuyerName       string          `json:"buyer_name" binding:"required,max=200"`
	ShippingAddress string          `json:"shipping_address" binding:"required,max=500"`
	BuyerEmail      string          `json:"buyer_email" binding:"required,email"`
	Amount          decimal.Decimal `json:"amount"`
}

// ToDomain converts the request body to a domain order.
func (r OrderRequest) ToDomain() domain.OrderRequest {
	return domain.OrderRequest{
		ProductID:       r.ProductID,
		Quantity:        r.Quantity,
		BuyerName:       r.BuyerName,
		ShippingAddress: r.ShippingAddress,
		BuyerEmail:      r.BuyerEmail,
		Amount:          r.Amount,
	}
}

// ContactRequest is the request body for a contact form submission.
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,max=2000"`
}

// ContactResponse acknowledges a contact request and echoes it back.
type ContactResponse struct {
	Message string         `json:"message"`
	Request ContactRequest `json:"request"`
}

// ConversionQuery holds the conversion endpoint's query parameters.
type ConversionQuery struct {
	Amount         string `form:"amount" binding:"required"`
	SourceCurrency string `form:"source_currency" binding:"required,currency_code"`
	TargetCurrency string `form:"target_currency" binding:"required,currency_code"`
}

// ConversionResponse renders a quote with two-decimal output.
type ConversionResponse struct {
	SourceCurrency string          `json:"source_currency"`
	TargetCurrency string          `json:"target_currency"`
	InputAmount    decimal.Decimal `json:"input_amount"`
	OutputAmount   json.Number     `json:"output_amount"`
	AsOfDate       string          `json:"as_of_date"`
	RateTier       string          `json:"rate_tier"`
}

// NewConversionResponse formats a quote for the wire.
func NewConversionResponse(q *domain.ConversionQuote) ConversionResponse {
	return ConversionResponse{
		SourceCurrency: q.SourceCurrency,
		TargetCurrency: q.TargetCurrency,
		InputAmount:    q.InputAmount,
		OutputAmount:   json.Number(q.OutputAmount.StringFixed(domain.QuotePrecision)),
		AsOfDate:       q.AsOfDate,
		RateTier:       string(q.RateTier),
	}
}

// ServiceInfo is the body of the root endpoint.
type ServiceInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

// HealthResponse reports dependency health.
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}
