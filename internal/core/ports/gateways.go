package ports

//go:generate mockgen -source=gateways.go -destination=mocks/gateways_mock.go -package=mocks

import (
	"context"
	"fmt"

	"storefront-gateway/internal/core/domain"

	"github.com/shopspring/decimal"
)

// UpstreamStatusError is returned by upstream clients when the service
// answered with a status other than 200.
type UpstreamStatusError struct {
	Service    string
	StatusCode int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("%s responded with status %d", e.Service, e.StatusCode)
}

// InventoryClient talks to the external inventory service.
type InventoryClient interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
	ListSellers(ctx context.Context) ([]domain.Seller, error)
	GetSeller(ctx context.Context, id int) (*domain.Seller, error)
	MarkProductSold(ctx context.Context, id int) (*domain.Product, error)
	CreateOrder(ctx context.Context) (domain.UpstreamOrderConfirmation, error)
}

// RateSource yields a CLP-per-USD rate. Sources are consulted in order by the
// conversion engine; an error means "try the next one".
type RateSource interface {
	Tier() domain.RateTier
	CLPPerUSD(ctx context.Context) (decimal.Decimal, error)
}

// ChargeRequest is what the payment gateway needs to create a charge.
type ChargeRequest struct {
	AmountMinor  int64
	Currency     string
	ReceiptEmail string
	Description  string
	Metadata     map[string]string
}

// PaymentGateway creates charges at the external payment provider.
type PaymentGateway interface {
	// CreateCharge returns the gateway-issued payment reference.
	CreateCharge(ctx context.Context, req ChargeRequest) (string, error)
}
