package ports

//go:generate mockgen -source=services.go -destination=mocks/services_mock.go -package=mocks

import (
	"context"

	"storefront-gateway/internal/core/domain"

	"github.com/shopspring/decimal"
)

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// --- Service Ports (Business Logic) ---

// AuthService is the authorization gate.
type AuthService interface {
	// Authorize extracts the token from a "Bearer <token>" header value.
	Authorize(header string) (*domain.Credential, error)
	Login(ctx context.Context, username, password string) (*domain.Credential, error)
}

// CatalogService proxies the inventory service.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
	ListSellers(ctx context.Context) ([]domain.Seller, error)
	GetSeller(ctx context.Context, id int) (*domain.Seller, error)
	MarkProductSold(ctx context.Context, id int) (*domain.Product, error)
	CreateUpstreamOrder(ctx context.Context) (domain.UpstreamOrderConfirmation, error)
}

// ConversionService quotes CLP/USD conversions.
type ConversionService interface {
	Convert(ctx context.Context, amount decimal.Decimal, source, target string) (*domain.ConversionQuote, error)
}

// SettlementService charges a single-product order.
type SettlementService interface {
	Settle(ctx context.Context, order domain.OrderRequest, cred *domain.Credential) (*domain.SettlementResult, error)
}

// AuditService records audited actions.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
