package service

import (
	"context"
	"errors"
	"net/http"

	"storefront-gateway/internal/core/domain"
	"storefront-gateway/internal/core/ports"
	"storefront-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

// CatalogServiceImpl implements ports.CatalogService by forwarding to the
// inventory service and translating its failures into upstream errors.
// Nothing is retried.
type CatalogServiceImpl struct {
	inventory ports.InventoryClient
	log       zerolog.Logger
}

// NewCatalogService creates a new CatalogServiceImpl.
func NewCatalogService(inventory ports.InventoryClient, log zerolog.Logger) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		inventory: inventory,
		log:       log,
	}
}

func (s *CatalogServiceImpl) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.inventory.ListProducts(ctx)
	if err != nil {
		return nil, s.upstreamError("products", err)
	}
	return products, nil
}

func (s *CatalogServiceImpl) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	product, err := s.inventory.GetProduct(ctx, id)
	if err != nil {
		return nil, s.lookupError("Product", "product", err)
	}
	return product, nil
}

func (s *CatalogServiceImpl) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	branches, err := s.inventory.ListBranches(ctx)
	if err != nil {
		return nil, s.upstreamError("branches", err)
	}
	return branches, nil
}

func (s *CatalogServiceImpl) ListSellers(ctx context.Context) ([]domain.Seller, error) {
	sellers, err := s.inventory.ListSellers(ctx)
	if err != nil {
		return nil, s.upstreamError("sellers", err)
	}
	return sellers, nil
}

func (s *CatalogServiceImpl) GetSeller(ctx context.Context, id int) (*domain.Seller, error) {
	seller, err := s.inventory.GetSeller(ctx, id)
	if err != nil {
		return nil, s.lookupError("Seller", "seller", err)
	}
	return seller, nil
}

// MarkProductSold reports a sale to the inventory service. A 404 here is a
// plain upstream failure, not NotFound.
func (s *CatalogServiceImpl) MarkProductSold(ctx context.Context, id int) (*domain.Product, error) {
	product, err := s.inventory.MarkProductSold(ctx, id)
	if err != nil {
		return nil, s.upstreamError("product sale", err)
	}
	return product, nil
}

func (s *CatalogServiceImpl) CreateUpstreamOrder(ctx context.Context) (domain.UpstreamOrderConfirmation, error) {
	confirmation, err := s.inventory.CreateOrder(ctx)
	if err != nil {
		return nil, s.upstreamError("order creation", err)
	}
	return confirmation, nil
}

// lookupError maps a 404 on a by-id read to NotFound.
func (s *CatalogServiceImpl) lookupError(entity, what string, err error) error {
	var statusErr *ports.UpstreamStatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return apperror.ErrUpstreamNotFound(entity)
	}
	return s.upstreamError(what, err)
}

func (s *CatalogServiceImpl) upstreamError(what string, err error) error {
	status := 0
	var statusErr *ports.UpstreamStatusError
	if errors.As(err, &statusErr) {
		status = statusErr.StatusCode
	}
	s.log.Error().Err(err).Str("resource", what).Int("upstream_status", status).Msg("inventory call failed")
	return apperror.ErrUpstreamFailed(what, status, err)
}
