package handler

import (
	"strconv"

	"storefront-gateway/internal/core/ports"
	"storefront-gateway/pkg/apperror"
	"storefront-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the inventory proxy.
type CatalogHandler struct {
	catalogSvc ports.CatalogService
}

func NewCatalogHandler(catalogSvc ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// ListProducts handles GET /api/v1/catalog/products.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogSvc.ListProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, products)
}

// GetProduct handles GET /api/v1/catalog/products/:id.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	product, err := h.catalogSvc.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, product)
}

// MarkProductSold handles PUT /api/v1/catalog/products/:id/sold.
func (h *CatalogHandler) MarkProductSold(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	product, err := h.catalogSvc.MarkProductSold(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, product)
}

// ListBranches handles GET /api/v1/catalog/branches.
func (h *CatalogHandler) ListBranches(c *gin.Context) {
	branches, err := h.catalogSvc.ListBranches(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, branches)
}

// ListSellers handles GET /api/v1/catalog/sellers.
func (h *CatalogHandler) ListSellers(c *gin.Context) {
	sellers, err := h.catalogSvc.ListSellers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sellers)
}

// GetSeller handles GET /api/v1/catalog/sellers/:id.
func (h *CatalogHandler) GetSeller(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	seller, err := h.catalogSvc.GetSeller(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, seller)
}

// CreateUpstreamOrder handles POST /api/v1/catalog/orders.
func (h *CatalogHandler) CreateUpstreamOrder(c *gin.Context) {
	confirmation, err := h.catalogSvc.CreateUpstreamOrder(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, confirmation)
}

// pathID parses :id, writing a validation error when it is not a positive integer.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Error(c, apperror.Validation("id must be a positive integer"))
		return 0, false
	}
	return id, true
}
