// Package inventory is the HTTP client for the external inventory service.
package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"storefront-gateway/internal/core/domain"
	"storefront-gateway/internal/core/ports"
	"storefront-gateway/internal/observability"

	"github.com/go-resty/resty/v2"
)

const serviceName = "inventory"

const (
	pathProducts    = "/productos"
	pathProduct     = "/productos/{id}"
	pathProductSold = "/productos/{id}/vendido"
	pathBranches    = "/sucursales"
	pathSellers     = "/vendedores"
	pathSeller      = "/vendedores/{id}"
	pathOrders      = "/pedidos"
)

// Config for the inventory client.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client implements ports.InventoryClient. Every request carries the
// service-account bearer token; only HTTP 200 counts as success.
type Client struct {
	http    *resty.Client
	metrics *observability.Metrics
}

var _ ports.InventoryClient = (*Client)(nil)

// NewClient creates a new inventory client.
func NewClient(cfg Config, metrics *observability.Metrics) *Client {
	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.Token).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	return &Client{http: rc, metrics: metrics}
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.do(ctx, "list_products", http.MethodGet, pathProducts, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, "get_product", http.MethodGet, pathProduct, idParam(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	var out []domain.Branch
	if err := c.do(ctx, "list_branches", http.MethodGet, pathBranches, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListSellers(ctx context.Context) ([]domain.Seller, error) {
	var out []domain.Seller
	if err := c.do(ctx, "list_sellers", http.MethodGet, pathSellers, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSeller(ctx context.Context, id int) (*domain.Seller, error) {
	var out domain.Seller
	if err := c.do(ctx, "get_seller", http.MethodGet, pathSeller, idParam(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MarkProductSold(ctx context.Context, id int) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, "mark_product_sold", http.MethodPut, pathProductSold, idParam(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateOrder(ctx context.Context) (domain.UpstreamOrderConfirmation, error) {
	var out domain.UpstreamOrderConfirmation
	if err := c.do(ctx, "create_order", http.MethodPost, pathOrders, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func idParam(id int) map[string]string {
	return map[string]string{"id": strconv.Itoa(id)}
}

// do performs one request and decodes a 200 body into out. Non-200 answers
// come back as *ports.UpstreamStatusError.
func (c *Client) do(ctx context.Context, op, method, path string, params map[string]string, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(params).
		Execute(method, path)
	if err != nil {
		c.metrics.UpstreamCall(serviceName, op, "transport_error")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode() != http.StatusOK {
		c.metrics.UpstreamCall(serviceName, op, strconv.Itoa(resp.StatusCode()))
		return &ports.UpstreamStatusError{Service: serviceName, StatusCode: resp.StatusCode()}
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		c.metrics.UpstreamCall(serviceName, op, "decode_error")
		return fmt.Errorf("decode %s response: %w", op, err)
	}

	c.metrics.UpstreamCall(serviceName, op, "ok")
	return nil
}
