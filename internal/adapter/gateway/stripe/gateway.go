// Package stripe creates storefront charges as Stripe PaymentIntents.
package stripe

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront-gateway/internal/core/ports"
	"storefront-gateway/internal/observability"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const serviceName = "stripe"

// Config for the Stripe gateway. An empty BaseURL targets the live Stripe API.
type Config struct {
	SecretKey string
	BaseURL   string
	Timeout   time.Duration
}

// Gateway implements ports.PaymentGateway.
type Gateway struct {
	api     *client.API
	metrics *observability.Metrics
}

var _ ports.PaymentGateway = (*Gateway)(nil)

// NewGateway builds a Stripe client with network retries disabled.
func NewGateway(cfg Config, metrics *observability.Metrics) *Gateway {
	backendCfg := &stripego.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripego.Int64(0),
		LeveledLogger:     &stripego.LeveledLogger{Level: stripego.LevelNull},
	}
	if cfg.BaseURL != "" {
		backendCfg.URL = stripego.String(cfg.BaseURL)
	}
	backend := stripego.GetBackendWithConfig(stripego.APIBackend, backendCfg)

	api := &client.API{}
	api.Init(cfg.SecretKey, &stripego.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})

	return &Gateway{api: api, metrics: metrics}
}

// CreateCharge creates one PaymentIntent and returns its id.
func (g *Gateway) CreateCharge(ctx context.Context, req ports.ChargeRequest) (string, error) {
	params := &stripego.PaymentIntentParams{
		Amount:   stripego.Int64(req.AmountMinor),
		Currency: stripego.String(strings.ToLower(req.Currency)),
	}
	params.Context = ctx
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripego.String(req.ReceiptEmail)
	}
	if req.Description != "" {
		params.Description = stripego.String(req.Description)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		g.metrics.UpstreamCall(serviceName, "create_charge", "error")
		return "", chargeError(err)
	}
	g.metrics.UpstreamCall(serviceName, "create_charge", "ok")
	return pi.ID, nil
}

// chargeError surfaces the gateway's own message when it sent one.
func chargeError(err error) error {
	var stripeErr *stripego.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return &ChargeError{
			Code:       string(stripeErr.Code),
			Message:    stripeErr.Msg,
			HTTPStatus: stripeErr.HTTPStatusCode,
		}
	}
	return err
}

// ChargeError carries the error Stripe reported for a failed charge.
type ChargeError struct {
	Code       string
	Message    string
	HTTPStatus int
}

func (e *ChargeError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Message + " (" + e.Code + ")"
}
