// Package ratefeed fetches live CLP-per-USD rates from an AppNexus-style
// currency endpoint.
package ratefeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"storefront-gateway/internal/core/domain"
	"storefront-gateway/internal/core/ports"
	"storefront-gateway/internal/observability"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const serviceName = "ratefeed"

// ErrRateMissing is returned when the feed answered but carried no CLP rate.
var ErrRateMissing = errors.New("rate feed has no CLP rate")

// Config for the live feed.
type Config struct {
	URL     string
	Timeout time.Duration
}

type feedResponse struct {
	Response struct {
		Currencies []feedCurrency `json:"currencies"`
	} `json:"response"`
}

type feedCurrency struct {
	Code string           `json:"code"`
	Rate *decimal.Decimal `json:"rate"`
}

// Source is the live tier of the conversion engine.
type Source struct {
	http    *resty.Client
	url     string
	metrics *observability.Metrics
}

var _ ports.RateSource = (*Source)(nil)

// NewSource creates a live rate source.
func NewSource(cfg Config, metrics *observability.Metrics) *Source {
	rc := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	return &Source{http: rc, url: cfg.URL, metrics: metrics}
}

func (s *Source) Tier() domain.RateTier { return domain.RateTierLive }

// CLPPerUSD queries the feed once. Any failure is returned to the caller,
// which moves on to the next tier.
func (s *Source) CLPPerUSD(ctx context.Context) (decimal.Decimal, error) {
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"code":      domain.CurrencyCLP,
			"show_rate": "true",
		}).
		Get(s.url)
	if err != nil {
		s.metrics.UpstreamCall(serviceName, "get_rate", "transport_error")
		return decimal.Zero, fmt.Errorf("rate feed request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		s.metrics.UpstreamCall(serviceName, "get_rate", fmt.Sprint(resp.StatusCode()))
		return decimal.Zero, &ports.UpstreamStatusError{Service: serviceName, StatusCode: resp.StatusCode()}
	}

	var body feedResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		s.metrics.UpstreamCall(serviceName, "get_rate", "decode_error")
		return decimal.Zero, fmt.Errorf("decode rate feed: %w", err)
	}

	for _, c := range body.Response.Currencies {
		if c.Code == domain.CurrencyCLP && c.Rate != nil {
			s.metrics.UpstreamCall(serviceName, "get_rate", "ok")
			return *c.Rate, nil
		}
	}
	s.metrics.UpstreamCall(serviceName, "get_rate", "rate_missing")
	return decimal.Zero, ErrRateMissing
}
