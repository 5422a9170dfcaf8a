package service

import (
	"context"
	"fmt"

	"storefront-gateway/internal/core/domain"

	"github.com/shopspring/decimal"
)

// DefaultFallbackRate is the fixed CLP-per-USD rate used when no live rate is
// available.
var DefaultFallbackRate = decimal.NewFromInt(900)

// FixedRateSource always yields the same rate. It is the last entry of the
// conversion source chain and never fails.
type FixedRateSource struct {
	rate decimal.Decimal
}

// NewFixedRateSource parses a decimal rate string; an empty string selects
// DefaultFallbackRate.
func NewFixedRateSource(rate string) (*FixedRateSource, error) {
	if rate == "" {
		return &FixedRateSource{rate: DefaultFallbackRate}, nil
	}
	d, err := decimal.NewFromString(rate)
	if err != nil {
		return nil, fmt.Errorf("parse fallback rate %q: %w", rate, err)
	}
	if !d.IsPositive() {
		return nil, fmt.Errorf("fallback rate must be positive, got %s", d)
	}
	return &FixedRateSource{rate: d}, nil
}

func (s *FixedRateSource) Tier() domain.RateTier { return domain.RateTierFixed }

func (s *FixedRateSource) CLPPerUSD(_ context.Context) (decimal.Decimal, error) {
	return s.rate, nil
}
