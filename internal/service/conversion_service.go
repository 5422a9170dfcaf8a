package service

import (
	"context"
	"errors"
	"time"

	"storefront-gateway/internal/core/domain"
	"storefront-gateway/internal/core/ports"
	"storefront-gateway/internal/observability"
	"storefront-gateway/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const asOfDateLayout = "2006-01-02"

var errNoRateSource = errors.New("no rate source produced a rate")

// ConversionServiceImpl implements ports.ConversionService.
// Sources are consulted strictly in order; the first positive rate wins.
type ConversionServiceImpl struct {
	sources []ports.RateSource
	metrics *observability.Metrics
	log     zerolog.Logger
	now     func() time.Time
}

// ConversionOption customizes a ConversionServiceImpl.
type ConversionOption func(*ConversionServiceImpl)

// WithClock overrides the clock used for AsOfDate.
func WithClock(now func() time.Time) ConversionOption {
	return func(s *ConversionServiceImpl) { s.now = now }
}

// NewConversionService creates a new ConversionServiceImpl.
func NewConversionService(
	sources []ports.RateSource,
	metrics *observability.Metrics,
	log zerolog.Logger,
	opts ...ConversionOption,
) *ConversionServiceImpl {
	s := &ConversionServiceImpl{
		sources: sources,
		metrics: metrics,
		log:     log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Convert quotes amount from source to target currency.
func (s *ConversionServiceImpl) Convert(ctx context.Context, amount decimal.Decimal, source, target string) (*domain.ConversionQuote, error) {
	pair := domain.NewCurrencyPair(source, target)
	if !pair.IsSupported() {
		return nil, apperror.ErrUnsupportedPair(pair.Source, pair.Target)
	}

	ctx, span := observability.Tracer().Start(ctx, "ConversionService.Convert")
	defer span.End()
	span.SetAttributes(
		attribute.String("conversion.source", pair.Source),
		attribute.String("conversion.target", pair.Target),
	)

	rate, tier, err := s.resolveRate(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, apperror.InternalError(err)
	}
	span.SetAttributes(attribute.String("conversion.rate_tier", string(tier)))
	s.metrics.RateTierUsed(string(tier))

	return &domain.ConversionQuote{
		SourceCurrency: pair.Source,
		TargetCurrency: pair.Target,
		InputAmount:    amount,
		OutputAmount:   pair.Apply(amount, rate),
		AsOfDate:       s.now().Format(asOfDateLayout),
		RateTier:       tier,
	}, nil
}

func (s *ConversionServiceImpl) resolveRate(ctx context.Context) (decimal.Decimal, domain.RateTier, error) {
	for _, src := range s.sources {
		rate, err := src.CLPPerUSD(ctx)
		if err != nil {
			s.log.Warn().Err(err).Str("tier", string(src.Tier())).Msg("rate source unavailable, trying next")
			continue
		}
		if !rate.IsPositive() {
			s.log.Warn().Str("tier", string(src.Tier())).Str("rate", rate.String()).Msg("rate source returned non-positive rate, trying next")
			continue
		}
		return rate, src.Tier(), nil
	}
	return decimal.Zero, "", errNoRateSource
}
