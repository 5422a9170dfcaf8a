package service

import (
	"context"
	"errors"
	"strconv"

	"storefront-gateway/internal/core/domain"
	"storefront-gateway/internal/core/ports"
	"storefront-gateway/internal/observability"
	"storefront-gateway/pkg/apperror"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const settledMessage = "Order and payment recorded successfully"

var errEmptyPaymentReference = errors.New("gateway returned an empty payment reference")

// SettlementServiceImpl implements ports.SettlementService.
//
// One order is one charge: there is no retry and no deduplication, so a
// repeated call creates a second charge.
type SettlementServiceImpl struct {
	gateway     ports.PaymentGateway
	description string
	metrics     *observability.Metrics
	log         zerolog.Logger
}

// NewSettlementService creates a new SettlementServiceImpl. description is the
// text attached to every charge.
func NewSettlementService(
	gateway ports.PaymentGateway,
	description string,
	metrics *observability.Metrics,
	log zerolog.Logger,
) *SettlementServiceImpl {
	return &SettlementServiceImpl{
		gateway:     gateway,
		description: description,
		metrics:     metrics,
		log:         log,
	}
}

// Settle validates the order and creates exactly one gateway charge for it.
func (s *SettlementServiceImpl) Settle(ctx context.Context, order domain.OrderRequest, cred *domain.Credential) (*domain.SettlementResult, error) {
	if cred == nil {
		s.metrics.Settlement(observability.OutcomeRejected)
		return nil, apperror.ErrUnauthorized()
	}
	if reason, ok := order.Validate(); !ok {
		s.metrics.Settlement(observability.OutcomeRejected)
		return nil, apperror.ErrInvalidOrder(reason)
	}

	ctx, span := observability.Tracer().Start(ctx, "SettlementService.Settle")
	defer span.End()

	req := ports.ChargeRequest{
		AmountMinor:  order.AmountInMinorUnits(),
		Currency:     domain.ChargeCurrency,
		ReceiptEmail: order.BuyerEmail,
		Description:  s.description,
		Metadata: map[string]string{
			"buyer_name": order.BuyerName,
			"product_id": strconv.Itoa(order.ProductID),
			"quantity":   strconv.Itoa(order.Quantity),
		},
	}
	span.SetAttributes(
		attribute.Int("order.product_id", order.ProductID),
		attribute.Int("order.quantity", order.Quantity),
		attribute.Int64("charge.amount_minor", req.AmountMinor),
	)

	ref, err := s.gateway.CreateCharge(ctx, req)
	if err == nil && ref == "" {
		err = errEmptyPaymentReference
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.Settlement(observability.OutcomeFailed)
		s.log.Error().
			Err(err).
			Int("product_id", order.ProductID).
			Int64("amount_minor", req.AmountMinor).
			Msg("payment charge failed")
		return nil, apperror.ErrPaymentFailed(err)
	}

	s.metrics.Settlement(observability.OutcomeSettled)
	s.log.Info().
		Str("payment_reference", ref).
		Int("product_id", order.ProductID).
		Int("quantity", order.Quantity).
		Msg("order settled")

	return &domain.SettlementResult{
		Message:          settledMessage,
		ProductID:        order.ProductID,
		Quantity:         order.Quantity,
		BuyerName:        order.BuyerName,
		PaymentReference: &ref,
	}, nil
}
