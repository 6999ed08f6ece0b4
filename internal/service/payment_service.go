package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"docgentor-be/internal/dto"
	"docgentor-be/internal/entity"
	"docgentor-be/internal/pkg/logger"
	"docgentor-be/internal/pkg/metrics"
	"docgentor-be/pkg/accesscode"
	"docgentor-be/pkg/entitlement"
	"docgentor-be/pkg/payment"
)

type IPaymentService interface {
	CreateOrder(ctx context.Context, identity entity.Identity, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error)
	// FetchOrder reads an order back from the processor.
	FetchOrder(ctx context.Context, orderId string) (*payment.Order, error)
}

type PaymentConfig struct {
	KeySecret string
	Currency  string
	Timeout   time.Duration
}

type paymentService struct {
	settings ISettingsService
	gateway  payment.Gateway // nil when the processor is not configured
	cfg      PaymentConfig
	logger   logger.ILogger
}

func NewPaymentService(settings ISettingsService, gateway payment.Gateway, cfg PaymentConfig, logger logger.ILogger) IPaymentService {
	return &paymentService{
		settings: settings,
		gateway:  gateway,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *paymentService) CreateOrder(ctx context.Context, identity entity.Identity, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	plan, err := entitlement.ParsePlan(req.Plan)
	if err != nil || !plan.IsPaid() {
		metrics.OrdersTotal.WithLabelValues("invalid", "rejected").Inc()
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlan, req.Plan)
	}

	if s.gateway == nil {
		metrics.OrdersTotal.WithLabelValues(string(plan), "not_configured").Inc()
		s.logger.Error("PAYMENT", "Payment processor credentials are missing", nil)
		return nil, ErrPaymentNotConfigured
	}

	// The amount always comes from the settings record, never the request.
	settings, err := s.settings.Lookup(ctx)
	if err != nil {
		metrics.OrdersTotal.WithLabelValues(string(plan), "unavailable").Inc()
		s.logger.Error("PAYMENT", "Settings unavailable, refusing to price order", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	price := settings.MonthlyPrice
	if plan == entitlement.PlanYearly {
		price = settings.YearlyPrice
	}

	receipt, err := payment.NewReceipt()
	if err != nil {
		return nil, fmt.Errorf("generate receipt: %w", err)
	}

	notes := map[string]string{payment.NotePlan: string(plan)}
	if identity.IsAuthenticated() {
		notes[payment.NoteIdentity] = identity.Id
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	order, err := s.gateway.CreateOrder(callCtx, payment.OrderRequest{
		Amount:   payment.ToMinorUnits(price),
		Currency: s.cfg.Currency,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		mapped := mapGatewayError(err)
		metrics.OrdersTotal.WithLabelValues(string(plan), outcomeOf(mapped)).Inc()
		s.logger.Error("PAYMENT", "Failed to create order", map[string]interface{}{
			"plan":    plan,
			"receipt": receipt,
			"error":   err.Error(),
		})
		return nil, mapped
	}

	metrics.OrdersTotal.WithLabelValues(string(plan), "created").Inc()
	s.logger.Info("PAYMENT", "Order created", map[string]interface{}{
		"order_id": order.Id,
		"plan":     plan,
		"amount":   order.Amount,
		"receipt":  order.Receipt,
	})

	return &dto.OrderResponse{
		Id:        order.Id,
		Entity:    order.Entity,
		Amount:    order.Amount,
		Currency:  order.Currency,
		Receipt:   order.Receipt,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
		Notes:     order.Notes,
	}, nil
}

func (s *paymentService) VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error) {
	if req.OrderId == "" || req.PaymentId == "" || req.Signature == "" {
		return nil, fmt.Errorf("%w: orderId, paymentId and signature are required", ErrValidation)
	}
	if s.cfg.KeySecret == "" {
		s.logger.Error("PAYMENT", "Payment secret is missing, cannot verify signature", nil)
		return nil, ErrPaymentNotConfigured
	}

	ok := payment.VerifySignature(s.cfg.KeySecret, req.OrderId, req.PaymentId, req.Signature)
	metrics.VerificationsTotal.WithLabelValues(metrics.Result(ok)).Inc()

	if !ok {
		s.logger.Warn("PAYMENT", "Payment signature mismatch", map[string]interface{}{
			"order_id":   req.OrderId,
			"payment_id": req.PaymentId,
			"signature":  accesscode.Redact(req.Signature),
		})
	} else {
		s.logger.Info("PAYMENT", "Payment signature verified", map[string]interface{}{
			"order_id":   req.OrderId,
			"payment_id": req.PaymentId,
		})
	}

	return &dto.VerifyPaymentResponse{IsVerified: ok}, nil
}

func (s *paymentService) FetchOrder(ctx context.Context, orderId string) (*payment.Order, error) {
	if s.gateway == nil {
		return nil, ErrPaymentNotConfigured
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	order, err := s.gateway.FetchOrder(callCtx, orderId)
	if err != nil {
		s.logger.Error("PAYMENT", "Failed to fetch order", map[string]interface{}{
			"order_id": orderId,
			"error":    err.Error(),
		})
		if errors.Is(err, payment.ErrOrderNotFound) {
			return nil, fmt.Errorf("%w: unknown order", ErrValidation)
		}
		return nil, mapGatewayError(err)
	}
	return order, nil
}

func mapGatewayError(err error) error {
	switch {
	case errors.Is(err, payment.ErrNotConfigured):
		return ErrPaymentNotConfigured
	case errors.Is(err, payment.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: payment processor", ErrServiceUnavailable)
	default:
		return fmt.Errorf("%w: payment processor", ErrUpstream)
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrPaymentNotConfigured):
		return "not_configured"
	case errors.Is(err, ErrServiceUnavailable):
		return "unavailable"
	}
	return "upstream_error"
}
