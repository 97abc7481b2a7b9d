package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/huong-next/internal/cache"
	"github.com/huong-next/internal/constants"
	"github.com/huong-next/internal/logger"
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/repository"
)

// PaymentService reconciles gateway callbacks against orders. Callbacks
// are matched by order number and must be idempotent: gateways retry.
type PaymentService struct {
	orderRepo repository.OrderRepository
	orderSvc  *OrderService
}

// NewPaymentService creates a payment service.
func NewPaymentService(orderRepo repository.OrderRepository, orderSvc *OrderService) *PaymentService {
	return &PaymentService{orderRepo: orderRepo, orderSvc: orderSvc}
}

// HandleSuccess marks a bank-transfer order paid. A repeat callback on an
// already-paid order is acknowledged without touching anything. The write
// is verified by re-reading before the session voucher is cleared, so a
// failed update never loses the customer's applied voucher.
func (s *PaymentService) HandleSuccess(ctx context.Context, orderNo, sessionID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(strings.TrimSpace(orderNo))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if order.Status == constants.OrderStatusPaid {
		logger.Infow("payment_callback_repeat", "order_no", order.OrderNo)
		return order, nil
	}
	if order.Status != constants.OrderStatusPendingPayment {
		return nil, ErrOrderTransition
	}

	updated, err := s.orderSvc.transition(order, constants.OrderStatusPaid, "")
	if err != nil {
		return nil, err
	}

	// Verify after write before any cleanup.
	verified, err := s.orderRepo.GetByID(order.ID)
	if err != nil {
		return nil, err
	}
	if verified == nil || verified.Status != constants.OrderStatusPaid {
		return nil, fmt.Errorf("payment status verify failed for order %s", order.OrderNo)
	}

	if sessionID != "" {
		if err := cache.DelVoucherSession(ctx, sessionID); err != nil {
			logger.Warnw("voucher_session_clear_failed", "session_id", sessionID, "error", err)
		}
	}

	logger.Infow("payment_confirmed", "order_no", order.OrderNo, "order_id", order.ID)
	return updated, nil
}

// HandleCancel processes a gateway cancel callback: the order is
// cancelled and its payment method annotated with "(cancelled)".
// Already-cancelled orders are acknowledged quietly.
func (s *PaymentService) HandleCancel(ctx context.Context, orderNo, method string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(strings.TrimSpace(orderNo))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if order.Status == constants.OrderStatusCancelled {
		return order, nil
	}
	if order.Status != constants.OrderStatusPendingPayment {
		return nil, ErrOrderTransition
	}

	note := "payment cancelled"
	if strings.TrimSpace(method) != "" {
		note = fmt.Sprintf("payment cancelled via %s", strings.TrimSpace(method))
	}
	updated, err := s.orderSvc.transition(order, constants.OrderStatusCancelled, note)
	if err != nil {
		return nil, err
	}

	annotated := updated.PaymentMethod + " (cancelled)"
	if err := s.orderRepo.UpdateStatus(updated.ID, updated.Status, map[string]interface{}{
		"payment_method": annotated,
	}); err != nil {
		return nil, err
	}
	updated.PaymentMethod = annotated

	logger.Infow("payment_cancelled", "order_no", order.OrderNo, "method", method)
	return updated, nil
}
