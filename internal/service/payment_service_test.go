package service

import (
	"context"
	"errors"
	"testing"

	"github.com/huong-next/internal/cache"
	"github.com/huong-next/internal/constants"
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/repository"

	"gorm.io/gorm"
)

func newTestPaymentService(db *gorm.DB) (*PaymentService, *OrderService) {
	orderSvc := newTestOrderService(db)
	return NewPaymentService(repository.NewOrderRepository(db), orderSvc), orderSvc
}

func placeBankTransferOrder(t *testing.T, db *gorm.DB, svc *OrderService, email string, coupon *models.Coupon) *models.Order {
	t.Helper()
	customer := createTestCustomer(t, db, email)
	product := createTestProduct(t, db, "Chanel Coco EDP 50ml", 3890000, 5, 12)

	sessionID := t.Name() + email
	if coupon != nil {
		applyTestVoucher(t, sessionID, coupon)
	}

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		SessionID:     sessionID,
		CustomerID:    customer.ID,
		Shipping:      testShipping(),
		PaymentMethod: constants.PaymentMethodBankTransfer,
		Lines:         []CreateOrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	return order
}

func TestHandleSuccessMarksPaidAndConsumesCoupon(t *testing.T) {
	db := setupServiceDB(t)
	paySvc, orderSvc := newTestPaymentService(db)
	ctx := context.Background()

	coupon := createTestCoupon(t, db, "PAY50K", 50000, nil)
	order := placeBankTransferOrder(t, db, orderSvc, "pay@example.com", coupon)

	paid, err := paySvc.HandleSuccess(ctx, order.OrderNo, "")
	if err != nil {
		t.Fatalf("HandleSuccess failed: %v", err)
	}
	if paid.Status != constants.OrderStatusPaid {
		t.Fatalf("status = %s, want paid", paid.Status)
	}
	if paid.PaidAt == nil {
		t.Fatal("paid_at should be set")
	}

	// Bank transfer consumes the coupon at payment time.
	var storedCoupon models.Coupon
	if err := db.First(&storedCoupon, coupon.ID).Error; err != nil {
		t.Fatalf("Failed to reload coupon: %v", err)
	}
	if !storedCoupon.IsUsed {
		t.Fatal("coupon should be consumed on payment confirmation")
	}
}

func TestHandleSuccessIdempotentOnRepeat(t *testing.T) {
	db := setupServiceDB(t)
	paySvc, orderSvc := newTestPaymentService(db)
	ctx := context.Background()

	order := placeBankTransferOrder(t, db, orderSvc, "repeat@example.com", nil)

	if _, err := paySvc.HandleSuccess(ctx, order.OrderNo, ""); err != nil {
		t.Fatalf("first HandleSuccess failed: %v", err)
	}
	first, err := orderSvc.Get(order.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	// Gateways retry; the repeat must acknowledge without re-writing.
	again, err := paySvc.HandleSuccess(ctx, order.OrderNo, "")
	if err != nil {
		t.Fatalf("repeat HandleSuccess failed: %v", err)
	}
	if again.Status != constants.OrderStatusPaid {
		t.Fatalf("status = %s, want paid", again.Status)
	}
	if first.PaidAt == nil || again.PaidAt == nil || !again.PaidAt.Equal(*first.PaidAt) {
		t.Fatal("repeat callback must not move paid_at")
	}
}

func TestHandleSuccessRejectsWrongState(t *testing.T) {
	db := setupServiceDB(t)
	paySvc, orderSvc := newTestPaymentService(db)
	ctx := context.Background()

	customer := createTestCustomer(t, db, "codpay@example.com")
	product := createTestProduct(t, db, "Dior Sauvage EDP 100ml", 3250000, 5, 12)
	order, err := orderSvc.CreateOrder(ctx, CreateOrderInput{
		CustomerID:    customer.ID,
		Shipping:      testShipping(),
		PaymentMethod: constants.PaymentMethodCOD,
		Lines:         []CreateOrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	// A COD order is never pending payment.
	if _, err := paySvc.HandleSuccess(ctx, order.OrderNo, ""); !errors.Is(err, ErrOrderTransition) {
		t.Fatalf("HandleSuccess err = %v, want ErrOrderTransition", err)
	}

	if _, err := paySvc.HandleSuccess(ctx, "HN00000000000000000000", ""); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("HandleSuccess err = %v, want ErrOrderNotFound", err)
	}
}

func TestHandleSuccessClearsVoucherSession(t *testing.T) {
	db := setupServiceDB(t)
	paySvc, orderSvc := newTestPaymentService(db)
	ctx := context.Background()

	order := placeBankTransferOrder(t, db, orderSvc, "session@example.com", nil)

	sessionID := t.Name() + "-post-checkout"
	coupon := createTestCoupon(t, db, "LEFTOVER", 50000, nil)
	applyTestVoucher(t, sessionID, coupon)

	if _, err := paySvc.HandleSuccess(ctx, order.OrderNo, sessionID); err != nil {
		t.Fatalf("HandleSuccess failed: %v", err)
	}

	state, _, err := cache.GetVoucherSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("GetVoucherSession failed: %v", err)
	}
	if state != nil {
		t.Fatal("voucher session should be cleared after payment")
	}
}

func TestHandleCancelQuietOnCancelledOrder(t *testing.T) {
	db := setupServiceDB(t)
	paySvc, orderSvc := newTestPaymentService(db)
	ctx := context.Background()

	order := placeBankTransferOrder(t, db, orderSvc, "abort@example.com", nil)

	cancelled, err := paySvc.HandleCancel(ctx, order.OrderNo, "vnpay")
	if err != nil {
		t.Fatalf("HandleCancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("status = %s, want cancelled", cancelled.Status)
	}
	if cancelled.PaymentMethod != "bank_transfer (cancelled)" {
		t.Fatalf("payment_method = %q, want \"bank_transfer (cancelled)\"", cancelled.PaymentMethod)
	}

	var stored models.Order
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("Failed to reload order: %v", err)
	}
	if stored.PaymentMethod != "bank_transfer (cancelled)" {
		t.Fatalf("stored payment_method = %q, want \"bank_transfer (cancelled)\"", stored.PaymentMethod)
	}

	// Repeats are acknowledged without error and must not re-annotate.
	again, err := paySvc.HandleCancel(ctx, order.OrderNo, "vnpay")
	if err != nil {
		t.Fatalf("repeat HandleCancel failed: %v", err)
	}
	if again.Status != constants.OrderStatusCancelled {
		t.Fatalf("status = %s, want cancelled", again.Status)
	}
	if again.PaymentMethod != "bank_transfer (cancelled)" {
		t.Fatalf("repeat payment_method = %q, annotation must not stack", again.PaymentMethod)
	}
}

func TestHandleCancelRejectsPaidOrder(t *testing.T) {
	db := setupServiceDB(t)
	paySvc, orderSvc := newTestPaymentService(db)
	ctx := context.Background()

	order := placeBankTransferOrder(t, db, orderSvc, "paidcancel@example.com", nil)
	if _, err := paySvc.HandleSuccess(ctx, order.OrderNo, ""); err != nil {
		t.Fatalf("HandleSuccess failed: %v", err)
	}

	if _, err := paySvc.HandleCancel(ctx, order.OrderNo, "vnpay"); !errors.Is(err, ErrOrderTransition) {
		t.Fatalf("HandleCancel err = %v, want ErrOrderTransition", err)
	}
}
