package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/huong-next/internal/cache"
	"github.com/huong-next/internal/constants"
	"github.com/huong-next/internal/models"
)

func testShipping() ShippingInfo {
	return ShippingInfo{
		Recipient: "Nguyen Van A",
		Phone:     "0901234567",
		Line:      "12 Hang Bai",
		Ward:      "Hang Bai",
		District:  "Hoan Kiem",
		Province:  "Ha Noi",
	}
}

func applyTestVoucher(t *testing.T, sessionID string, coupon *models.Coupon) {
	t.Helper()
	err := cache.SetVoucherSession(context.Background(), sessionID, &cache.VoucherState{
		Code:             coupon.Code,
		Type:             constants.VoucherTypeAmount,
		Value:            coupon.Value,
		TimesApplied:     1,
		AccumulatedValue: coupon.Value,
		CouponID:         &coupon.ID,
	})
	if err != nil {
		t.Fatalf("Failed to set voucher session: %v", err)
	}
}

func TestCreateOrderCODConsumesCoupon(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()
	sessionID := t.Name()

	customer := createTestCustomer(t, db, "cod@example.com")
	product := createTestProduct(t, db, "Dior Sauvage EDP 100ml", 2000000, 5, 12)
	coupon := createTestCoupon(t, db, "CASH50K", 50000, nil)
	applyTestVoucher(t, sessionID, coupon)

	if err := db.Create(&models.CartItem{CustomerID: customer.ID, ProductID: product.ID, Quantity: 2}).Error; err != nil {
		t.Fatalf("Failed to seed cart: %v", err)
	}

	order, err := svc.CreateOrder(ctx, CreateOrderInput{
		SessionID:     sessionID,
		CustomerID:    customer.ID,
		Shipping:      testShipping(),
		PaymentMethod: constants.PaymentMethodCOD,
		Lines:         []CreateOrderLine{{ProductID: product.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if order.Status != constants.OrderStatusPendingConfirm {
		t.Fatalf("status = %s, want pending_confirm", order.Status)
	}
	if !strings.HasPrefix(order.OrderNo, "HN") {
		t.Fatalf("order no = %s, want HN prefix", order.OrderNo)
	}
	assertMoney(t, "subtotal", order.Subtotal, 4000000)
	assertMoney(t, "discount", order.Discount, 50000)
	assertMoney(t, "shipping", order.ShippingFee, 30000)
	assertMoney(t, "total", order.TotalAmount, 3980000)
	if order.VoucherCode != "CASH50K" {
		t.Fatalf("voucher code = %s, want CASH50K", order.VoucherCode)
	}

	// COD spends the coupon at placement.
	var storedCoupon models.Coupon
	if err := db.First(&storedCoupon, coupon.ID).Error; err != nil {
		t.Fatalf("Failed to reload coupon: %v", err)
	}
	if !storedCoupon.IsUsed {
		t.Fatal("coupon should be consumed by a COD order")
	}

	var storedProduct models.Product
	if err := db.First(&storedProduct, product.ID).Error; err != nil {
		t.Fatalf("Failed to reload product: %v", err)
	}
	if storedProduct.Stock != 3 {
		t.Fatalf("stock = %d, want 3", storedProduct.Stock)
	}

	var cartCount int64
	db.Model(&models.CartItem{}).Where("customer_id = ?", customer.ID).Count(&cartCount)
	if cartCount != 0 {
		t.Fatalf("cart items = %d, want 0 after checkout", cartCount)
	}

	state, _, err := cache.GetVoucherSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("GetVoucherSession failed: %v", err)
	}
	if state != nil {
		t.Fatal("voucher session should be cleared after checkout")
	}

	var addressCount int64
	db.Model(&models.Address{}).Where("customer_id = ?", customer.ID).Count(&addressCount)
	if addressCount != 1 {
		t.Fatalf("addresses = %d, want 1", addressCount)
	}
}

func TestCreateOrderBankTransferDefersCoupon(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestOrderService(db)
	sessionID := t.Name()

	customer := createTestCustomer(t, db, "bank@example.com")
	product := createTestProduct(t, db, "Versace Eros EDT 100ml", 1950000, 3, 6)
	coupon := createTestCoupon(t, db, "BANK50K", 50000, nil)
	applyTestVoucher(t, sessionID, coupon)

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

	if order.Status != constants.OrderStatusPendingPayment {
		t.Fatalf("status = %s, want pending_payment", order.Status)
	}
	if order.ExpiresAt == nil {
		t.Fatal("bank transfer orders need a payment deadline")
	}

	// Coupon consumption waits for payment confirmation.
	var storedCoupon models.Coupon
	if err := db.First(&storedCoupon, coupon.ID).Error; err != nil {
		t.Fatalf("Failed to reload coupon: %v", err)
	}
	if storedCoupon.IsUsed {
		t.Fatal("coupon must not be consumed before payment")
	}
}

func TestCreateOrderValidation(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	customer := createTestCustomer(t, db, "valid@example.com")
	product := createTestProduct(t, db, "Chanel Coco EDP 50ml", 3890000, 10, 12)

	base := CreateOrderInput{
		CustomerID: customer.ID,
		Shipping:   testShipping(),
	}

	cases := []struct {
		name   string
		mutate func(*CreateOrderInput)
		want   error
	}{
		{"bad method", func(in *CreateOrderInput) {
			in.PaymentMethod = "paypal"
			in.Lines = []CreateOrderLine{{ProductID: product.ID, Quantity: 1}}
		}, ErrPaymentMethodInvalid},
		{"no lines", func(in *CreateOrderInput) {
			in.PaymentMethod = constants.PaymentMethodCOD
		}, ErrOrderEmptyItems},
		{"quantity zero", func(in *CreateOrderInput) {
			in.PaymentMethod = constants.PaymentMethodCOD
			in.Lines = []CreateOrderLine{{ProductID: product.ID, Quantity: 0}}
		}, ErrQuantityOutOfRange},
		{"quantity too high", func(in *CreateOrderInput) {
			in.PaymentMethod = constants.PaymentMethodCOD
			in.Lines = []CreateOrderLine{{ProductID: product.ID, Quantity: 11}}
		}, ErrQuantityOutOfRange},
	}
	for _, tc := range cases {
		input := base
		tc.mutate(&input)
		if _, err := svc.CreateOrder(ctx, input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: CreateOrder err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestCreateOrderStockInsufficient(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestOrderService(db)

	customer := createTestCustomer(t, db, "stock@example.com")
	product := createTestProduct(t, db, "Jo Malone Wood Sage 100ml", 3600000, 1, 12)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID:    customer.ID,
		Shipping:      testShipping(),
		PaymentMethod: constants.PaymentMethodCOD,
		Lines:         []CreateOrderLine{{ProductID: product.ID, Quantity: 2}},
	})
	if !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("CreateOrder err = %v, want ErrStockInsufficient", err)
	}

	// The failed transaction must not touch stock.
	var storedProduct models.Product
	if err := db.First(&storedProduct, product.ID).Error; err != nil {
		t.Fatalf("Failed to reload product: %v", err)
	}
	if storedProduct.Stock != 1 {
		t.Fatalf("stock = %d, want 1", storedProduct.Stock)
	}
}

func TestCreateOrderGuestCreatesCustomer(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestOrderService(db)

	product := createTestProduct(t, db, "Dior Sauvage EDP 100ml", 3250000, 5, 12)

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		Email:         "Guest@Example.com",
		FullName:      "Tran Thi B",
		Shipping:      testShipping(),
		PaymentMethod: constants.PaymentMethodCOD,
		Lines:         []CreateOrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	var customer models.Customer
	if err := db.First(&customer, order.CustomerID).Error; err != nil {
		t.Fatalf("Failed to load created customer: %v", err)
	}
	if customer.Email != "guest@example.com" {
		t.Fatalf("email = %s, want guest@example.com", customer.Email)
	}
	if customer.FullName != "Tran Thi B" {
		t.Fatalf("full name = %s, want Tran Thi B", customer.FullName)
	}
}

func TestCreateOrderPlaceholderProduct(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestOrderService(db)

	customer := createTestCustomer(t, db, "custom@example.com")
	price := money(500000)

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID:    customer.ID,
		Shipping:      testShipping(),
		PaymentMethod: constants.PaymentMethodCOD,
		Lines: []CreateOrderLine{{
			ProductName: "Chiet 10ml - Le Labo Santal 33",
			UnitPrice:   &price,
			Quantity:    1,
		}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	assertMoney(t, "subtotal", order.Subtotal, 500000)

	var placeholder models.Product
	if err := db.Where("is_placeholder = ?", true).First(&placeholder).Error; err != nil {
		t.Fatalf("Failed to find placeholder product: %v", err)
	}
	if placeholder.IsActive {
		t.Fatal("placeholder products must not enter the catalog")
	}
}

func TestUpdateStatusDeliveredIssuesWarranties(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestOrderService(db)

	customer := createTestCustomer(t, db, "deliver@example.com")
	product := createTestProduct(t, db, "Chanel Coco EDP 50ml", 3890000, 5, 12)

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID:    customer.ID,
		Shipping:      testShipping(),
		PaymentMethod: constants.PaymentMethodCOD,
		Lines:         []CreateOrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	for _, target := range []string{constants.OrderStatusConfirmed, constants.OrderStatusDelivered} {
		if _, err := svc.UpdateStatus(order.ID, target); err != nil {
			t.Fatalf("UpdateStatus(%s) failed: %v", target, err)
		}
	}

	var warrantyCount int64
	db.Model(&models.Warranty{}).Where("order_id = ?", order.ID).Count(&warrantyCount)
	if warrantyCount != 1 {
		t.Fatalf("warranties = %d, want 1", warrantyCount)
	}

	updated, err := svc.Get(order.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if updated.DeliveredAt == nil {
		t.Fatal("delivered_at should be set")
	}

	// Rolling a delivery back retracts the warranties.
	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusCancelled); err != nil {
		t.Fatalf("UpdateStatus(cancelled) failed: %v", err)
	}
	db.Model(&models.Warranty{}).Where("order_id = ?", order.ID).Count(&warrantyCount)
	if warrantyCount != 0 {
		t.Fatalf("warranties = %d after rollback, want 0", warrantyCount)
	}
}

func TestUpdateStatusRejectsBadTransitions(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestOrderService(db)

	customer := createTestCustomer(t, db, "transit@example.com")
	product := createTestProduct(t, db, "Versace Eros EDT 100ml", 1950000, 5, 6)

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID:    customer.ID,
		Shipping:      testShipping(),
		PaymentMethod: constants.PaymentMethodCOD,
		Lines:         []CreateOrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if _, err := svc.UpdateStatus(order.ID, "teleported"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("unknown status err = %v, want ErrOrderStatusInvalid", err)
	}
	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrOrderTransition) {
		t.Fatalf("skip transition err = %v, want ErrOrderTransition", err)
	}

	// Setting the current status again is a no-op.
	same, err := svc.UpdateStatus(order.ID, constants.OrderStatusPendingConfirm)
	if err != nil {
		t.Fatalf("same-status update failed: %v", err)
	}
	if same.Status != constants.OrderStatusPendingConfirm {
		t.Fatalf("status = %s, want pending_confirm", same.Status)
	}

	if _, err := svc.UpdateStatus(order.ID+999, constants.OrderStatusConfirmed); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("missing order err = %v, want ErrOrderNotFound", err)
	}
}

func TestCancelByCustomerRestoresStockAndCoupon(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestOrderService(db)
	sessionID := t.Name()

	customer := createTestCustomer(t, db, "cancel@example.com")
	product := createTestProduct(t, db, "Dior Sauvage EDP 100ml", 3250000, 5, 12)
	coupon := createTestCoupon(t, db, "CANCEL50K", 50000, nil)
	applyTestVoucher(t, sessionID, coupon)

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		SessionID:     sessionID,
		CustomerID:    customer.ID,
		Shipping:      testShipping(),
		PaymentMethod: constants.PaymentMethodCOD,
		Lines:         []CreateOrderLine{{ProductID: product.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	cancelled, err := svc.CancelByCustomer(order.ID, customer.ID)
	if err != nil {
		t.Fatalf("CancelByCustomer failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("status = %s, want cancelled", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Fatal("cancelled_at should be set")
	}
	if !strings.Contains(cancelled.Note, "cancelled by customer") {
		t.Fatalf("note = %q, want cancellation marker", cancelled.Note)
	}

	var storedProduct models.Product
	if err := db.First(&storedProduct, product.ID).Error; err != nil {
		t.Fatalf("Failed to reload product: %v", err)
	}
	if storedProduct.Stock != 5 {
		t.Fatalf("stock = %d, want 5 restored", storedProduct.Stock)
	}

	var storedCoupon models.Coupon
	if err := db.First(&storedCoupon, coupon.ID).Error; err != nil {
		t.Fatalf("Failed to reload coupon: %v", err)
	}
	if storedCoupon.IsUsed {
		t.Fatal("cancelling must release the coupon")
	}
}

func TestCancelByCustomerRejectsShippedOrder(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestOrderService(db)

	customer := createTestCustomer(t, db, "shipped@example.com")
	product := createTestProduct(t, db, "Jo Malone Wood Sage 100ml", 3600000, 5, 12)

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID:    customer.ID,
		Shipping:      testShipping(),
		PaymentMethod: constants.PaymentMethodCOD,
		Lines:         []CreateOrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	for _, target := range []string{constants.OrderStatusConfirmed, constants.OrderStatusShipping} {
		if _, err := svc.UpdateStatus(order.ID, target); err != nil {
			t.Fatalf("UpdateStatus(%s) failed: %v", target, err)
		}
	}

	if _, err := svc.CancelByCustomer(order.ID, customer.ID); !errors.Is(err, ErrOrderCancelNotAllowed) {
		t.Fatalf("CancelByCustomer err = %v, want ErrOrderCancelNotAllowed", err)
	}

	// Another customer's order is invisible.
	if _, err := svc.CancelByCustomer(order.ID, customer.ID+1); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("foreign cancel err = %v, want ErrOrderNotFound", err)
	}
}

func TestHandlePaymentTimeout(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestOrderService(db)

	customer := createTestCustomer(t, db, "timeout@example.com")
	product := createTestProduct(t, db, "Versace Eros EDT 100ml", 1950000, 5, 6)

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID:    customer.ID,
		Shipping:      testShipping(),
		PaymentMethod: constants.PaymentMethodBankTransfer,
		Lines:         []CreateOrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if err := svc.HandlePaymentTimeout(order.ID); err != nil {
		t.Fatalf("HandlePaymentTimeout failed: %v", err)
	}

	updated, err := svc.Get(order.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if updated.Status != constants.OrderStatusCancelled {
		t.Fatalf("status = %s, want cancelled", updated.Status)
	}

	var storedProduct models.Product
	if err := db.First(&storedProduct, product.ID).Error; err != nil {
		t.Fatalf("Failed to reload product: %v", err)
	}
	if storedProduct.Stock != 5 {
		t.Fatalf("stock = %d, want 5 restored", storedProduct.Stock)
	}

	// A repeat timeout tick is a quiet no-op.
	if err := svc.HandlePaymentTimeout(order.ID); err != nil {
		t.Fatalf("repeat HandlePaymentTimeout failed: %v", err)
	}
}
