package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/huong-next/internal/cache"
	"github.com/huong-next/internal/constants"
	"github.com/huong-next/internal/logger"
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/queue"
	"github.com/huong-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ShippingInfo is the delivery destination captured on the order.
type ShippingInfo struct {
	Recipient string `json:"recipient"`
	Phone     string `json:"phone"`
	Line      string `json:"line"`
	Ward      string `json:"ward"`
	District  string `json:"district"`
	Province  string `json:"province"`
}

// CreateOrderLine is one requested line. UnitPrice is only honored for
// unknown products (a placeholder row is created for them); known
// products always snapshot their current catalog price.
type CreateOrderLine struct {
	ProductID   uint          `json:"product_id"`
	ProductName string        `json:"product_name"`
	UnitPrice   *models.Money `json:"unit_price,omitempty"`
	Quantity    int           `json:"quantity"`
}

// CreateOrderInput is the checkout payload.
type CreateOrderInput struct {
	SessionID     string
	CustomerID    uint
	Email         string
	FullName      string
	Shipping      ShippingInfo
	PaymentMethod string
	Note          string
	ClientIP      string
	Lines         []CreateOrderLine
}

// OrderService owns the order lifecycle: creation with frozen totals,
// status transitions with their side effects, and cancellation.
type OrderService struct {
	db           *gorm.DB
	orderRepo    repository.OrderRepository
	couponRepo   repository.CouponRepository
	customerRepo repository.CustomerRepository
	addressRepo  repository.AddressRepository
	productRepo  repository.ProductRepository
	cartRepo     repository.CartRepository
	pricing      *PricingService
	warrantySvc  *WarrantyService
	queueClient  *queue.Client

	paymentExpire time.Duration
}

// NewOrderService creates an order service.
func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	couponRepo repository.CouponRepository,
	customerRepo repository.CustomerRepository,
	addressRepo repository.AddressRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	pricing *PricingService,
	warrantySvc *WarrantyService,
	queueClient *queue.Client,
	paymentExpire time.Duration,
) *OrderService {
	if paymentExpire <= 0 {
		paymentExpire = 30 * time.Minute
	}
	return &OrderService{
		db:            db,
		orderRepo:     orderRepo,
		couponRepo:    couponRepo,
		customerRepo:  customerRepo,
		addressRepo:   addressRepo,
		productRepo:   productRepo,
		cartRepo:      cartRepo,
		pricing:       pricing,
		warrantySvc:   warrantySvc,
		queueClient:   queueClient,
		paymentExpire: paymentExpire,
	}
}

// CreateOrder places an order. Totals come from the pricing calculator
// once and are persisted; the applied session voucher is snapshotted onto
// the order. COD consumes the coupon immediately, bank transfer defers
// consumption to payment confirmation.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	method := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	if method != constants.PaymentMethodCOD && method != constants.PaymentMethodBankTransfer {
		return nil, ErrPaymentMethodInvalid
	}
	if len(input.Lines) == 0 {
		return nil, ErrOrderEmptyItems
	}
	for _, line := range input.Lines {
		if line.Quantity < constants.CartQuantityMin || line.Quantity > constants.CartQuantityMax {
			return nil, ErrQuantityOutOfRange
		}
	}

	voucherState, _, err := cache.GetVoucherSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	feeRules, err := s.pricing.LoadFeeRules()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var order *models.Order

	err = s.db.Transaction(func(tx *gorm.DB) error {
		customer, err := s.resolveCustomer(tx, input)
		if err != nil {
			return err
		}

		if err := s.saveAddress(tx, customer.ID, input.Shipping); err != nil {
			return err
		}

		pricingLines, items, err := s.resolveLines(tx, input.Lines)
		if err != nil {
			return err
		}

		coupon, err := s.validateCoupon(tx, voucherState, customer.ID, now)
		if err != nil {
			return err
		}

		quote := CalculateQuote(pricingLines, ToAppliedVoucher(voucherState), feeRules)

		orderNo, err := generateOrderNo(now)
		if err != nil {
			return err
		}

		order = &models.Order{
			OrderNo:       orderNo,
			CustomerID:    customer.ID,
			PaymentMethod: method,
			Subtotal:      quote.Subtotal,
			Discount:      quote.Discount,
			VATAmount:     quote.VATAmount,
			ShippingFee:   quote.ShippingFee,
			TotalAmount:   quote.Total,
			Recipient:     strings.TrimSpace(input.Shipping.Recipient),
			Phone:         strings.TrimSpace(input.Shipping.Phone),
			AddressLine:   strings.TrimSpace(input.Shipping.Line),
			Ward:          strings.TrimSpace(input.Shipping.Ward),
			District:      strings.TrimSpace(input.Shipping.District),
			Province:      strings.TrimSpace(input.Shipping.Province),
			Note:          strings.TrimSpace(input.Note),
			ClientIP:      input.ClientIP,
		}
		if voucherState != nil {
			order.VoucherCode = voucherState.Code
			order.VoucherType = voucherState.Type
			order.VoucherValue = voucherState.Value
		}
		if coupon != nil {
			order.CouponID = &coupon.ID
		}

		switch method {
		case constants.PaymentMethodCOD:
			order.Status = constants.OrderStatusPendingConfirm
		case constants.PaymentMethodBankTransfer:
			order.Status = constants.OrderStatusPendingPayment
			expiresAt := now.Add(s.paymentExpire)
			order.ExpiresAt = &expiresAt
		}

		if err := s.orderRepo.WithTx(tx).Create(order, items); err != nil {
			return err
		}

		// COD has no payment step; the coupon is spent at placement.
		if coupon != nil && method == constants.PaymentMethodCOD {
			ok, err := s.couponRepo.WithTx(tx).MarkUsed(coupon.ID, now)
			if err != nil {
				return err
			}
			if !ok {
				return ErrCouponUsed
			}
		}

		return s.cartRepo.WithTx(tx).ClearByOwner(customer.ID, input.SessionID)
	})
	if err != nil {
		return nil, err
	}

	if err := cache.DelVoucherSession(ctx, input.SessionID); err != nil {
		logger.Warnw("voucher_session_clear_failed", "session_id", input.SessionID, "error", err)
	}

	s.notifyStatus(order.ID, order.Status)
	if method == constants.PaymentMethodBankTransfer {
		if err := s.queueClient.EnqueueOrderTimeoutCancel(
			queue.OrderTimeoutCancelPayload{OrderID: order.ID}, s.paymentExpire); err != nil {
			logger.Warnw("order_timeout_enqueue_failed", "order_id", order.ID, "error", err)
		}
	}

	logger.Infow("order_created",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"payment_method", method,
		"total", order.TotalAmount.String(),
	)
	return order, nil
}

func (s *OrderService) resolveCustomer(tx *gorm.DB, input CreateOrderInput) (*models.Customer, error) {
	customerTx := s.customerRepo.WithTx(tx)

	if input.CustomerID > 0 {
		customer, err := customerTx.GetByID(input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, ErrCustomerNotFound
		}
		return customer, nil
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, ErrCustomerNotFound
	}
	customer, err := customerTx.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		return customer, nil
	}

	customer = &models.Customer{
		Email:    email,
		FullName: strings.TrimSpace(input.FullName),
		Phone:    strings.TrimSpace(input.Shipping.Phone),
		IsActive: true,
	}
	if err := customerTx.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *OrderService) saveAddress(tx *gorm.DB, customerID uint, shipping ShippingInfo) error {
	if strings.TrimSpace(shipping.Line) == "" {
		return nil
	}
	return s.addressRepo.WithTx(tx).Create(&models.Address{
		CustomerID: customerID,
		Recipient:  strings.TrimSpace(shipping.Recipient),
		Phone:      strings.TrimSpace(shipping.Phone),
		Line:       strings.TrimSpace(shipping.Line),
		Ward:       strings.TrimSpace(shipping.Ward),
		District:   strings.TrimSpace(shipping.District),
		Province:   strings.TrimSpace(shipping.Province),
	})
}

// resolveLines snapshots catalog prices and warranty terms onto order
// items, creating placeholder products for unknown lines so the order can
// still reference a product row.
func (s *OrderService) resolveLines(tx *gorm.DB, lines []CreateOrderLine) ([]PricingLine, []models.OrderItem, error) {
	productTx := s.productRepo.WithTx(tx)

	pricingLines := make([]PricingLine, 0, len(lines))
	items := make([]models.OrderItem, 0, len(lines))

	for _, line := range lines {
		var product *models.Product
		var err error
		if line.ProductID > 0 {
			product, err = productTx.GetByID(line.ProductID)
			if err != nil {
				return nil, nil, err
			}
		}

		if product == nil {
			name := strings.TrimSpace(line.ProductName)
			if name == "" || line.UnitPrice == nil {
				return nil, nil, ErrProductNotFound
			}
			product = &models.Product{
				Name:          name,
				Price:         *line.UnitPrice,
				IsPlaceholder: true,
				IsActive:      false,
			}
			if err := productTx.Create(product); err != nil {
				return nil, nil, err
			}
		} else {
			if !product.IsActive {
				return nil, nil, ErrProductInactive
			}
			ok, err := productTx.DecrementStock(product.ID, line.Quantity)
			if err != nil {
				return nil, nil, err
			}
			if !ok {
				return nil, nil, ErrStockInsufficient
			}
		}

		lineTotal := product.Price.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity)))
		pricingLines = append(pricingLines, PricingLine{
			ProductID:      product.ID,
			ProductName:    product.Name,
			UnitPrice:      product.Price,
			Quantity:       line.Quantity,
			WarrantyMonths: product.WarrantyMonths,
		})
		items = append(items, models.OrderItem{
			ProductID:      product.ID,
			ProductName:    product.Name,
			UnitPrice:      product.Price,
			Quantity:       line.Quantity,
			LineTotal:      models.NewMoneyFromDecimal(lineTotal),
			WarrantyMonths: product.WarrantyMonths,
		})
	}

	return pricingLines, items, nil
}

func (s *OrderService) validateCoupon(tx *gorm.DB, state *cache.VoucherState, customerID uint, now time.Time) (*models.Coupon, error) {
	if state == nil || state.CouponID == nil {
		return nil, nil
	}
	coupon, err := s.couponRepo.WithTx(tx).GetByID(*state.CouponID)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	if coupon.IsUsed {
		return nil, ErrCouponUsed
	}
	if coupon.IsExpired(now) {
		return nil, ErrCouponExpired
	}
	if coupon.CustomerID != nil && *coupon.CustomerID != customerID {
		return nil, ErrCouponNotYours
	}
	return coupon, nil
}

// UpdateStatus performs an admin status transition with its side effects:
// entering delivered issues warranties, leaving delivered retracts them,
// and cancellation restores stock and releases the coupon.
func (s *OrderService) UpdateStatus(orderID uint, statusInput string) (*models.Order, error) {
	target := constants.NormalizeOrderStatus(strings.TrimSpace(statusInput))
	if target == "" {
		return nil, ErrOrderStatusInvalid
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == target {
		return order, nil
	}
	if !CanTransition(order.Status, target) {
		return nil, ErrOrderTransition
	}

	return s.transition(order, target, "")
}

// CancelByCustomer cancels a customer's own order. Only pre-delivery
// states qualify.
func (s *OrderService) CancelByCustomer(orderID, customerID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndCustomer(orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !customerCancellable[order.Status] {
		return nil, ErrOrderCancelNotAllowed
	}
	return s.transition(order, constants.OrderStatusCancelled, "cancelled by customer")
}

// HandlePaymentTimeout cancels a bank-transfer order past its payment
// deadline. Orders that paid in the meantime are left alone.
func (s *OrderService) HandlePaymentTimeout(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil || order.Status != constants.OrderStatusPendingPayment {
		return nil
	}
	_, err = s.transition(order, constants.OrderStatusCancelled, "payment timeout")
	return err
}

// transition applies the status change plus side effects in one
// transaction, then fires post-commit hooks.
func (s *OrderService) transition(order *models.Order, target, noteSuffix string) (*models.Order, error) {
	from := order.Status
	now := time.Now()
	updates := map[string]interface{}{}

	switch target {
	case constants.OrderStatusPaid:
		updates["paid_at"] = now
	case constants.OrderStatusDelivered:
		updates["delivered_at"] = now
	case constants.OrderStatusCancelled:
		updates["cancelled_at"] = now
		if noteSuffix != "" {
			note := strings.TrimSpace(order.Note)
			if note != "" {
				note += "; "
			}
			updates["note"] = note + noteSuffix
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).UpdateStatus(order.ID, target, updates); err != nil {
			return err
		}

		if target == constants.OrderStatusPaid && order.CouponID != nil &&
			order.PaymentMethod == constants.PaymentMethodBankTransfer {
			// Deferred consumption; a coupon spent elsewhere in the
			// meantime is tolerated so payment still lands.
			if _, err := s.couponRepo.WithTx(tx).MarkUsed(*order.CouponID, now); err != nil {
				return err
			}
		}

		if target == constants.OrderStatusCancelled {
			if order.CouponID != nil {
				if err := s.couponRepo.WithTx(tx).ReleaseUsed(*order.CouponID); err != nil {
					return err
				}
			}
			productTx := s.productRepo.WithTx(tx)
			for _, item := range order.Items {
				if err := productTx.IncrementStock(item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Warranty hooks run post-commit in their own transactions.
	if target == constants.OrderStatusDelivered {
		if _, err := s.warrantySvc.IssueForOrder(order.ID); err != nil {
			logger.Errorw("warranty_issue_failed", "order_id", order.ID, "error", err)
		}
	}
	if from == constants.OrderStatusDelivered && target != constants.OrderStatusDelivered {
		if _, err := s.warrantySvc.RetractForOrder(order.ID); err != nil {
			logger.Errorw("warranty_retract_failed", "order_id", order.ID, "error", err)
		}
	}

	s.notifyStatus(order.ID, target)
	logger.Infow("order_status_changed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"from", from,
		"to", target,
	)

	return s.orderRepo.GetByID(order.ID)
}

func (s *OrderService) notifyStatus(orderID uint, status string) {
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", orderID, "error", err)
	}
}

// Get fetches an order.
func (s *OrderService) Get(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetForCustomer fetches a customer's own order.
func (s *OrderService) GetForCustomer(orderID, customerID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndCustomer(orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListByCustomer returns a customer's order history.
func (s *OrderService) ListByCustomer(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByCustomer(filter)
}

// ListAdmin returns the back-office order list. Status filters accept
// legacy labels.
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.Status != "" {
		filter.Status = constants.NormalizeOrderStatus(filter.Status)
	}
	return s.orderRepo.ListAdmin(filter)
}

// generateOrderNo builds HN + timestamp + 6 random digits.
func generateOrderNo(now time.Time) (string, error) {
	digits, err := randomDigits(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("HN%s%s", now.Format("20060102150405"), digits), nil
}
