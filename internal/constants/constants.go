package constants

import "strings"

// Order status constants
const (
	OrderStatusPendingConfirm = "pending_confirm"
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusShipping       = "shipping"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// orderStatusAliases maps the storefront's legacy free-text labels onto
// canonical status codes. Input matching is done on the trimmed label.
var orderStatusAliases = map[string]string{
	"Chờ xác nhận":        OrderStatusPendingConfirm,
	"Chờ thanh toán":      OrderStatusPendingPayment,
	"Đã thanh toán":       OrderStatusPaid,
	"Đã xác nhận":         OrderStatusConfirmed,
	"Đang giao hàng":      OrderStatusShipping,
	"Giao hàng thành công": OrderStatusDelivered,
	"Đã giao hàng":        OrderStatusDelivered,
	"Đã hủy":              OrderStatusCancelled,
}

// orderStatusLabels renders canonical codes back to display labels.
var orderStatusLabels = map[string]string{
	OrderStatusPendingConfirm: "Chờ xác nhận",
	OrderStatusPendingPayment: "Chờ thanh toán",
	OrderStatusPaid:           "Đã thanh toán",
	OrderStatusConfirmed:      "Đã xác nhận",
	OrderStatusShipping:       "Đang giao hàng",
	OrderStatusDelivered:      "Giao hàng thành công",
	OrderStatusCancelled:      "Đã hủy",
}

// NormalizeOrderStatus resolves a status input (canonical code or legacy
// label) to its canonical code. Returns "" when the input is unknown.
func NormalizeOrderStatus(input string) string {
	switch input {
	case OrderStatusPendingConfirm, OrderStatusPendingPayment, OrderStatusPaid,
		OrderStatusConfirmed, OrderStatusShipping, OrderStatusDelivered,
		OrderStatusCancelled:
		return input
	}
	if canonical, ok := orderStatusAliases[input]; ok {
		return canonical
	}
	return ""
}

// OrderStatusLabel returns the display label for a canonical status code.
func OrderStatusLabel(status string) string {
	if label, ok := orderStatusLabels[status]; ok {
		return label
	}
	return status
}

// Payment method constants
const (
	PaymentMethodCOD          = "cod"
	PaymentMethodBankTransfer = "bank_transfer"
)

// Voucher type constants
const (
	VoucherTypePercent  = "percent"
	VoucherTypeAmount   = "amount"
	VoucherTypeFreeship = "freeship"
	VoucherTypeNone     = "none"
)

// Fee name constants (well-known rows in the fees table)
const (
	FeeNameVAT      = "VAT"
	FeeNameShipping = "Shipping"
)

// Pricing fallback constants (VND)
const (
	DefaultShippingFee       = 30000
	DefaultShippingThreshold = 5000000
	FreeshipMinSubtotal      = 200000
)

// Cart quantity bounds
const (
	CartQuantityMin = 1
	CartQuantityMax = 10
)

// Warranty claim status constants
const (
	ClaimStatusPending    = "pending"
	ClaimStatusProcessing = "processing"
	ClaimStatusResolved   = "resolved"
	ClaimStatusRejected   = "rejected"
)

// NormalizeClaimStatus resolves a claim status input to its canonical
// code. "completed" is accepted as an alias for resolved. Returns ""
// when the input is unknown.
func NormalizeClaimStatus(input string) string {
	status := strings.ToLower(strings.TrimSpace(input))
	switch status {
	case ClaimStatusPending, ClaimStatusProcessing, ClaimStatusResolved, ClaimStatusRejected:
		return status
	case "completed":
		return ClaimStatusResolved
	}
	return ""
}

// Queue constants
const (
	QueueDefault           = "default"
	TaskOrderStatusEmail   = "order:status_email"
	TaskOrderTimeoutCancel = "order:timeout_cancel"
)

// Cache defaults
const (
	RedisPrefixDefault = "pf"
)

// OTP attempt guard constants
const (
	OTPMaxAttempts       = 5
	OTPLockStrikes       = 3
	OTPCooldownSeconds   = 300
	OTPCodeExpireMinutes = 10
	OTPCodeLength        = 6
)

// Spin wheel constants
const (
	SpinWheelTotalWeight = 100
)
