package service

import "errors"

// Voucher / coupon errors
var (
	ErrCouponInvalid       = errors.New("coupon invalid")
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponExpired       = errors.New("coupon expired")
	ErrCouponUsed          = errors.New("coupon already used")
	ErrCouponNotYours      = errors.New("coupon belongs to another customer")
	ErrCouponCodeTaken     = errors.New("coupon code already exists")
	ErrCouponDeleteBlocked = errors.New("coupon is used or linked to orders")
	ErrVoucherTypeInvalid  = errors.New("voucher type invalid")
	ErrSpinPoolEmpty       = errors.New("no coupons left to draw")
)

// Order errors
var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderEmptyItems       = errors.New("order has no items")
	ErrOrderStatusInvalid    = errors.New("order status invalid")
	ErrOrderTransition       = errors.New("order status transition not allowed")
	ErrOrderCancelNotAllowed = errors.New("order can no longer be cancelled")
	ErrOrderAlreadyPaid      = errors.New("order already paid")
	ErrPaymentMethodInvalid  = errors.New("payment method invalid")
	ErrQuantityOutOfRange    = errors.New("quantity out of range")
	ErrStockInsufficient     = errors.New("insufficient stock")
)

// Warranty errors
var (
	ErrWarrantyNotFound   = errors.New("warranty not found")
	ErrWarrantyExpired    = errors.New("warranty expired")
	ErrClaimNotFound      = errors.New("warranty claim not found")
	ErrClaimAlreadyOpen   = errors.New("warranty already has an open claim")
	ErrClaimStatusInvalid = errors.New("claim status invalid")
)

// Catalog errors
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductInactive  = errors.New("product not available")
	ErrBrandNotFound    = errors.New("brand not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrFeeNotFound      = errors.New("fee not found")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrOTPInvalid         = errors.New("otp invalid")
	ErrOTPExpired         = errors.New("otp expired")
	ErrOTPExhausted       = errors.New("otp attempt limit reached")
	ErrOTPCoolingDown     = errors.New("otp requests temporarily blocked")
)

// Cart errors
var (
	ErrCartItemNotFound = errors.New("cart item not found")
)
