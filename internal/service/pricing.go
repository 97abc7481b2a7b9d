package service

import (
	"strings"

	"github.com/huong-next/internal/constants"
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/repository"

	"github.com/shopspring/decimal"
)

// PricingLine is one checkout line.
type PricingLine struct {
	ProductID      uint
	ProductName    string
	UnitPrice      models.Money
	Quantity       int
	WarrantyMonths int
}

// AppliedVoucher is the voucher snapshot fed into the calculator. For
// percent and amount vouchers AccumulatedValue carries the stacked total.
type AppliedVoucher struct {
	Code             string
	Type             string // percent / amount / freeship
	Value            models.Money
	TimesApplied     int
	AccumulatedValue models.Money
}

// FeeRules are the resolved checkout charge rules.
type FeeRules struct {
	VATPercent            decimal.Decimal
	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FreeshipMinSubtotal   decimal.Decimal
}

// Quote is a fully priced checkout.
type Quote struct {
	Subtotal     models.Money `json:"subtotal"`
	Discount     models.Money `json:"discount"`
	VATAmount    models.Money `json:"vat_amount"`
	ShippingFee  models.Money `json:"shipping_fee"`
	Total        models.Money `json:"total"`
	FreeShipping bool         `json:"free_shipping"`
}

// PricingService resolves fee rules and prices checkouts. The same quote
// path serves cart display and order creation so the two never drift.
type PricingService struct {
	feeRepo  repository.FeeRepository
	fallback FeeRules
}

// NewPricingService creates a pricing service with builtin fallbacks.
func NewPricingService(feeRepo repository.FeeRepository) *PricingService {
	return &PricingService{
		feeRepo: feeRepo,
		fallback: FeeRules{
			VATPercent:            decimal.Zero,
			ShippingFee:           decimal.NewFromInt(constants.DefaultShippingFee),
			FreeShippingThreshold: decimal.NewFromInt(constants.DefaultShippingThreshold),
			FreeshipMinSubtotal:   decimal.NewFromInt(constants.FreeshipMinSubtotal),
		},
	}
}

// SetFallbacks overrides the builtin fallbacks from configuration.
// Zero values keep the builtin defaults.
func (s *PricingService) SetFallbacks(shippingFee, freeShippingThreshold, freeshipMinSubtotal int64) {
	if shippingFee > 0 {
		s.fallback.ShippingFee = decimal.NewFromInt(shippingFee)
	}
	if freeShippingThreshold > 0 {
		s.fallback.FreeShippingThreshold = decimal.NewFromInt(freeShippingThreshold)
	}
	if freeshipMinSubtotal > 0 {
		s.fallback.FreeshipMinSubtotal = decimal.NewFromInt(freeshipMinSubtotal)
	}
}

// LoadFeeRules reads the VAT and Shipping rows, falling back to the
// configured defaults when a row is missing or inactive.
func (s *PricingService) LoadFeeRules() (FeeRules, error) {
	rules := s.fallback

	vat, err := s.feeRepo.GetByName(constants.FeeNameVAT)
	if err != nil {
		return rules, err
	}
	if vat != nil && vat.IsActive {
		rules.VATPercent = vat.Percent.Decimal
	}

	shipping, err := s.feeRepo.GetByName(constants.FeeNameShipping)
	if err != nil {
		return rules, err
	}
	if shipping != nil && shipping.IsActive {
		if shipping.Amount.Decimal.GreaterThan(decimal.Zero) {
			rules.ShippingFee = shipping.Amount.Decimal
		}
		if shipping.Threshold.Decimal.GreaterThan(decimal.Zero) {
			rules.FreeShippingThreshold = shipping.Threshold.Decimal
		}
	}

	return rules, nil
}

// QuoteFor loads fee rules and prices the lines with the voucher applied.
func (s *PricingService) QuoteFor(lines []PricingLine, voucher *AppliedVoucher) (Quote, error) {
	rules, err := s.LoadFeeRules()
	if err != nil {
		return Quote{}, err
	}
	return CalculateQuote(lines, voucher, rules), nil
}

// CalculateQuote prices a checkout:
//   - subtotal is the sum of unit price times quantity
//   - percent and amount vouchers use their stacked value when one exists
//   - percent discounts and the VAT percent are capped at 100
//   - VAT applies to the pre-discount subtotal
//   - shipping is waived above the threshold, or by an eligible freeship voucher
//   - the discount never exceeds the subtotal and the total never goes negative
func CalculateQuote(lines []PricingLine, voucher *AppliedVoucher, rules FeeRules) Quote {
	hundred := decimal.NewFromInt(100)

	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		subtotal = subtotal.Add(line.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	discount := decimal.Zero
	freeshipVoucher := false
	if voucher != nil {
		effective := voucher.AccumulatedValue.Decimal
		if effective.IsZero() {
			effective = voucher.Value.Decimal
		}
		switch strings.ToLower(strings.TrimSpace(voucher.Type)) {
		case constants.VoucherTypePercent:
			if effective.GreaterThan(hundred) {
				effective = hundred
			}
			discount = subtotal.Mul(effective).Div(hundred)
		case constants.VoucherTypeAmount:
			discount = effective
		case constants.VoucherTypeFreeship:
			freeshipVoucher = subtotal.GreaterThanOrEqual(rules.FreeshipMinSubtotal)
		}
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.LessThan(decimal.Zero) {
		discount = decimal.Zero
	}

	vatPercent := rules.VATPercent
	if vatPercent.GreaterThan(hundred) {
		vatPercent = hundred
	}
	vat := subtotal.Mul(vatPercent).Div(hundred)

	shipping := rules.ShippingFee
	freeShipping := false
	if subtotal.GreaterThanOrEqual(rules.FreeShippingThreshold) || freeshipVoucher {
		shipping = decimal.Zero
		freeShipping = true
	}

	total := subtotal.Sub(discount).Add(vat).Add(shipping)
	if total.LessThan(decimal.Zero) {
		total = decimal.Zero
	}

	return Quote{
		Subtotal:     models.NewMoneyFromDecimal(subtotal),
		Discount:     models.NewMoneyFromDecimal(discount),
		VATAmount:    models.NewMoneyFromDecimal(vat),
		ShippingFee:  models.NewMoneyFromDecimal(shipping),
		Total:        models.NewMoneyFromDecimal(total),
		FreeShipping: freeShipping,
	}
}
