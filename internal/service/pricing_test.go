package service

import (
	"testing"

	"github.com/huong-next/internal/constants"
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/repository"

	"github.com/shopspring/decimal"
)

func testFeeRules(vatPercent int64) FeeRules {
	return FeeRules{
		VATPercent:            decimal.NewFromInt(vatPercent),
		ShippingFee:           decimal.NewFromInt(30000),
		FreeShippingThreshold: decimal.NewFromInt(5000000),
		FreeshipMinSubtotal:   decimal.NewFromInt(200000),
	}
}

func assertMoney(t *testing.T, field string, got models.Money, want int64) {
	t.Helper()
	if !got.Decimal.Equal(decimal.NewFromInt(want)) {
		t.Fatalf("%s = %s, want %d", field, got.String(), want)
	}
}

func TestCalculateQuotePercentVoucher(t *testing.T) {
	lines := []PricingLine{
		{ProductID: 1, UnitPrice: money(2000000), Quantity: 1},
	}
	voucher := &AppliedVoucher{
		Code:  "LUCKY10",
		Type:  constants.VoucherTypePercent,
		Value: money(10),
	}

	quote := CalculateQuote(lines, voucher, testFeeRules(10))

	assertMoney(t, "subtotal", quote.Subtotal, 2000000)
	assertMoney(t, "discount", quote.Discount, 200000)
	// VAT applies to the subtotal before the discount.
	assertMoney(t, "vat", quote.VATAmount, 200000)
	assertMoney(t, "shipping", quote.ShippingFee, 30000)
	assertMoney(t, "total", quote.Total, 2030000)
	if quote.FreeShipping {
		t.Fatal("expected shipping to be charged")
	}
}

func TestCalculateQuotePercentVoucherStacks(t *testing.T) {
	lines := []PricingLine{
		{ProductID: 1, UnitPrice: money(2000000), Quantity: 1},
	}
	voucher := &AppliedVoucher{
		Code:             "LUCKY10",
		Type:             constants.VoucherTypePercent,
		Value:            money(10),
		TimesApplied:     2,
		AccumulatedValue: money(20),
	}

	quote := CalculateQuote(lines, voucher, testFeeRules(0))

	assertMoney(t, "discount", quote.Discount, 400000)
	assertMoney(t, "total", quote.Total, 1630000)
}

func TestCalculateQuotePercentVoucherCappedAtFull(t *testing.T) {
	lines := []PricingLine{
		{ProductID: 1, UnitPrice: money(2000000), Quantity: 1},
	}
	// Stacked far past 100 percent; the discount stops at the subtotal.
	voucher := &AppliedVoucher{
		Code:             "LUCKY30",
		Type:             constants.VoucherTypePercent,
		Value:            money(30),
		TimesApplied:     5,
		AccumulatedValue: money(150),
	}

	quote := CalculateQuote(lines, voucher, testFeeRules(0))

	assertMoney(t, "discount", quote.Discount, 2000000)
	assertMoney(t, "total", quote.Total, 30000)
}

func TestCalculateQuoteVATPercentCappedAtFull(t *testing.T) {
	lines := []PricingLine{
		{ProductID: 1, UnitPrice: money(1000), Quantity: 1},
	}

	quote := CalculateQuote(lines, nil, testFeeRules(150))

	assertMoney(t, "vat", quote.VATAmount, 1000)
	assertMoney(t, "total", quote.Total, 32000)
}

func TestCalculateQuoteAmountVoucherStacks(t *testing.T) {
	lines := []PricingLine{
		{ProductID: 1, UnitPrice: money(500000), Quantity: 2},
	}
	voucher := &AppliedVoucher{
		Code:             "CASH50K",
		Type:             constants.VoucherTypeAmount,
		Value:            money(50000),
		TimesApplied:     2,
		AccumulatedValue: money(100000),
	}

	quote := CalculateQuote(lines, voucher, testFeeRules(0))

	assertMoney(t, "discount", quote.Discount, 100000)
	assertMoney(t, "total", quote.Total, 930000)
}

func TestCalculateQuoteAmountVoucherFallsBackToValue(t *testing.T) {
	lines := []PricingLine{
		{ProductID: 1, UnitPrice: money(500000), Quantity: 1},
	}
	voucher := &AppliedVoucher{
		Code:  "CASH50K",
		Type:  constants.VoucherTypeAmount,
		Value: money(50000),
	}

	quote := CalculateQuote(lines, voucher, testFeeRules(0))

	assertMoney(t, "discount", quote.Discount, 50000)
}

func TestCalculateQuoteDiscountClampedToSubtotal(t *testing.T) {
	lines := []PricingLine{
		{ProductID: 1, UnitPrice: money(150000), Quantity: 1},
	}
	voucher := &AppliedVoucher{
		Code:             "CASH300K",
		Type:             constants.VoucherTypeAmount,
		Value:            money(300000),
		TimesApplied:     1,
		AccumulatedValue: money(300000),
	}

	quote := CalculateQuote(lines, voucher, testFeeRules(0))

	assertMoney(t, "discount", quote.Discount, 150000)
	assertMoney(t, "total", quote.Total, 30000)
	if quote.Total.Decimal.IsNegative() {
		t.Fatal("total must never go negative")
	}
}

func TestCalculateQuoteFreeShippingAboveThreshold(t *testing.T) {
	lines := []PricingLine{
		{ProductID: 1, UnitPrice: money(3000000), Quantity: 2},
	}

	quote := CalculateQuote(lines, nil, testFeeRules(0))

	assertMoney(t, "shipping", quote.ShippingFee, 0)
	if !quote.FreeShipping {
		t.Fatal("expected free shipping above the threshold")
	}
	assertMoney(t, "total", quote.Total, 6000000)
}

func TestCalculateQuoteFreeshipVoucherMinSubtotal(t *testing.T) {
	voucher := &AppliedVoucher{Code: "FREESHIP", Type: constants.VoucherTypeFreeship}

	small := CalculateQuote([]PricingLine{
		{ProductID: 1, UnitPrice: money(150000), Quantity: 1},
	}, voucher, testFeeRules(0))
	if small.FreeShipping {
		t.Fatal("freeship voucher must not apply below the minimum subtotal")
	}
	assertMoney(t, "shipping", small.ShippingFee, 30000)

	eligible := CalculateQuote([]PricingLine{
		{ProductID: 1, UnitPrice: money(250000), Quantity: 1},
	}, voucher, testFeeRules(0))
	if !eligible.FreeShipping {
		t.Fatal("freeship voucher should waive shipping at the minimum subtotal")
	}
	assertMoney(t, "shipping", eligible.ShippingFee, 0)
	// Freeship vouchers only touch shipping.
	assertMoney(t, "discount", eligible.Discount, 0)
}

func TestCalculateQuoteSkipsNonPositiveQuantities(t *testing.T) {
	lines := []PricingLine{
		{ProductID: 1, UnitPrice: money(500000), Quantity: 0},
		{ProductID: 2, UnitPrice: money(300000), Quantity: -1},
		{ProductID: 3, UnitPrice: money(400000), Quantity: 1},
	}

	quote := CalculateQuote(lines, nil, testFeeRules(0))

	assertMoney(t, "subtotal", quote.Subtotal, 400000)
}

func TestLoadFeeRulesOverlaysActiveRows(t *testing.T) {
	db := setupServiceDB(t)

	if err := db.Create(&models.Fee{
		Name:     constants.FeeNameVAT,
		Percent:  money(8),
		IsActive: true,
	}).Error; err != nil {
		t.Fatalf("Failed to create VAT fee: %v", err)
	}
	if err := db.Create(&models.Fee{
		Name:      constants.FeeNameShipping,
		Amount:    money(25000),
		Threshold: money(4000000),
		IsActive:  true,
	}).Error; err != nil {
		t.Fatalf("Failed to create shipping fee: %v", err)
	}

	svc := NewPricingService(repository.NewFeeRepository(db))
	rules, err := svc.LoadFeeRules()
	if err != nil {
		t.Fatalf("LoadFeeRules failed: %v", err)
	}

	if !rules.VATPercent.Equal(decimal.NewFromInt(8)) {
		t.Fatalf("vat percent = %s, want 8", rules.VATPercent)
	}
	if !rules.ShippingFee.Equal(decimal.NewFromInt(25000)) {
		t.Fatalf("shipping fee = %s, want 25000", rules.ShippingFee)
	}
	if !rules.FreeShippingThreshold.Equal(decimal.NewFromInt(4000000)) {
		t.Fatalf("free shipping threshold = %s, want 4000000", rules.FreeShippingThreshold)
	}
}

func TestLoadFeeRulesIgnoresInactiveRows(t *testing.T) {
	db := setupServiceDB(t)

	if err := db.Create(&models.Fee{
		Name:     constants.FeeNameVAT,
		Percent:  money(8),
		IsActive: false,
	}).Error; err != nil {
		t.Fatalf("Failed to create VAT fee: %v", err)
	}

	svc := NewPricingService(repository.NewFeeRepository(db))
	rules, err := svc.LoadFeeRules()
	if err != nil {
		t.Fatalf("LoadFeeRules failed: %v", err)
	}

	if !rules.VATPercent.IsZero() {
		t.Fatalf("vat percent = %s, want 0 (inactive row ignored)", rules.VATPercent)
	}
	if !rules.ShippingFee.Equal(decimal.NewFromInt(constants.DefaultShippingFee)) {
		t.Fatalf("shipping fee = %s, want default %d", rules.ShippingFee, constants.DefaultShippingFee)
	}
}

func TestSetFallbacksOverridesDefaults(t *testing.T) {
	db := setupServiceDB(t)

	svc := NewPricingService(repository.NewFeeRepository(db))
	svc.SetFallbacks(20000, 3000000, 100000)

	rules, err := svc.LoadFeeRules()
	if err != nil {
		t.Fatalf("LoadFeeRules failed: %v", err)
	}
	if !rules.ShippingFee.Equal(decimal.NewFromInt(20000)) {
		t.Fatalf("shipping fee = %s, want 20000", rules.ShippingFee)
	}
	if !rules.FreeShippingThreshold.Equal(decimal.NewFromInt(3000000)) {
		t.Fatalf("free shipping threshold = %s, want 3000000", rules.FreeShippingThreshold)
	}
	if !rules.FreeshipMinSubtotal.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("freeship min subtotal = %s, want 100000", rules.FreeshipMinSubtotal)
	}
}
