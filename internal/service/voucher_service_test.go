package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/huong-next/internal/cache"
	"github.com/huong-next/internal/constants"
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/repository"
)

func newTestVoucherService(t *testing.T) (*VoucherService, string) {
	t.Helper()
	db := setupServiceDB(t)
	// Session IDs are namespaced per test; voucher state for a session
	// outlives the test database.
	return NewVoucherService(repository.NewCouponRepository(db)), t.Name()
}

func TestApplyPercentVoucherStacks(t *testing.T) {
	svc, sessionID := newTestVoucherService(t)
	ctx := context.Background()

	state, err := svc.Apply(ctx, sessionID, 0, "lucky10")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if state.Code != "LUCKY10" {
		t.Fatalf("code = %s, want LUCKY10", state.Code)
	}
	if state.Type != constants.VoucherTypePercent {
		t.Fatalf("type = %s, want percent", state.Type)
	}
	if state.TimesApplied != 1 {
		t.Fatalf("times_applied = %d, want 1", state.TimesApplied)
	}
	assertMoney(t, "value", state.Value, 10)
	assertMoney(t, "accumulated", state.AccumulatedValue, 10)

	state, err = svc.Apply(ctx, sessionID, 0, "LUCKY10")
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if state.TimesApplied != 2 {
		t.Fatalf("times_applied = %d, want 2", state.TimesApplied)
	}
	assertMoney(t, "accumulated", state.AccumulatedValue, 20)
}

func TestApplyAmountVoucherStacks(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewVoucherService(repository.NewCouponRepository(db))
	sessionID := t.Name()
	ctx := context.Background()

	coupon := createTestCoupon(t, db, "CASH50K", 50000, nil)

	state, err := svc.Apply(ctx, sessionID, 0, "CASH50K")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if state.TimesApplied != 1 {
		t.Fatalf("times_applied = %d, want 1", state.TimesApplied)
	}
	assertMoney(t, "accumulated", state.AccumulatedValue, 50000)
	if state.CouponID == nil || *state.CouponID != coupon.ID {
		t.Fatal("state should carry the coupon id")
	}

	state, err = svc.Apply(ctx, sessionID, 0, "CASH50K")
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if state.TimesApplied != 2 {
		t.Fatalf("times_applied = %d, want 2", state.TimesApplied)
	}
	assertMoney(t, "accumulated", state.AccumulatedValue, 100000)
}

func TestApplyDifferentCodeReplaces(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewVoucherService(repository.NewCouponRepository(db))
	sessionID := t.Name()
	ctx := context.Background()

	createTestCoupon(t, db, "CASH50K", 50000, nil)

	if _, err := svc.Apply(ctx, sessionID, 0, "CASH50K"); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	state, err := svc.Apply(ctx, sessionID, 0, "LUCKY20")
	if err != nil {
		t.Fatalf("replacing Apply failed: %v", err)
	}
	if state.Type != constants.VoucherTypePercent || state.Code != "LUCKY20" {
		t.Fatalf("state = %s/%s, want percent/LUCKY20", state.Type, state.Code)
	}
	if state.TimesApplied != 1 {
		t.Fatalf("times_applied = %d, want 1 after replacement", state.TimesApplied)
	}
	if state.CouponID != nil {
		t.Fatal("replaced state must not keep the old coupon id")
	}
}

func TestApplyFreeshipVoucherIdempotent(t *testing.T) {
	svc, sessionID := newTestVoucherService(t)
	ctx := context.Background()

	state, err := svc.Apply(ctx, sessionID, 0, "freeship")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if state.Type != constants.VoucherTypeFreeship {
		t.Fatalf("type = %s, want freeship", state.Type)
	}

	state, err = svc.Apply(ctx, sessionID, 0, "FREESHIP")
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if state.TimesApplied != 1 {
		t.Fatalf("times_applied = %d, want 1 (freeship does not stack)", state.TimesApplied)
	}
}

func TestApplyRejectsBadCodes(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewVoucherService(repository.NewCouponRepository(db))
	ctx := context.Background()

	customer := createTestCustomer(t, db, "owner@example.com")

	used := createTestCoupon(t, db, "USEDCODE", 50000, nil)
	now := time.Now()
	if err := db.Model(used).Updates(map[string]interface{}{"is_used": true, "used_at": now}).Error; err != nil {
		t.Fatalf("Failed to mark coupon used: %v", err)
	}

	expiredAt := now.Add(-time.Hour)
	if err := db.Create(&models.Coupon{Code: "EXPIRED", Value: money(50000), ExpiresAt: &expiredAt}).Error; err != nil {
		t.Fatalf("Failed to create expired coupon: %v", err)
	}

	createTestCoupon(t, db, "THEIRS", 50000, &customer.ID)

	cases := []struct {
		name       string
		code       string
		customerID uint
		want       error
	}{
		{"empty", "   ", 0, ErrCouponInvalid},
		{"unknown", "NOPE123", 0, ErrCouponNotFound},
		{"zero percent", "LUCKY0", 0, ErrCouponInvalid},
		{"used", "USEDCODE", 0, ErrCouponUsed},
		{"expired", "EXPIRED", 0, ErrCouponExpired},
		{"foreign", "THEIRS", customer.ID + 1, ErrCouponNotYours},
	}
	for _, tc := range cases {
		if _, err := svc.Apply(ctx, t.Name()+tc.name, tc.customerID, tc.code); !errors.Is(err, tc.want) {
			t.Fatalf("%s: Apply err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestClearRemovesSessionVoucher(t *testing.T) {
	svc, sessionID := newTestVoucherService(t)
	ctx := context.Background()

	if _, err := svc.Apply(ctx, sessionID, 0, "LUCKY10"); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if err := svc.Clear(ctx, sessionID); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	state, err := svc.Current(ctx, sessionID)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if state != nil {
		t.Fatal("expected no voucher after Clear")
	}
}

func TestSpinClaimsCouponForCustomer(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewVoucherService(repository.NewCouponRepository(db))

	customer := createTestCustomer(t, db, "spinner@example.com")
	for _, code := range []string{"SPINAAA", "SPINBBB", "SPINCCC"} {
		createTestCoupon(t, db, code, 50000, nil)
	}

	won, err := svc.Spin(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("Spin failed: %v", err)
	}
	if won.CustomerID == nil || *won.CustomerID != customer.ID {
		t.Fatal("won coupon should be assigned to the customer")
	}

	var stored models.Coupon
	if err := db.First(&stored, won.ID).Error; err != nil {
		t.Fatalf("Failed to reload coupon: %v", err)
	}
	if stored.CustomerID == nil || *stored.CustomerID != customer.ID {
		t.Fatal("claim must be persisted")
	}

	// The claimed coupon leaves the pool.
	var unclaimed int64
	db.Model(&models.Coupon{}).Where("customer_id IS NULL").Count(&unclaimed)
	if unclaimed != 2 {
		t.Fatalf("unclaimed pool = %d, want 2", unclaimed)
	}
}

func TestSpinEmptyPool(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewVoucherService(repository.NewCouponRepository(db))

	customer := createTestCustomer(t, db, "spinner@example.com")
	// Assigned and used coupons are not claimable.
	createTestCoupon(t, db, "TAKEN", 50000, &customer.ID)
	used := createTestCoupon(t, db, "SPENT", 50000, nil)
	now := time.Now()
	if err := db.Model(used).Updates(map[string]interface{}{"is_used": true, "used_at": now}).Error; err != nil {
		t.Fatalf("Failed to mark coupon used: %v", err)
	}

	if _, err := svc.Spin(context.Background(), customer.ID); !errors.Is(err, ErrSpinPoolEmpty) {
		t.Fatalf("Spin err = %v, want ErrSpinPoolEmpty", err)
	}
}

func TestSpinRequiresCustomer(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewVoucherService(repository.NewCouponRepository(db))

	if _, err := svc.Spin(context.Background(), 0); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("Spin err = %v, want ErrCustomerNotFound", err)
	}
}

func TestDrawIndexStaysInBounds(t *testing.T) {
	for _, size := range []int{1, 2, 3, 7, 100} {
		for i := 0; i < 50; i++ {
			idx, err := drawIndex(size)
			if err != nil {
				t.Fatalf("drawIndex(%d) failed: %v", size, err)
			}
			if idx < 0 || idx >= size {
				t.Fatalf("drawIndex(%d) = %d, out of bounds", size, idx)
			}
		}
	}
}

func TestToAppliedVoucher(t *testing.T) {
	if ToAppliedVoucher(nil) != nil {
		t.Fatal("nil state should map to nil voucher")
	}
	applied := ToAppliedVoucher(&cache.VoucherState{
		Code:             "CASH50K",
		Type:             constants.VoucherTypeAmount,
		Value:            money(50000),
		TimesApplied:     2,
		AccumulatedValue: money(100000),
	})
	if applied.Code != "CASH50K" || applied.TimesApplied != 2 {
		t.Fatalf("unexpected applied voucher: %+v", applied)
	}
	assertMoney(t, "accumulated", applied.AccumulatedValue, 100000)
}
