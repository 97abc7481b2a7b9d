package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/huong-next/internal/constants"
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/repository"
)

func TestCreateCouponNormalizesCode(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewCouponAdminService(repository.NewCouponRepository(db))

	coupon, err := svc.Create(CreateCouponInput{Code: "  tet2026  ", Value: money(100000)})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if coupon.Code != "TET2026" {
		t.Fatalf("code = %s, want TET2026", coupon.Code)
	}

	if _, err := svc.Create(CreateCouponInput{Code: "tet2026", Value: money(100000)}); !errors.Is(err, ErrCouponCodeTaken) {
		t.Fatalf("duplicate err = %v, want ErrCouponCodeTaken", err)
	}
	if _, err := svc.Create(CreateCouponInput{Code: "", Value: money(100000)}); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("empty code err = %v, want ErrCouponInvalid", err)
	}
	if _, err := svc.Create(CreateCouponInput{Code: "FREE", Value: money(0)}); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("zero value err = %v, want ErrCouponInvalid", err)
	}
}

func TestGenerateBatch(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewCouponAdminService(repository.NewCouponRepository(db))

	expiresAt := time.Now().AddDate(0, 0, 30)
	coupons, err := svc.GenerateBatch("spin", 20, money(50000), &expiresAt)
	if err != nil {
		t.Fatalf("GenerateBatch failed: %v", err)
	}
	if len(coupons) != 20 {
		t.Fatalf("generated = %d, want 20", len(coupons))
	}

	seen := make(map[string]struct{}, len(coupons))
	for _, coupon := range coupons {
		if !strings.HasPrefix(coupon.Code, "SPIN") {
			t.Fatalf("code = %s, want SPIN prefix", coupon.Code)
		}
		if _, dup := seen[coupon.Code]; dup {
			t.Fatalf("duplicate code generated: %s", coupon.Code)
		}
		seen[coupon.Code] = struct{}{}
	}

	var count int64
	db.Model(&models.Coupon{}).Count(&count)
	if count != 20 {
		t.Fatalf("stored = %d, want 20", count)
	}

	if _, err := svc.GenerateBatch("SPIN", 0, money(50000), nil); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("zero count err = %v, want ErrCouponInvalid", err)
	}
	if _, err := svc.GenerateBatch("SPIN", 1001, money(50000), nil); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("oversized batch err = %v, want ErrCouponInvalid", err)
	}
}

func TestUpdateCouponRejectsUsed(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewCouponAdminService(repository.NewCouponRepository(db))

	coupon := createTestCoupon(t, db, "EDITME", 50000, nil)

	value := money(80000)
	updated, err := svc.Update(coupon.ID, &value, nil)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	assertMoney(t, "value", updated.Value, 80000)

	now := time.Now()
	if err := db.Model(coupon).Updates(map[string]interface{}{"is_used": true, "used_at": now}).Error; err != nil {
		t.Fatalf("Failed to mark coupon used: %v", err)
	}
	if _, err := svc.Update(coupon.ID, &value, nil); !errors.Is(err, ErrCouponUsed) {
		t.Fatalf("used update err = %v, want ErrCouponUsed", err)
	}

	if _, err := svc.Update(coupon.ID+999, &value, nil); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("missing update err = %v, want ErrCouponNotFound", err)
	}
}

func TestDeleteCouponBlockedWhenReferenced(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewCouponAdminService(repository.NewCouponRepository(db))
	orderSvc := newTestOrderService(db)

	// A used coupon is immutable history.
	used := createTestCoupon(t, db, "SPENT", 50000, nil)
	now := time.Now()
	if err := db.Model(used).Updates(map[string]interface{}{"is_used": true, "used_at": now}).Error; err != nil {
		t.Fatalf("Failed to mark coupon used: %v", err)
	}
	if err := svc.Delete(used.ID); !errors.Is(err, ErrCouponDeleteBlocked) {
		t.Fatalf("used delete err = %v, want ErrCouponDeleteBlocked", err)
	}

	// A coupon referenced by a cancelled order keeps its audit trail.
	linked := createTestCoupon(t, db, "LINKED", 50000, nil)
	sessionID := t.Name()
	applyTestVoucher(t, sessionID, linked)
	customer := createTestCustomer(t, db, "audit@example.com")
	product := createTestProduct(t, db, "Versace Eros EDT 100ml", 1950000, 5, 6)
	order, err := orderSvc.CreateOrder(context.Background(), CreateOrderInput{
		SessionID:     sessionID,
		CustomerID:    customer.ID,
		Shipping:      testShipping(),
		PaymentMethod: constants.PaymentMethodCOD,
		Lines:         []CreateOrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if _, err := orderSvc.CancelByCustomer(order.ID, customer.ID); err != nil {
		t.Fatalf("CancelByCustomer failed: %v", err)
	}
	if err := svc.Delete(linked.ID); !errors.Is(err, ErrCouponDeleteBlocked) {
		t.Fatalf("linked delete err = %v, want ErrCouponDeleteBlocked", err)
	}

	// An untouched coupon goes away cleanly.
	fresh := createTestCoupon(t, db, "FRESH", 50000, nil)
	if err := svc.Delete(fresh.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(fresh.ID); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("repeat delete err = %v, want ErrCouponNotFound", err)
	}
}
