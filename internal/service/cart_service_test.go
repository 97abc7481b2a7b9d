package service

import (
	"errors"
	"testing"

	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/repository"

	"gorm.io/gorm"
)

func newTestCartService(db *gorm.DB) *CartService {
	return NewCartService(
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		NewPricingService(repository.NewFeeRepository(db)),
	)
}

func TestCartAddMergesExistingLine(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestCartService(db)

	customer := createTestCustomer(t, db, "cart@example.com")
	product := createTestProduct(t, db, "Dior Sauvage EDP 100ml", 3250000, 10, 12)

	item, err := svc.Add(customer.ID, "", product.ID, 2)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if item.Quantity != 2 {
		t.Fatalf("quantity = %d, want 2", item.Quantity)
	}

	merged, err := svc.Add(customer.ID, "", product.ID, 3)
	if err != nil {
		t.Fatalf("second Add failed: %v", err)
	}
	if merged.ID != item.ID {
		t.Fatal("adding the same product should merge into one line")
	}
	if merged.Quantity != 5 {
		t.Fatalf("merged quantity = %d, want 5", merged.Quantity)
	}

	// Merging past the cap is rejected, the line stays untouched.
	if _, err := svc.Add(customer.ID, "", product.ID, 6); !errors.Is(err, ErrQuantityOutOfRange) {
		t.Fatalf("over-cap Add err = %v, want ErrQuantityOutOfRange", err)
	}
	var stored models.CartItem
	if err := db.First(&stored, item.ID).Error; err != nil {
		t.Fatalf("Failed to reload cart item: %v", err)
	}
	if stored.Quantity != 5 {
		t.Fatalf("quantity = %d, want 5 after rejected merge", stored.Quantity)
	}
}

func TestCartAddValidation(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestCartService(db)

	customer := createTestCustomer(t, db, "cartcheck@example.com")
	product := createTestProduct(t, db, "Versace Eros EDT 100ml", 1950000, 10, 6)

	inactive := createTestProduct(t, db, "Discontinued", 100000, 10, 0)
	if err := db.Model(inactive).Update("is_active", false).Error; err != nil {
		t.Fatalf("Failed to deactivate product: %v", err)
	}

	if _, err := svc.Add(customer.ID, "", product.ID, 0); !errors.Is(err, ErrQuantityOutOfRange) {
		t.Fatalf("zero quantity err = %v, want ErrQuantityOutOfRange", err)
	}
	if _, err := svc.Add(customer.ID, "", product.ID, 11); !errors.Is(err, ErrQuantityOutOfRange) {
		t.Fatalf("excess quantity err = %v, want ErrQuantityOutOfRange", err)
	}
	if _, err := svc.Add(customer.ID, "", product.ID+999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("unknown product err = %v, want ErrProductNotFound", err)
	}
	if _, err := svc.Add(customer.ID, "", inactive.ID, 1); !errors.Is(err, ErrProductInactive) {
		t.Fatalf("inactive product err = %v, want ErrProductInactive", err)
	}
}

func TestCartGuestOwnershipIsolation(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestCartService(db)

	product := createTestProduct(t, db, "Jo Malone Wood Sage 100ml", 3600000, 10, 12)

	item, err := svc.Add(0, "session-a", product.ID, 1)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// Another guest session cannot touch the line.
	if _, err := svc.UpdateQuantity(0, "session-b", item.ID, 2); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("foreign update err = %v, want ErrCartItemNotFound", err)
	}
	if err := svc.Remove(0, "session-b", item.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("foreign remove err = %v, want ErrCartItemNotFound", err)
	}

	updated, err := svc.UpdateQuantity(0, "session-a", item.ID, 4)
	if err != nil {
		t.Fatalf("UpdateQuantity failed: %v", err)
	}
	if updated.Quantity != 4 {
		t.Fatalf("quantity = %d, want 4", updated.Quantity)
	}

	if err := svc.Remove(0, "session-a", item.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
}

func TestCartSummaryPricesLines(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestCartService(db)

	customer := createTestCustomer(t, db, "summary@example.com")
	product := createTestProduct(t, db, "Chanel Coco EDP 50ml", 3890000, 10, 12)

	if _, err := svc.Add(customer.ID, "", product.ID, 2); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	summary, err := svc.Summary(customer.ID, "", nil)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if len(summary.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(summary.Items))
	}
	assertMoney(t, "subtotal", summary.Quote.Subtotal, 7780000)
	// Above the default free-shipping threshold.
	if !summary.Quote.FreeShipping {
		t.Fatal("expected free shipping")
	}

	lines, err := svc.Lines(customer.ID, "")
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("lines = %+v, want one line with quantity 2", lines)
	}
}

func TestCartClear(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestCartService(db)

	customer := createTestCustomer(t, db, "clear@example.com")
	product := createTestProduct(t, db, "Dior Sauvage EDP 100ml", 3250000, 10, 12)

	if _, err := svc.Add(customer.ID, "", product.ID, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := svc.Clear(customer.ID, ""); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	var count int64
	db.Model(&models.CartItem{}).Where("customer_id = ?", customer.ID).Count(&count)
	if count != 0 {
		t.Fatalf("cart items = %d, want 0", count)
	}
}
