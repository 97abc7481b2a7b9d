package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Customer{},
		&models.Address{},
		&models.Brand{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Coupon{},
		&models.Fee{},
		&models.Order{},
		&models.OrderItem{},
		&models.Warranty{},
		&models.WarrantyClaim{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func money(amount int64) models.Money {
	return models.NewMoneyFromInt(amount)
}

func newTestWarrantyService(db *gorm.DB) *WarrantyService {
	return NewWarrantyService(
		db,
		repository.NewWarrantyRepository(db),
		repository.NewWarrantyClaimRepository(db),
		repository.NewOrderRepository(db),
	)
}

func newTestOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewCouponRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewAddressRepository(db),
		repository.NewProductRepository(db),
		repository.NewCartRepository(db),
		NewPricingService(repository.NewFeeRepository(db)),
		newTestWarrantyService(db),
		nil,
		30*time.Minute,
	)
}

func createTestCustomer(t *testing.T, db *gorm.DB, email string) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		Email:    email,
		FullName: "Nguyen Van A",
		IsActive: true,
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("Failed to create customer: %v", err)
	}
	return customer
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price int64, stock, warrantyMonths int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:           name,
		Price:          money(price),
		Stock:          stock,
		WarrantyMonths: warrantyMonths,
		IsActive:       true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	return product
}

func createTestCoupon(t *testing.T, db *gorm.DB, code string, value int64, customerID *uint) *models.Coupon {
	t.Helper()
	coupon := &models.Coupon{
		Code:       code,
		Value:      money(value),
		CustomerID: customerID,
	}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("Failed to create coupon: %v", err)
	}
	return coupon
}
