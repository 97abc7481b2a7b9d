package main

import (
	"fmt"
	"time"

	"github.com/huong-next/internal/config"
	"github.com/huong-next/internal/logger"
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/repository"
	"github.com/huong-next/internal/service"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.InitDefaultFees(); err != nil {
		stdLog.Printf("Failed to seed fee rules: %v", err)
	}

	brands := []models.Brand{
		{Name: "Dior", Country: "France", IsActive: true},
		{Name: "Chanel", Country: "France", IsActive: true},
		{Name: "Versace", Country: "Italy", IsActive: true},
		{Name: "Jo Malone", Country: "UK", IsActive: true},
	}
	for _, brand := range brands {
		var existing models.Brand
		if err := models.DB.Where("name = ?", brand.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&brand).Error; err != nil {
				stdLog.Printf("Failed to create brand %s: %v", brand.Name, err)
			} else {
				stdLog.Printf("Created brand: %s", brand.Name)
			}
		} else {
			stdLog.Printf("Brand already exists: %s", brand.Name)
		}
	}

	categories := []models.Category{
		{Name: "Nước hoa nam", Slug: "nuoc-hoa-nam", SortOrder: 300, IsActive: true},
		{Name: "Nước hoa nữ", Slug: "nuoc-hoa-nu", SortOrder: 200, IsActive: true},
		{Name: "Nước hoa unisex", Slug: "nuoc-hoa-unisex", SortOrder: 100, IsActive: true},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	brandIDs := map[string]uint{}
	var brandList []models.Brand
	if err := models.DB.Find(&brandList).Error; err != nil {
		stdLog.Printf("Failed to load brands: %v", err)
	}
	for _, brand := range brandList {
		brandIDs[brand.Name] = brand.ID
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	maleID := categoryIDs["nuoc-hoa-nam"]
	femaleID := categoryIDs["nuoc-hoa-nu"]
	unisexID := categoryIDs["nuoc-hoa-unisex"]

	products := []models.Product{
		{
			Name:           "Dior Sauvage EDP 100ml",
			BrandID:        uintPtr(brandIDs["Dior"]),
			CategoryID:     uintPtr(maleID),
			Price:          models.NewMoneyFromDecimal(decimal.NewFromInt(3250000)),
			VolumeML:       100,
			Gender:         "male",
			Stock:          25,
			WarrantyMonths: 12,
			Description:    "Hương thơm nam tính, tươi mát với bergamot và ambroxan.",
			IsActive:       true,
		},
		{
			Name:           "Chanel Coco Mademoiselle EDP 50ml",
			BrandID:        uintPtr(brandIDs["Chanel"]),
			CategoryID:     uintPtr(femaleID),
			Price:          models.NewMoneyFromDecimal(decimal.NewFromInt(3890000)),
			VolumeML:       50,
			Gender:         "female",
			Stock:          18,
			WarrantyMonths: 12,
			Description:    "Hương cam bergamot quyện cùng hoa nhài và hoắc hương.",
			IsActive:       true,
		},
		{
			Name:           "Versace Eros EDT 100ml",
			BrandID:        uintPtr(brandIDs["Versace"]),
			CategoryID:     uintPtr(maleID),
			Price:          models.NewMoneyFromDecimal(decimal.NewFromInt(1950000)),
			VolumeML:       100,
			Gender:         "male",
			Stock:          30,
			WarrantyMonths: 6,
			Description:    "Bạc hà, táo xanh và đậu tonka, trẻ trung và cuốn hút.",
			IsActive:       true,
		},
		{
			Name:           "Jo Malone Wood Sage & Sea Salt 100ml",
			BrandID:        uintPtr(brandIDs["Jo Malone"]),
			CategoryID:     uintPtr(unisexID),
			Price:          models.NewMoneyFromDecimal(decimal.NewFromInt(3600000)),
			VolumeML:       100,
			Gender:         "unisex",
			Stock:          12,
			WarrantyMonths: 12,
			Description:    "Hương biển mặn mòi hòa cùng xô thơm, tự do và phóng khoáng.",
			IsActive:       true,
		},
		{
			Name:        "Chiết 10ml - Dior Sauvage",
			BrandID:     uintPtr(brandIDs["Dior"]),
			CategoryID:  uintPtr(maleID),
			Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(350000)),
			VolumeML:    10,
			Gender:      "male",
			Stock:       60,
			Description: "Mẫu chiết dùng thử, không kèm bảo hành hãng.",
			IsActive:    true,
		},
	}

	for _, prod := range products {
		var existing models.Product
		if err := models.DB.Where("name = ?", prod.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("Created product: %s", prod.Name)
			}
		} else {
			existing.BrandID = prod.BrandID
			existing.CategoryID = prod.CategoryID
			existing.Price = prod.Price
			existing.VolumeML = prod.VolumeML
			existing.Gender = prod.Gender
			existing.Stock = prod.Stock
			existing.WarrantyMonths = prod.WarrantyMonths
			existing.Description = prod.Description
			existing.IsActive = prod.IsActive
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("Updated product: %s", prod.Name)
			}
		}
	}

	// Spin wheel pool: claimable coupons expiring in 30 days.
	couponSvc := service.NewCouponAdminService(repository.NewCouponRepository(models.DB))
	var poolCount int64
	models.DB.Model(&models.Coupon{}).Where("customer_id IS NULL AND is_used = ?", false).Count(&poolCount)
	if poolCount == 0 {
		expiresAt := time.Now().AddDate(0, 0, 30)
		coupons, err := couponSvc.GenerateBatch("SPIN", 50, models.NewMoneyFromDecimal(decimal.NewFromInt(50000)), &expiresAt)
		if err != nil {
			stdLog.Printf("Failed to seed spin wheel coupons: %v", err)
		} else {
			stdLog.Printf("Seeded %d spin wheel coupons", len(coupons))
		}
	} else {
		stdLog.Printf("Spin wheel pool already has %d coupons", poolCount)
	}

	fmt.Println("\nSeed data ready:")
	fmt.Println("- 4 brands")
	fmt.Println("- 3 categories")
	fmt.Println("- 5 products")
	fmt.Println("- default fee rules (VAT + shipping)")
	fmt.Println("- spin wheel coupon pool")
}

func uintPtr(v uint) *uint {
	if v == 0 {
		return nil
	}
	return &v
}
