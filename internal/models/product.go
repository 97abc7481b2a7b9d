package models

import (
	"time"

	"gorm.io/gorm"
)

// Brand is a perfume house.
type Brand struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
	Country   string         `gorm:"type:varchar(100)" json:"country"`
	LogoURL   string         `gorm:"type:varchar(255)" json:"logo_url"`
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Brand) TableName() string {
	return "brands"
}

// Category groups products (eau de parfum, gift set, ...).
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	SortOrder int            `gorm:"not null;default:0" json:"sort_order"`
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Category) TableName() string {
	return "categories"
}

// Product is a sellable perfume listing.
type Product struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Name           string         `gorm:"index;not null" json:"name"`
	BrandID        *uint          `gorm:"index" json:"brand_id,omitempty"`
	CategoryID     *uint          `gorm:"index" json:"category_id,omitempty"`
	Price          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	VolumeML       int            `gorm:"not null;default:0" json:"volume_ml"`
	Gender         string         `gorm:"type:varchar(20)" json:"gender"` // male / female / unisex
	Stock          int            `gorm:"not null;default:0" json:"stock"`
	WarrantyMonths int            `gorm:"not null;default:0" json:"warranty_months"` // 0 disables warranty issuance
	Description    string         `gorm:"type:text" json:"description"`
	ImageURL       string         `gorm:"type:varchar(255)" json:"image_url"`
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`
	IsPlaceholder  bool           `gorm:"not null;default:false" json:"is_placeholder"` // auto-created for unknown order lines
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Brand    *Brand    `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}
