package models

import (
	"time"

	"gorm.io/gorm"
)

// Warranty is an issued warranty card, one per eligible order item.
type Warranty struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Code        string         `gorm:"uniqueIndex;not null" json:"code"` // BH + timestamp + digits
	OrderID     uint           `gorm:"index;not null" json:"order_id"`
	OrderItemID uint           `gorm:"uniqueIndex;not null" json:"order_item_id"` // 1:1 with the order line
	ProductID   uint           `gorm:"index;not null" json:"product_id"`
	CustomerID  uint           `gorm:"index;not null" json:"customer_id"`
	StartsAt    time.Time      `gorm:"index;not null" json:"starts_at"`
	ExpiresAt   time.Time      `gorm:"index;not null" json:"expires_at"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Claims []WarrantyClaim `gorm:"foreignKey:WarrantyID" json:"claims,omitempty"`
}

// TableName sets the table name.
func (Warranty) TableName() string {
	return "warranties"
}

// IsExpired reports whether the warranty is past its expiry at the given time.
func (w *Warranty) IsExpired(now time.Time) bool {
	return now.After(w.ExpiresAt)
}

// WarrantyClaim is a customer service request against a warranty.
type WarrantyClaim struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Code        string         `gorm:"uniqueIndex;not null" json:"code"` // YC + date + warranty id + digits
	WarrantyID  uint           `gorm:"index;not null" json:"warranty_id"`
	Status      string         `gorm:"index;not null" json:"status"` // pending / processing / resolved / rejected
	Description string         `gorm:"type:text" json:"description"`
	Resolution  string         `gorm:"type:text" json:"resolution,omitempty"`
	ResolvedAt  *time.Time     `json:"resolved_at,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (WarrantyClaim) TableName() string {
	return "warranty_claims"
}
