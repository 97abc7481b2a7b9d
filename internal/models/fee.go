package models

import (
	"time"

	"gorm.io/gorm"
)

// Fee is a checkout charge rule. VAT carries a percent value; Shipping
// carries a flat amount plus the free-shipping threshold.
type Fee struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"` // VAT / Shipping
	Percent   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"percent"`
	Amount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"amount"`
	Threshold Money          `gorm:"type:decimal(20,2);not null;default:0" json:"threshold"` // order total waiving the fee
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Fee) TableName() string {
	return "fees"
}
