package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon is a fixed-amount voucher code. Codes are stored uppercase and
// are single-use; a coupon may be pre-assigned to a customer (spin wheel)
// or open until first claim.
type Coupon struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Code       string         `gorm:"uniqueIndex;not null" json:"code"`
	Value      Money          `gorm:"type:decimal(20,2);not null" json:"value"`
	ExpiresAt  *time.Time     `gorm:"index" json:"expires_at"`
	IsUsed     bool           `gorm:"index;not null;default:false" json:"is_used"`
	UsedAt     *time.Time     `json:"used_at,omitempty"`
	CustomerID *uint          `gorm:"index" json:"customer_id,omitempty"` // nil until claimed
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Coupon) TableName() string {
	return "coupons"
}

// IsExpired reports whether the coupon is past its expiry at the given time.
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}
