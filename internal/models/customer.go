package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is a storefront account. Guest checkout creates a customer row
// keyed by email with an empty password hash.
type Customer struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(200)" json:"-"` // empty for guest-created accounts
	FullName     string         `gorm:"type:varchar(100)" json:"full_name"`
	Phone        string         `gorm:"type:varchar(32);index" json:"phone"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Addresses []Address `gorm:"foreignKey:CustomerID" json:"addresses,omitempty"`
}

// TableName sets the table name.
func (Customer) TableName() string {
	return "customers"
}

// Address is a customer shipping address.
type Address struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	CustomerID uint           `gorm:"index;not null" json:"customer_id"`
	Recipient  string         `gorm:"type:varchar(100);not null" json:"recipient"`
	Phone      string         `gorm:"type:varchar(32);not null" json:"phone"`
	Line       string         `gorm:"type:varchar(255);not null" json:"line"` // street / house number
	Ward       string         `gorm:"type:varchar(100)" json:"ward"`
	District   string         `gorm:"type:varchar(100)" json:"district"`
	Province   string         `gorm:"type:varchar(100)" json:"province"`
	IsDefault  bool           `gorm:"not null;default:false" json:"is_default"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Address) TableName() string {
	return "addresses"
}
