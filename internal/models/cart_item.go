package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem is a line in a customer's cart. Guest carts are keyed by
// session ID with CustomerID = 0.
type CartItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	CustomerID uint           `gorm:"index;not null;default:0" json:"customer_id"`
	SessionID  string         `gorm:"index;type:varchar(64)" json:"session_id,omitempty"`
	ProductID  uint           `gorm:"index;not null" json:"product_id"`
	Quantity   int            `gorm:"not null;default:1" json:"quantity"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (CartItem) TableName() string {
	return "cart_items"
}
