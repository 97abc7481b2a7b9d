package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is a placed order. All amounts are frozen at creation time; the
// voucher fields snapshot whatever voucher was applied so later coupon or
// fee edits never change a placed order.
type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	OrderNo       string         `gorm:"uniqueIndex;not null" json:"order_no"`
	CustomerID    uint           `gorm:"index;not null" json:"customer_id"`
	Status        string         `gorm:"index;not null" json:"status"`
	PaymentMethod string         `gorm:"index;not null" json:"payment_method"` // cod / bank_transfer
	Subtotal      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`
	Discount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount"`
	VATAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"vat_amount"`
	ShippingFee   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee"`
	TotalAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
	CouponID      *uint          `gorm:"index" json:"coupon_id,omitempty"`
	VoucherCode   string         `gorm:"type:varchar(64)" json:"voucher_code,omitempty"` // snapshot of the applied voucher
	VoucherType   string         `gorm:"type:varchar(20)" json:"voucher_type,omitempty"`
	VoucherValue  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"voucher_value"`
	Recipient     string         `gorm:"type:varchar(100);not null" json:"recipient"` // shipping snapshot
	Phone         string         `gorm:"type:varchar(32);not null" json:"phone"`
	AddressLine   string         `gorm:"type:varchar(255);not null" json:"address_line"`
	Ward          string         `gorm:"type:varchar(100)" json:"ward"`
	District      string         `gorm:"type:varchar(100)" json:"district"`
	Province      string         `gorm:"type:varchar(100)" json:"province"`
	Note          string         `gorm:"type:text" json:"note,omitempty"`
	ClientIP      string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`
	ExpiresAt     *time.Time     `gorm:"index" json:"expires_at,omitempty"` // bank-transfer payment deadline
	PaidAt        *time.Time     `gorm:"index" json:"paid_at,omitempty"`
	DeliveredAt   *time.Time     `gorm:"index" json:"delivered_at,omitempty"`
	CancelledAt   *time.Time     `gorm:"index" json:"cancelled_at,omitempty"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Coupon   *Coupon     `gorm:"foreignKey:CouponID" json:"coupon,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}

// OrderItem is an order line with price and warranty snapshots.
type OrderItem struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	OrderID        uint           `gorm:"index;not null" json:"order_id"`
	ProductID      uint           `gorm:"index;not null" json:"product_id"`
	ProductName    string         `gorm:"not null" json:"product_name"` // name at purchase time
	UnitPrice      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Quantity       int            `gorm:"not null;default:1" json:"quantity"`
	LineTotal      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"line_total"`
	WarrantyMonths int            `gorm:"not null;default:0" json:"warranty_months"` // product warranty at purchase time
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
