package repository

import (
	"errors"

	"github.com/huong-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository is the cart data access interface. A cart belongs either
// to a customer (CustomerID > 0) or a guest session.
type CartRepository interface {
	GetByID(id uint) (*models.CartItem, error)
	GetByOwnerAndProduct(customerID uint, sessionID string, productID uint) (*models.CartItem, error)
	ListByOwner(customerID uint, sessionID string) ([]models.CartItem, error)
	Create(item *models.CartItem) error
	Update(item *models.CartItem) error
	Delete(id uint) error
	ClearByOwner(customerID uint, sessionID string) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository is the GORM implementation.
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository.
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

func ownerScope(query *gorm.DB, customerID uint, sessionID string) *gorm.DB {
	if customerID > 0 {
		return query.Where("customer_id = ?", customerID)
	}
	return query.Where("customer_id = 0 AND session_id = ?", sessionID)
}

// GetByID fetches a cart item by ID.
func (r *GormCartRepository) GetByID(id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Preload("Product").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByOwnerAndProduct fetches the owner's line for a product, if any.
func (r *GormCartRepository) GetByOwnerAndProduct(customerID uint, sessionID string, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	query := ownerScope(r.db, customerID, sessionID).Where("product_id = ?", productID)
	if err := query.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListByOwner returns the owner's cart with products preloaded.
func (r *GormCartRepository) ListByOwner(customerID uint, sessionID string) ([]models.CartItem, error) {
	var items []models.CartItem
	query := ownerScope(r.db.Preload("Product"), customerID, sessionID)
	if err := query.Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a cart item.
func (r *GormCartRepository) Create(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// Update saves a cart item.
func (r *GormCartRepository) Update(item *models.CartItem) error {
	return r.db.Save(item).Error
}

// Delete removes a cart item.
func (r *GormCartRepository) Delete(id uint) error {
	return r.db.Delete(&models.CartItem{}, id).Error
}

// ClearByOwner removes the owner's whole cart (after checkout).
func (r *GormCartRepository) ClearByOwner(customerID uint, sessionID string) error {
	return ownerScope(r.db, customerID, sessionID).Delete(&models.CartItem{}).Error
}
