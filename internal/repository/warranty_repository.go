package repository

import (
	"errors"

	"github.com/huong-next/internal/models"

	"gorm.io/gorm"
)

// WarrantyRepository is the warranty data access interface.
type WarrantyRepository interface {
	Create(warranty *models.Warranty) error
	GetByID(id uint) (*models.Warranty, error)
	GetByCode(code string) (*models.Warranty, error)
	ListByOrder(orderID uint) ([]models.Warranty, error)
	ListByCustomer(customerID uint, page, pageSize int) ([]models.Warranty, int64, error)
	List(filter WarrantyListFilter) ([]models.Warranty, int64, error)
	DeleteByOrder(orderID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormWarrantyRepository
}

// WarrantyListFilter filters the admin warranty list.
type WarrantyListFilter struct {
	Code       string
	OrderID    uint
	CustomerID uint
	Page       int
	PageSize   int
}

// GormWarrantyRepository is the GORM implementation.
type GormWarrantyRepository struct {
	db *gorm.DB
}

// NewWarrantyRepository creates a warranty repository.
func NewWarrantyRepository(db *gorm.DB) *GormWarrantyRepository {
	return &GormWarrantyRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormWarrantyRepository) WithTx(tx *gorm.DB) *GormWarrantyRepository {
	if tx == nil {
		return r
	}
	return &GormWarrantyRepository{db: tx}
}

// Create inserts a warranty. Duplicate codes or a second warranty on the
// same order item come back as ErrDuplicateKey.
func (r *GormWarrantyRepository) Create(warranty *models.Warranty) error {
	return translateError(r.db.Create(warranty).Error)
}

// GetByID fetches a warranty with its claims.
func (r *GormWarrantyRepository) GetByID(id uint) (*models.Warranty, error) {
	var warranty models.Warranty
	if err := r.db.Preload("Claims").First(&warranty, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &warranty, nil
}

// GetByCode fetches a warranty by its public code.
func (r *GormWarrantyRepository) GetByCode(code string) (*models.Warranty, error) {
	var warranty models.Warranty
	if err := r.db.Preload("Claims").Where("code = ?", code).First(&warranty).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &warranty, nil
}

// ListByOrder returns all warranties issued for an order.
func (r *GormWarrantyRepository) ListByOrder(orderID uint) ([]models.Warranty, error) {
	var warranties []models.Warranty
	if err := r.db.Where("order_id = ?", orderID).Order("id asc").Find(&warranties).Error; err != nil {
		return nil, err
	}
	return warranties, nil
}

// ListByCustomer returns a customer's warranties.
func (r *GormWarrantyRepository) ListByCustomer(customerID uint, page, pageSize int) ([]models.Warranty, int64, error) {
	query := r.db.Model(&models.Warranty{}).Where("customer_id = ?", customerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var warranties []models.Warranty
	query = applyPagination(query, page, pageSize)
	if err := query.Preload("Claims").Order("id desc").Find(&warranties).Error; err != nil {
		return nil, 0, err
	}
	return warranties, total, nil
}

// List returns the admin warranty list.
func (r *GormWarrantyRepository) List(filter WarrantyListFilter) ([]models.Warranty, int64, error) {
	query := r.db.Model(&models.Warranty{})

	if filter.Code != "" {
		query = query.Where("code LIKE ?", "%"+filter.Code+"%")
	}
	if filter.OrderID > 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.CustomerID > 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var warranties []models.Warranty
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Claims").Order("id desc").Find(&warranties).Error; err != nil {
		return nil, 0, err
	}
	return warranties, total, nil
}

// DeleteByOrder removes all warranties for an order, claims first so no
// claim row is left dangling. Returns the number of warranties removed.
func (r *GormWarrantyRepository) DeleteByOrder(orderID uint) (int64, error) {
	var ids []uint
	if err := r.db.Model(&models.Warranty{}).
		Where("order_id = ?", orderID).
		Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := r.db.Where("warranty_id IN ?", ids).
		Delete(&models.WarrantyClaim{}).Error; err != nil {
		return 0, err
	}
	result := r.db.Where("id IN ?", ids).Delete(&models.Warranty{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
