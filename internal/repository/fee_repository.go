package repository

import (
	"errors"

	"github.com/huong-next/internal/models"

	"gorm.io/gorm"
)

// FeeRepository is the fee data access interface.
type FeeRepository interface {
	GetByID(id uint) (*models.Fee, error)
	GetByName(name string) (*models.Fee, error)
	ListActive() ([]models.Fee, error)
	List(page, pageSize int) ([]models.Fee, int64, error)
	Create(fee *models.Fee) error
	Update(fee *models.Fee) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormFeeRepository
}

// GormFeeRepository is the GORM implementation.
type GormFeeRepository struct {
	db *gorm.DB
}

// NewFeeRepository creates a fee repository.
func NewFeeRepository(db *gorm.DB) *GormFeeRepository {
	return &GormFeeRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormFeeRepository) WithTx(tx *gorm.DB) *GormFeeRepository {
	if tx == nil {
		return r
	}
	return &GormFeeRepository{db: tx}
}

// GetByID fetches a fee by ID.
func (r *GormFeeRepository) GetByID(id uint) (*models.Fee, error) {
	var fee models.Fee
	if err := r.db.First(&fee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fee, nil
}

// GetByName fetches a fee by its well-known name.
func (r *GormFeeRepository) GetByName(name string) (*models.Fee, error) {
	var fee models.Fee
	if err := r.db.Where("name = ?", name).First(&fee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fee, nil
}

// ListActive returns active fee rules.
func (r *GormFeeRepository) ListActive() ([]models.Fee, error) {
	var fees []models.Fee
	if err := r.db.Where("is_active = ?", true).Order("id asc").Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}

// List returns all fee rules.
func (r *GormFeeRepository) List(page, pageSize int) ([]models.Fee, int64, error) {
	query := r.db.Model(&models.Fee{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var fees []models.Fee
	query = applyPagination(query, page, pageSize)
	if err := query.Order("id asc").Find(&fees).Error; err != nil {
		return nil, 0, err
	}
	return fees, total, nil
}

// Create inserts a fee rule.
func (r *GormFeeRepository) Create(fee *models.Fee) error {
	return translateError(r.db.Create(fee).Error)
}

// Update saves a fee rule.
func (r *GormFeeRepository) Update(fee *models.Fee) error {
	return translateError(r.db.Save(fee).Error)
}

// Delete removes a fee rule.
func (r *GormFeeRepository) Delete(id uint) error {
	return r.db.Delete(&models.Fee{}, id).Error
}
