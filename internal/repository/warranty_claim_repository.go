package repository

import (
	"errors"

	"github.com/huong-next/internal/constants"
	"github.com/huong-next/internal/models"

	"gorm.io/gorm"
)

// WarrantyClaimRepository is the warranty claim data access interface.
type WarrantyClaimRepository interface {
	Create(claim *models.WarrantyClaim) error
	GetByID(id uint) (*models.WarrantyClaim, error)
	GetByCode(code string) (*models.WarrantyClaim, error)
	ListByWarranty(warrantyID uint) ([]models.WarrantyClaim, error)
	List(filter ClaimListFilter) ([]models.WarrantyClaim, int64, error)
	HasOpenClaim(warrantyID uint) (bool, error)
	Update(claim *models.WarrantyClaim) error
	WithTx(tx *gorm.DB) *GormWarrantyClaimRepository
}

// ClaimListFilter filters the admin claim list.
type ClaimListFilter struct {
	WarrantyID uint
	Status     string
	Page       int
	PageSize   int
}

// GormWarrantyClaimRepository is the GORM implementation.
type GormWarrantyClaimRepository struct {
	db *gorm.DB
}

// NewWarrantyClaimRepository creates a claim repository.
func NewWarrantyClaimRepository(db *gorm.DB) *GormWarrantyClaimRepository {
	return &GormWarrantyClaimRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormWarrantyClaimRepository) WithTx(tx *gorm.DB) *GormWarrantyClaimRepository {
	if tx == nil {
		return r
	}
	return &GormWarrantyClaimRepository{db: tx}
}

// Create inserts a claim.
func (r *GormWarrantyClaimRepository) Create(claim *models.WarrantyClaim) error {
	return translateError(r.db.Create(claim).Error)
}

// GetByID fetches a claim by ID.
func (r *GormWarrantyClaimRepository) GetByID(id uint) (*models.WarrantyClaim, error) {
	var claim models.WarrantyClaim
	if err := r.db.First(&claim, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &claim, nil
}

// GetByCode fetches a claim by its public code.
func (r *GormWarrantyClaimRepository) GetByCode(code string) (*models.WarrantyClaim, error) {
	var claim models.WarrantyClaim
	if err := r.db.Where("code = ?", code).First(&claim).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &claim, nil
}

// ListByWarranty returns all claims for a warranty.
func (r *GormWarrantyClaimRepository) ListByWarranty(warrantyID uint) ([]models.WarrantyClaim, error) {
	var claims []models.WarrantyClaim
	if err := r.db.Where("warranty_id = ?", warrantyID).Order("id desc").Find(&claims).Error; err != nil {
		return nil, err
	}
	return claims, nil
}

// List returns the admin claim list.
func (r *GormWarrantyClaimRepository) List(filter ClaimListFilter) ([]models.WarrantyClaim, int64, error) {
	query := r.db.Model(&models.WarrantyClaim{})

	if filter.WarrantyID > 0 {
		query = query.Where("warranty_id = ?", filter.WarrantyID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var claims []models.WarrantyClaim
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&claims).Error; err != nil {
		return nil, 0, err
	}
	return claims, total, nil
}

// HasOpenClaim reports whether the warranty has a pending or processing claim.
func (r *GormWarrantyClaimRepository) HasOpenClaim(warrantyID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.WarrantyClaim{}).
		Where("warranty_id = ? AND status IN ?", warrantyID,
			[]string{constants.ClaimStatusPending, constants.ClaimStatusProcessing}).
		Count(&count).Error
	return count > 0, err
}

// Update saves a claim.
func (r *GormWarrantyClaimRepository) Update(claim *models.WarrantyClaim) error {
	return r.db.Save(claim).Error
}
