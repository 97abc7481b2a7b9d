package repository

import (
	"errors"
	"time"

	"github.com/huong-next/internal/models"

	"gorm.io/gorm"
)

// CouponRepository is the coupon data access interface.
type CouponRepository interface {
	GetByID(id uint) (*models.Coupon, error)
	GetByCode(code string) (*models.Coupon, error)
	Create(coupon *models.Coupon) error
	CreateBatch(coupons []models.Coupon) error
	Update(coupon *models.Coupon) error
	Delete(id uint) error
	List(filter CouponListFilter) ([]models.Coupon, int64, error)
	ListClaimable(now time.Time) ([]models.Coupon, error)
	ClaimForCustomer(id, customerID uint) (bool, error)
	MarkUsed(id uint, usedAt time.Time) (bool, error)
	ReleaseUsed(id uint) error
	CountLinkedOrders(id uint) (int64, error)
	WithTx(tx *gorm.DB) *GormCouponRepository
}

// CouponListFilter filters the admin coupon list.
type CouponListFilter struct {
	Code       string
	CustomerID uint
	IsUsed     *bool
	Page       int
	PageSize   int
}

// GormCouponRepository is the GORM implementation.
type GormCouponRepository struct {
	db *gorm.DB
}

// NewCouponRepository creates a coupon repository.
func NewCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormCouponRepository) WithTx(tx *gorm.DB) *GormCouponRepository {
	if tx == nil {
		return r
	}
	return &GormCouponRepository{db: tx}
}

// GetByID fetches a coupon by ID.
func (r *GormCouponRepository) GetByID(id uint) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.First(&coupon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// GetByCode fetches a coupon by its (uppercase) code.
func (r *GormCouponRepository) GetByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.Where("code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// Create inserts a coupon. Duplicate codes come back as ErrDuplicateKey.
func (r *GormCouponRepository) Create(coupon *models.Coupon) error {
	return translateError(r.db.Create(coupon).Error)
}

// CreateBatch inserts a batch of coupons (spin-wheel pools).
func (r *GormCouponRepository) CreateBatch(coupons []models.Coupon) error {
	if len(coupons) == 0 {
		return nil
	}
	return translateError(r.db.Create(&coupons).Error)
}

// Update saves a coupon.
func (r *GormCouponRepository) Update(coupon *models.Coupon) error {
	return translateError(r.db.Save(coupon).Error)
}

// Delete removes a coupon.
func (r *GormCouponRepository) Delete(id uint) error {
	return r.db.Delete(&models.Coupon{}, id).Error
}

// List returns the admin coupon list.
func (r *GormCouponRepository) List(filter CouponListFilter) ([]models.Coupon, int64, error) {
	var coupons []models.Coupon
	query := r.db.Model(&models.Coupon{})

	if filter.Code != "" {
		query = query.Where("code LIKE ?", "%"+filter.Code+"%")
	}
	if filter.CustomerID > 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.IsUsed != nil {
		query = query.Where("is_used = ?", *filter.IsUsed)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&coupons).Error; err != nil {
		return nil, 0, err
	}
	return coupons, total, nil
}

// ListClaimable returns unclaimed, unused, unexpired coupons (the spin
// wheel pool).
func (r *GormCouponRepository) ListClaimable(now time.Time) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := r.db.
		Where("customer_id IS NULL AND is_used = ?", false).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("id asc").
		Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// ClaimForCustomer assigns an unclaimed coupon to a customer. The
// conditional WHERE makes concurrent claims lose cleanly: false means
// someone else got there first.
func (r *GormCouponRepository) ClaimForCustomer(id, customerID uint) (bool, error) {
	result := r.db.Model(&models.Coupon{}).
		Where("id = ? AND customer_id IS NULL AND is_used = ?", id, false).
		Update("customer_id", customerID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkUsed consumes a coupon. false means it was already used.
func (r *GormCouponRepository) MarkUsed(id uint, usedAt time.Time) (bool, error) {
	result := r.db.Model(&models.Coupon{}).
		Where("id = ? AND is_used = ?", id, false).
		Updates(map[string]interface{}{
			"is_used": true,
			"used_at": usedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ReleaseUsed reverts consumption (order cancelled before delivery).
func (r *GormCouponRepository) ReleaseUsed(id uint) error {
	return r.db.Model(&models.Coupon{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_used": false,
			"used_at": nil,
		}).Error
}

// CountLinkedOrders counts orders referencing the coupon (deletion guard).
func (r *GormCouponRepository) CountLinkedOrders(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Where("coupon_id = ?", id).Count(&count).Error
	return count, err
}
