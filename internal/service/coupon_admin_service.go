package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/huong-next/internal/logger"
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/repository"

	"github.com/shopspring/decimal"
)

const couponCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CouponAdminService manages coupons from the back office.
type CouponAdminService struct {
	couponRepo repository.CouponRepository
}

// NewCouponAdminService creates a coupon admin service.
func NewCouponAdminService(couponRepo repository.CouponRepository) *CouponAdminService {
	return &CouponAdminService{couponRepo: couponRepo}
}

// CreateCouponInput is the admin create payload.
type CreateCouponInput struct {
	Code       string
	Value      models.Money
	ExpiresAt  *time.Time
	CustomerID *uint
}

// Create inserts a single coupon. Codes are normalized to uppercase.
func (s *CouponAdminService) Create(input CreateCouponInput) (*models.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, ErrCouponInvalid
	}
	if input.Value.Decimal.LessThanOrEqual(decimal.Zero) {
		return nil, ErrCouponInvalid
	}

	coupon := &models.Coupon{
		Code:       code,
		Value:      input.Value,
		ExpiresAt:  input.ExpiresAt,
		CustomerID: input.CustomerID,
	}
	if err := s.couponRepo.Create(coupon); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrCouponCodeTaken
		}
		return nil, err
	}
	logger.Infow("coupon_created", "coupon_id", coupon.ID, "code", coupon.Code)
	return coupon, nil
}

// GenerateBatch creates a pool of random-code coupons for the spin wheel.
func (s *CouponAdminService) GenerateBatch(prefix string, count int, value models.Money, expiresAt *time.Time) ([]models.Coupon, error) {
	if count <= 0 || count > 1000 {
		return nil, ErrCouponInvalid
	}
	if value.Decimal.LessThanOrEqual(decimal.Zero) {
		return nil, ErrCouponInvalid
	}
	prefix = strings.ToUpper(strings.TrimSpace(prefix))

	coupons := make([]models.Coupon, 0, count)
	seen := make(map[string]struct{}, count)
	for len(coupons) < count {
		suffix, err := randomCode(6)
		if err != nil {
			return nil, err
		}
		code := prefix + suffix
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		coupons = append(coupons, models.Coupon{
			Code:      code,
			Value:     value,
			ExpiresAt: expiresAt,
		})
	}

	if err := s.couponRepo.CreateBatch(coupons); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrCouponCodeTaken
		}
		return nil, err
	}
	logger.Infow("coupon_batch_generated", "prefix", prefix, "count", count)
	return coupons, nil
}

// Update edits an unused coupon. Used coupons are immutable.
func (s *CouponAdminService) Update(id uint, value *models.Money, expiresAt *time.Time) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	if coupon.IsUsed {
		return nil, ErrCouponUsed
	}

	if value != nil {
		if value.Decimal.LessThanOrEqual(decimal.Zero) {
			return nil, ErrCouponInvalid
		}
		coupon.Value = *value
	}
	if expiresAt != nil {
		coupon.ExpiresAt = expiresAt
	}
	if err := s.couponRepo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete removes a coupon unless it has been used or an order references
// it. Placed orders keep their coupon link for auditability.
func (s *CouponAdminService) Delete(id uint) error {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return err
	}
	if coupon == nil {
		return ErrCouponNotFound
	}
	if coupon.IsUsed {
		return ErrCouponDeleteBlocked
	}

	linked, err := s.couponRepo.CountLinkedOrders(id)
	if err != nil {
		return err
	}
	if linked > 0 {
		return ErrCouponDeleteBlocked
	}

	if err := s.couponRepo.Delete(id); err != nil {
		return err
	}
	logger.Infow("coupon_deleted", "coupon_id", id, "code", coupon.Code)
	return nil
}

// Get fetches a coupon.
func (s *CouponAdminService) Get(id uint) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// List returns the admin coupon list.
func (s *CouponAdminService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.couponRepo.List(filter)
}

func randomCode(length int) (string, error) {
	var sb strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(couponCodeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("generate code failed: %w", err)
		}
		sb.WriteByte(couponCodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}
