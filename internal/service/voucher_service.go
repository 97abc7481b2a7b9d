package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/huong-next/internal/cache"
	"github.com/huong-next/internal/constants"
	"github.com/huong-next/internal/logger"
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/repository"

	"github.com/shopspring/decimal"
)

// Percent vouchers are pattern codes (LUCKY10 = 10% off).
var percentVoucherPattern = regexp.MustCompile(`^LUCKY(\d{1,2})$`)

const freeshipVoucherCode = "FREESHIP"

// VoucherService applies voucher codes to checkout sessions and runs the
// spin wheel. Applied state lives per session; coupons are only consumed
// when an order is placed.
type VoucherService struct {
	couponRepo repository.CouponRepository
}

// NewVoucherService creates a voucher service.
func NewVoucherService(couponRepo repository.CouponRepository) *VoucherService {
	return &VoucherService{couponRepo: couponRepo}
}

// Current returns the session's applied voucher, if any.
func (s *VoucherService) Current(ctx context.Context, sessionID string) (*cache.VoucherState, error) {
	state, _, err := cache.GetVoucherSession(ctx, sessionID)
	return state, err
}

// Clear removes the session's applied voucher.
func (s *VoucherService) Clear(ctx context.Context, sessionID string) error {
	return cache.DelVoucherSession(ctx, sessionID)
}

// Apply resolves a voucher code and folds it into the session state.
// Re-applying the same percent or amount code stacks: TimesApplied
// increments and AccumulatedValue grows by the base value. Freeship is
// idempotent. A different code replaces the previous state outright.
func (s *VoucherService) Apply(ctx context.Context, sessionID string, customerID uint, code string) (*cache.VoucherState, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, ErrCouponInvalid
	}

	resolved, err := s.resolve(normalized, customerID)
	if err != nil {
		return nil, err
	}

	current, _, err := cache.GetVoucherSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var state *cache.VoucherState
	if current != nil && current.Code == normalized {
		state = current
		switch state.Type {
		case constants.VoucherTypeAmount, constants.VoucherTypePercent:
			state.TimesApplied++
			state.AccumulatedValue = models.NewMoneyFromDecimal(
				state.AccumulatedValue.Decimal.Add(state.Value.Decimal))
		default:
			// freeship does not stack
		}
	} else {
		state = resolved
		state.TimesApplied = 1
		if state.Type != constants.VoucherTypeFreeship {
			state.AccumulatedValue = state.Value
		}
	}

	if err := cache.SetVoucherSession(ctx, sessionID, state); err != nil {
		return nil, err
	}
	logger.Infow("voucher_applied",
		"session_id", sessionID,
		"code", state.Code,
		"type", state.Type,
		"times_applied", state.TimesApplied,
	)
	return state, nil
}

// resolve maps a code to a fresh voucher state without touching the session.
func (s *VoucherService) resolve(code string, customerID uint) (*cache.VoucherState, error) {
	if code == freeshipVoucherCode {
		return &cache.VoucherState{
			Code: code,
			Type: constants.VoucherTypeFreeship,
		}, nil
	}

	if match := percentVoucherPattern.FindStringSubmatch(code); match != nil {
		percent, err := strconv.Atoi(match[1])
		if err != nil || percent <= 0 || percent > 100 {
			return nil, ErrCouponInvalid
		}
		return &cache.VoucherState{
			Code:  code,
			Type:  constants.VoucherTypePercent,
			Value: models.NewMoneyFromDecimal(decimal.NewFromInt(int64(percent))),
		}, nil
	}

	coupon, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	if coupon.IsUsed {
		return nil, ErrCouponUsed
	}
	if coupon.IsExpired(time.Now()) {
		return nil, ErrCouponExpired
	}
	if coupon.CustomerID != nil && customerID != 0 && *coupon.CustomerID != customerID {
		return nil, ErrCouponNotYours
	}

	couponID := coupon.ID
	return &cache.VoucherState{
		Code:     coupon.Code,
		Type:     constants.VoucherTypeAmount,
		Value:    coupon.Value,
		CouponID: &couponID,
	}, nil
}

// ToAppliedVoucher converts session state into the pricing input.
func ToAppliedVoucher(state *cache.VoucherState) *AppliedVoucher {
	if state == nil {
		return nil
	}
	return &AppliedVoucher{
		Code:             state.Code,
		Type:             state.Type,
		Value:            state.Value,
		TimesApplied:     state.TimesApplied,
		AccumulatedValue: state.AccumulatedValue,
	}
}

// Spin draws a coupon from the unclaimed pool and assigns it to the
// customer. Every coupon gets an equal share of 100 weight units with the
// remainder on the first. A lost claim race drops that coupon from the
// pool and redraws.
func (s *VoucherService) Spin(ctx context.Context, customerID uint) (*models.Coupon, error) {
	if customerID == 0 {
		return nil, ErrCustomerNotFound
	}

	pool, err := s.couponRepo.ListClaimable(time.Now())
	if err != nil {
		return nil, err
	}

	for len(pool) > 0 {
		idx, err := drawIndex(len(pool))
		if err != nil {
			return nil, err
		}
		candidate := pool[idx]

		claimed, err := s.couponRepo.ClaimForCustomer(candidate.ID, customerID)
		if err != nil {
			return nil, err
		}
		if claimed {
			candidate.CustomerID = &customerID
			logger.Infow("spin_wheel_claimed",
				"customer_id", customerID,
				"coupon_id", candidate.ID,
				"code", candidate.Code,
			)
			return &candidate, nil
		}

		// Someone else claimed it between the list and the update.
		pool = append(pool[:idx], pool[idx+1:]...)
	}

	return nil, ErrSpinPoolEmpty
}

// drawIndex picks a pool index using equal integer weights summing to 100,
// remainder assigned to the first entry.
func drawIndex(size int) (int, error) {
	if size == 1 {
		return 0, nil
	}
	base := constants.SpinWheelTotalWeight / size
	remainder := constants.SpinWheelTotalWeight % size

	n, err := rand.Int(rand.Reader, big.NewInt(int64(constants.SpinWheelTotalWeight)))
	if err != nil {
		return 0, err
	}
	ticket := int(n.Int64())

	cursor := 0
	for i := 0; i < size; i++ {
		weight := base
		if i == 0 {
			weight += remainder
		}
		cursor += weight
		if ticket < cursor {
			return i, nil
		}
	}
	return size - 1, nil
}
