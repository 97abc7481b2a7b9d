package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/huong-next/internal/models"
)

const voucherSessionTTL = 30 * time.Minute

// VoucherState is the per-session applied voucher snapshot. Applying the
// same code again bumps TimesApplied and AccumulatedValue; a different
// code replaces the whole state.
type VoucherState struct {
	Code             string       `json:"code"`
	Type             string       `json:"type"` // percent / amount / freeship
	Value            models.Money `json:"value"`
	TimesApplied     int          `json:"times_applied"`
	AccumulatedValue models.Money `json:"accumulated_value"`
	CouponID         *uint        `json:"coupon_id,omitempty"`
	UpdatedAt        int64        `json:"updated_at"`
}

func voucherSessionKey(sessionID string) string {
	return fmt.Sprintf("voucher:session:%s", sessionID)
}

// In-memory fallback when Redis is disabled (dev and tests).
var (
	voucherMemMu sync.Mutex
	voucherMem   = map[string]voucherMemEntry{}
)

type voucherMemEntry struct {
	state     VoucherState
	expiresAt time.Time
}

// GetVoucherSession reads the applied voucher for a session.
func GetVoucherSession(ctx context.Context, sessionID string) (*VoucherState, bool, error) {
	if sessionID == "" {
		return nil, false, nil
	}
	if Enabled() {
		var state VoucherState
		hit, err := GetJSON(ctx, voucherSessionKey(sessionID), &state)
		if err != nil || !hit {
			return nil, hit, err
		}
		return &state, true, nil
	}

	voucherMemMu.Lock()
	defer voucherMemMu.Unlock()
	entry, ok := voucherMem[sessionID]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(voucherMem, sessionID)
		return nil, false, nil
	}
	state := entry.state
	return &state, true, nil
}

// SetVoucherSession stores the applied voucher for a session.
func SetVoucherSession(ctx context.Context, sessionID string, state *VoucherState) error {
	if sessionID == "" || state == nil {
		return nil
	}
	state.UpdatedAt = time.Now().Unix()
	if Enabled() {
		return SetJSON(ctx, voucherSessionKey(sessionID), state, voucherSessionTTL)
	}

	voucherMemMu.Lock()
	defer voucherMemMu.Unlock()
	voucherMem[sessionID] = voucherMemEntry{
		state:     *state,
		expiresAt: time.Now().Add(voucherSessionTTL),
	}
	return nil
}

// DelVoucherSession removes the applied voucher for a session.
func DelVoucherSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if Enabled() {
		return Del(ctx, voucherSessionKey(sessionID))
	}

	voucherMemMu.Lock()
	defer voucherMemMu.Unlock()
	delete(voucherMem, sessionID)
	return nil
}
