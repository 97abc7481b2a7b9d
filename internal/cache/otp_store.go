package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// OTPRecord is a pending password-reset code for an email.
type OTPRecord struct {
	Code      string `json:"code"`
	IssuedAt  int64  `json:"issued_at"`
	ExpiresAt int64  `json:"expires_at"`
}

func otpKey(email string) string {
	return fmt.Sprintf("otp:reset:%s", email)
}

var (
	otpMemMu sync.Mutex
	otpMem   = map[string]OTPRecord{}
)

// SetOTP stores a reset code for the email with the given lifetime.
func SetOTP(ctx context.Context, email, code string, ttl time.Duration) error {
	now := time.Now()
	record := OTPRecord{
		Code:      code,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
	if Enabled() {
		return SetJSON(ctx, otpKey(email), record, ttl)
	}

	otpMemMu.Lock()
	defer otpMemMu.Unlock()
	otpMem[email] = record
	return nil
}

// GetOTP reads the pending reset code for the email.
func GetOTP(ctx context.Context, email string) (*OTPRecord, bool, error) {
	if Enabled() {
		var record OTPRecord
		hit, err := GetJSON(ctx, otpKey(email), &record)
		if err != nil || !hit {
			return nil, hit, err
		}
		return &record, true, nil
	}

	otpMemMu.Lock()
	defer otpMemMu.Unlock()
	record, ok := otpMem[email]
	if !ok || time.Now().Unix() > record.ExpiresAt {
		delete(otpMem, email)
		return nil, false, nil
	}
	return &record, true, nil
}

// DelOTP invalidates the pending reset code for the email.
func DelOTP(ctx context.Context, email string) error {
	if Enabled() {
		return Del(ctx, otpKey(email))
	}

	otpMemMu.Lock()
	defer otpMemMu.Unlock()
	delete(otpMem, email)
	return nil
}
