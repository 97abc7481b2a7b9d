package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/huong-next/internal/cache"
	"github.com/huong-next/internal/config"
	"github.com/huong-next/internal/constants"
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/repository"

	"gorm.io/gorm"
)

func newTestCustomerAuthService(db *gorm.DB) *CustomerAuthService {
	return NewCustomerAuthService(
		repository.NewCustomerRepository(db),
		NewEmailService(&config.EmailConfig{}),
		config.JWTConfig{SecretKey: "unit-test-secret-not-for-production", ExpireHours: 1},
	)
}

func TestCustomerRegisterAndLogin(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestCustomerAuthService(db)

	customer, err := svc.Register("New@Example.com", "secret123", "Le Thi C", "0912345678")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if customer.Email != "new@example.com" {
		t.Fatalf("email = %s, want lowercased", customer.Email)
	}

	token, got, err := svc.Login("new@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if got.ID != customer.ID {
		t.Fatalf("customer id = %d, want %d", got.ID, customer.ID)
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.CustomerID != customer.ID || claims.Email != "new@example.com" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestCustomerRegisterAttachesToGuestAccount(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestCustomerAuthService(db)

	// Guest checkout left an account without credentials.
	guest := createTestCustomer(t, db, "guest@example.com")

	upgraded, err := svc.Register("guest@example.com", "secret123", "Pham Van D", "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if upgraded.ID != guest.ID {
		t.Fatal("registration should reuse the guest account")
	}
	if upgraded.PasswordHash == "" {
		t.Fatal("password should be attached")
	}

	// A second registration on a credentialed account is rejected.
	if _, err := svc.Register("guest@example.com", "other-secret", "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("duplicate register err = %v, want ErrInvalidCredentials", err)
	}
}

func TestCustomerRegisterValidation(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestCustomerAuthService(db)

	if _, err := svc.Register("", "secret123", "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("empty email err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Register("short@example.com", "abc", "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("short password err = %v, want ErrInvalidCredentials", err)
	}
}

func TestCustomerLoginRejections(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestCustomerAuthService(db)

	if _, err := svc.Register("active@example.com", "secret123", "", ""); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	// Guest accounts have no password to log in with.
	createTestCustomer(t, db, "guestonly@example.com")

	disabled, err := svc.Register("off@example.com", "secret123", "", "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := db.Model(disabled).Update("is_active", false).Error; err != nil {
		t.Fatalf("Failed to disable customer: %v", err)
	}

	if _, _, err := svc.Login("active@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login("guestonly@example.com", "anything"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("guest login err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login("off@example.com", "secret123"); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("disabled login err = %v, want ErrAccountDisabled", err)
	}
}

func TestRequestPasswordResetUnknownEmailIsQuiet(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestCustomerAuthService(db)

	// Unknown emails are acknowledged so the endpoint leaks nothing.
	if err := svc.RequestPasswordReset(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset failed: %v", err)
	}
	if err := svc.RequestPasswordReset(context.Background(), ""); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("empty email err = %v, want ErrInvalidEmail", err)
	}
}

func TestConfirmPasswordReset(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestCustomerAuthService(db)
	ctx := context.Background()
	email := "reset@example.com"

	if _, err := svc.Register(email, "old-secret", "", ""); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := cache.SetOTP(ctx, email, "123456", time.Minute); err != nil {
		t.Fatalf("SetOTP failed: %v", err)
	}

	if err := svc.ConfirmPasswordReset(ctx, email, "999999", "new-secret"); !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("wrong code err = %v, want ErrOTPInvalid", err)
	}

	if err := svc.ConfirmPasswordReset(ctx, email, "123456", "new-secret"); err != nil {
		t.Fatalf("ConfirmPasswordReset failed: %v", err)
	}

	if _, _, err := svc.Login(email, "new-secret"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, _, err := svc.Login(email, "old-secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password err = %v, want ErrInvalidCredentials", err)
	}

	// The OTP is single-use.
	if err := svc.ConfirmPasswordReset(ctx, email, "123456", "another-secret"); !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("reused code err = %v, want ErrOTPExpired", err)
	}
}

func TestConfirmPasswordResetExhaustsAttempts(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestCustomerAuthService(db)
	ctx := context.Background()
	email := "bruteforce@example.com"

	if _, err := svc.Register(email, "old-secret", "", ""); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := cache.SetOTP(ctx, email, "123456", time.Minute); err != nil {
		t.Fatalf("SetOTP failed: %v", err)
	}

	for i := 0; i < constants.OTPMaxAttempts-1; i++ {
		if err := svc.ConfirmPasswordReset(ctx, email, "000000", "new-secret"); !errors.Is(err, ErrOTPInvalid) {
			t.Fatalf("attempt %d err = %v, want ErrOTPInvalid", i+1, err)
		}
	}
	if err := svc.ConfirmPasswordReset(ctx, email, "000000", "new-secret"); !errors.Is(err, ErrOTPExhausted) {
		t.Fatalf("final attempt err = %v, want ErrOTPExhausted", err)
	}

	// The exhausted code is invalidated; even the right one no longer works.
	if err := svc.ConfirmPasswordReset(ctx, email, "123456", "new-secret"); !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("post-exhaustion err = %v, want ErrOTPExpired", err)
	}

	var customer models.Customer
	if err := db.Where("email = ?", email).First(&customer).Error; err != nil {
		t.Fatalf("Failed to reload customer: %v", err)
	}
	if _, _, err := svc.Login(email, "old-secret"); err != nil {
		t.Fatalf("old password should still work, login failed: %v", err)
	}
}
