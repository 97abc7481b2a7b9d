package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huong-next/internal/cache"
	"github.com/huong-next/internal/config"
	"github.com/huong-next/internal/constants"
	"github.com/huong-next/internal/logger"
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// CustomerClaims is the storefront JWT payload.
type CustomerClaims struct {
	CustomerID uint   `json:"customer_id"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

// CustomerAuthService handles storefront login, registration and the OTP
// password reset flow with its attempt guard.
type CustomerAuthService struct {
	customerRepo repository.CustomerRepository
	emailSvc     *EmailService
	guard        *cache.AttemptGuard
	jwtCfg       config.JWTConfig
}

// NewCustomerAuthService creates a customer auth service.
func NewCustomerAuthService(
	customerRepo repository.CustomerRepository,
	emailSvc *EmailService,
	jwtCfg config.JWTConfig,
) *CustomerAuthService {
	return &CustomerAuthService{
		customerRepo: customerRepo,
		emailSvc:     emailSvc,
		guard: cache.NewAttemptGuard(
			constants.OTPMaxAttempts,
			constants.OTPLockStrikes,
			constants.OTPCooldownSeconds*time.Second,
		),
		jwtCfg: jwtCfg,
	}
}

// Register creates an account, or attaches credentials to a guest-created
// account that has no password yet.
func (s *CustomerAuthService) Register(email, password, fullName, phone string) (*models.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 6 {
		return nil, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	existing, err := s.customerRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.PasswordHash != "" {
			return nil, ErrInvalidCredentials
		}
		existing.PasswordHash = string(hash)
		if fullName != "" {
			existing.FullName = strings.TrimSpace(fullName)
		}
		if phone != "" {
			existing.Phone = strings.TrimSpace(phone)
		}
		if err := s.customerRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	customer := &models.Customer{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(fullName),
		Phone:        strings.TrimSpace(phone),
		IsActive:     true,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	logger.Infow("customer_registered", "customer_id", customer.ID, "email", email)
	return customer, nil
}

// Login verifies credentials and returns a signed token.
func (s *CustomerAuthService) Login(email, password string) (string, *models.Customer, error) {
	customer, err := s.customerRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, err
	}
	if customer == nil || customer.PasswordHash == "" {
		return "", nil, ErrInvalidCredentials
	}
	if !customer.IsActive {
		return "", nil, ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.sign(customer)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	customer.LastLoginAt = &now
	if err := s.customerRepo.Update(customer); err != nil {
		logger.Warnw("customer_last_login_update_failed", "customer_id", customer.ID, "error", err)
	}

	return token, customer, nil
}

// ParseToken validates a token and returns its claims.
func (s *CustomerAuthService) ParseToken(tokenString string) (*CustomerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomerClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtCfg.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*CustomerClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

// RequestPasswordReset issues an OTP for the email. Unknown emails are
// acknowledged without sending so the endpoint does not leak accounts.
func (s *CustomerAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrInvalidEmail
	}

	if allowed, remaining := s.guard.Allow(email); !allowed {
		logger.Warnw("otp_request_blocked", "email", email, "cooldown_remaining", remaining.String())
		return ErrOTPCoolingDown
	}

	customer, err := s.customerRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if customer == nil {
		logger.Infow("otp_request_unknown_email", "email", email)
		return nil
	}

	code, err := randomDigits(constants.OTPCodeLength)
	if err != nil {
		return err
	}
	if err := cache.SetOTP(ctx, email, code, constants.OTPCodeExpireMinutes*time.Minute); err != nil {
		return err
	}

	if err := s.emailSvc.SendPasswordResetCode(email, code); err != nil {
		if errors.Is(err, ErrEmailServiceDisabled) || errors.Is(err, ErrEmailServiceNotConfigured) {
			logger.Warnw("otp_email_skipped", "email", email, "error", err)
			return nil
		}
		return err
	}
	logger.Infow("otp_sent", "email", email)
	return nil
}

// ConfirmPasswordReset verifies the OTP and sets a new password. Five
// wrong codes invalidate the OTP; three invalidated OTPs start a
// five-minute cooldown on the email.
func (s *CustomerAuthService) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(newPassword) < 6 {
		return ErrInvalidCredentials
	}

	if allowed, _ := s.guard.Allow(email); !allowed {
		return ErrOTPCoolingDown
	}

	record, hit, err := cache.GetOTP(ctx, email)
	if err != nil {
		return err
	}
	if !hit || time.Now().Unix() > record.ExpiresAt {
		return ErrOTPExpired
	}

	if record.Code != strings.TrimSpace(code) {
		exhausted, coolingDown := s.guard.RecordFailure(email)
		if exhausted {
			if err := cache.DelOTP(ctx, email); err != nil {
				logger.Warnw("otp_invalidate_failed", "email", email, "error", err)
			}
			if coolingDown {
				return ErrOTPCoolingDown
			}
			return ErrOTPExhausted
		}
		return ErrOTPInvalid
	}

	customer, err := s.customerRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if customer == nil {
		return ErrCustomerNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	customer.PasswordHash = string(hash)
	if err := s.customerRepo.Update(customer); err != nil {
		return err
	}

	s.guard.Reset(email)
	if err := cache.DelOTP(ctx, email); err != nil {
		logger.Warnw("otp_cleanup_failed", "email", email, "error", err)
	}
	logger.Infow("password_reset_completed", "customer_id", customer.ID)
	return nil
}

func (s *CustomerAuthService) sign(customer *models.Customer) (string, error) {
	expireHours := s.jwtCfg.ExpireHours
	if expireHours <= 0 {
		expireHours = 168
	}
	now := time.Now()
	claims := CustomerClaims{
		CustomerID: customer.ID,
		Email:      customer.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expireHours) * time.Hour)),
			Subject:   fmt.Sprintf("customer:%d", customer.ID),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.SecretKey))
}
