package models

import (
	"strings"

	"github.com/huong-next/internal/constants"
	"github.com/huong-next/internal/logger"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin creates the default back-office account on first run.
func InitDefaultAdmin(username, password string) error {
	var count int64
	DB.Model(&Admin{}).Count(&count)

	// Keep the builtin admin super even after manual edits.
	if count > 0 {
		if err := DB.Model(&Admin{}).Where("username = ?", "admin").Update("is_super", true).Error; err != nil {
			logger.Warnw("ensure_default_admin_super_failed", "error", err)
		}
		return nil
	}

	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := Admin{
		Username:     username,
		PasswordHash: string(hash),
		IsSuper:      strings.EqualFold(strings.TrimSpace(username), "admin"),
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "username", username, "password", password)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}

	return nil
}

// InitDefaultFees seeds the well-known VAT and Shipping fee rows when the
// fees table is empty.
func InitDefaultFees() error {
	var count int64
	DB.Model(&Fee{}).Count(&count)
	if count > 0 {
		return nil
	}

	fees := []Fee{
		{
			Name:     constants.FeeNameVAT,
			Percent:  NewMoneyFromDecimal(decimal.NewFromInt(10)),
			IsActive: true,
		},
		{
			Name:      constants.FeeNameShipping,
			Amount:    NewMoneyFromInt(constants.DefaultShippingFee),
			Threshold: NewMoneyFromInt(constants.DefaultShippingThreshold),
			IsActive:  true,
		},
	}
	if err := DB.Create(&fees).Error; err != nil {
		return err
	}
	logger.Infow("default_fees_created", "count", len(fees))
	return nil
}
