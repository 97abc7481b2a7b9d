package service

import (
	"strings"

	"github.com/huong-next/internal/logger"
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/repository"

	"github.com/shopspring/decimal"
)

// FeeService manages checkout charge rules. Edits only affect future
// quotes; placed orders keep their frozen amounts.
type FeeService struct {
	feeRepo repository.FeeRepository
}

// NewFeeService creates a fee service.
func NewFeeService(feeRepo repository.FeeRepository) *FeeService {
	return &FeeService{feeRepo: feeRepo}
}

// Get fetches a fee rule.
func (s *FeeService) Get(id uint) (*models.Fee, error) {
	fee, err := s.feeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if fee == nil {
		return nil, ErrFeeNotFound
	}
	return fee, nil
}

// List returns all fee rules.
func (s *FeeService) List(page, pageSize int) ([]models.Fee, int64, error) {
	return s.feeRepo.List(page, pageSize)
}

// Save creates or updates a fee rule.
func (s *FeeService) Save(fee *models.Fee) error {
	if strings.TrimSpace(fee.Name) == "" {
		return ErrFeeNotFound
	}
	if fee.Percent.Decimal.LessThan(decimal.Zero) ||
		fee.Amount.Decimal.LessThan(decimal.Zero) ||
		fee.Threshold.Decimal.LessThan(decimal.Zero) {
		return ErrFeeNotFound
	}

	if fee.ID == 0 {
		if err := s.feeRepo.Create(fee); err != nil {
			return err
		}
		logger.Infow("fee_created", "fee_id", fee.ID, "name", fee.Name)
		return nil
	}
	if err := s.feeRepo.Update(fee); err != nil {
		return err
	}
	logger.Infow("fee_updated", "fee_id", fee.ID, "name", fee.Name)
	return nil
}

// Delete removes a fee rule.
func (s *FeeService) Delete(id uint) error {
	fee, err := s.feeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if fee == nil {
		return ErrFeeNotFound
	}
	return s.feeRepo.Delete(id)
}
