package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/huong-next/internal/constants"
	"github.com/huong-next/internal/logger"
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const warrantyCodeRetries = 5

// IssueReport is the per-line outcome of a warranty issuance run.
type IssueReport struct {
	OrderID uint              `json:"order_id"`
	Created []models.Warranty `json:"created"`
	Skipped []SkippedLine     `json:"skipped"`
}

// SkippedLine names an order line that got no warranty and why.
type SkippedLine struct {
	OrderItemID uint   `json:"order_item_id"`
	Reason      string `json:"reason"`
}

// WarrantyService issues and retracts warranties and handles claims.
type WarrantyService struct {
	db           *gorm.DB
	warrantyRepo repository.WarrantyRepository
	claimRepo    repository.WarrantyClaimRepository
	orderRepo    repository.OrderRepository
}

// NewWarrantyService creates a warranty service.
func NewWarrantyService(
	db *gorm.DB,
	warrantyRepo repository.WarrantyRepository,
	claimRepo repository.WarrantyClaimRepository,
	orderRepo repository.OrderRepository,
) *WarrantyService {
	return &WarrantyService{
		db:           db,
		warrantyRepo: warrantyRepo,
		claimRepo:    claimRepo,
		orderRepo:    orderRepo,
	}
}

// IssueForOrder issues one warranty per eligible order line. Existing
// warranties for the order are removed first so re-marking an order as
// delivered always ends with exactly one warranty per line.
func (s *WarrantyService) IssueForOrder(orderID uint) (*IssueReport, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	report := &IssueReport{OrderID: orderID}
	now := time.Now()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		warrantyTx := s.warrantyRepo.WithTx(tx)

		removed, err := warrantyTx.DeleteByOrder(orderID)
		if err != nil {
			return err
		}
		if removed > 0 {
			logger.Infow("warranties_replaced", "order_id", orderID, "removed", removed)
		}

		for _, item := range order.Items {
			if item.WarrantyMonths <= 0 {
				report.Skipped = append(report.Skipped, SkippedLine{
					OrderItemID: item.ID,
					Reason:      "no warranty on product",
				})
				continue
			}

			warranty := models.Warranty{
				OrderID:     orderID,
				OrderItemID: item.ID,
				ProductID:   item.ProductID,
				CustomerID:  order.CustomerID,
				StartsAt:    now,
				ExpiresAt:   now.AddDate(0, item.WarrantyMonths, 0),
			}
			if err := s.createWithUniqueCode(warrantyTx, &warranty, now); err != nil {
				return err
			}
			report.Created = append(report.Created, warranty)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("warranties_issued",
		"order_id", orderID,
		"created", len(report.Created),
		"skipped", len(report.Skipped),
	)
	return report, nil
}

// createWithUniqueCode inserts the warranty, regenerating the code on
// collisions and falling back to a uuid-derived suffix as a last resort.
func (s *WarrantyService) createWithUniqueCode(repo *repository.GormWarrantyRepository, warranty *models.Warranty, now time.Time) error {
	for attempt := 0; attempt < warrantyCodeRetries; attempt++ {
		code, err := generateWarrantyCode(now)
		if err != nil {
			return err
		}
		warranty.Code = code
		err = repo.Create(warranty)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return err
		}
	}

	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	warranty.Code = fmt.Sprintf("BH%s%s", now.Format("20060102150405"), suffix)
	return repo.Create(warranty)
}

// RetractForOrder removes all warranties (and their claims) for an order.
// Returns how many warranties were removed.
func (s *WarrantyService) RetractForOrder(orderID uint) (int64, error) {
	var removed int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		removed, err = s.warrantyRepo.WithTx(tx).DeleteByOrder(orderID)
		return err
	})
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		logger.Infow("warranties_retracted", "order_id", orderID, "removed", removed)
	}
	return removed, nil
}

// GetByCode looks a warranty up by its public code.
func (s *WarrantyService) GetByCode(code string) (*models.Warranty, error) {
	warranty, err := s.warrantyRepo.GetByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if warranty == nil {
		return nil, ErrWarrantyNotFound
	}
	return warranty, nil
}

// ListByCustomer returns a customer's warranties.
func (s *WarrantyService) ListByCustomer(customerID uint, page, pageSize int) ([]models.Warranty, int64, error) {
	return s.warrantyRepo.ListByCustomer(customerID, page, pageSize)
}

// ListAdmin returns the back-office warranty list.
func (s *WarrantyService) ListAdmin(filter repository.WarrantyListFilter) ([]models.Warranty, int64, error) {
	return s.warrantyRepo.List(filter)
}

// CreateClaim opens a service request against a warranty. Expired
// warranties and warranties with an open claim are rejected.
func (s *WarrantyService) CreateClaim(warrantyCode string, customerID uint, description string) (*models.WarrantyClaim, error) {
	warranty, err := s.GetByCode(warrantyCode)
	if err != nil {
		return nil, err
	}
	if customerID != 0 && warranty.CustomerID != customerID {
		return nil, ErrWarrantyNotFound
	}

	now := time.Now()
	if warranty.IsExpired(now) {
		return nil, ErrWarrantyExpired
	}

	open, err := s.claimRepo.HasOpenClaim(warranty.ID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrClaimAlreadyOpen
	}

	code, err := generateClaimCode(warranty.ID, now)
	if err != nil {
		return nil, err
	}
	claim := &models.WarrantyClaim{
		Code:        code,
		WarrantyID:  warranty.ID,
		Status:      constants.ClaimStatusPending,
		Description: strings.TrimSpace(description),
	}
	if err := s.claimRepo.Create(claim); err != nil {
		return nil, err
	}

	logger.Infow("warranty_claim_created",
		"warranty_id", warranty.ID,
		"claim_id", claim.ID,
		"code", claim.Code,
	)
	return claim, nil
}

// UpdateClaimStatus moves a claim to a new status. The input is
// normalized so legacy aliases are accepted. Resolved and rejected
// claims get a resolution timestamp.
func (s *WarrantyService) UpdateClaimStatus(claimID uint, status, resolution string) (*models.WarrantyClaim, error) {
	status = constants.NormalizeClaimStatus(status)
	if status == "" {
		return nil, ErrClaimStatusInvalid
	}

	claim, err := s.claimRepo.GetByID(claimID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, ErrClaimNotFound
	}

	claim.Status = status
	if resolution != "" {
		claim.Resolution = resolution
	}
	if status == constants.ClaimStatusResolved || status == constants.ClaimStatusRejected {
		now := time.Now()
		claim.ResolvedAt = &now
	}
	if err := s.claimRepo.Update(claim); err != nil {
		return nil, err
	}
	return claim, nil
}

// ListClaims returns the back-office claim list.
func (s *WarrantyService) ListClaims(filter repository.ClaimListFilter) ([]models.WarrantyClaim, int64, error) {
	return s.claimRepo.List(filter)
}

// generateWarrantyCode builds BH + timestamp + 4 random digits.
func generateWarrantyCode(now time.Time) (string, error) {
	digits, err := randomDigits(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("BH%s%s", now.Format("20060102150405"), digits), nil
}

// generateClaimCode builds YC + date + zero-padded warranty ID + 4 digits.
func generateClaimCode(warrantyID uint, now time.Time) (string, error) {
	digits, err := randomDigits(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("YC%s%04d%s", now.Format("20060102"), warrantyID, digits), nil
}

func randomDigits(length int) (string, error) {
	var sb strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate digits failed: %w", err)
		}
		sb.WriteString(n.String())
	}
	return sb.String(), nil
}
