package service

import (
	"github.com/huong-next/internal/constants"
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/repository"
)

// CartSummary is the priced cart view.
type CartSummary struct {
	Items []models.CartItem `json:"items"`
	Quote Quote             `json:"quote"`
}

// CartService manages cart lines. Lines hold only product and quantity;
// prices always come from the catalog at display and checkout time.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	pricing     *PricingService
}

// NewCartService creates a cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, pricing *PricingService) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		pricing:     pricing,
	}
}

// Add puts a product in the cart, merging with an existing line. The
// merged quantity must stay within bounds.
func (s *CartService) Add(customerID uint, sessionID string, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < constants.CartQuantityMin || quantity > constants.CartQuantityMax {
		return nil, ErrQuantityOutOfRange
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive || product.IsPlaceholder {
		return nil, ErrProductInactive
	}

	existing, err := s.cartRepo.GetByOwnerAndProduct(customerID, sessionID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		merged := existing.Quantity + quantity
		if merged > constants.CartQuantityMax {
			return nil, ErrQuantityOutOfRange
		}
		existing.Quantity = merged
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	item := &models.CartItem{
		CustomerID: customerID,
		SessionID:  sessionID,
		ProductID:  productID,
		Quantity:   quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity sets a line's quantity.
func (s *CartService) UpdateQuantity(customerID uint, sessionID string, itemID uint, quantity int) (*models.CartItem, error) {
	if quantity < constants.CartQuantityMin || quantity > constants.CartQuantityMax {
		return nil, ErrQuantityOutOfRange
	}

	item, err := s.ownedItem(customerID, sessionID, itemID)
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove deletes a line.
func (s *CartService) Remove(customerID uint, sessionID string, itemID uint) error {
	item, err := s.ownedItem(customerID, sessionID, itemID)
	if err != nil {
		return err
	}
	return s.cartRepo.Delete(item.ID)
}

// Clear empties the cart.
func (s *CartService) Clear(customerID uint, sessionID string) error {
	return s.cartRepo.ClearByOwner(customerID, sessionID)
}

// Summary prices the cart with the currently applied voucher.
func (s *CartService) Summary(customerID uint, sessionID string, voucher *AppliedVoucher) (*CartSummary, error) {
	items, err := s.cartRepo.ListByOwner(customerID, sessionID)
	if err != nil {
		return nil, err
	}

	lines := make([]PricingLine, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		lines = append(lines, PricingLine{
			ProductID:      item.ProductID,
			ProductName:    item.Product.Name,
			UnitPrice:      item.Product.Price,
			Quantity:       item.Quantity,
			WarrantyMonths: item.Product.WarrantyMonths,
		})
	}

	quote, err := s.pricing.QuoteFor(lines, voucher)
	if err != nil {
		return nil, err
	}
	return &CartSummary{Items: items, Quote: quote}, nil
}

// Lines converts the cart into checkout lines.
func (s *CartService) Lines(customerID uint, sessionID string) ([]CreateOrderLine, error) {
	items, err := s.cartRepo.ListByOwner(customerID, sessionID)
	if err != nil {
		return nil, err
	}
	lines := make([]CreateOrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, CreateOrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return lines, nil
}

func (s *CartService) ownedItem(customerID uint, sessionID string, itemID uint) (*models.CartItem, error) {
	item, err := s.cartRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if customerID > 0 {
		if item.CustomerID != customerID {
			return nil, ErrCartItemNotFound
		}
	} else if item.SessionID != sessionID || item.CustomerID != 0 {
		return nil, ErrCartItemNotFound
	}
	return item, nil
}
