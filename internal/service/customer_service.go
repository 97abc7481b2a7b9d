package service

import (
	"github.com/huong-next/internal/models"
	"github.com/huong-next/internal/repository"
)

// CustomerService is the back-office view over customer accounts.
type CustomerService struct {
	customerRepo repository.CustomerRepository
	addressRepo  repository.AddressRepository
}

// NewCustomerService creates a customer service.
func NewCustomerService(customerRepo repository.CustomerRepository, addressRepo repository.AddressRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, addressRepo: addressRepo}
}

// Get fetches a customer with addresses.
func (s *CustomerService) Get(id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	addresses, err := s.addressRepo.ListByCustomer(id)
	if err != nil {
		return nil, err
	}
	customer.Addresses = addresses
	return customer, nil
}

// List returns the admin customer list.
func (s *CustomerService) List(filter repository.CustomerListFilter) ([]models.Customer, int64, error) {
	return s.customerRepo.List(filter)
}

// SetActive enables or disables an account.
func (s *CustomerService) SetActive(id uint, active bool) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	customer.IsActive = active
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}
