package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/coolvent/fieldops/internal/domain"
)

// CustomerUseCase handles customer record operations
type CustomerUseCase struct {
	customerRepo CustomerRepository
	idGen        IDGenerator
}

// NewCustomerUseCase creates a new customer use case
func NewCustomerUseCase(customerRepo CustomerRepository, idGen IDGenerator) *CustomerUseCase {
	return &CustomerUseCase{
		customerRepo: customerRepo,
		idGen:        idGen,
	}
}

// CreateCustomerInput represents input for creating a customer
type CreateCustomerInput struct {
	Name           string
	Email          string
	Phone          string
	ServiceAddress string
	Notes          string
}

// CreateCustomer creates a new customer record
func (uc *CustomerUseCase) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if input.Email != "" {
		if err := domain.ValidateEmail(input.Email); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	customer := &domain.Customer{
		ID:             uc.idGen.Generate(),
		Name:           strings.TrimSpace(input.Name),
		Email:          input.Email,
		Phone:          input.Phone,
		ServiceAddress: input.ServiceAddress,
		Notes:          input.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (uc *CustomerUseCase) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return uc.customerRepo.GetByID(ctx, id)
}

// UpdateCustomerInput represents input for updating a customer
type UpdateCustomerInput struct {
	ID             string
	Name           *string
	Email          *string
	Phone          *string
	ServiceAddress *string
	Notes          *string
}

// UpdateCustomer updates a customer record
func (uc *CustomerUseCase) UpdateCustomer(ctx context.Context, input UpdateCustomerInput) (*domain.Customer, error) {
	customer, err := uc.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := domain.ValidateName(*input.Name); err != nil {
			return nil, err
		}
		customer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		if *input.Email != "" {
			if err := domain.ValidateEmail(*input.Email); err != nil {
				return nil, err
			}
		}
		customer.Email = *input.Email
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.ServiceAddress != nil {
		customer.ServiceAddress = *input.ServiceAddress
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}

	customer.UpdatedAt = time.Now().UTC()

	if err := uc.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer deletes a customer record
func (uc *CustomerUseCase) DeleteCustomer(ctx context.Context, id string) error {
	if _, err := uc.customerRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.customerRepo.Delete(ctx, id)
}

// ListCustomersInput represents pagination and search parameters
type ListCustomersInput struct {
	Query  string
	Limit  int
	Offset int
}

// ListCustomers lists customers, optionally filtered by a name search
func (uc *CustomerUseCase) ListCustomers(ctx context.Context, input ListCustomersInput) ([]*domain.Customer, error) {
	limit, offset, _ := domain.ValidatePagination(input.Limit, input.Offset)

	if q := strings.TrimSpace(input.Query); q != "" {
		return uc.customerRepo.SearchByName(ctx, q, limit, offset)
	}
	return uc.customerRepo.List(ctx, limit, offset)
}
