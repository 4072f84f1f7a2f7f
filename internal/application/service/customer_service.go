package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sanadops/sanad-api/internal/domain/entity"
	"github.com/sanadops/sanad-api/internal/domain/repository"
	infraRepo "github.com/sanadops/sanad-api/internal/infrastructure/repository"
	"github.com/sanadops/sanad-api/pkg/apperror"
	"github.com/sanadops/sanad-api/pkg/pagination"
)

// CustomerService handles customer business logic
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CustomerInput represents the create/update customer input
type CustomerInput struct {
	Name    string
	NameAr  *string
	CivilID *string
	Email   *string
	Phone   *string
	Address *string
}

// CreateCustomer creates a customer in the current organization
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	orgID, ok := infraRepo.GetOrganizationID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Organization context required")
	}

	customer := &entity.Customer{
		OrganizationID: orgID,
		Name:           input.Name,
		NameAr:         input.NameAr,
		CivilID:        input.CivilID,
		Email:          input.Email,
		Phone:          input.Phone,
		Address:        input.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with filtering and pagination
func (s *CustomerService) ListCustomers(ctx context.Context, params *repository.CustomerFilterParams) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomer updates a customer's details
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	customer.Name = input.Name
	customer.NameAr = input.NameAr
	customer.CivilID = input.CivilID
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Address = input.Address

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer soft deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}
