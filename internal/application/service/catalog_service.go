package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sanadops/sanad-api/internal/domain/entity"
	"github.com/sanadops/sanad-api/internal/domain/enum"
	"github.com/sanadops/sanad-api/internal/domain/repository"
	"github.com/sanadops/sanad-api/pkg/apperror"
	"github.com/sanadops/sanad-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CatalogService manages government entities and the priced service
// catalog. The workflow reads services through here; fee changes only
// affect lines priced after the change.
type CatalogService struct {
	serviceRepo repository.ServiceRepository
	govRepo     repository.GovernmentEntityRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(serviceRepo repository.ServiceRepository, govRepo repository.GovernmentEntityRepository) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo, govRepo: govRepo}
}

// ServiceInput represents the create/update service input
type ServiceInput struct {
	GovernmentEntityID uuid.UUID
	Code               string
	Name               string
	NameAr             string
	BaseOfficeFee      decimal.Decimal
	GovFeeType         enum.GovFeeType
	GovFeeValue        decimal.Decimal
	VATApplicable      bool
	TurnaroundDays     int
	Active             bool
}

// CreateService adds a service to the catalog
func (s *CatalogService) CreateService(ctx context.Context, input *ServiceInput) (*entity.Service, error) {
	if !input.GovFeeType.IsValid() {
		return nil, apperror.NewBadRequestError("Government fee type must be fixed or variable")
	}
	if input.BaseOfficeFee.IsNegative() || input.GovFeeValue.IsNegative() {
		return nil, apperror.NewBadRequestError("Fees cannot be negative")
	}

	gov, err := s.govRepo.GetByID(ctx, input.GovernmentEntityID)
	if err != nil {
		return nil, err
	}
	if gov == nil {
		return nil, apperror.NewNotFoundError("Government entity")
	}

	existing, err := s.serviceRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A service with this code already exists")
	}

	svc := &entity.Service{
		GovernmentEntityID: input.GovernmentEntityID,
		Code:               input.Code,
		Name:               input.Name,
		NameAr:             input.NameAr,
		BaseOfficeFee:      input.BaseOfficeFee,
		GovFeeType:         input.GovFeeType,
		GovFeeValue:        input.GovFeeValue,
		VATApplicable:      input.VATApplicable,
		TurnaroundDays:     input.TurnaroundDays,
		Active:             input.Active,
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// GetService retrieves a service by ID
func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return svc, nil
}

// ListServices lists catalog services with filtering
func (s *CatalogService) ListServices(ctx context.Context, params *repository.ServiceFilterParams) (*pagination.PaginatedResult[entity.Service], error) {
	services, total, err := s.serviceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(services, pag), nil
}

// UpdateService updates a catalog service. Existing ticket lines keep the
// fees they were priced with.
func (s *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, input *ServiceInput) (*entity.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}

	if !input.GovFeeType.IsValid() {
		return nil, apperror.NewBadRequestError("Government fee type must be fixed or variable")
	}
	if input.BaseOfficeFee.IsNegative() || input.GovFeeValue.IsNegative() {
		return nil, apperror.NewBadRequestError("Fees cannot be negative")
	}

	svc.Name = input.Name
	svc.NameAr = input.NameAr
	svc.BaseOfficeFee = input.BaseOfficeFee
	svc.GovFeeType = input.GovFeeType
	svc.GovFeeValue = input.GovFeeValue
	svc.VATApplicable = input.VATApplicable
	svc.TurnaroundDays = input.TurnaroundDays
	svc.Active = input.Active

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// CreateGovernmentEntity adds a government entity
func (s *CatalogService) CreateGovernmentEntity(ctx context.Context, code, name, nameAr string) (*entity.GovernmentEntity, error) {
	existing, err := s.govRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A government entity with this code already exists")
	}

	ge := &entity.GovernmentEntity{Code: code, Name: name, NameAr: nameAr}
	if err := s.govRepo.Create(ctx, ge); err != nil {
		return nil, err
	}
	return ge, nil
}

// ListGovernmentEntities lists all government entities
func (s *CatalogService) ListGovernmentEntities(ctx context.Context) ([]entity.GovernmentEntity, error) {
	return s.govRepo.List(ctx)
}
