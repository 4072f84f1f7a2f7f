package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sanadops/sanad-api/internal/domain/entity"
	"github.com/sanadops/sanad-api/pkg/pagination"
)

// GovernmentEntityRepository defines the interface for government entity data operations
type GovernmentEntityRepository interface {
	Create(ctx context.Context, ge *entity.GovernmentEntity) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.GovernmentEntity, error)
	GetByCode(ctx context.Context, code string) (*entity.GovernmentEntity, error)
	List(ctx context.Context) ([]entity.GovernmentEntity, error)
	Update(ctx context.Context, ge *entity.GovernmentEntity) error
}

// ServiceFilterParams contains filtering parameters for catalog queries
type ServiceFilterParams struct {
	Pagination         *pagination.PaginationParams
	Search             string
	GovernmentEntityID *uuid.UUID
	ActiveOnly         bool
}

// ServiceRepository defines the interface for service catalog data operations
type ServiceRepository interface {
	Create(ctx context.Context, svc *entity.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Service, error)
	GetByCode(ctx context.Context, code string) (*entity.Service, error)
	List(ctx context.Context, params *ServiceFilterParams) ([]entity.Service, int64, error)
	Update(ctx context.Context, svc *entity.Service) error
}
