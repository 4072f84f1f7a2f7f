package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sanadops/sanad-api/internal/domain/entity"
	domainRepo "github.com/sanadops/sanad-api/internal/domain/repository"
	"gorm.io/gorm"
)

type governmentEntityRepository struct {
	db *gorm.DB
}

// NewGovernmentEntityRepository creates a new government entity repository
func NewGovernmentEntityRepository(db *gorm.DB) domainRepo.GovernmentEntityRepository {
	return &governmentEntityRepository{db: db}
}

func (r *governmentEntityRepository) Create(ctx context.Context, ge *entity.GovernmentEntity) error {
	return conn(ctx, r.db).Create(ge).Error
}

func (r *governmentEntityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.GovernmentEntity, error) {
	var ge entity.GovernmentEntity
	err := conn(ctx, r.db).First(&ge, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ge, err
}

func (r *governmentEntityRepository) GetByCode(ctx context.Context, code string) (*entity.GovernmentEntity, error) {
	var ge entity.GovernmentEntity
	err := conn(ctx, r.db).First(&ge, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ge, err
}

func (r *governmentEntityRepository) List(ctx context.Context) ([]entity.GovernmentEntity, error) {
	var entities []entity.GovernmentEntity
	err := conn(ctx, r.db).Order("code ASC").Find(&entities).Error
	return entities, err
}

func (r *governmentEntityRepository) Update(ctx context.Context, ge *entity.GovernmentEntity) error {
	return conn(ctx, r.db).Save(ge).Error
}

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service catalog repository
func NewServiceRepository(db *gorm.DB) domainRepo.ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, svc *entity.Service) error {
	return conn(ctx, r.db).Create(svc).Error
}

func (r *serviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var svc entity.Service
	err := conn(ctx, r.db).Preload("GovernmentEntity").First(&svc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &svc, err
}

func (r *serviceRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Service, error) {
	var services []entity.Service
	err := conn(ctx, r.db).Where("id IN ?", ids).Find(&services).Error
	return services, err
}

func (r *serviceRepository) GetByCode(ctx context.Context, code string) (*entity.Service, error) {
	var svc entity.Service
	err := conn(ctx, r.db).First(&svc, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &svc, err
}

func (r *serviceRepository) List(ctx context.Context, params *domainRepo.ServiceFilterParams) ([]entity.Service, int64, error) {
	var services []entity.Service
	var total int64

	query := conn(ctx, r.db).Model(&entity.Service{})

	if params.Search != "" {
		query = query.Where("code ILIKE ? OR name ILIKE ?", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.GovernmentEntityID != nil {
		query = query.Where("government_entity_id = ?", *params.GovernmentEntityID)
	}

	if params.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("GovernmentEntity").
		Order("code ASC").
		Find(&services).Error

	return services, total, err
}

func (r *serviceRepository) Update(ctx context.Context, svc *entity.Service) error {
	return conn(ctx, r.db).Save(svc).Error
}
