package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sanadops/sanad-api/internal/domain/entity"
	domainRepo "github.com/sanadops/sanad-api/internal/domain/repository"
	"gorm.io/gorm"
)

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *gorm.DB) domainRepo.TicketRepository {
	return &ticketRepository{db: db}
}

// Create persists the ticket with any attached items and logs. GORM saves
// the associations in the same statement batch, and inside a TxManager
// transaction the whole unit commits or rolls back together.
func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	return conn(ctx, r.db).Create(ticket).Error
}

func (r *ticketRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := conn(ctx, r.db).Scopes(OrgScope(ctx)).First(&ticket, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ticket, err
}

func (r *ticketRepository) GetByCode(ctx context.Context, code string) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := conn(ctx, r.db).Scopes(OrgScope(ctx)).First(&ticket, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ticket, err
}

func (r *ticketRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := conn(ctx, r.db).
		Scopes(OrgScope(ctx)).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("ticket_line_items.position ASC")
		}).
		Preload("Items.Service").
		Preload("Logs", func(db *gorm.DB) *gorm.DB {
			return db.Order("ticket_logs.created_at ASC")
		}).
		Preload("Invoice").
		First(&ticket, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ticket, err
}

func (r *ticketRepository) Save(ctx context.Context, ticket *entity.Ticket) error {
	return conn(ctx, r.db).Omit("Items", "Logs", "Invoice", "Customer", "Organization", "Branch").Save(ticket).Error
}

func (r *ticketRepository) List(ctx context.Context, params *domainRepo.TicketFilterParams) ([]entity.Ticket, int64, error) {
	var tickets []entity.Ticket
	var total int64

	query := conn(ctx, r.db).Model(&entity.Ticket{}).Scopes(OrgScope(ctx))

	if params.Search != "" {
		query = query.Where("code ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.BranchID != nil {
		query = query.Where("branch_id = ?", *params.BranchID)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order(sortBy + " " + sortOrder).
		Find(&tickets).Error

	return tickets, total, err
}

type ticketLogRepository struct {
	db *gorm.DB
}

// NewTicketLogRepository creates a new ticket log repository
func NewTicketLogRepository(db *gorm.DB) domainRepo.TicketLogRepository {
	return &ticketLogRepository{db: db}
}

func (r *ticketLogRepository) Append(ctx context.Context, log *entity.TicketLog) error {
	return conn(ctx, r.db).Create(log).Error
}

func (r *ticketLogRepository) ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]entity.TicketLog, error) {
	var logs []entity.TicketLog
	err := conn(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}
