package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sanadops/sanad-api/internal/domain/entity"
	"github.com/sanadops/sanad-api/internal/domain/enum"
	"github.com/sanadops/sanad-api/pkg/pagination"
)

// TicketFilterParams contains filtering parameters for ticket queries
type TicketFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.TicketStatus
	BranchID   *uuid.UUID
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// TicketRepository defines the interface for ticket data operations.
// Create persists the ticket together with any attached line items and log
// entries as one unit; Save only touches the ticket row itself.
type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	GetByCode(ctx context.Context, code string) (*entity.Ticket, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	Save(ctx context.Context, ticket *entity.Ticket) error
	List(ctx context.Context, params *TicketFilterParams) ([]entity.Ticket, int64, error)
}

// TicketLogRepository defines the interface for the append-only ticket log
type TicketLogRepository interface {
	Append(ctx context.Context, log *entity.TicketLog) error
	ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]entity.TicketLog, error)
}
