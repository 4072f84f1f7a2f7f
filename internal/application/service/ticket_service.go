package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sanadops/sanad-api/internal/application/pricing"
	"github.com/sanadops/sanad-api/internal/domain/entity"
	"github.com/sanadops/sanad-api/internal/domain/enum"
	"github.com/sanadops/sanad-api/internal/domain/repository"
	infraRepo "github.com/sanadops/sanad-api/internal/infrastructure/repository"
	"github.com/sanadops/sanad-api/pkg/apperror"
	"github.com/sanadops/sanad-api/pkg/pagination"
)

// TicketService drives tickets through their workflow: creation with priced
// line items, status transitions, and the append-only audit log.
type TicketService struct {
	ticketRepo   repository.TicketRepository
	logRepo      repository.TicketLogRepository
	serviceRepo  repository.ServiceRepository
	customerRepo repository.CustomerRepository
	orgRepo      repository.OrganizationRepository
	branchRepo   repository.BranchRepository
	seqRepo      repository.SequenceRepository
	tx           repository.TxManager
	engine       *pricing.Engine
}

// NewTicketService creates a new ticket service
func NewTicketService(
	ticketRepo repository.TicketRepository,
	logRepo repository.TicketLogRepository,
	serviceRepo repository.ServiceRepository,
	customerRepo repository.CustomerRepository,
	orgRepo repository.OrganizationRepository,
	branchRepo repository.BranchRepository,
	seqRepo repository.SequenceRepository,
	tx repository.TxManager,
	engine *pricing.Engine,
) *TicketService {
	return &TicketService{
		ticketRepo:   ticketRepo,
		logRepo:      logRepo,
		serviceRepo:  serviceRepo,
		customerRepo: customerRepo,
		orgRepo:      orgRepo,
		branchRepo:   branchRepo,
		seqRepo:      seqRepo,
		tx:           tx,
		engine:       engine,
	}
}

// TicketLineInput is one requested (service, quantity) pair
type TicketLineInput struct {
	ServiceID uuid.UUID
	Quantity  int
	Params    pricing.CalcParams
}

// CreateTicketInput represents the create ticket input
type CreateTicketInput struct {
	BranchID   uuid.UUID
	CustomerID *uuid.UUID
	ActorID    uuid.UUID
	Lines      []TicketLineInput
}

// SkippedLine reports a requested line that produced no line item, so
// callers can surface it instead of silently losing the request
type SkippedLine struct {
	ServiceID uuid.UUID `json:"service_id"`
	Reason    string    `json:"reason"`
}

// ticketSequenceScope names the counter shared by all tickets of one
// org/branch/year
func ticketSequenceScope(orgCode, branchCode, year int) string {
	return fmt.Sprintf("ticket:ORG%d:BR%d:%d", orgCode, branchCode, year)
}

// CreateTicket creates a ticket with one priced line item per resolvable
// requested service. Lines whose service id does not resolve are skipped
// and reported back. The new ticket always lands in status "priced" with a
// single "created" log entry; ticket, items, and log commit atomically.
func (s *TicketService) CreateTicket(ctx context.Context, input *CreateTicketInput) (*entity.Ticket, []SkippedLine, error) {
	orgID, ok := infraRepo.GetOrganizationID(ctx)
	if !ok {
		return nil, nil, apperror.NewBadRequestError("Organization context required")
	}

	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, nil, err
	}
	if org == nil {
		return nil, nil, apperror.NewNotFoundError("Organization")
	}

	branch, err := s.branchRepo.GetByID(ctx, input.BranchID)
	if err != nil {
		return nil, nil, err
	}
	if branch == nil || branch.OrganizationID != orgID {
		return nil, nil, apperror.NewNotFoundError("Branch")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, nil, err
		}
		if customer == nil {
			return nil, nil, apperror.NewNotFoundError("Customer")
		}
	}

	for _, line := range input.Lines {
		if line.Quantity < 1 {
			return nil, nil, apperror.NewBadRequestError("Line quantity must be at least 1")
		}
	}

	// Batch fetch all requested services in one query
	serviceIDs := make([]uuid.UUID, len(input.Lines))
	for i, line := range input.Lines {
		serviceIDs[i] = line.ServiceID
	}

	services, err := s.serviceRepo.GetByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, nil, err
	}

	serviceMap := make(map[uuid.UUID]*entity.Service, len(services))
	for i := range services {
		serviceMap[services[i].ID] = &services[i]
	}

	var skipped []SkippedLine
	items := make([]entity.TicketLineItem, 0, len(input.Lines))

	for _, line := range input.Lines {
		svc, exists := serviceMap[line.ServiceID]
		if !exists {
			skipped = append(skipped, SkippedLine{ServiceID: line.ServiceID, Reason: "service not found"})
			continue
		}
		if !svc.Active {
			skipped = append(skipped, SkippedLine{ServiceID: line.ServiceID, Reason: "service inactive"})
			continue
		}

		amounts := s.engine.ComputeLineItem(*svc, line.Quantity, line.Params)
		items = append(items, entity.TicketLineItem{
			ServiceID:   svc.ID,
			ServiceCode: svc.Code,
			Description: svc.Name,
			Position:    len(items),
			Quantity:    line.Quantity,
			OfficeFee:   amounts.OfficeFee,
			GovFee:      amounts.GovFee,
			VATAmount:   amounts.VATAmount,
			LineTotal:   amounts.LineTotal,
		})
	}

	var ticket *entity.Ticket
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		year := time.Now().Year()
		seq, err := s.seqRepo.Next(ctx, ticketSequenceScope(org.Code, branch.Code, year))
		if err != nil {
			return err
		}

		status := enum.TicketStatusPriced
		ticket = &entity.Ticket{
			OrganizationID: orgID,
			BranchID:       branch.ID,
			CustomerID:     input.CustomerID,
			Code:           fmt.Sprintf("ORG%d-BR%d-%d-%04d", org.Code, branch.Code, year, seq),
			Status:         status,
			CreatedByID:    input.ActorID,
			Items:          items,
			Logs: []entity.TicketLog{{
				ActorID:   input.ActorID,
				Action:    entity.TicketActionCreated,
				Note:      fmt.Sprintf("ticket created with %d line item(s)", len(items)),
				NewStatus: &status,
			}},
		}

		return s.ticketRepo.Create(ctx, ticket)
	})
	if err != nil {
		return nil, nil, err
	}

	full, err := s.ticketRepo.GetWithDetails(ctx, ticket.ID)
	if err != nil {
		return nil, nil, err
	}
	return full, skipped, nil
}

// ChangeStatus moves a ticket to newStatus. A status outside the
// enumerated set is rejected with no mutation; any enumerated status is
// reachable from any other, business-rule ordering is the caller's
// concern. Entering paid/submitted/completed stamps the matching milestone
// timestamp. The ticket update and its log entry commit atomically.
func (s *TicketService) ChangeStatus(ctx context.Context, ticketID uuid.UUID, newStatus enum.TicketStatus, actorID uuid.UUID, note string) error {
	if !newStatus.IsValid() {
		return apperror.ErrInvalidTicketStatus
	}

	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket == nil {
		return apperror.NewNotFoundError("Ticket")
	}

	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		oldStatus := ticket.Status
		now := time.Now()

		ticket.Status = newStatus
		ticket.UpdatedAt = now
		switch newStatus {
		case enum.TicketStatusPaid:
			ticket.PaidAt = &now
		case enum.TicketStatusSubmitted:
			ticket.SubmittedAt = &now
		case enum.TicketStatusCompleted:
			ticket.CompletedAt = &now
		}

		if err := s.ticketRepo.Save(ctx, ticket); err != nil {
			return err
		}

		return s.logRepo.Append(ctx, &entity.TicketLog{
			TicketID:  ticket.ID,
			ActorID:   actorID,
			Action:    entity.TicketActionStatusChanged,
			Note:      note,
			OldStatus: &oldStatus,
			NewStatus: &newStatus,
		})
	})
}

// InvoicePaid is the cross-aggregate cascade target: when an invoice
// becomes fully paid, the originating ticket follows it into "paid".
// Runs inside the payment's transaction.
func (s *TicketService) InvoicePaid(ctx context.Context, ticketID, actorID uuid.UUID) error {
	return s.ChangeStatus(ctx, ticketID, enum.TicketStatusPaid, actorID, "invoice settled in full")
}

// GetTicket retrieves a ticket with its items, logs, and invoice
func (s *TicketService) GetTicket(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	ticket, err := s.ticketRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Ticket")
	}
	return ticket, nil
}

// ListTickets lists tickets with filtering
func (s *TicketService) ListTickets(ctx context.Context, params *repository.TicketFilterParams) (*pagination.PaginatedResult[entity.Ticket], error) {
	tickets, total, err := s.ticketRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(tickets, pag), nil
}

// ListLogs returns a ticket's audit log in chronological order
func (s *TicketService) ListLogs(ctx context.Context, ticketID uuid.UUID) ([]entity.TicketLog, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Ticket")
	}
	return s.logRepo.ListByTicket(ctx, ticketID)
}
