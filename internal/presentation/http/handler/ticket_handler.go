package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sanadops/sanad-api/internal/application/pricing"
	"github.com/sanadops/sanad-api/internal/application/service"
	"github.com/sanadops/sanad-api/internal/domain/enum"
	"github.com/sanadops/sanad-api/internal/domain/repository"
	"github.com/sanadops/sanad-api/internal/presentation/http/dto/request"
	"github.com/sanadops/sanad-api/internal/presentation/http/dto/response"
	"github.com/sanadops/sanad-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// TicketHandler handles ticket workflow HTTP requests
type TicketHandler struct {
	ticketService *service.TicketService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService *service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// Create handles creating a ticket with priced line items
func (h *TicketHandler) Create(c *gin.Context) {
	actorID := GetActorID(c)
	if actorID == nil {
		response.Unauthorized(c, "Actor not authenticated")
		return
	}

	var req request.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	lines := make([]service.TicketLineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		line := service.TicketLineInput{
			ServiceID: l.ServiceID,
			Quantity:  l.Quantity,
		}
		if len(l.Params) > 0 {
			line.Params = make(pricing.CalcParams, len(l.Params))
			for k, v := range l.Params {
				val, err := decimal.NewFromString(v)
				if err != nil {
					response.BadRequest(c, "Invalid numeric parameter: "+k)
					return
				}
				line.Params[k] = val
			}
		}
		lines = append(lines, line)
	}

	input := &service.CreateTicketInput{
		BranchID:   req.BranchID,
		CustomerID: req.CustomerID,
		ActorID:    *actorID,
		Lines:      lines,
	}

	ticket, skipped, err := h.ticketService.CreateTicket(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.CreatedWithSkips(c, "Ticket created successfully", ticket, skipped)
}

// Get handles retrieving a ticket with line items, logs, and invoice
func (h *TicketHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	ticket, err := h.ticketService.GetTicket(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket retrieved successfully", ticket)
}

// List handles listing tickets with filters
func (h *TicketHandler) List(c *gin.Context) {
	var req request.TicketFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return
	}

	params := &repository.TicketFilterParams{
		Pagination: &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage},
		Search:     req.Search,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	}
	params.Pagination.Validate()

	if req.Status != "" {
		status, err := enum.ParseTicketStatus(req.Status)
		if err != nil {
			response.BadRequest(c, "Invalid ticket status filter")
			return
		}
		params.Status = &status
	}
	if req.BranchID != "" {
		branchID, err := uuid.Parse(req.BranchID)
		if err != nil {
			response.BadRequest(c, "Invalid branch ID filter")
			return
		}
		params.BranchID = &branchID
	}
	if req.CustomerID != "" {
		customerID, err := uuid.Parse(req.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID filter")
			return
		}
		params.CustomerID = &customerID
	}
	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			response.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			response.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
			return
		}
		end = end.Add(24*time.Hour - time.Nanosecond)
		params.EndDate = &end
	}

	result, err := h.ticketService.ListTickets(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Tickets retrieved successfully", result)
}

// ChangeStatus handles a ticket status transition
func (h *TicketHandler) ChangeStatus(c *gin.Context) {
	actorID := GetActorID(c)
	if actorID == nil {
		response.Unauthorized(c, "Actor not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	var req request.ChangeTicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	status := enum.TicketStatus(req.Status)
	if err := h.ticketService.ChangeStatus(c.Request.Context(), id, status, *actorID, req.Note); err != nil {
		response.Error(c, err)
		return
	}

	ticket, err := h.ticketService.GetTicket(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket status updated successfully", ticket)
}

// ListLogs handles retrieving a ticket's audit log
func (h *TicketHandler) ListLogs(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	logs, err := h.ticketService.ListLogs(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket logs retrieved successfully", logs)
}
