package request

import "github.com/google/uuid"

// TicketLineRequest represents one requested service line on a ticket
type TicketLineRequest struct {
	ServiceID uuid.UUID          `json:"service_id" binding:"required"`
	Quantity  int                `json:"quantity" binding:"required,min=1"`
	Params    map[string]string  `json:"params"`
}

// CreateTicketRequest represents a ticket creation request
type CreateTicketRequest struct {
	BranchID   uuid.UUID           `json:"branch_id" binding:"required"`
	CustomerID *uuid.UUID          `json:"customer_id"`
	Lines      []TicketLineRequest `json:"lines" binding:"dive"`
}

// ChangeTicketStatusRequest represents a ticket status transition request
type ChangeTicketStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note" binding:"max=2000"`
}

// TicketFilterRequest represents ticket filter parameters
type TicketFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	BranchID   string `form:"branch_id"`
	CustomerID string `form:"customer_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
