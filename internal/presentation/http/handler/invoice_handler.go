package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sanadops/sanad-api/internal/application/service"
	"github.com/sanadops/sanad-api/internal/domain/enum"
	"github.com/sanadops/sanad-api/internal/domain/repository"
	"github.com/sanadops/sanad-api/internal/presentation/http/dto/request"
	"github.com/sanadops/sanad-api/internal/presentation/http/dto/response"
	"github.com/sanadops/sanad-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// InvoiceHandler handles invoice and payment HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// CreateForTicket handles creating the invoice for a ticket. Repeated calls
// return the existing invoice rather than creating a second one.
func (h *InvoiceHandler) CreateForTicket(c *gin.Context) {
	actorID := GetActorID(c)
	if actorID == nil {
		response.Unauthorized(c, "Actor not authenticated")
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	invoice, err := h.invoiceService.CreateInvoiceFromTicket(c.Request.Context(), ticketID, *actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles retrieving an invoice with items and payments
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// List handles listing invoices with filters
func (h *InvoiceHandler) List(c *gin.Context) {
	var req request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return
	}

	params := &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage},
		Search:     req.Search,
	}
	params.Pagination.Validate()

	if req.Status != "" {
		status := enum.InvoiceStatus(req.Status)
		if !status.IsValid() {
			response.BadRequest(c, "Invalid invoice status filter")
			return
		}
		params.Status = &status
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// RecordPayment handles appending a payment to an invoice
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	actorID := GetActorID(c)
	if actorID == nil {
		response.Unauthorized(c, "Actor not authenticated")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.BadRequest(c, "Invalid payment amount")
		return
	}

	input := &service.RecordPaymentInput{
		Amount:    amount,
		Method:    enum.PaymentMethod(req.Method),
		ActorID:   *actorID,
		Reference: req.Reference,
		Note:      req.Note,
	}

	payment, err := h.invoiceService.RecordPayment(c.Request.Context(), invoiceID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// ListPayments handles retrieving an invoice's payments
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	payments, err := h.invoiceService.ListPayments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}
