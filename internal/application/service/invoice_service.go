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
	"github.com/sanadops/sanad-api/pkg/apperror"
	"github.com/sanadops/sanad-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// PaymentCompletedHandler receives the cross-aggregate cascade when an
// invoice becomes fully paid. Wired to the ticket workflow at startup so
// the two aggregates stay independently testable.
type PaymentCompletedHandler interface {
	InvoicePaid(ctx context.Context, ticketID, actorID uuid.UUID) error
}

// InvoiceService derives invoices from tickets and accumulates payments
// against them.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	ticketRepo  repository.TicketRepository
	orgRepo     repository.OrganizationRepository
	seqRepo     repository.SequenceRepository
	tx          repository.TxManager
	engine      *pricing.Engine
	onPaid      PaymentCompletedHandler
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	ticketRepo repository.TicketRepository,
	orgRepo repository.OrganizationRepository,
	seqRepo repository.SequenceRepository,
	tx repository.TxManager,
	engine *pricing.Engine,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		ticketRepo:  ticketRepo,
		orgRepo:     orgRepo,
		seqRepo:     seqRepo,
		tx:          tx,
		engine:      engine,
	}
}

// SetPaymentCompletedHandler wires the fully-paid cascade target
func (s *InvoiceService) SetPaymentCompletedHandler(h PaymentCompletedHandler) {
	s.onPaid = h
}

// invoiceSequenceScope names the counter shared by all invoices of one
// org/year
func invoiceSequenceScope(orgCode, year int) string {
	return fmt.Sprintf("invoice:ORG%d:%d", orgCode, year)
}

// CreateInvoiceFromTicket derives an invoice from the ticket's line items.
// Idempotent: a ticket invoices at most once, and repeat calls return the
// existing invoice unchanged. Items are copied as a point-in-time snapshot;
// invoice and items commit atomically.
func (s *InvoiceService) CreateInvoiceFromTicket(ctx context.Context, ticketID, actorID uuid.UUID) (*entity.Invoice, error) {
	existing, err := s.invoiceRepo.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// The ticket_id lookup is unscoped so the creation race below can
		// be detected across callers; the detail read is org-scoped, so a
		// foreign ticket's invoice resolves to not-found here.
		detailed, err := s.invoiceRepo.GetWithDetails(ctx, existing.ID)
		if err != nil {
			return nil, err
		}
		if detailed == nil {
			return nil, apperror.NewNotFoundError("Ticket")
		}
		return detailed, nil
	}

	ticket, err := s.ticketRepo.GetWithDetails(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Ticket")
	}
	if len(ticket.Items) == 0 {
		return nil, apperror.ErrTicketNotPriced
	}

	org, err := s.orgRepo.GetByID(ctx, ticket.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, apperror.NewNotFoundError("Organization")
	}

	amounts := make([]pricing.LineAmounts, len(ticket.Items))
	items := make([]entity.InvoiceItem, len(ticket.Items))
	for i, li := range ticket.Items {
		amounts[i] = pricing.LineAmounts{
			OfficeFee: li.OfficeFee,
			GovFee:    li.GovFee,
			VATAmount: li.VATAmount,
			LineTotal: li.LineTotal,
		}
		items[i] = entity.InvoiceItem{
			ServiceID:   li.ServiceID,
			Description: li.Description,
			Position:    li.Position,
			Quantity:    li.Quantity,
			OfficeFee:   li.OfficeFee,
			GovFee:      li.GovFee,
			VATAmount:   li.VATAmount,
			LineTotal:   li.LineTotal,
		}
	}
	totals := s.engine.ComputeInvoiceTotals(amounts)

	var invoice *entity.Invoice
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		year := time.Now().Year()
		seq, err := s.seqRepo.Next(ctx, invoiceSequenceScope(org.Code, year))
		if err != nil {
			return err
		}

		invoice = &entity.Invoice{
			OrganizationID:     ticket.OrganizationID,
			TicketID:           ticket.ID,
			Number:             fmt.Sprintf("INV-%d-%05d", year, seq),
			SubtotalOfficeFees: totals.SubtotalOfficeFees,
			TotalGovFees:       totals.TotalGovFees,
			VATAmount:          totals.VATAmount,
			GrandTotal:         totals.GrandTotal,
			Status:             enum.InvoiceStatusIssued,
			CreatedByID:        actorID,
			Items:              items,
		}
		return s.invoiceRepo.Create(ctx, invoice)
	})
	if err != nil {
		// A concurrent caller may have won the unique ticket_id constraint;
		// fall back to the invoice it created.
		if racing, lookupErr := s.invoiceRepo.GetByTicketID(ctx, ticketID); lookupErr == nil && racing != nil {
			if detailed, lookupErr := s.invoiceRepo.GetWithDetails(ctx, racing.ID); lookupErr == nil && detailed != nil {
				return detailed, nil
			}
		}
		return nil, err
	}

	return s.invoiceRepo.GetWithDetails(ctx, invoice.ID)
}

// RecordPaymentInput represents the record payment input
type RecordPaymentInput struct {
	Amount    decimal.Decimal
	Method    enum.PaymentMethod
	ActorID   uuid.UUID
	Reference string
	Note      string
}

// RecordPayment appends a payment to an invoice. When cumulative payments
// reach the grand total the invoice flips to "paid" and the originating
// ticket is cascaded to "paid" through the registered handler. Payment,
// invoice, and cascaded ticket mutation commit as one transaction.
// Overpayment is accepted; partial payments leave the invoice "issued".
func (s *InvoiceService) RecordPayment(ctx context.Context, invoiceID uuid.UUID, input *RecordPaymentInput) (*entity.Payment, error) {
	if !input.Method.IsValid() {
		return nil, apperror.ErrInvalidPayment
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	payment := &entity.Payment{
		InvoiceID:    invoice.ID,
		Amount:       input.Amount.Round(pricing.Scale),
		Method:       input.Method,
		Reference:    input.Reference,
		RecordedByID: input.ActorID,
		Note:         input.Note,
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		totalPaid, err := s.paymentRepo.SumByInvoice(ctx, invoice.ID)
		if err != nil {
			return err
		}

		if totalPaid.LessThan(invoice.GrandTotal) || invoice.Status == enum.InvoiceStatusPaid {
			return nil
		}

		now := time.Now()
		invoice.Status = enum.InvoiceStatusPaid
		invoice.PaidAt = &now
		if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
			return err
		}

		if s.onPaid != nil {
			return s.onPaid.InvoicePaid(ctx, invoice.TicketID, input.ActorID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// GetInvoice retrieves an invoice with its items and payments
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// ListPayments returns an invoice's payments in chronological order
func (s *InvoiceService) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return s.paymentRepo.ListByInvoice(ctx, invoiceID)
}
