package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sanadops/sanad-api/internal/domain/entity"
	"github.com/sanadops/sanad-api/internal/domain/enum"
	"github.com/sanadops/sanad-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
}

// InvoiceRepository defines the interface for invoice data operations.
// Create persists the invoice together with its snapshot items as one unit.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByTicketID(ctx context.Context, ticketID uuid.UUID) (*entity.Invoice, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Save(ctx context.Context, invoice *entity.Invoice) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
}

// PaymentRepository defines the interface for payment data operations.
// Payments are append-only; there are no update or delete methods.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error)
	SumByInvoice(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error)
}
