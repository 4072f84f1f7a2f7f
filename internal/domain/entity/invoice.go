package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sanadops/sanad-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is derived once from a ticket's line items. Items are a
// point-in-time snapshot; later ticket mutation never changes an invoice.
type Invoice struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"organization_id"`
	TicketID           uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"ticket_id"`
	Number             string             `gorm:"size:100;uniqueIndex;not null" json:"number"`
	SubtotalOfficeFees decimal.Decimal    `gorm:"type:decimal(18,3);not null" json:"subtotal_office_fees"`
	TotalGovFees       decimal.Decimal    `gorm:"type:decimal(18,3);not null" json:"total_gov_fees"`
	VATAmount          decimal.Decimal    `gorm:"type:decimal(18,3);not null" json:"vat_amount"`
	GrandTotal         decimal.Decimal    `gorm:"type:decimal(18,3);not null" json:"grand_total"`
	Status             enum.InvoiceStatus `gorm:"size:20;not null;default:'issued';index" json:"status"`
	CreatedByID        uuid.UUID          `gorm:"type:uuid;not null" json:"created_by_id"`
	PaidAt             *time.Time         `json:"paid_at,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`

	// Relationships
	Ticket   Ticket        `gorm:"foreignKey:TicketID" json:"-"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	Payments []Payment     `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is a frozen copy of a ticket line item at invoicing time.
// Position carries over the ticket line order the snapshot was taken in.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ServiceID   uuid.UUID       `gorm:"type:uuid;not null" json:"service_id"`
	Description string          `gorm:"size:200;not null" json:"description"`
	Position    int             `gorm:"not null" json:"position"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	OfficeFee   decimal.Decimal `gorm:"type:decimal(18,3);not null" json:"office_fee"`
	GovFee      decimal.Decimal `gorm:"type:decimal(18,3);not null" json:"gov_fee"`
	VATAmount   decimal.Decimal `gorm:"type:decimal(18,3);not null" json:"vat_amount"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,3);not null" json:"line_total"`
	CreatedAt   time.Time       `json:"created_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (ii *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if ii.ID == uuid.Nil {
		ii.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// Payment is one collection event against an invoice. Payments are never
// mutated or deleted; corrections are recorded as new payments.
type Payment struct {
	ID           uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Amount       decimal.Decimal    `gorm:"type:decimal(18,3);not null" json:"amount"`
	Method       enum.PaymentMethod `gorm:"size:20;not null" json:"method"`
	Reference    string             `gorm:"size:200" json:"reference"`
	RecordedByID uuid.UUID          `gorm:"type:uuid;not null" json:"recorded_by_id"`
	Note         string             `gorm:"type:text" json:"note"`
	CreatedAt    time.Time          `json:"created_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
