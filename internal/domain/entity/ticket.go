package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sanadops/sanad-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ticket represents one customer request for government services. It owns an
// ordered set of priced line items, an append-only log, and at most one
// derived invoice.
type Ticket struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID uuid.UUID         `gorm:"type:uuid;not null;index" json:"organization_id"`
	BranchID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"branch_id"`
	CustomerID     *uuid.UUID        `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Code           string            `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Status         enum.TicketStatus `gorm:"size:30;not null;default:'new';index" json:"status"`
	CreatedByID    uuid.UUID         `gorm:"type:uuid;not null" json:"created_by_id"`
	PaidAt         *time.Time        `json:"paid_at,omitempty"`
	SubmittedAt    *time.Time        `json:"submitted_at,omitempty"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Organization Organization     `gorm:"foreignKey:OrganizationID" json:"-"`
	Branch       Branch           `gorm:"foreignKey:BranchID" json:"-"`
	Customer     *Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items        []TicketLineItem `gorm:"foreignKey:TicketID" json:"items,omitempty"`
	Logs         []TicketLog      `gorm:"foreignKey:TicketID" json:"logs,omitempty"`
	Invoice      *Invoice         `gorm:"foreignKey:TicketID" json:"invoice,omitempty"`
}

// BeforeCreate generates a UUID before creating a new ticket
func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Ticket model
func (Ticket) TableName() string {
	return "tickets"
}

// TicketLineItem is one priced (service, quantity) entry within a ticket.
// Fixed once priced; recalculation is not supported. Position preserves the
// order lines were submitted in: rows created in one batch share a
// created_at, so time alone cannot order them.
type TicketLineItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TicketID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"ticket_id"`
	ServiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"service_id"`
	ServiceCode string          `gorm:"size:100;not null" json:"service_code"`
	Description string          `gorm:"size:200;not null" json:"description"`
	Position    int             `gorm:"not null" json:"position"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	OfficeFee   decimal.Decimal `gorm:"type:decimal(18,3);not null" json:"office_fee"`
	GovFee      decimal.Decimal `gorm:"type:decimal(18,3);not null" json:"gov_fee"`
	VATAmount   decimal.Decimal `gorm:"type:decimal(18,3);not null" json:"vat_amount"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,3);not null" json:"line_total"`
	CreatedAt   time.Time       `json:"created_at"`

	// Relationships
	Ticket  Ticket  `gorm:"foreignKey:TicketID" json:"-"`
	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// BeforeCreate generates a UUID before creating a new line item
func (li *TicketLineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TicketLineItem model
func (TicketLineItem) TableName() string {
	return "ticket_line_items"
}

// TicketLog is an immutable audit record of a ticket action. Entries are
// append-only; nothing in the codebase updates or deletes them.
type TicketLog struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TicketID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"ticket_id"`
	ActorID   uuid.UUID          `gorm:"type:uuid;not null" json:"actor_id"`
	Action    string             `gorm:"size:50;not null" json:"action"`
	Note      string             `gorm:"type:text" json:"note"`
	OldStatus *enum.TicketStatus `gorm:"size:30" json:"old_status,omitempty"`
	NewStatus *enum.TicketStatus `gorm:"size:30" json:"new_status,omitempty"`
	CreatedAt time.Time          `json:"created_at"`

	// Relationships
	Ticket Ticket `gorm:"foreignKey:TicketID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new log entry
func (l *TicketLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TicketLog model
func (TicketLog) TableName() string {
	return "ticket_logs"
}

// Log action tags
const (
	TicketActionCreated       = "created"
	TicketActionStatusChanged = "status_changed"
)
