package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sanadops/sanad-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GovernmentEntity represents a government body that services are filed with
type GovernmentEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Code      string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	NameAr    string    `gorm:"size:200" json:"name_ar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Services []Service `gorm:"foreignKey:GovernmentEntityID" json:"services,omitempty"`
}

// BeforeCreate generates a UUID before creating a new government entity
func (g *GovernmentEntity) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the GovernmentEntity model
func (GovernmentEntity) TableName() string {
	return "government_entities"
}

// Service represents a priced government service in the catalog.
// The workflow treats a service as immutable once a ticket line references
// it; fee changes only affect lines priced afterwards.
type Service struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	GovernmentEntityID uuid.UUID       `gorm:"type:uuid;not null;index" json:"government_entity_id"`
	Code               string          `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Name               string          `gorm:"size:200;not null" json:"name"`
	NameAr             string          `gorm:"size:200" json:"name_ar"`
	BaseOfficeFee      decimal.Decimal `gorm:"type:decimal(18,3);not null" json:"base_office_fee"`
	GovFeeType         enum.GovFeeType `gorm:"size:20;not null;default:'fixed'" json:"gov_fee_type"`
	GovFeeValue        decimal.Decimal `gorm:"type:decimal(18,3);not null" json:"gov_fee_value"`
	VATApplicable      bool            `gorm:"default:true" json:"vat_applicable"`
	TurnaroundDays     int             `gorm:"default:1" json:"turnaround_days"`
	Active             bool            `gorm:"default:true" json:"active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`

	// Relationships
	GovernmentEntity GovernmentEntity `gorm:"foreignKey:GovernmentEntityID" json:"government_entity,omitempty"`
}

// BeforeCreate generates a UUID before creating a new service
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Service model
func (Service) TableName() string {
	return "services"
}
