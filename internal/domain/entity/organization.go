package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Organization represents a firm operating its own back office (the tenant)
type Organization struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Code      int       `gorm:"uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	NameAr    string    `gorm:"size:200" json:"name_ar"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Branches []Branch `gorm:"foreignKey:OrganizationID" json:"branches,omitempty"`
}

// BeforeCreate generates a UUID before creating a new organization
func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Organization model
func (Organization) TableName() string {
	return "organizations"
}

// Branch represents an office location within an organization
type Branch struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_branch_org_code" json:"organization_id"`
	Code           int       `gorm:"not null;uniqueIndex:idx_branch_org_code" json:"code"`
	Name           string    `gorm:"size:200;not null" json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new branch
func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Branch model
func (Branch) TableName() string {
	return "branches"
}
