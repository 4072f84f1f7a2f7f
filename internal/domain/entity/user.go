package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a staff member acting on tickets and payments. Identity
// and authorization are validated upstream; this record only anchors audit
// references.
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	FirstName      string         `gorm:"size:255;not null" json:"first_name"`
	LastName       string         `gorm:"size:255" json:"last_name"`
	Email          string         `gorm:"size:255;unique;not null" json:"email"`
	JobTitle       *string        `gorm:"size:100" json:"job_title,omitempty"`
	Active         bool           `gorm:"default:true" json:"active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	Tickets      []Ticket     `gorm:"foreignKey:CreatedByID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
