package entity

import "time"

// SequenceCounter holds the last allocated number for one numbering scope
// (ticket codes per org/branch/year, invoice numbers per org/year). Numbers
// are allocated with an atomic upsert-increment, never a row count, so
// concurrent allocators in the same scope cannot collide.
type SequenceCounter struct {
	Scope      string    `gorm:"size:120;primaryKey" json:"scope"`
	LastNumber int64     `gorm:"not null;default:0" json:"last_number"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the table name for the SequenceCounter model
func (SequenceCounter) TableName() string {
	return "sequence_counters"
}
