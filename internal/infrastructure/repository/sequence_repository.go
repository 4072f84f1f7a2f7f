package repository

import (
	"context"
	"fmt"

	domainRepo "github.com/sanadops/sanad-api/internal/domain/repository"
	"gorm.io/gorm"
)

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next allocates the next number for a scope with a single atomic
// upsert-increment. The counter row is the serialization point: concurrent
// allocators in the same scope are ordered by the database, so a
// count-rows-and-add-one race cannot occur. Runs inside the caller's
// transaction when one is on the context.
func (r *sequenceRepository) Next(ctx context.Context, scope string) (int64, error) {
	db := conn(ctx, r.db)

	var query string
	switch db.Dialector.Name() {
	case "postgres":
		query = `INSERT INTO sequence_counters (scope, last_number, created_at, updated_at)
			VALUES (?, 1, NOW(), NOW())
			ON CONFLICT (scope) DO UPDATE
			SET last_number = sequence_counters.last_number + 1, updated_at = NOW()
			RETURNING last_number`
	default:
		// sqlite: unqualified column names in DO UPDATE refer to the existing row
		query = `INSERT INTO sequence_counters (scope, last_number, created_at, updated_at)
			VALUES (?, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			ON CONFLICT (scope) DO UPDATE
			SET last_number = last_number + 1, updated_at = CURRENT_TIMESTAMP
			RETURNING last_number`
	}

	var next int64
	if err := db.Raw(query, scope).Scan(&next).Error; err != nil {
		return 0, fmt.Errorf("allocate sequence %q: %w", scope, err)
	}
	return next, nil
}
