package repository

import "context"

// SequenceRepository allocates gapless-enough sequential numbers per scope.
// Next must be atomic under concurrent callers: two allocations in the same
// scope can never return the same number.
type SequenceRepository interface {
	Next(ctx context.Context, scope string) (int64, error)
}
