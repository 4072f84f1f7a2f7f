package repository

import "context"

// TxManager runs fn inside one database transaction. Repository calls made
// with the context passed to fn join that transaction, so a multi-write
// operation commits or rolls back as a whole.
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
