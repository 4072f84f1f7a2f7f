package repository

import (
	"context"

	domainRepo "github.com/sanadops/sanad-api/internal/domain/repository"
	"gorm.io/gorm"
)

type txKey struct{}

// WithTx stores a running transaction in the context. Repository methods
// called with that context join the transaction instead of the base pool.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// conn resolves the database handle for a context: the enclosing
// transaction when one is present, the base connection otherwise.
func conn(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return base.WithContext(ctx)
}

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager over the shared connection
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

// Transaction runs fn inside a single database transaction; fn's context
// carries the transaction for repositories to pick up. Any error rolls the
// whole unit back. A call made while a transaction is already on the
// context joins it instead of opening a second one, so cascading
// operations commit as one unit.
func (m *txManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}
