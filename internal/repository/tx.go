package repository

import (
	"context"

	"gorm.io/gorm"

	"fsanano/go-orders/internal/sqlerr"
)

type txKey struct{}

// Transactor runs functions inside a database transaction. Repositories
// called with the context handed to fn use that transaction.
type Transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// RunAtomic commits when fn returns nil and rolls back otherwise.
func (t *Transactor) RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
	return sqlerr.HandleError(err)
}

// executor returns the transaction stored in ctx, or db.
func executor(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
