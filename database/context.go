package database

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// WithTx returns a context carrying tx. Repositories pick it up through Conn.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// Conn prefers a transaction stored in ctx (see middlewares.Tx), else the shared handle.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if v := ctx.Value(txKey{}); v != nil {
		if tx, ok := v.(*gorm.DB); ok && tx != nil {
			return tx.WithContext(ctx)
		}
	}
	return db.WithContext(ctx)
}

// ReadOnly runs fn in a transaction that is always rolled back, so every query
// inside it sees one snapshot. It joins an enclosing transaction when there is one.
func ReadOnly(ctx context.Context, db *gorm.DB, fn func(ctx context.Context) error) error {
	if v := ctx.Value(txKey{}); v != nil {
		return fn(ctx)
	}
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()
	return fn(WithTx(ctx, tx))
}
