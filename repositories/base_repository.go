package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is the repository-level translation of gorm.ErrRecordNotFound.
var ErrNotFound = errors.New("record not found")

// txKey carries a transaction handle through a context.
type txKey struct{}

// ContextWithTx returns a context whose repositories operate inside tx.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// dbFromContext resolves the effective DB handle: an explicit transaction in
// the context wins over the repository's own connection.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return fallback.WithContext(ctx)
}

// orderClause maps a requested sort column through an allowlist, falling back
// to the given default. Direction is assumed pre-validated by queryparams.
func orderClause(allowed map[string]string, sortBy, orderBy, fallback string) string {
	column := fallback
	if dbCol, ok := allowed[sortBy]; ok {
		column = dbCol
	}
	return column + " " + orderBy
}
