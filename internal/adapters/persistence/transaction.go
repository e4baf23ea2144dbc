package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

type txKey struct{}

// WithTx returns a context carrying tx so repositories join the transaction
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// dbFrom returns the transaction in ctx, or db when there is none
func dbFrom(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// TransactionMiddleware runs each dispatch inside a database transaction.
// The transaction commits when the handler succeeds and rolls back on any
// error. A dispatch nested in an existing transaction joins it.
func TransactionMiddleware(db *gorm.DB) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
			return next(ctx, request)
		}

		var response mediator.Response
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			response, err = next(WithTx(ctx, tx), request)
			return err
		})
		if err != nil {
			return nil, err
		}
		return response, nil
	}
}
