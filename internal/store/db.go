package store

import (
	"context"
	"database/sql"
)

// The stores depend on these narrow slices of *sqlx.DB / *sqlx.Tx so that
// tests can stub each call shape independently.

type Getter interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

type Selecter interface {
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// DB is what a store needs outside a transaction.
type DB interface {
	Getter
	Selecter
	Execer
}

// Tx is the subset available inside WithTx callbacks.
type Tx interface {
	Getter
	Execer
}
