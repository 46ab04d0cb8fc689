package services

import (
	"context"

	"finbook/internal/store"
	"finbook/internal/websocket"

	"github.com/shopspring/decimal"
)

// Store dependencies are narrowed to what each service actually calls so
// tests can stub them with function-field fakes.

type AccountStore interface {
	ListByUser(ctx context.Context, userID int, includeInactive bool) ([]store.Account, error)
	GetByID(ctx context.Context, userID, accountID int) (store.Account, error)
	Create(ctx context.Context, userID int, name string, currencyID int) (int, error)
	Update(ctx context.Context, userID, accountID int, name *string, currencyID *int) (int64, error)
	Deactivate(ctx context.Context, tx store.Execer, userID, accountID int) (int64, error)
	DeactivateTransactions(ctx context.Context, tx store.Execer, accountID int) (int64, error)
	BalanceComponents(ctx context.Context, accountIDs []int) ([]store.BalanceComponent, error)
	CalculateBalance(ctx context.Context, accountID int) (decimal.Decimal, error)
}

type CategoryStore interface {
	ListByUser(ctx context.Context, userID int, includeInactive bool) ([]store.Category, error)
	GetByID(ctx context.Context, userID, categoryID int) (store.Category, error)
	Create(ctx context.Context, userID int, name, categoryType string, parentID *int) (int, error)
	Update(ctx context.Context, userID, categoryID int, name *string) (int64, error)
	Deactivate(ctx context.Context, userID, categoryID int) (int64, error)
	Depth(ctx context.Context, userID, categoryID int) (int, error)
	CountActiveTransactions(ctx context.Context, categoryID int) (int, error)
}

type TransactionStore interface {
	ListByUser(ctx context.Context, userID int, filter store.TransactionFilter) ([]store.Transaction, error)
	CountByUser(ctx context.Context, userID int, filter store.TransactionFilter) (int, error)
	GetByID(ctx context.Context, userID, transactionID int) (store.Transaction, error)
	Create(ctx context.Context, input store.TransactionInput) (int, error)
	Update(ctx context.Context, userID, transactionID int, input store.TransactionUpdate) (int64, error)
	Deactivate(ctx context.Context, userID, transactionID int) (int64, error)
}

type CurrencyStore interface {
	List(ctx context.Context) ([]store.Currency, error)
	GetByID(ctx context.Context, currencyID int) (store.Currency, error)
}

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (store.User, error)
}

type AuditStore interface {
	Log(ctx context.Context, tx store.Execer, actorID int, action, entityType string, entityID int, data string) error
}

type BalanceHub interface {
	BroadcastBalance(userID int, update websocket.BalanceUpdate)
}

// Page is the pagination metadata computed by list operations.
type Page struct {
	TotalItems  int
	TotalPages  int
	CurrentPage int
	PerPage     int
}
