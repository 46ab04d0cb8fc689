package handlers

import (
	"context"

	"finbook/internal/models"
	"finbook/internal/services"
)

type AuthService interface {
	Login(ctx context.Context, email, password string, loginCtx services.LoginContext) (string, models.UserDTO, error)
}

type AccountService interface {
	List(ctx context.Context, userID int, includeInactive bool) ([]models.AccountDTO, error)
	Get(ctx context.Context, userID, accountID int) (models.AccountDTO, error)
	Create(ctx context.Context, userID int, cmd services.CreateAccountCommand) (models.AccountDTO, error)
	Update(ctx context.Context, userID, accountID int, cmd services.UpdateAccountCommand) (models.AccountDTO, error)
	Deactivate(ctx context.Context, userID, accountID int) error
}

type CategoryService interface {
	List(ctx context.Context, userID int, includeInactive bool) ([]models.CategoryDTO, error)
	Get(ctx context.Context, userID, categoryID int) (models.CategoryDTO, error)
	Create(ctx context.Context, userID int, cmd services.CreateCategoryCommand) (models.CategoryDTO, error)
	Update(ctx context.Context, userID, categoryID int, cmd services.UpdateCategoryCommand) (models.CategoryDTO, error)
	Deactivate(ctx context.Context, userID, categoryID int) error
}

type TransactionService interface {
	List(ctx context.Context, userID int, query services.ListTransactionsQuery) ([]models.TransactionDTO, services.Page, error)
	Get(ctx context.Context, userID, transactionID int) (models.TransactionDTO, error)
	Create(ctx context.Context, userID int, cmd services.CreateTransactionCommand) (models.TransactionDTO, error)
	Update(ctx context.Context, userID, transactionID int, cmd services.UpdateTransactionCommand) (models.TransactionDTO, error)
	Deactivate(ctx context.Context, userID, transactionID int) error
}

type CurrencyService interface {
	List(ctx context.Context) ([]models.CurrencyDTO, error)
}
