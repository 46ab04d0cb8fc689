package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"finbook/internal/apierr"
	"finbook/internal/models"
	"finbook/internal/store"
	"finbook/internal/websocket"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type TransactionService struct {
	transactions TransactionStore
	accounts     AccountStore
	categories   CategoryStore
	currencies   CurrencyStore
	hub          BalanceHub
	logger       *logrus.Logger
}

func NewTransactionService(transactions TransactionStore, accounts AccountStore, categories CategoryStore, currencies CurrencyStore, hub BalanceHub, logger *logrus.Logger) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		accounts:     accounts,
		categories:   categories,
		currencies:   currencies,
		hub:          hub,
		logger:       logger,
	}
}

var errTransactionNotFound = apierr.New(http.StatusNotFound, apierr.CodeTransactionNotFound, "Transaction not found or access denied")

// ListTransactionsQuery is the validated filter set for GET /transactions.
type ListTransactionsQuery struct {
	AccountID       *int
	CategoryID      *int
	StartDate       *time.Time
	EndDate         *time.Time
	Search          string
	Sort            string
	IncludeInactive bool
	Page            int
	Limit           int
}

func (s *TransactionService) List(ctx context.Context, userID int, query ListTransactionsQuery) ([]models.TransactionDTO, Page, error) {
	if query.StartDate != nil && query.EndDate != nil && query.StartDate.After(*query.EndDate) {
		return nil, Page{}, apierr.New(http.StatusBadRequest, apierr.CodeInvalidDateRange, "Invalid date range: start date must be before end date")
	}
	filter := store.TransactionFilter{
		AccountID:       query.AccountID,
		CategoryID:      query.CategoryID,
		StartDate:       query.StartDate,
		EndDate:         query.EndDate,
		Search:          query.Search,
		Sort:            query.Sort,
		IncludeInactive: query.IncludeInactive,
		Limit:           query.Limit,
		Offset:          (query.Page - 1) * query.Limit,
	}
	total, err := s.transactions.CountByUser(ctx, userID, filter)
	if err != nil {
		return nil, Page{}, fmt.Errorf("Failed to fetch transactions: %w", err)
	}
	totalPages := (total + query.Limit - 1) / query.Limit
	if total > 0 && query.Page > totalPages {
		return nil, Page{}, apierr.New(http.StatusNotFound, apierr.CodePageNotFound, fmt.Sprintf("Page %d does not exist", query.Page))
	}
	rows, err := s.transactions.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, Page{}, fmt.Errorf("Failed to fetch transactions: %w", err)
	}
	transactions := make([]models.TransactionDTO, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, transactionDTO(row))
	}
	page := Page{
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: query.Page,
		PerPage:     query.Limit,
	}
	return transactions, page, nil
}

func (s *TransactionService) Get(ctx context.Context, userID, transactionID int) (models.TransactionDTO, error) {
	row, err := s.transactions.GetByID(ctx, userID, transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TransactionDTO{}, errTransactionNotFound
		}
		return models.TransactionDTO{}, fmt.Errorf("Failed to fetch transaction: %w", err)
	}
	return transactionDTO(row), nil
}

type CreateTransactionCommand struct {
	AccountID       int
	CategoryID      int
	CurrencyID      int
	Amount          decimal.Decimal
	TransactionDate time.Time
	Description     string
}

func (s *TransactionService) Create(ctx context.Context, userID int, cmd CreateTransactionCommand) (models.TransactionDTO, error) {
	account, err := s.verifyAccount(ctx, userID, cmd.AccountID)
	if err != nil {
		return models.TransactionDTO{}, err
	}
	if err := s.verifyCategory(ctx, userID, cmd.CategoryID); err != nil {
		return models.TransactionDTO{}, err
	}
	if err := s.verifyCurrency(ctx, cmd.CurrencyID); err != nil {
		return models.TransactionDTO{}, err
	}
	id, err := s.transactions.Create(ctx, store.TransactionInput{
		UserID:          userID,
		AccountID:       cmd.AccountID,
		CategoryID:      cmd.CategoryID,
		CurrencyID:      cmd.CurrencyID,
		Amount:          cmd.Amount,
		TransactionDate: cmd.TransactionDate,
		Description:     cmd.Description,
	})
	if err != nil {
		return models.TransactionDTO{}, fmt.Errorf("Failed to create transaction: %w", err)
	}
	s.broadcastBalance(ctx, userID, account.ID, account.CurrencyCode)
	return s.Get(ctx, userID, id)
}

type UpdateTransactionCommand struct {
	AccountID       *int
	CategoryID      *int
	CurrencyID      *int
	Amount          *decimal.Decimal
	TransactionDate *time.Time
	Description     *string
}

func (s *TransactionService) Update(ctx context.Context, userID, transactionID int, cmd UpdateTransactionCommand) (models.TransactionDTO, error) {
	existing, err := s.Get(ctx, userID, transactionID)
	if err != nil {
		return models.TransactionDTO{}, err
	}
	accountID := existing.AccountID
	if cmd.AccountID != nil {
		accountID = *cmd.AccountID
	}
	account, err := s.verifyAccount(ctx, userID, accountID)
	if err != nil {
		return models.TransactionDTO{}, err
	}
	if cmd.CategoryID != nil {
		if err := s.verifyCategory(ctx, userID, *cmd.CategoryID); err != nil {
			return models.TransactionDTO{}, err
		}
	}
	if cmd.CurrencyID != nil {
		if err := s.verifyCurrency(ctx, *cmd.CurrencyID); err != nil {
			return models.TransactionDTO{}, err
		}
	}
	affected, err := s.transactions.Update(ctx, userID, transactionID, store.TransactionUpdate{
		AccountID:       cmd.AccountID,
		CategoryID:      cmd.CategoryID,
		CurrencyID:      cmd.CurrencyID,
		Amount:          cmd.Amount,
		TransactionDate: cmd.TransactionDate,
		Description:     cmd.Description,
	})
	if err != nil {
		return models.TransactionDTO{}, fmt.Errorf("Failed to update transaction: %w", err)
	}
	if affected == 0 {
		return models.TransactionDTO{}, errTransactionNotFound
	}
	s.broadcastBalance(ctx, userID, account.ID, account.CurrencyCode)
	return s.Get(ctx, userID, transactionID)
}

func (s *TransactionService) Deactivate(ctx context.Context, userID, transactionID int) error {
	existing, err := s.Get(ctx, userID, transactionID)
	if err != nil {
		return err
	}
	affected, err := s.transactions.Deactivate(ctx, userID, transactionID)
	if err != nil {
		return fmt.Errorf("Failed to delete transaction: %w", err)
	}
	if affected == 0 {
		return errTransactionNotFound
	}
	if account, err := s.accounts.GetByID(ctx, userID, existing.AccountID); err == nil {
		s.broadcastBalance(ctx, userID, account.ID, account.CurrencyCode)
	}
	return nil
}

func (s *TransactionService) verifyAccount(ctx context.Context, userID, accountID int) (store.Account, error) {
	account, err := s.accounts.GetByID(ctx, userID, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Account{}, apierr.New(http.StatusBadRequest, apierr.CodeInvalidReference, "Referenced account no longer exists")
		}
		return store.Account{}, fmt.Errorf("Failed to verify account: %w", err)
	}
	if !account.Active {
		return store.Account{}, apierr.New(http.StatusBadRequest, apierr.CodeInvalidReference, "Referenced account no longer exists")
	}
	return account, nil
}

func (s *TransactionService) verifyCategory(ctx context.Context, userID, categoryID int) error {
	category, err := s.categories.GetByID(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apierr.New(http.StatusBadRequest, apierr.CodeInvalidReference, "Referenced category no longer exists")
		}
		return fmt.Errorf("Failed to verify category: %w", err)
	}
	if !category.Active {
		return apierr.New(http.StatusBadRequest, apierr.CodeInvalidReference, "Referenced category no longer exists")
	}
	return nil
}

func (s *TransactionService) verifyCurrency(ctx context.Context, currencyID int) error {
	currency, err := s.currencies.GetByID(ctx, currencyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apierr.New(http.StatusBadRequest, apierr.CodeInvalidReference, "Referenced currency no longer exists")
		}
		return fmt.Errorf("Failed to verify currency: %w", err)
	}
	if !currency.Active {
		return apierr.New(http.StatusBadRequest, apierr.CodeInvalidReference, "Referenced currency no longer exists")
	}
	return nil
}

// broadcastBalance pushes the account's recomputed balance to the owner's
// websocket connections. Failures only cost the push, never the mutation.
func (s *TransactionService) broadcastBalance(ctx context.Context, userID, accountID int, currencyCode string) {
	balance, err := s.accounts.CalculateBalance(ctx, accountID)
	if err != nil {
		s.logger.WithError(err).WithField("account_id", accountID).Debug("balance broadcast skipped")
		return
	}
	s.hub.BroadcastBalance(userID, websocket.BalanceUpdate{
		AccountID: accountID,
		Balance:   balance.String(),
		Currency:  currencyCode,
	})
}

func transactionDTO(row store.Transaction) models.TransactionDTO {
	return models.TransactionDTO{
		ID:              row.ID,
		AccountID:       row.AccountID,
		CategoryID:      row.CategoryID,
		CurrencyID:      row.CurrencyID,
		Amount:          row.Amount,
		TransactionDate: row.TransactionDate,
		Description:     row.Description,
		Active:          row.Active,
		CreatedAt:       row.CreatedAt,
	}
}
