package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"finbook/internal/apierr"
	"finbook/internal/db"
	"finbook/internal/models"
	"finbook/internal/store"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// balanceConcurrency bounds the per-account fallback fan-out.
const balanceConcurrency = 4

type AccountService struct {
	txRunner   db.TxRunner
	accounts   AccountStore
	currencies CurrencyStore
	audit      AuditStore
	logger     *logrus.Logger
}

func NewAccountService(txRunner db.TxRunner, accounts AccountStore, currencies CurrencyStore, audit AuditStore, logger *logrus.Logger) *AccountService {
	return &AccountService{
		txRunner:   txRunner,
		accounts:   accounts,
		currencies: currencies,
		audit:      audit,
		logger:     logger,
	}
}

var errAccountNotFound = apierr.New(http.StatusNotFound, apierr.CodeAccountNotFound, "Account not found or access denied")

func (s *AccountService) List(ctx context.Context, userID int, includeInactive bool) ([]models.AccountDTO, error) {
	rows, err := s.accounts.ListByUser(ctx, userID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch accounts: %w", err)
	}
	balances := s.balances(ctx, rows)
	accounts := make([]models.AccountDTO, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, accountDTO(row, balances[row.ID]))
	}
	return accounts, nil
}

func (s *AccountService) Get(ctx context.Context, userID, accountID int) (models.AccountDTO, error) {
	row, err := s.accounts.GetByID(ctx, userID, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AccountDTO{}, errAccountNotFound
		}
		return models.AccountDTO{}, fmt.Errorf("Failed to fetch account: %w", err)
	}
	balances := s.balances(ctx, []store.Account{row})
	return accountDTO(row, balances[row.ID]), nil
}

type CreateAccountCommand struct {
	Name       string
	CurrencyID int
}

func (s *AccountService) Create(ctx context.Context, userID int, cmd CreateAccountCommand) (models.AccountDTO, error) {
	if err := s.checkCurrency(ctx, cmd.CurrencyID); err != nil {
		return models.AccountDTO{}, err
	}
	id, err := s.accounts.Create(ctx, userID, cmd.Name, cmd.CurrencyID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.AccountDTO{}, apierr.New(http.StatusConflict, apierr.CodeDuplicateResource, "Account with this name already exists")
		}
		return models.AccountDTO{}, fmt.Errorf("Failed to create account: %w", err)
	}
	return s.Get(ctx, userID, id)
}

type UpdateAccountCommand struct {
	Name       *string
	CurrencyID *int
}

func (s *AccountService) Update(ctx context.Context, userID, accountID int, cmd UpdateAccountCommand) (models.AccountDTO, error) {
	if cmd.CurrencyID != nil {
		if err := s.checkCurrency(ctx, *cmd.CurrencyID); err != nil {
			return models.AccountDTO{}, err
		}
	}
	affected, err := s.accounts.Update(ctx, userID, accountID, cmd.Name, cmd.CurrencyID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.AccountDTO{}, apierr.New(http.StatusConflict, apierr.CodeDuplicateResource, "Account with this name already exists")
		}
		return models.AccountDTO{}, fmt.Errorf("Failed to update account: %w", err)
	}
	if affected == 0 {
		return models.AccountDTO{}, errAccountNotFound
	}
	return s.Get(ctx, userID, accountID)
}

// Deactivate soft-deletes the account and cascades to its transactions. Both
// writes run in one serializable transaction so a failure of the second
// write cannot leave deactivated transactions under an active account.
func (s *AccountService) Deactivate(ctx context.Context, userID, accountID int) error {
	if _, err := s.accounts.GetByID(ctx, userID, accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errAccountNotFound
		}
		return fmt.Errorf("Failed to verify account: %w", err)
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := s.accounts.DeactivateTransactions(ctx, tx, accountID); err != nil {
			return fmt.Errorf("Failed to delete account transactions: %w", err)
		}
		affected, err := s.accounts.Deactivate(ctx, tx, userID, accountID)
		if err != nil {
			return fmt.Errorf("Failed to delete account: %w", err)
		}
		if affected == 0 {
			return errAccountNotFound
		}
		return s.audit.Log(ctx, tx, userID, "account.deactivate", "account", accountID, "{}")
	})
	return err
}

func (s *AccountService) checkCurrency(ctx context.Context, currencyID int) error {
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

// balances computes derived balances for a set of accounts. The view path
// costs one round trip for any number of accounts; when it fails for any
// reason the per-account function path takes over with bounded concurrency.
// Neither path surfaces an error: an account whose balance cannot be
// computed reports zero.
func (s *AccountService) balances(ctx context.Context, accounts []store.Account) map[int]decimal.Decimal {
	balances := make(map[int]decimal.Decimal, len(accounts))
	for _, account := range accounts {
		balances[account.ID] = decimal.Zero
	}
	if len(accounts) == 0 {
		return balances
	}
	ids := make([]int, 0, len(accounts))
	for _, account := range accounts {
		ids = append(ids, account.ID)
	}
	components, err := s.accounts.BalanceComponents(ctx, ids)
	if err == nil {
		for _, component := range components {
			switch component.CategoryType {
			case "income":
				balances[component.AccountID] = balances[component.AccountID].Add(component.Amount)
			case "expense":
				balances[component.AccountID] = balances[component.AccountID].Sub(component.Amount)
			}
		}
		return balances
	}
	s.logger.WithError(err).Warn("balance view query failed, falling back to per-account calculation")

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(balanceConcurrency)
	for _, account := range accounts {
		account := account
		group.Go(func() error {
			balance, err := s.accounts.CalculateBalance(groupCtx, account.ID)
			if err != nil {
				balance = decimal.Zero
			}
			mu.Lock()
			balances[account.ID] = balance
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()
	return balances
}

func accountDTO(row store.Account, balance decimal.Decimal) models.AccountDTO {
	return models.AccountDTO{
		ID:           row.ID,
		Name:         row.Name,
		CurrencyID:   row.CurrencyID,
		CurrencyCode: row.CurrencyCode,
		Balance:      balance,
		Active:       row.Active,
		CreatedAt:    row.CreatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
