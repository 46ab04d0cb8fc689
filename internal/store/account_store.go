package store

import (
	"context"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type AccountStore struct {
	db DB
}

type Account struct {
	ID           int       `db:"id"`
	UserID       int       `db:"user_id"`
	Name         string    `db:"name"`
	CurrencyID   int       `db:"currency_id"`
	CurrencyCode string    `db:"currency_code"`
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
}

// BalanceComponent is one transaction's contribution to an account balance,
// as produced by the view-path query.
type BalanceComponent struct {
	AccountID    int             `db:"account_id"`
	CategoryType string          `db:"category_type"`
	Amount       decimal.Decimal `db:"amount"`
}

func NewAccountStore(db DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) ListByUser(ctx context.Context, userID int, includeInactive bool) ([]Account, error) {
	query := `
		SELECT a.id, a.user_id, a.name, a.currency_id, c.code AS currency_code, a.active, a.created_at
		FROM accounts a
		JOIN currencies c ON c.id = a.currency_id
		WHERE a.user_id = $1
	`
	if !includeInactive {
		query += " AND a.active = TRUE"
	}
	query += " ORDER BY a.name"
	var rows []Account
	if err := s.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *AccountStore) GetByID(ctx context.Context, userID, accountID int) (Account, error) {
	var row Account
	err := s.db.GetContext(ctx, &row, `
		SELECT a.id, a.user_id, a.name, a.currency_id, c.code AS currency_code, a.active, a.created_at
		FROM accounts a
		JOIN currencies c ON c.id = a.currency_id
		WHERE a.id = $1 AND a.user_id = $2
	`, accountID, userID)
	if err != nil {
		return Account{}, err
	}
	return row, nil
}

func (s *AccountStore) Create(ctx context.Context, userID int, name string, currencyID int) (int, error) {
	var id int
	err := s.db.GetContext(ctx, &id, `
		INSERT INTO accounts (user_id, name, currency_id, active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id
	`, userID, name, currencyID)
	return id, err
}

func (s *AccountStore) Update(ctx context.Context, userID, accountID int, name *string, currencyID *int) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET name = COALESCE($1, name),
		    currency_id = COALESCE($2, currency_id),
		    updated_at = NOW()
		WHERE id = $3 AND user_id = $4 AND active = TRUE
	`, name, currencyID, accountID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Deactivate soft-deletes the account row. The transaction cascade runs in
// the same database transaction; see AccountService.Deactivate.
func (s *AccountStore) Deactivate(ctx context.Context, tx Execer, userID, accountID int) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND active = TRUE
	`, accountID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *AccountStore) DeactivateTransactions(ctx context.Context, tx Execer, accountID int) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE transactions
		SET active = FALSE
		WHERE account_id = $1 AND active = TRUE
	`, accountID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// BalanceComponents is the view path: one round trip fetches every active
// transaction for the given accounts joined with its active category.
// Transactions whose category join is missing simply do not appear and
// contribute zero.
func (s *AccountStore) BalanceComponents(ctx context.Context, accountIDs []int) ([]BalanceComponent, error) {
	var rows []BalanceComponent
	err := s.db.SelectContext(ctx, &rows, `
		SELECT t.account_id, c.type AS category_type, t.amount
		FROM transactions t
		JOIN categories c ON c.id = t.category_id AND c.active = TRUE
		WHERE t.account_id = ANY($1) AND t.active = TRUE
	`, pq.Array(accountIDs))
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CalculateBalance is the function path: one round trip per account against
// the calculate_account_balance stored procedure.
func (s *AccountStore) CalculateBalance(ctx context.Context, accountID int) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.db.GetContext(ctx, &balance, `SELECT calculate_account_balance($1)`, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
