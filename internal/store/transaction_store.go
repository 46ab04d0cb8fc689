package store

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStore struct {
	db DB
}

type Transaction struct {
	ID              int             `db:"id"`
	UserID          int             `db:"user_id"`
	AccountID       int             `db:"account_id"`
	CategoryID      int             `db:"category_id"`
	CurrencyID      int             `db:"currency_id"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionDate time.Time       `db:"transaction_date"`
	Description     string          `db:"description"`
	Active          bool            `db:"active"`
	CreatedAt       time.Time       `db:"created_at"`
}

type TransactionInput struct {
	UserID          int
	AccountID       int
	CategoryID      int
	CurrencyID      int
	Amount          decimal.Decimal
	TransactionDate time.Time
	Description     string
}

// TransactionFilter narrows List/Count results. Sort must be one of the
// validated sort enum values; it is mapped to SQL through a fixed table,
// never interpolated from user input.
type TransactionFilter struct {
	AccountID       *int
	CategoryID      *int
	StartDate       *time.Time
	EndDate         *time.Time
	Search          string
	Sort            string
	IncludeInactive bool
	Limit           int
	Offset          int
}

var sortColumns = map[string]string{
	"transaction_date:asc":  "t.transaction_date ASC",
	"transaction_date:desc": "t.transaction_date DESC",
	"amount:asc":            "t.amount ASC",
	"amount:desc":           "t.amount DESC",
}

func NewTransactionStore(db DB) *TransactionStore {
	return &TransactionStore{db: db}
}

func (s *TransactionStore) ListByUser(ctx context.Context, userID int, filter TransactionFilter) ([]Transaction, error) {
	query, args := buildFilter(`
		SELECT t.id, t.user_id, t.account_id, t.category_id, t.currency_id,
		       t.amount, t.transaction_date, t.description, t.active, t.created_at
		FROM transactions t
	`, userID, filter)
	order, ok := sortColumns[filter.Sort]
	if !ok {
		order = sortColumns["transaction_date:desc"]
	}
	query += " ORDER BY " + order
	query += " LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	var rows []Transaction
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *TransactionStore) CountByUser(ctx context.Context, userID int, filter TransactionFilter) (int, error) {
	query, args := buildFilter(`SELECT COUNT(*) FROM transactions t`, userID, filter)
	var count int
	err := s.db.GetContext(ctx, &count, query, args...)
	return count, err
}

func buildFilter(base string, userID int, filter TransactionFilter) (string, []any) {
	query := base + " WHERE t.user_id = $1"
	args := []any{userID}
	next := func() string {
		return "$" + strconv.Itoa(len(args)+1)
	}
	if !filter.IncludeInactive {
		query += " AND t.active = TRUE"
	}
	if filter.AccountID != nil {
		query += " AND t.account_id = " + next()
		args = append(args, *filter.AccountID)
	}
	if filter.CategoryID != nil {
		query += " AND t.category_id = " + next()
		args = append(args, *filter.CategoryID)
	}
	if filter.StartDate != nil {
		query += " AND t.transaction_date >= " + next()
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += " AND t.transaction_date <= " + next()
		args = append(args, *filter.EndDate)
	}
	if filter.Search != "" {
		query += " AND t.description ILIKE " + next()
		args = append(args, "%"+filter.Search+"%")
	}
	return query, args
}

func (s *TransactionStore) GetByID(ctx context.Context, userID, transactionID int) (Transaction, error) {
	var row Transaction
	err := s.db.GetContext(ctx, &row, `
		SELECT id, user_id, account_id, category_id, currency_id,
		       amount, transaction_date, description, active, created_at
		FROM transactions
		WHERE id = $1 AND user_id = $2
	`, transactionID, userID)
	if err != nil {
		return Transaction{}, err
	}
	return row, nil
}

func (s *TransactionStore) Create(ctx context.Context, input TransactionInput) (int, error) {
	var id int
	err := s.db.GetContext(ctx, &id, `
		INSERT INTO transactions (user_id, account_id, category_id, currency_id, amount, transaction_date, description, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		RETURNING id
	`, input.UserID, input.AccountID, input.CategoryID, input.CurrencyID,
		input.Amount, input.TransactionDate, input.Description)
	return id, err
}

func (s *TransactionStore) Update(ctx context.Context, userID, transactionID int, input TransactionUpdate) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET account_id = COALESCE($1, account_id),
		    category_id = COALESCE($2, category_id),
		    currency_id = COALESCE($3, currency_id),
		    amount = COALESCE($4, amount),
		    transaction_date = COALESCE($5, transaction_date),
		    description = COALESCE($6, description)
		WHERE id = $7 AND user_id = $8 AND active = TRUE
	`, input.AccountID, input.CategoryID, input.CurrencyID, input.Amount,
		input.TransactionDate, input.Description, transactionID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type TransactionUpdate struct {
	AccountID       *int
	CategoryID      *int
	CurrencyID      *int
	Amount          *decimal.Decimal
	TransactionDate *time.Time
	Description     *string
}

func (s *TransactionStore) Deactivate(ctx context.Context, userID, transactionID int) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET active = FALSE
		WHERE id = $1 AND user_id = $2 AND active = TRUE
	`, transactionID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
