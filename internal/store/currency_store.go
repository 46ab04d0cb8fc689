package store

import "context"

type CurrencyStore struct {
	db DB
}

type Currency struct {
	ID     int    `db:"id"`
	Code   string `db:"code"`
	Name   string `db:"name"`
	Symbol string `db:"symbol"`
	Active bool   `db:"active"`
}

func NewCurrencyStore(db DB) *CurrencyStore {
	return &CurrencyStore{db: db}
}

func (s *CurrencyStore) List(ctx context.Context) ([]Currency, error) {
	var rows []Currency
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, code, name, symbol, active
		FROM currencies
		WHERE active = TRUE
		ORDER BY code
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *CurrencyStore) GetByID(ctx context.Context, currencyID int) (Currency, error) {
	var row Currency
	err := s.db.GetContext(ctx, &row, `
		SELECT id, code, name, symbol, active
		FROM currencies
		WHERE id = $1
	`, currencyID)
	if err != nil {
		return Currency{}, err
	}
	return row, nil
}
