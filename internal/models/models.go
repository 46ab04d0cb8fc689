// Package models holds the read-model projections returned by the API.
// DTOs are hydrated per request from store rows and never mutated after
// construction. Deletion is soft everywhere: rows carry an active flag.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CurrencyDTO struct {
	ID     int    `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Active bool   `json:"active"`
}

type AccountDTO struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	CurrencyID   int             `json:"currency_id"`
	CurrencyCode string          `json:"currency_code"`
	Balance      decimal.Decimal `json:"balance"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
}

type CategoryDTO struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	ParentID  *int      `json:"parent_id,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type TransactionDTO struct {
	ID              int             `json:"id"`
	AccountID       int             `json:"account_id"`
	CategoryID      int             `json:"category_id"`
	CurrencyID      int             `json:"currency_id"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transaction_date"`
	Description     string          `json:"description,omitempty"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
}

type UserDTO struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
