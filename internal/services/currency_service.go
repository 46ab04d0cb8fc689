package services

import (
	"context"
	"fmt"

	"finbook/internal/models"
	"finbook/internal/store"
)

type CurrencyService struct {
	currencies CurrencyStore
}

func NewCurrencyService(currencies CurrencyStore) *CurrencyService {
	return &CurrencyService{currencies: currencies}
}

func (s *CurrencyService) List(ctx context.Context) ([]models.CurrencyDTO, error) {
	rows, err := s.currencies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch currencies: %w", err)
	}
	currencies := make([]models.CurrencyDTO, 0, len(rows))
	for _, row := range rows {
		currencies = append(currencies, currencyDTO(row))
	}
	return currencies, nil
}

func currencyDTO(row store.Currency) models.CurrencyDTO {
	return models.CurrencyDTO{
		ID:     row.ID,
		Code:   row.Code,
		Name:   row.Name,
		Symbol: row.Symbol,
		Active: row.Active,
	}
}
