package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"finbook/internal/models"
)

func TestListCurrenciesIsPublicAndCached(t *testing.T) {
	handler := newTestHandler(handlerStubs{
		currencies: stubCurrencyService{
			listFn: func(ctx context.Context) ([]models.CurrencyDTO, error) {
				return []models.CurrencyDTO{
					{ID: 1, Code: "USD", Name: "US Dollar", Symbol: "$", Active: true},
					{ID: 2, Code: "EUR", Name: "Euro", Symbol: "€", Active: true},
				}, nil
			},
		},
	})

	// no Authorization header: the endpoint is public
	req := httptest.NewRequest(http.MethodGet, "/api/currencies", nil)
	rr := serve(handler, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("Cache-Control"); got != "public, max-age=300" {
		t.Fatalf("Cache-Control = %q, want public, max-age=300", got)
	}
	var envelope struct {
		Data []models.CurrencyDTO `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data) != 2 || envelope.Data[0].Code != "USD" {
		t.Fatalf("unexpected data: %+v", envelope.Data)
	}
}
