package handlers

import (
	"net/http"

	"finbook/internal/apierr"
	"finbook/internal/httpx"
)

// ListCurrencies is public and cacheable: the currency table changes by
// migration, not by user action.
func (h *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.currencies.List(r.Context())
	if err != nil {
		h.fail(w, r, apierr.Classify, err)
		return
	}
	httpx.DataCached(w, r, http.StatusOK, currencies)
}
