package handlers

import (
	"net/http"

	"finbook/internal/apierr"
	"finbook/internal/httpx"
	"finbook/internal/schema"
	"finbook/internal/services"
)

var listAccountsSchema = schema.NewObject(
	schema.Field{Name: "include_inactive", Coerce: schema.Bool()},
)

var createAccountSchema = schema.NewObject(
	schema.Field{Name: "name", Required: true, Coerce: schema.String(1, 100)},
	schema.Field{Name: "currency_id", Required: true, Coerce: schema.ID()},
)

var updateAccountSchema = schema.NewObject(
	schema.Field{Name: "name", Coerce: schema.String(1, 100)},
	schema.Field{Name: "currency_id", Coerce: schema.ID()},
)

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	values, details := listAccountsSchema.ValidateQuery(r.URL.Query())
	if len(details) > 0 {
		httpx.Error(w, r, apierr.Validation(details))
		return
	}
	accounts, err := h.accounts.List(r.Context(), userID, schema.BoolOr(values, "include_inactive", false))
	if err != nil {
		h.fail(w, r, apierr.ClassifyAccount, err)
		return
	}
	httpx.Data(w, r, http.StatusOK, accounts)
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	accountID, apiErr := idParam(r, "id")
	if apiErr != nil {
		httpx.Error(w, r, apiErr)
		return
	}
	account, err := h.accounts.Get(r.Context(), userID, accountID)
	if err != nil {
		h.fail(w, r, apierr.ClassifyAccount, err)
		return
	}
	httpx.Data(w, r, http.StatusOK, account)
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	body, apiErr := httpx.DecodeBody(r)
	if apiErr != nil {
		httpx.Error(w, r, apiErr)
		return
	}
	values, details := createAccountSchema.Validate(body)
	if len(details) > 0 {
		httpx.Error(w, r, apierr.Validation(details))
		return
	}
	name, _ := schema.GetString(values, "name")
	currencyID, _ := schema.GetInt(values, "currency_id")
	account, err := h.accounts.Create(r.Context(), userID, services.CreateAccountCommand{
		Name:       name,
		CurrencyID: currencyID,
	})
	if err != nil {
		h.fail(w, r, apierr.ClassifyAccount, err)
		return
	}
	httpx.Data(w, r, http.StatusCreated, account)
}

func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	accountID, apiErr := idParam(r, "id")
	if apiErr != nil {
		httpx.Error(w, r, apiErr)
		return
	}
	body, apiErr := httpx.DecodeBody(r)
	if apiErr != nil {
		httpx.Error(w, r, apiErr)
		return
	}
	values, details := updateAccountSchema.Validate(body)
	if len(details) > 0 {
		httpx.Error(w, r, apierr.Validation(details))
		return
	}
	account, err := h.accounts.Update(r.Context(), userID, accountID, services.UpdateAccountCommand{
		Name:       optString(values, "name"),
		CurrencyID: optInt(values, "currency_id"),
	})
	if err != nil {
		h.fail(w, r, apierr.ClassifyAccount, err)
		return
	}
	httpx.Data(w, r, http.StatusOK, account)
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	accountID, apiErr := idParam(r, "id")
	if apiErr != nil {
		httpx.Error(w, r, apiErr)
		return
	}
	if err := h.accounts.Deactivate(r.Context(), userID, accountID); err != nil {
		h.fail(w, r, apierr.ClassifyAccount, err)
		return
	}
	httpx.NoContent(w, r)
}
