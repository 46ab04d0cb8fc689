package handlers

import (
	"net/http"

	"finbook/internal/apierr"
	"finbook/internal/httpx"
	"finbook/internal/schema"
	"finbook/internal/services"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var listTransactionsSchema = schema.NewObject(
	schema.Field{Name: "account_id", Coerce: schema.ID()},
	schema.Field{Name: "category_id", Coerce: schema.ID()},
	schema.Field{Name: "start_date", Coerce: schema.DateTime()},
	schema.Field{Name: "end_date", Coerce: schema.DateTime()},
	schema.Field{Name: "search", Coerce: schema.String(0, 100)},
	schema.Field{Name: "sort", Coerce: schema.Enum(
		"transaction_date:asc", "transaction_date:desc", "amount:asc", "amount:desc",
	)},
	schema.Field{Name: "include_inactive", Coerce: schema.Bool()},
	schema.Field{Name: "page", Coerce: schema.Int(1, 1000000)},
	schema.Field{Name: "limit", Coerce: schema.Int(1, maxPageSize)},
)

var createTransactionSchema = schema.NewObject(
	schema.Field{Name: "account_id", Required: true, Coerce: schema.ID()},
	schema.Field{Name: "category_id", Required: true, Coerce: schema.ID()},
	schema.Field{Name: "currency_id", Required: true, Coerce: schema.ID()},
	schema.Field{Name: "amount", Required: true, Coerce: schema.Amount()},
	schema.Field{Name: "transaction_date", Required: true, Coerce: schema.DateTime()},
	schema.Field{Name: "description", Coerce: schema.String(0, 500)},
)

var updateTransactionSchema = schema.NewObject(
	schema.Field{Name: "account_id", Coerce: schema.ID()},
	schema.Field{Name: "category_id", Coerce: schema.ID()},
	schema.Field{Name: "currency_id", Coerce: schema.ID()},
	schema.Field{Name: "amount", Coerce: schema.Amount()},
	schema.Field{Name: "transaction_date", Coerce: schema.DateTime()},
	schema.Field{Name: "description", Coerce: schema.String(0, 500)},
)

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	values, details := listTransactionsSchema.ValidateQuery(r.URL.Query())
	if len(details) > 0 {
		httpx.Error(w, r, apierr.Validation(details))
		return
	}
	query := services.ListTransactionsQuery{
		AccountID:       optInt(values, "account_id"),
		CategoryID:      optInt(values, "category_id"),
		StartDate:       optTime(values, "start_date"),
		EndDate:         optTime(values, "end_date"),
		Search:          schema.StringOr(values, "search", ""),
		Sort:            schema.StringOr(values, "sort", ""),
		IncludeInactive: schema.BoolOr(values, "include_inactive", false),
		Page:            schema.IntOr(values, "page", 1),
		Limit:           schema.IntOr(values, "limit", defaultPageSize),
	}
	transactions, page, err := h.transactions.List(r.Context(), userID, query)
	if err != nil {
		h.fail(w, r, apierr.Classify, err)
		return
	}
	httpx.Collection(w, r, http.StatusOK, transactions, httpx.Pagination{
		TotalItems:  page.TotalItems,
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
		PerPage:     page.PerPage,
	})
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	transactionID, apiErr := idParam(r, "id")
	if apiErr != nil {
		httpx.Error(w, r, apiErr)
		return
	}
	transaction, err := h.transactions.Get(r.Context(), userID, transactionID)
	if err != nil {
		h.fail(w, r, apierr.Classify, err)
		return
	}
	httpx.Data(w, r, http.StatusOK, transaction)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	body, apiErr := httpx.DecodeBody(r)
	if apiErr != nil {
		httpx.Error(w, r, apiErr)
		return
	}
	values, details := createTransactionSchema.Validate(body)
	if len(details) > 0 {
		httpx.Error(w, r, apierr.Validation(details))
		return
	}
	accountID, _ := schema.GetInt(values, "account_id")
	categoryID, _ := schema.GetInt(values, "category_id")
	currencyID, _ := schema.GetInt(values, "currency_id")
	amount, _ := schema.GetAmount(values, "amount")
	transactionDate, _ := schema.GetTime(values, "transaction_date")
	transaction, err := h.transactions.Create(r.Context(), userID, services.CreateTransactionCommand{
		AccountID:       accountID,
		CategoryID:      categoryID,
		CurrencyID:      currencyID,
		Amount:          amount,
		TransactionDate: transactionDate,
		Description:     schema.StringOr(values, "description", ""),
	})
	if err != nil {
		h.fail(w, r, apierr.Classify, err)
		return
	}
	httpx.Data(w, r, http.StatusCreated, transaction)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	transactionID, apiErr := idParam(r, "id")
	if apiErr != nil {
		httpx.Error(w, r, apiErr)
		return
	}
	body, apiErr := httpx.DecodeBody(r)
	if apiErr != nil {
		httpx.Error(w, r, apiErr)
		return
	}
	values, details := updateTransactionSchema.Validate(body)
	if len(details) > 0 {
		httpx.Error(w, r, apierr.Validation(details))
		return
	}
	transaction, err := h.transactions.Update(r.Context(), userID, transactionID, services.UpdateTransactionCommand{
		AccountID:       optInt(values, "account_id"),
		CategoryID:      optInt(values, "category_id"),
		CurrencyID:      optInt(values, "currency_id"),
		Amount:          optAmount(values, "amount"),
		TransactionDate: optTime(values, "transaction_date"),
		Description:     optString(values, "description"),
	})
	if err != nil {
		h.fail(w, r, apierr.Classify, err)
		return
	}
	httpx.Data(w, r, http.StatusOK, transaction)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	transactionID, apiErr := idParam(r, "id")
	if apiErr != nil {
		httpx.Error(w, r, apiErr)
		return
	}
	if err := h.transactions.Deactivate(r.Context(), userID, transactionID); err != nil {
		h.fail(w, r, apierr.Classify, err)
		return
	}
	httpx.NoContent(w, r)
}
