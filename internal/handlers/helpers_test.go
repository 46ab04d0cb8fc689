package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finbook/internal/auth"
	"finbook/internal/config"
	"finbook/internal/models"
	"finbook/internal/services"
	"finbook/internal/websocket"

	"github.com/sirupsen/logrus"
)

const testSecret = "handler-test-secret"

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string, loginCtx services.LoginContext) (string, models.UserDTO, error)
}

func (s stubAuthService) Login(ctx context.Context, email, password string, loginCtx services.LoginContext) (string, models.UserDTO, error) {
	return s.loginFn(ctx, email, password, loginCtx)
}

type stubAccountService struct {
	listFn       func(ctx context.Context, userID int, includeInactive bool) ([]models.AccountDTO, error)
	getFn        func(ctx context.Context, userID, accountID int) (models.AccountDTO, error)
	createFn     func(ctx context.Context, userID int, cmd services.CreateAccountCommand) (models.AccountDTO, error)
	updateFn     func(ctx context.Context, userID, accountID int, cmd services.UpdateAccountCommand) (models.AccountDTO, error)
	deactivateFn func(ctx context.Context, userID, accountID int) error
}

func (s stubAccountService) List(ctx context.Context, userID int, includeInactive bool) ([]models.AccountDTO, error) {
	return s.listFn(ctx, userID, includeInactive)
}

func (s stubAccountService) Get(ctx context.Context, userID, accountID int) (models.AccountDTO, error) {
	return s.getFn(ctx, userID, accountID)
}

func (s stubAccountService) Create(ctx context.Context, userID int, cmd services.CreateAccountCommand) (models.AccountDTO, error) {
	return s.createFn(ctx, userID, cmd)
}

func (s stubAccountService) Update(ctx context.Context, userID, accountID int, cmd services.UpdateAccountCommand) (models.AccountDTO, error) {
	return s.updateFn(ctx, userID, accountID, cmd)
}

func (s stubAccountService) Deactivate(ctx context.Context, userID, accountID int) error {
	return s.deactivateFn(ctx, userID, accountID)
}

type stubCategoryService struct {
	listFn       func(ctx context.Context, userID int, includeInactive bool) ([]models.CategoryDTO, error)
	getFn        func(ctx context.Context, userID, categoryID int) (models.CategoryDTO, error)
	createFn     func(ctx context.Context, userID int, cmd services.CreateCategoryCommand) (models.CategoryDTO, error)
	updateFn     func(ctx context.Context, userID, categoryID int, cmd services.UpdateCategoryCommand) (models.CategoryDTO, error)
	deactivateFn func(ctx context.Context, userID, categoryID int) error
}

func (s stubCategoryService) List(ctx context.Context, userID int, includeInactive bool) ([]models.CategoryDTO, error) {
	return s.listFn(ctx, userID, includeInactive)
}

func (s stubCategoryService) Get(ctx context.Context, userID, categoryID int) (models.CategoryDTO, error) {
	return s.getFn(ctx, userID, categoryID)
}

func (s stubCategoryService) Create(ctx context.Context, userID int, cmd services.CreateCategoryCommand) (models.CategoryDTO, error) {
	return s.createFn(ctx, userID, cmd)
}

func (s stubCategoryService) Update(ctx context.Context, userID, categoryID int, cmd services.UpdateCategoryCommand) (models.CategoryDTO, error) {
	return s.updateFn(ctx, userID, categoryID, cmd)
}

func (s stubCategoryService) Deactivate(ctx context.Context, userID, categoryID int) error {
	return s.deactivateFn(ctx, userID, categoryID)
}

type stubTransactionService struct {
	listFn       func(ctx context.Context, userID int, query services.ListTransactionsQuery) ([]models.TransactionDTO, services.Page, error)
	getFn        func(ctx context.Context, userID, transactionID int) (models.TransactionDTO, error)
	createFn     func(ctx context.Context, userID int, cmd services.CreateTransactionCommand) (models.TransactionDTO, error)
	updateFn     func(ctx context.Context, userID, transactionID int, cmd services.UpdateTransactionCommand) (models.TransactionDTO, error)
	deactivateFn func(ctx context.Context, userID, transactionID int) error
}

func (s stubTransactionService) List(ctx context.Context, userID int, query services.ListTransactionsQuery) ([]models.TransactionDTO, services.Page, error) {
	return s.listFn(ctx, userID, query)
}

func (s stubTransactionService) Get(ctx context.Context, userID, transactionID int) (models.TransactionDTO, error) {
	return s.getFn(ctx, userID, transactionID)
}

func (s stubTransactionService) Create(ctx context.Context, userID int, cmd services.CreateTransactionCommand) (models.TransactionDTO, error) {
	return s.createFn(ctx, userID, cmd)
}

func (s stubTransactionService) Update(ctx context.Context, userID, transactionID int, cmd services.UpdateTransactionCommand) (models.TransactionDTO, error) {
	return s.updateFn(ctx, userID, transactionID, cmd)
}

func (s stubTransactionService) Deactivate(ctx context.Context, userID, transactionID int) error {
	return s.deactivateFn(ctx, userID, transactionID)
}

type stubCurrencyService struct {
	listFn func(ctx context.Context) ([]models.CurrencyDTO, error)
}

func (s stubCurrencyService) List(ctx context.Context) ([]models.CurrencyDTO, error) {
	return s.listFn(ctx)
}

type handlerStubs struct {
	auth         stubAuthService
	accounts     stubAccountService
	categories   stubCategoryService
	transactions stubTransactionService
	currencies   stubCurrencyService
}

func newTestHandler(stubs handlerStubs) *Handler {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := config.Config{
		JWTSecret:      testSecret,
		AllowedOrigins: "*",
		TokenTTL:       time.Hour,
	}
	return New(cfg, logger, stubs.auth, stubs.accounts, stubs.categories, stubs.transactions, stubs.currencies, websocket.NewHub())
}

func bearerToken(t *testing.T, userID int) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, userID, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}

// errorEnvelope mirrors the wire shape of {"error": {...}} responses.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var envelope errorEnvelope
	if err := json.NewDecoder(rr.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return envelope
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)
	return rr
}
