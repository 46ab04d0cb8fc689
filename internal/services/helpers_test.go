package services

import (
	"context"
	"io"

	"finbook/internal/store"
	"finbook/internal/websocket"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeTxRunner runs the callback inline; stores are stubbed so the nil
// transaction handle is never dereferenced.
type fakeTxRunner struct {
	calls int
	err   error
}

func (r *fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	return fn(nil)
}

type stubAccounts struct {
	listFn          func(ctx context.Context, userID int, includeInactive bool) ([]store.Account, error)
	getFn           func(ctx context.Context, userID, accountID int) (store.Account, error)
	createFn        func(ctx context.Context, userID int, name string, currencyID int) (int, error)
	updateFn        func(ctx context.Context, userID, accountID int, name *string, currencyID *int) (int64, error)
	deactivateFn    func(ctx context.Context, tx store.Execer, userID, accountID int) (int64, error)
	deactivateTxnFn func(ctx context.Context, tx store.Execer, accountID int) (int64, error)
	componentsFn    func(ctx context.Context, accountIDs []int) ([]store.BalanceComponent, error)
	calculateFn     func(ctx context.Context, accountID int) (decimal.Decimal, error)
}

func (s *stubAccounts) ListByUser(ctx context.Context, userID int, includeInactive bool) ([]store.Account, error) {
	return s.listFn(ctx, userID, includeInactive)
}

func (s *stubAccounts) GetByID(ctx context.Context, userID, accountID int) (store.Account, error) {
	return s.getFn(ctx, userID, accountID)
}

func (s *stubAccounts) Create(ctx context.Context, userID int, name string, currencyID int) (int, error) {
	return s.createFn(ctx, userID, name, currencyID)
}

func (s *stubAccounts) Update(ctx context.Context, userID, accountID int, name *string, currencyID *int) (int64, error) {
	return s.updateFn(ctx, userID, accountID, name, currencyID)
}

func (s *stubAccounts) Deactivate(ctx context.Context, tx store.Execer, userID, accountID int) (int64, error) {
	return s.deactivateFn(ctx, tx, userID, accountID)
}

func (s *stubAccounts) DeactivateTransactions(ctx context.Context, tx store.Execer, accountID int) (int64, error) {
	return s.deactivateTxnFn(ctx, tx, accountID)
}

func (s *stubAccounts) BalanceComponents(ctx context.Context, accountIDs []int) ([]store.BalanceComponent, error) {
	return s.componentsFn(ctx, accountIDs)
}

func (s *stubAccounts) CalculateBalance(ctx context.Context, accountID int) (decimal.Decimal, error) {
	return s.calculateFn(ctx, accountID)
}

type stubCategories struct {
	listFn       func(ctx context.Context, userID int, includeInactive bool) ([]store.Category, error)
	getFn        func(ctx context.Context, userID, categoryID int) (store.Category, error)
	createFn     func(ctx context.Context, userID int, name, categoryType string, parentID *int) (int, error)
	updateFn     func(ctx context.Context, userID, categoryID int, name *string) (int64, error)
	deactivateFn func(ctx context.Context, userID, categoryID int) (int64, error)
	depthFn      func(ctx context.Context, userID, categoryID int) (int, error)
	countTxnFn   func(ctx context.Context, categoryID int) (int, error)
}

func (s *stubCategories) ListByUser(ctx context.Context, userID int, includeInactive bool) ([]store.Category, error) {
	return s.listFn(ctx, userID, includeInactive)
}

func (s *stubCategories) GetByID(ctx context.Context, userID, categoryID int) (store.Category, error) {
	return s.getFn(ctx, userID, categoryID)
}

func (s *stubCategories) Create(ctx context.Context, userID int, name, categoryType string, parentID *int) (int, error) {
	return s.createFn(ctx, userID, name, categoryType, parentID)
}

func (s *stubCategories) Update(ctx context.Context, userID, categoryID int, name *string) (int64, error) {
	return s.updateFn(ctx, userID, categoryID, name)
}

func (s *stubCategories) Deactivate(ctx context.Context, userID, categoryID int) (int64, error) {
	return s.deactivateFn(ctx, userID, categoryID)
}

func (s *stubCategories) Depth(ctx context.Context, userID, categoryID int) (int, error) {
	return s.depthFn(ctx, userID, categoryID)
}

func (s *stubCategories) CountActiveTransactions(ctx context.Context, categoryID int) (int, error) {
	return s.countTxnFn(ctx, categoryID)
}

type stubTransactions struct {
	listFn       func(ctx context.Context, userID int, filter store.TransactionFilter) ([]store.Transaction, error)
	countFn      func(ctx context.Context, userID int, filter store.TransactionFilter) (int, error)
	getFn        func(ctx context.Context, userID, transactionID int) (store.Transaction, error)
	createFn     func(ctx context.Context, input store.TransactionInput) (int, error)
	updateFn     func(ctx context.Context, userID, transactionID int, input store.TransactionUpdate) (int64, error)
	deactivateFn func(ctx context.Context, userID, transactionID int) (int64, error)
}

func (s *stubTransactions) ListByUser(ctx context.Context, userID int, filter store.TransactionFilter) ([]store.Transaction, error) {
	return s.listFn(ctx, userID, filter)
}

func (s *stubTransactions) CountByUser(ctx context.Context, userID int, filter store.TransactionFilter) (int, error) {
	return s.countFn(ctx, userID, filter)
}

func (s *stubTransactions) GetByID(ctx context.Context, userID, transactionID int) (store.Transaction, error) {
	return s.getFn(ctx, userID, transactionID)
}

func (s *stubTransactions) Create(ctx context.Context, input store.TransactionInput) (int, error) {
	return s.createFn(ctx, input)
}

func (s *stubTransactions) Update(ctx context.Context, userID, transactionID int, input store.TransactionUpdate) (int64, error) {
	return s.updateFn(ctx, userID, transactionID, input)
}

func (s *stubTransactions) Deactivate(ctx context.Context, userID, transactionID int) (int64, error) {
	return s.deactivateFn(ctx, userID, transactionID)
}

type stubCurrencies struct {
	listFn func(ctx context.Context) ([]store.Currency, error)
	getFn  func(ctx context.Context, currencyID int) (store.Currency, error)
}

func (s *stubCurrencies) List(ctx context.Context) ([]store.Currency, error) {
	return s.listFn(ctx)
}

func (s *stubCurrencies) GetByID(ctx context.Context, currencyID int) (store.Currency, error) {
	return s.getFn(ctx, currencyID)
}

type stubUsers struct {
	getByEmailFn func(ctx context.Context, email string) (store.User, error)
}

func (s *stubUsers) GetByEmail(ctx context.Context, email string) (store.User, error) {
	return s.getByEmailFn(ctx, email)
}

type auditEntry struct {
	actorID    int
	action     string
	entityType string
	entityID   int
	data       string
}

type stubAudit struct {
	entries []auditEntry
	err     error
}

func (s *stubAudit) Log(ctx context.Context, tx store.Execer, actorID int, action, entityType string, entityID int, data string) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, auditEntry{actorID, action, entityType, entityID, data})
	return nil
}

type stubHub struct {
	updates []websocket.BalanceUpdate
	users   []int
}

func (s *stubHub) BroadcastBalance(userID int, update websocket.BalanceUpdate) {
	s.users = append(s.users, userID)
	s.updates = append(s.updates, update)
}

func intPtr(value int) *int { return &value }

func strPtr(value string) *string { return &value }
