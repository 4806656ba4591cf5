package usecase_test

import (
	"context"
	"sync"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	customers  repo.CustomerRepository
	skus       repo.ProductSkuRepository
	stock      repo.StockRepository
	payments   repo.PaymentRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposMock) Customers() repo.CustomerRepository   { return r.customers }
func (r *TxReposMock) Skus() repo.ProductSkuRepository      { return r.skus }
func (r *TxReposMock) Stock() repo.StockRepository          { return r.stock }
func (r *TxReposMock) Payments() repo.PaymentRepository     { return r.payments }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByIDForUpdate(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) GetStatus(ctx context.Context, orderID string) (model.OrderStatus, bool, error) {
	args := m.Called(ctx, orderID)
	s, _ := args.Get(0).(model.OrderStatus)
	return s, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, from, to model.OrderStatus) (bool, error) {
	args := m.Called(ctx, orderID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatusClosingWindow(ctx context.Context, orderID string, from, to model.OrderStatus, endTime time.Time) (bool, error) {
	args := m.Called(ctx, orderID, from, to, endTime)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) FindConflicting(ctx context.Context, productNo int64, excludeOrderID string, now time.Time) ([]model.Order, error) {
	args := m.Called(ctx, productNo, excludeOrderID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListExpiredTimeBoxed(ctx context.Context, now time.Time) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *OrderRepoMock) ListAll(ctx context.Context) ([]repo.OrderSummary, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]repo.OrderSummary)
	return items, args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type CustomerRepoMock struct{ mock.Mock }

func (m *CustomerRepoMock) Create(ctx context.Context, customer model.Customer) (int64, error) {
	args := m.Called(ctx, customer)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CustomerRepoMock) FindByNo(ctx context.Context, customerNo int64) (model.Customer, error) {
	args := m.Called(ctx, customerNo)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

type SkuRepoMock struct{ mock.Mock }

func (m *SkuRepoMock) FindBySkuID(ctx context.Context, skuID int64) (model.ProductSku, error) {
	args := m.Called(ctx, skuID)
	s, _ := args.Get(0).(model.ProductSku)
	return s, args.Error(1)
}

type StockRepoMock struct{ mock.Mock }

func (m *StockRepoMock) DecreaseIfEnough(ctx context.Context, skuID int64, qty int64) (bool, error) {
	args := m.Called(ctx, skuID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *StockRepoMock) Increase(ctx context.Context, skuID int64, qty int64) error {
	args := m.Called(ctx, skuID, qty)
	return args.Error(0)
}

func (m *StockRepoMock) CreateAdjustment(ctx context.Context, adj model.StockAdjustment) error {
	args := m.Called(ctx, adj)
	return args.Error(0)
}

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) Create(ctx context.Context, payment model.StripePayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *PaymentRepoMock) FindByOrderID(ctx context.Context, orderID string) (model.StripePayment, error) {
	args := m.Called(ctx, orderID)
	p, _ := args.Get(0).(model.StripePayment)
	return p, args.Error(1)
}

func (m *PaymentRepoMock) UpdateIntent(ctx context.Context, transactionID string, stripeStatus string, amountReceived int64, rawResponse string) (bool, error) {
	args := m.Called(ctx, transactionID, stripeStatus, amountReceived, rawResponse)
	return args.Bool(0), args.Error(1)
}

func (m *PaymentRepoMock) UpdateCharge(ctx context.Context, orderID string, stripeStatus string, amountCaptured, amountRefunded int64, rawResponse string) (bool, error) {
	args := m.Called(ctx, orderID, stripeStatus, amountCaptured, amountRefunded, rawResponse)
	return args.Bool(0), args.Error(1)
}

// =====================
// その他の部品
// =====================

// キャッシュはmapで十分
type cacheStub struct {
	mu sync.Mutex
	m  map[string]model.OrderStatus
}

func newCacheStub() *cacheStub {
	return &cacheStub{m: map[string]model.OrderStatus{}}
}

func (c *cacheStub) GetStatus(ctx context.Context, orderID string) (model.OrderStatus, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.m[orderID]
	return s, ok
}

func (c *cacheStub) SetStatus(ctx context.Context, orderID string, status model.OrderStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[orderID] = status
}

type idGenStub struct{ id string }

func (g *idGenStub) NewID() string { return g.id }

type nopLogger struct{}

func (nopLogger) Infof(format string, args ...interface{})  {}
func (nopLogger) Warnf(format string, args ...interface{})  {}
func (nopLogger) Errorf(format string, args ...interface{}) {}

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) OrderConfirmed(orderID string) { m.Called(orderID) }
func (m *NotifierMock) OrderRefunded(orderID string)  { m.Called(orderID) }
